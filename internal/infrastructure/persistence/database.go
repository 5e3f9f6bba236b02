package persistence

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lojamae/backend/internal/infrastructure/config"
	"github.com/lojamae/backend/internal/infrastructure/persistence/models"
)

// Database holds the database connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase creates a new database connection with the given configuration
func NewDatabase(cfg config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// AllModels lists every persistence model for schema auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.LeadModel{},
		&models.ClienteModel{},
		&models.VisitaModel{},
		&models.FollowUpModel{},
		&models.OrcamentoModel{},
		&models.ItemOrcamentoModel{},
		&models.ChecklistModel{},
		&models.ItemConferidoModel{},
		&models.OrdemProducaoModel{},
		&models.FornecedorModel{},
		&models.PedidoCompraModel{},
		&models.ItemPedidoCompraModel{},
		&models.NFeModel{},
		&models.ProdutoNFeModel{},
		&models.DuplicataNFeModel{},
		&models.ProdutoModel{},
		&models.MovimentoEstoqueModel{},
		&models.ContaModel{},
	}
}
