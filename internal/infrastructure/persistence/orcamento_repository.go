package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lojamae/backend/internal/domain/sales"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/persistence/models"
)

// GormOrcamentoRepository implements sales.OrcamentoRepository using GORM
type GormOrcamentoRepository struct {
	db *gorm.DB
}

// NewGormOrcamentoRepository creates a new GormOrcamentoRepository
func NewGormOrcamentoRepository(db *gorm.DB) *GormOrcamentoRepository {
	return &GormOrcamentoRepository{db: db}
}

// FindByID finds a budget with its items
func (r *GormOrcamentoRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Orcamento, error) {
	var model models.OrcamentoModel
	if err := r.db.WithContext(ctx).Preload("Itens").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all budgets matching the filter
func (r *GormOrcamentoRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Orcamento, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrcamentoModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return r.findPage(query, filter)
}

// FindByVendedor finds budgets owned by a vendedor
func (r *GormOrcamentoRepository) FindByVendedor(ctx context.Context, vendedorID uuid.UUID, filter shared.Filter) ([]sales.Orcamento, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrcamentoModel{}).Where("vendedor_id = ?", vendedorID)
	return r.findPage(query, filter)
}

// FindByCliente finds all budgets for a cliente
func (r *GormOrcamentoRepository) FindByCliente(ctx context.Context, clienteID uuid.UUID) ([]sales.Orcamento, error) {
	var orcamentoModels []models.OrcamentoModel
	err := r.db.WithContext(ctx).Preload("Itens").
		Where("cliente_id = ?", clienteID).
		Order("created_at desc").
		Find(&orcamentoModels).Error
	if err != nil {
		return nil, err
	}
	orcamentos := make([]sales.Orcamento, len(orcamentoModels))
	for i, model := range orcamentoModels {
		orcamentos[i] = *model.ToDomain()
	}
	return orcamentos, nil
}

// Save persists a budget and its items under the optimistic version check
func (r *GormOrcamentoRepository) Save(ctx context.Context, orcamento *sales.Orcamento) error {
	model := models.OrcamentoModelFromDomain(orcamento)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAggregate(tx, model, &model.AggregateModel, "Itens"); err != nil {
			return err
		}
		// replace items wholesale; the set is small and edits are draft-only
		if err := tx.Where("orcamento_id = ?", model.ID).Delete(&models.ItemOrcamentoModel{}).Error; err != nil {
			return err
		}
		if len(model.Itens) == 0 {
			return nil
		}
		return tx.Create(&model.Itens).Error
	})
}

// TransitionStatus persists a lifecycle transition only while the stored
// row still holds the status the caller loaded. The timestamps the
// transition set ride along in the same guarded statement, so a stale
// caller cannot clobber a newer status with a follow-up write.
func (r *GormOrcamentoRepository) TransitionStatus(ctx context.Context, orcamento *sales.Orcamento, from sales.OrcamentoStatus) error {
	result := r.db.WithContext(ctx).Model(&models.OrcamentoModel{}).
		Where("id = ? AND status = ?", orcamento.ID, from).
		Updates(map[string]interface{}{
			"status":     orcamento.Status,
			"enviado_at": orcamento.EnviadoAt,
			"fechado_at": orcamento.FechadoAt,
			"perdido_at": orcamento.PerdidoAt,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&models.OrcamentoModel{}).
			Where("id = ?", orcamento.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a budget
func (r *GormOrcamentoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OrcamentoModel{}, "id = ?", id).Error
}

func (r *GormOrcamentoRepository) findPage(query *gorm.DB, filter shared.Filter) ([]sales.Orcamento, int64, error) {
	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var orcamentoModels []models.OrcamentoModel
	if err := query.Preload("Itens").Find(&orcamentoModels).Error; err != nil {
		return nil, 0, err
	}
	orcamentos := make([]sales.Orcamento, len(orcamentoModels))
	for i, model := range orcamentoModels {
		orcamentos[i] = *model.ToDomain()
	}
	return orcamentos, total, nil
}
