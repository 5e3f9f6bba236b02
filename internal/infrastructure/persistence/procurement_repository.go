package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/procurement"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/persistence/models"
)

// GormFornecedorRepository implements procurement.FornecedorRepository using GORM
type GormFornecedorRepository struct {
	db *gorm.DB
}

// NewGormFornecedorRepository creates a new GormFornecedorRepository
func NewGormFornecedorRepository(db *gorm.DB) *GormFornecedorRepository {
	return &GormFornecedorRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormFornecedorRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Fornecedor, error) {
	var model models.FornecedorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCNPJ finds a supplier by its CNPJ
func (r *GormFornecedorRepository) FindByCNPJ(ctx context.Context, cnpj string) (*procurement.Fornecedor, error) {
	var model models.FornecedorModel
	if err := r.db.WithContext(ctx).Where("cnpj = ?", cnpj).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all suppliers matching the filter
func (r *GormFornecedorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.Fornecedor, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FornecedorModel{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("razao_social LIKE ? OR nome_fantasia LIKE ? OR cnpj LIKE ?", like, like, like)
	}

	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var fornecedorModels []models.FornecedorModel
	if err := query.Find(&fornecedorModels).Error; err != nil {
		return nil, 0, err
	}
	fornecedores := make([]procurement.Fornecedor, len(fornecedorModels))
	for i, model := range fornecedorModels {
		fornecedores[i] = *model.ToDomain()
	}
	return fornecedores, total, nil
}

// Save persists a supplier under the optimistic version check
func (r *GormFornecedorRepository) Save(ctx context.Context, fornecedor *procurement.Fornecedor) error {
	model := models.FornecedorModelFromDomain(fornecedor)
	return saveAggregate(r.db.WithContext(ctx), model, &model.AggregateModel)
}

// Delete removes a supplier
func (r *GormFornecedorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.FornecedorModel{}, "id = ?", id).Error
}

// GormPedidoCompraRepository implements procurement.PedidoCompraRepository using GORM
type GormPedidoCompraRepository struct {
	db *gorm.DB
}

// NewGormPedidoCompraRepository creates a new GormPedidoCompraRepository
func NewGormPedidoCompraRepository(db *gorm.DB) *GormPedidoCompraRepository {
	return &GormPedidoCompraRepository{db: db}
}

// FindByID finds a purchase order with its items
func (r *GormPedidoCompraRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PedidoCompra, error) {
	var model models.PedidoCompraModel
	if err := r.db.WithContext(ctx).Preload("Itens").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all purchase orders matching the filter
func (r *GormPedidoCompraRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PedidoCompra, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PedidoCompraModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return r.findPage(query, filter)
}

// FindByFornecedor finds purchase orders for a supplier
func (r *GormPedidoCompraRepository) FindByFornecedor(ctx context.Context, fornecedorID uuid.UUID, filter shared.Filter) ([]procurement.PedidoCompra, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PedidoCompraModel{}).Where("fornecedor_id = ?", fornecedorID)
	return r.findPage(query, filter)
}

// Save persists a purchase order and its items under the optimistic
// version check
func (r *GormPedidoCompraRepository) Save(ctx context.Context, pedido *procurement.PedidoCompra) error {
	model := models.PedidoCompraModelFromDomain(pedido)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAggregate(tx, model, &model.AggregateModel, "Itens"); err != nil {
			return err
		}
		if err := tx.Where("pedido_id = ?", model.ID).Delete(&models.ItemPedidoCompraModel{}).Error; err != nil {
			return err
		}
		if len(model.Itens) == 0 {
			return nil
		}
		return tx.Create(&model.Itens).Error
	})
}

// TransitionStatus persists a lifecycle transition only while the stored
// row still holds the status the caller loaded; the transition's
// timestamps ride along in the same guarded statement.
func (r *GormPedidoCompraRepository) TransitionStatus(ctx context.Context, pedido *procurement.PedidoCompra, from procurement.PedidoCompraStatus) error {
	result := r.db.WithContext(ctx).Model(&models.PedidoCompraModel{}).
		Where("id = ? AND status = ?", pedido.ID, from).
		Updates(map[string]interface{}{
			"status":       pedido.Status,
			"enviado_at":   pedido.EnviadoAt,
			"recebido_at":  pedido.RecebidoAt,
			"cancelado_at": pedido.CanceladoAt,
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&models.PedidoCompraModel{}).
			Where("id = ?", pedido.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormPedidoCompraRepository) findPage(query *gorm.DB, filter shared.Filter) ([]procurement.PedidoCompra, int64, error) {
	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var pedidoModels []models.PedidoCompraModel
	if err := query.Preload("Itens").Find(&pedidoModels).Error; err != nil {
		return nil, 0, err
	}
	pedidos := make([]procurement.PedidoCompra, len(pedidoModels))
	for i, model := range pedidoModels {
		pedidos[i] = *model.ToDomain()
	}
	return pedidos, total, nil
}

// GormNFeRepository implements procurement.NFeRepository using GORM
type GormNFeRepository struct {
	db *gorm.DB
}

// NewGormNFeRepository creates a new GormNFeRepository
func NewGormNFeRepository(db *gorm.DB) *GormNFeRepository {
	return &GormNFeRepository{db: db}
}

// FindByID finds an invoice with its products and installments
func (r *GormNFeRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.NFe, error) {
	var model models.NFeModel
	err := r.db.WithContext(ctx).Preload("Produtos").Preload("Duplicatas").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByChaveAcesso finds an invoice by its access key
func (r *GormNFeRepository) FindByChaveAcesso(ctx context.Context, chave string) (*procurement.NFe, error) {
	var model models.NFeModel
	err := r.db.WithContext(ctx).Preload("Produtos").Preload("Duplicatas").
		Where("chave_acesso = ?", chave).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all invoices matching the filter
func (r *GormNFeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.NFe, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NFeModel{})
	if cnpj, ok := filter.Filters["emitente_cnpj"]; ok {
		query = query.Where("emitente_cnpj = ?", cnpj)
	}

	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var nfeModels []models.NFeModel
	if err := query.Preload("Produtos").Preload("Duplicatas").Find(&nfeModels).Error; err != nil {
		return nil, 0, err
	}
	nfes := make([]procurement.NFe, len(nfeModels))
	for i, model := range nfeModels {
		nfes[i] = *model.ToDomain()
	}
	return nfes, total, nil
}

// Save persists an invoice with its products and installments
func (r *GormNFeRepository) Save(ctx context.Context, nfe *procurement.NFe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.save(tx, nfe)
	})
}

// SaveWithContas persists an invoice and the payables generated from its
// installments in a single transaction. Either everything lands or
// nothing does, so a failed conta never strands a half-imported invoice
// behind the chave-de-acesso idempotency check.
func (r *GormNFeRepository) SaveWithContas(ctx context.Context, nfe *procurement.NFe, contas []*finance.Conta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.save(tx, nfe); err != nil {
			return err
		}
		for _, conta := range contas {
			if err := tx.Create(models.ContaModelFromDomain(conta)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormNFeRepository) save(tx *gorm.DB, nfe *procurement.NFe) error {
	model := models.NFeModelFromDomain(nfe)
	if err := saveAggregate(tx, model, &model.AggregateModel, "Produtos", "Duplicatas"); err != nil {
		return err
	}
	if err := tx.Where("n_fe_id = ?", model.ID).Delete(&models.ProdutoNFeModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("n_fe_id = ?", model.ID).Delete(&models.DuplicataNFeModel{}).Error; err != nil {
		return err
	}
	if len(model.Produtos) > 0 {
		if err := tx.Create(&model.Produtos).Error; err != nil {
			return err
		}
	}
	if len(model.Duplicatas) > 0 {
		if err := tx.Create(&model.Duplicatas).Error; err != nil {
			return err
		}
	}
	return nil
}
