package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lojamae/backend/internal/domain/crm"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/persistence/models"
)

// GormClienteRepository implements crm.ClienteRepository using GORM
type GormClienteRepository struct {
	db *gorm.DB
}

// NewGormClienteRepository creates a new GormClienteRepository
func NewGormClienteRepository(db *gorm.DB) *GormClienteRepository {
	return &GormClienteRepository{db: db}
}

// FindByID finds a cliente by its ID
func (r *GormClienteRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Cliente, error) {
	var model models.ClienteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all clientes matching the filter
func (r *GormClienteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Cliente, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ClienteModel{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("nome LIKE ? OR email LIKE ? OR telefone LIKE ?", like, like, like)
	}

	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var clienteModels []models.ClienteModel
	if err := query.Find(&clienteModels).Error; err != nil {
		return nil, 0, err
	}
	clientes := make([]crm.Cliente, len(clienteModels))
	for i, model := range clienteModels {
		clientes[i] = *model.ToDomain()
	}
	return clientes, total, nil
}

// Save persists a cliente under the optimistic version check
func (r *GormClienteRepository) Save(ctx context.Context, cliente *crm.Cliente) error {
	model := models.ClienteModelFromDomain(cliente)
	return saveAggregate(r.db.WithContext(ctx), model, &model.AggregateModel)
}

// Delete removes a cliente
func (r *GormClienteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ClienteModel{}, "id = ?", id).Error
}

// GormVisitaRepository implements crm.VisitaRepository using GORM
type GormVisitaRepository struct {
	db *gorm.DB
}

// NewGormVisitaRepository creates a new GormVisitaRepository
func NewGormVisitaRepository(db *gorm.DB) *GormVisitaRepository {
	return &GormVisitaRepository{db: db}
}

// FindByID finds a visita by its ID
func (r *GormVisitaRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Visita, error) {
	var model models.VisitaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCliente finds visitas for a cliente
func (r *GormVisitaRepository) FindByCliente(ctx context.Context, clienteID uuid.UUID, filter shared.Filter) ([]crm.Visita, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.VisitaModel{}).Where("cliente_id = ?", clienteID)
	return r.findPage(query, filter)
}

// FindByVendedor finds visitas scheduled by a vendedor
func (r *GormVisitaRepository) FindByVendedor(ctx context.Context, vendedorID uuid.UUID, filter shared.Filter) ([]crm.Visita, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.VisitaModel{}).Where("vendedor_id = ?", vendedorID)
	return r.findPage(query, filter)
}

// Save persists a visita under the optimistic version check
func (r *GormVisitaRepository) Save(ctx context.Context, visita *crm.Visita) error {
	model := models.VisitaModelFromDomain(visita)
	return saveAggregate(r.db.WithContext(ctx), model, &model.AggregateModel)
}

func (r *GormVisitaRepository) findPage(query *gorm.DB, filter shared.Filter) ([]crm.Visita, int64, error) {
	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var visitaModels []models.VisitaModel
	if err := query.Find(&visitaModels).Error; err != nil {
		return nil, 0, err
	}
	visitas := make([]crm.Visita, len(visitaModels))
	for i, model := range visitaModels {
		visitas[i] = *model.ToDomain()
	}
	return visitas, total, nil
}

// GormFollowUpRepository implements crm.FollowUpRepository using GORM
type GormFollowUpRepository struct {
	db *gorm.DB
}

// NewGormFollowUpRepository creates a new GormFollowUpRepository
func NewGormFollowUpRepository(db *gorm.DB) *GormFollowUpRepository {
	return &GormFollowUpRepository{db: db}
}

// FindByCliente finds follow-up notes for a cliente, newest first
func (r *GormFollowUpRepository) FindByCliente(ctx context.Context, clienteID uuid.UUID) ([]crm.FollowUp, error) {
	var followUpModels []models.FollowUpModel
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("created_at desc").
		Find(&followUpModels).Error
	if err != nil {
		return nil, err
	}
	followUps := make([]crm.FollowUp, len(followUpModels))
	for i, model := range followUpModels {
		followUps[i] = *model.ToDomain()
	}
	return followUps, nil
}

// Save persists a follow-up note
func (r *GormFollowUpRepository) Save(ctx context.Context, followUp *crm.FollowUp) error {
	model := models.FollowUpModelFromDomain(followUp)
	return r.db.WithContext(ctx).Save(model).Error
}
