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

// GormLeadRepository implements crm.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by its ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all leads matching the filter
func (r *GormLeadRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Lead, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LeadModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return r.findPage(query, filter)
}

// FindByVendedor finds leads owned by the given vendedor
func (r *GormLeadRepository) FindByVendedor(ctx context.Context, vendedorID uuid.UUID, filter shared.Filter) ([]crm.Lead, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LeadModel{}).Where("vendedor_id = ?", vendedorID)
	return r.findPage(query, filter)
}

// FindOpenByCliente finds the non-terminal lead attached to a cliente
func (r *GormLeadRepository) FindOpenByCliente(ctx context.Context, clienteID uuid.UUID) (*crm.Lead, error) {
	var model models.LeadModel
	err := r.db.WithContext(ctx).
		Where("cliente_id = ? AND status NOT IN ?", clienteID,
			[]crm.LeadStatus{crm.LeadStatusFechado, crm.LeadStatusPerdido}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists a lead under the optimistic version check
func (r *GormLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	model := models.LeadModelFromDomain(lead)
	return saveAggregate(r.db.WithContext(ctx), model, &model.AggregateModel)
}

// Claim atomically assigns an unowned SEM_DONO lead to a vendedor. The
// conditional WHERE guarantees exactly one of two racing claims wins;
// the loser's update matches zero rows and maps to a conflict.
func (r *GormLeadRepository) Claim(ctx context.Context, leadID, vendedorID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.LeadModel{}).
		Where("id = ? AND status = ? AND vendedor_id IS NULL", leadID, crm.LeadStatusSemDono).
		Updates(map[string]interface{}{
			"status":      crm.LeadStatusPrimeiroContato,
			"vendedor_id": vendedorID,
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// distinguish a lost race from a missing lead
		var exists int64
		if err := r.db.WithContext(ctx).Model(&models.LeadModel{}).
			Where("id = ?", leadID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// TransitionStatus updates the status only if the current value matches from
func (r *GormLeadRepository) TransitionStatus(ctx context.Context, leadID uuid.UUID, from, to crm.LeadStatus) error {
	result := r.db.WithContext(ctx).Model(&models.LeadModel{}).
		Where("id = ? AND status = ?", leadID, from).
		Updates(map[string]interface{}{
			"status":  to,
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&models.LeadModel{}).
			Where("id = ?", leadID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a lead
func (r *GormLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LeadModel{}, "id = ?", id).Error
}

func (r *GormLeadRepository) findPage(query *gorm.DB, filter shared.Filter) ([]crm.Lead, int64, error) {
	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var leadModels []models.LeadModel
	if err := query.Find(&leadModels).Error; err != nil {
		return nil, 0, err
	}
	leads := make([]crm.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, total, nil
}
