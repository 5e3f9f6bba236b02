package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/persistence/models"
)

// GormContaRepository implements finance.ContaRepository using GORM
type GormContaRepository struct {
	db *gorm.DB
}

// NewGormContaRepository creates a new GormContaRepository
func NewGormContaRepository(db *gorm.DB) *GormContaRepository {
	return &GormContaRepository{db: db}
}

// FindByID finds a conta by its ID
func (r *GormContaRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Conta, error) {
	var model models.ContaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds contas of a given type matching the filter
func (r *GormContaRepository) FindAll(ctx context.Context, tipo finance.TipoConta, filter shared.Filter) ([]finance.Conta, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContaModel{}).Where("tipo = ?", tipo)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Search != "" {
		query = query.Where("descricao LIKE ?", "%"+filter.Search+"%")
	}

	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var contaModels []models.ContaModel
	if err := query.Find(&contaModels).Error; err != nil {
		return nil, 0, err
	}
	contas := make([]finance.Conta, len(contaModels))
	for i, model := range contaModels {
		contas[i] = *model.ToDomain()
	}
	return contas, total, nil
}

// FindPendentesVencidas finds pending contas whose due date is before ref
func (r *GormContaRepository) FindPendentesVencidas(ctx context.Context, ref time.Time) ([]finance.Conta, error) {
	var contaModels []models.ContaModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND vencimento < ?", finance.ContaStatusPendente, ref).
		Order("vencimento asc").
		Find(&contaModels).Error
	if err != nil {
		return nil, err
	}
	contas := make([]finance.Conta, len(contaModels))
	for i, model := range contaModels {
		contas[i] = *model.ToDomain()
	}
	return contas, nil
}

// FindByOrigem finds contas created from a given source document
func (r *GormContaRepository) FindByOrigem(ctx context.Context, origem finance.OrigemConta, origemID uuid.UUID) ([]finance.Conta, error) {
	var contaModels []models.ContaModel
	err := r.db.WithContext(ctx).
		Where("origem = ? AND origem_id = ?", origem, origemID).
		Order("vencimento asc").
		Find(&contaModels).Error
	if err != nil {
		return nil, err
	}
	contas := make([]finance.Conta, len(contaModels))
	for i, model := range contaModels {
		contas[i] = *model.ToDomain()
	}
	return contas, nil
}

// Save persists a conta under the optimistic version check
func (r *GormContaRepository) Save(ctx context.Context, conta *finance.Conta) error {
	model := models.ContaModelFromDomain(conta)
	return saveAggregate(r.db.WithContext(ctx), model, &model.AggregateModel)
}

// TransitionStatus moves a conta from one status to another.
// The update only applies while the conta is still in the expected
// status, so a stale caller loses with ErrConcurrencyConflict.
func (r *GormContaRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to finance.ContaStatus) error {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
		"version":    gorm.Expr("version + 1"),
	}
	switch to {
	case finance.ContaStatusPaga:
		updates["paga_at"] = time.Now()
	case finance.ContaStatusCancelada:
		updates["cancelada_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&models.ContaModel{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.ContaModel{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}
