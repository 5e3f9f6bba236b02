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

// GormChecklistRepository implements sales.ChecklistRepository using GORM
type GormChecklistRepository struct {
	db *gorm.DB
}

// NewGormChecklistRepository creates a new GormChecklistRepository
func NewGormChecklistRepository(db *gorm.DB) *GormChecklistRepository {
	return &GormChecklistRepository{db: db}
}

// FindByID finds a checklist with its snapshot items
func (r *GormChecklistRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.ChecklistInstalacao, error) {
	var model models.ChecklistModel
	if err := r.db.WithContext(ctx).Preload("Itens").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrcamento finds the checklist created for a budget
func (r *GormChecklistRepository) FindByOrcamento(ctx context.Context, orcamentoID uuid.UUID) (*sales.ChecklistInstalacao, error) {
	var model models.ChecklistModel
	err := r.db.WithContext(ctx).Preload("Itens").
		Where("orcamento_id = ?", orcamentoID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInstalador finds checklists assigned to an installer
func (r *GormChecklistRepository) FindByInstalador(ctx context.Context, instaladorID uuid.UUID, filter shared.Filter) ([]sales.ChecklistInstalacao, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ChecklistModel{}).Where("instalador_id = ?", instaladorID)
	return r.findPage(query, filter)
}

// FindAll finds all checklists matching the filter
func (r *GormChecklistRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.ChecklistInstalacao, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ChecklistModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return r.findPage(query, filter)
}

// Save persists a checklist and its snapshot items under the optimistic
// version check
func (r *GormChecklistRepository) Save(ctx context.Context, checklist *sales.ChecklistInstalacao) error {
	model := models.ChecklistModelFromDomain(checklist)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAggregate(tx, model, &model.AggregateModel, "Itens"); err != nil {
			return err
		}
		return r.replaceItens(tx, model)
	})
}

// TransitionStatus persists a checklist mutation only while the stored
// row still holds the status the caller loaded. The assignment fields,
// completion timestamp and item check-offs ride along in the same
// transaction, guarded by the status match.
func (r *GormChecklistRepository) TransitionStatus(ctx context.Context, checklist *sales.ChecklistInstalacao, from sales.ChecklistStatus) error {
	model := models.ChecklistModelFromDomain(checklist)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ChecklistModel{}).
			Where("id = ? AND status = ?", model.ID, from).
			Updates(map[string]interface{}{
				"status":        model.Status,
				"instalador_id": model.InstaladorID,
				"data_agendada": model.DataAgendada,
				"concluido_at":  model.ConcluidoAt,
				"observacoes":   model.Observacoes,
				"version":       gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&models.ChecklistModel{}).
				Where("id = ?", model.ID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrConcurrencyConflict
		}
		return r.replaceItens(tx, model)
	})
}

func (r *GormChecklistRepository) replaceItens(tx *gorm.DB, model *models.ChecklistModel) error {
	if err := tx.Where("checklist_id = ?", model.ID).Delete(&models.ItemConferidoModel{}).Error; err != nil {
		return err
	}
	if len(model.Itens) == 0 {
		return nil
	}
	return tx.Create(&model.Itens).Error
}

func (r *GormChecklistRepository) findPage(query *gorm.DB, filter shared.Filter) ([]sales.ChecklistInstalacao, int64, error) {
	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var checklistModels []models.ChecklistModel
	if err := query.Preload("Itens").Find(&checklistModels).Error; err != nil {
		return nil, 0, err
	}
	checklists := make([]sales.ChecklistInstalacao, len(checklistModels))
	for i, model := range checklistModels {
		checklists[i] = *model.ToDomain()
	}
	return checklists, total, nil
}

// GormOrdemProducaoRepository implements sales.OrdemProducaoRepository using GORM
type GormOrdemProducaoRepository struct {
	db *gorm.DB
}

// NewGormOrdemProducaoRepository creates a new GormOrdemProducaoRepository
func NewGormOrdemProducaoRepository(db *gorm.DB) *GormOrdemProducaoRepository {
	return &GormOrdemProducaoRepository{db: db}
}

// FindByID finds a production order by its ID
func (r *GormOrdemProducaoRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.OrdemProducao, error) {
	var model models.OrdemProducaoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrcamento finds the production order for a budget
func (r *GormOrdemProducaoRepository) FindByOrcamento(ctx context.Context, orcamentoID uuid.UUID) (*sales.OrdemProducao, error) {
	var model models.OrdemProducaoModel
	err := r.db.WithContext(ctx).Where("orcamento_id = ?", orcamentoID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all production orders matching the filter
func (r *GormOrdemProducaoRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.OrdemProducao, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrdemProducaoModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var ordemModels []models.OrdemProducaoModel
	if err := query.Find(&ordemModels).Error; err != nil {
		return nil, 0, err
	}
	ordens := make([]sales.OrdemProducao, len(ordemModels))
	for i, model := range ordemModels {
		ordens[i] = *model.ToDomain()
	}
	return ordens, total, nil
}

// Save persists a production order under the optimistic version check
func (r *GormOrdemProducaoRepository) Save(ctx context.Context, ordem *sales.OrdemProducao) error {
	model := models.OrdemProducaoModelFromDomain(ordem)
	return saveAggregate(r.db.WithContext(ctx), model, &model.AggregateModel)
}

// TransitionStatus persists a lifecycle transition only while the stored
// row still holds the status the caller loaded, so two racing events
// (say Concluir against Cancelar) cannot both win.
func (r *GormOrdemProducaoRepository) TransitionStatus(ctx context.Context, ordem *sales.OrdemProducao, from sales.OrdemProducaoStatus) error {
	result := r.db.WithContext(ctx).Model(&models.OrdemProducaoModel{}).
		Where("id = ? AND status = ?", ordem.ID, from).
		Updates(map[string]interface{}{
			"status":         ordem.Status,
			"previsao_em":    ordem.PrevisaoEm,
			"iniciada_at":    ordem.IniciadaAt,
			"concluida_at":   ordem.ConcluidaAt,
			"cancelada_at":   ordem.CanceladaAt,
			"motivo_cancelo": ordem.MotivoCancelo,
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&models.OrdemProducaoModel{}).
			Where("id = ?", ordem.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}
