package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// OrcamentoRepository defines persistence for budgets.
//
// TransitionStatus persists the new status and the transition timestamps in a
// single conditional write: the row is only touched when it still holds the
// status the caller loaded. When the row changed underneath the caller the
// method returns shared.ErrConcurrencyConflict and nothing is written.
type OrcamentoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Orcamento, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Orcamento, int64, error)
	FindByVendedor(ctx context.Context, vendedorID uuid.UUID, filter shared.Filter) ([]Orcamento, int64, error)
	FindByCliente(ctx context.Context, clienteID uuid.UUID) ([]Orcamento, error)
	Save(ctx context.Context, orcamento *Orcamento) error
	TransitionStatus(ctx context.Context, orcamento *Orcamento, from OrcamentoStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChecklistRepository defines persistence for installation checklists
type ChecklistRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ChecklistInstalacao, error)
	FindByOrcamento(ctx context.Context, orcamentoID uuid.UUID) (*ChecklistInstalacao, error)
	FindByInstalador(ctx context.Context, instaladorID uuid.UUID, filter shared.Filter) ([]ChecklistInstalacao, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ChecklistInstalacao, int64, error)
	Save(ctx context.Context, checklist *ChecklistInstalacao) error
	TransitionStatus(ctx context.Context, checklist *ChecklistInstalacao, from ChecklistStatus) error
}

// OrdemProducaoRepository defines persistence for production orders
type OrdemProducaoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrdemProducao, error)
	FindByOrcamento(ctx context.Context, orcamentoID uuid.UUID) (*OrdemProducao, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]OrdemProducao, int64, error)
	Save(ctx context.Context, ordem *OrdemProducao) error
	TransitionStatus(ctx context.Context, ordem *OrdemProducao, from OrdemProducaoStatus) error
}
