package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// LeadRepository defines persistence operations for leads.
//
// Claim and TransitionStatus are conditional writes: the update applies only
// if the stored row still matches the expected precondition, so two racing
// requests produce exactly one winner. Implementations return
// shared.ErrConcurrencyConflict when the precondition no longer holds.
type LeadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Lead, int64, error)
	FindByVendedor(ctx context.Context, vendedorID uuid.UUID, filter shared.Filter) ([]Lead, int64, error)
	FindOpenByCliente(ctx context.Context, clienteID uuid.UUID) (*Lead, error)
	Save(ctx context.Context, lead *Lead) error
	// Claim atomically assigns an unowned SEM_DONO lead to a vendedor.
	Claim(ctx context.Context, leadID, vendedorID uuid.UUID) error
	// TransitionStatus updates the status only if the current value matches from.
	TransitionStatus(ctx context.Context, leadID uuid.UUID, from, to LeadStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClienteRepository defines persistence operations for customers
type ClienteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Cliente, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Cliente, int64, error)
	Save(ctx context.Context, cliente *Cliente) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VisitaRepository defines persistence operations for visits
type VisitaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Visita, error)
	FindByCliente(ctx context.Context, clienteID uuid.UUID, filter shared.Filter) ([]Visita, int64, error)
	FindByVendedor(ctx context.Context, vendedorID uuid.UUID, filter shared.Filter) ([]Visita, int64, error)
	Save(ctx context.Context, visita *Visita) error
}

// FollowUpRepository defines persistence operations for follow-up notes
type FollowUpRepository interface {
	FindByCliente(ctx context.Context, clienteID uuid.UUID) ([]FollowUp, error)
	Save(ctx context.Context, followUp *FollowUp) error
}
