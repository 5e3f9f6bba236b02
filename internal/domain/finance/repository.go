package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// ContaRepository defines persistence for payables and receivables
type ContaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Conta, error)
	FindAll(ctx context.Context, tipo TipoConta, filter shared.Filter) ([]Conta, int64, error)
	FindPendentesVencidas(ctx context.Context, ref time.Time) ([]Conta, error)
	FindByOrigem(ctx context.Context, origem OrigemConta, origemID uuid.UUID) ([]Conta, error)
	Save(ctx context.Context, conta *Conta) error
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to ContaStatus) error
}
