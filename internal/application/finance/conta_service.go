package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/shared"
)

// ContaService manages contas a pagar and a receber. Entries originate
// from NFe imports, closed budgets, or manual registration; settling
// and voiding go through compare-and-set transitions so two operators
// cannot settle the same entry twice.
type ContaService struct {
	contaRepo finance.ContaRepository
	gate      *authz.Gate
	logger    *zap.Logger
}

// NewContaService creates a new financial entry service
func NewContaService(contaRepo finance.ContaRepository, gate *authz.Gate, logger *zap.Logger) *ContaService {
	return &ContaService{
		contaRepo: contaRepo,
		gate:      gate,
		logger:    logger,
	}
}

// CreateConta registers a manual entry
func (s *ContaService) CreateConta(ctx context.Context, session identity.Session, input CreateContaInput) (*finance.Conta, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFinanceiro, nil); err != nil {
		return nil, err
	}

	conta, err := finance.NewConta(input.Tipo, input.Descricao, input.Valor,
		input.Vencimento, finance.OrigemManual, nil)
	if err != nil {
		return nil, err
	}
	if err := s.contaRepo.Save(ctx, conta); err != nil {
		return nil, err
	}
	return conta, nil
}

// GetConta returns a single entry
func (s *ContaService) GetConta(ctx context.Context, session identity.Session, id uuid.UUID) (*finance.Conta, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFinanceiro, nil); err != nil {
		return nil, err
	}
	return s.contaRepo.FindByID(ctx, id)
}

// ListContas returns entries of one tipo matching the filter
func (s *ContaService) ListContas(ctx context.Context, session identity.Session, tipo finance.TipoConta, filter shared.Filter) ([]finance.Conta, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFinanceiro, nil); err != nil {
		return nil, 0, err
	}
	if !tipo.IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_TIPO", "Tipo must be PAGAR or RECEBER")
	}
	return s.contaRepo.FindAll(ctx, tipo, filter)
}

// ListContasPorOrigem returns the entries opened by one source record,
// such as the installments of an imported NFe
func (s *ContaService) ListContasPorOrigem(ctx context.Context, session identity.Session, origem finance.OrigemConta, origemID uuid.UUID) ([]finance.Conta, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFinanceiro, nil); err != nil {
		return nil, err
	}
	return s.contaRepo.FindByOrigem(ctx, origem, origemID)
}

// PagarConta settles an entry
func (s *ContaService) PagarConta(ctx context.Context, session identity.Session, id uuid.UUID) (*finance.Conta, error) {
	return s.transition(ctx, session, id, (*finance.Conta).Pagar)
}

// CancelarConta voids an unsettled entry
func (s *ContaService) CancelarConta(ctx context.Context, session identity.Session, id uuid.UUID) (*finance.Conta, error) {
	return s.transition(ctx, session, id, (*finance.Conta).Cancelar)
}

// MarcarVencidas sweeps pending entries past their due date into
// VENCIDA. Entries that change under the sweep are skipped, not failed:
// an operator settling a conta mid-sweep wins.
func (s *ContaService) MarcarVencidas(ctx context.Context, session identity.Session, ref time.Time) (*MarcarVencidasResult, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFinanceiro, nil); err != nil {
		return nil, err
	}

	vencidas, err := s.contaRepo.FindPendentesVencidas(ctx, ref)
	if err != nil {
		return nil, err
	}

	marcadas := 0
	for i := range vencidas {
		conta := &vencidas[i]
		if err := conta.MarcarVencida(ref); err != nil {
			continue
		}
		err := s.contaRepo.TransitionStatus(ctx, conta.ID, finance.ContaStatusPendente, finance.ContaStatusVencida)
		if errors.Is(err, shared.ErrConcurrencyConflict) || errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		marcadas++
	}

	if marcadas > 0 {
		s.logger.Info("contas marcadas como vencidas", zap.Int("marcadas", marcadas))
	}
	return &MarcarVencidasResult{Marcadas: marcadas}, nil
}

func (s *ContaService) transition(ctx context.Context, session identity.Session, id uuid.UUID, apply func(*finance.Conta) error) (*finance.Conta, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFinanceiro, nil); err != nil {
		return nil, err
	}

	conta, err := s.contaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := conta.Status
	if err := apply(conta); err != nil {
		return nil, err
	}
	if err := s.contaRepo.TransitionStatus(ctx, id, from, conta.Status); err != nil {
		return nil, err
	}
	return conta, nil
}
