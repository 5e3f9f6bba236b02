package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/sales"
	"github.com/lojamae/backend/internal/domain/shared"
)

// OrdemProducaoService manages production orders derived from won budgets
type OrdemProducaoService struct {
	ordemRepo     sales.OrdemProducaoRepository
	orcamentoRepo sales.OrcamentoRepository
	gate          *authz.Gate
	logger        *zap.Logger
}

// NewOrdemProducaoService creates a new production order service
func NewOrdemProducaoService(
	ordemRepo sales.OrdemProducaoRepository,
	orcamentoRepo sales.OrcamentoRepository,
	gate *authz.Gate,
	logger *zap.Logger,
) *OrdemProducaoService {
	return &OrdemProducaoService{
		ordemRepo:     ordemRepo,
		orcamentoRepo: orcamentoRepo,
		gate:          gate,
		logger:        logger,
	}
}

// CreateOrdem opens a production order for a won budget
func (s *OrdemProducaoService) CreateOrdem(ctx context.Context, session identity.Session, input CreateOrdemProducaoInput) (*sales.OrdemProducao, error) {
	if err := s.gate.Authorize(session, authz.ActionManageOrdemProducao, nil); err != nil {
		return nil, err
	}

	orcamento, err := s.orcamentoRepo.FindByID(ctx, input.OrcamentoID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ordemRepo.FindByOrcamento(ctx, input.OrcamentoID); err == nil {
		return nil, shared.NewDomainError("ORDEM_ALREADY_EXISTS",
			"Orcamento already has a production order")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	ordem, err := sales.NewOrdemProducao(orcamento, input.Descricao)
	if err != nil {
		return nil, err
	}
	if err := s.ordemRepo.Save(ctx, ordem); err != nil {
		return nil, err
	}
	s.logger.Info("Ordem de producao created",
		zap.String("ordem_id", ordem.ID.String()),
		zap.String("orcamento_id", orcamento.ID.String()))
	return ordem, nil
}

// IniciarOrdem moves an order into production
func (s *OrdemProducaoService) IniciarOrdem(ctx context.Context, session identity.Session, ordemID uuid.UUID) (*sales.OrdemProducao, error) {
	return s.mutate(ctx, session, ordemID, func(ordem *sales.OrdemProducao) error {
		return ordem.Iniciar()
	})
}

// ConcluirOrdem marks an order as produced
func (s *OrdemProducaoService) ConcluirOrdem(ctx context.Context, session identity.Session, ordemID uuid.UUID) (*sales.OrdemProducao, error) {
	return s.mutate(ctx, session, ordemID, func(ordem *sales.OrdemProducao) error {
		return ordem.Concluir()
	})
}

// CancelarOrdem cancels an order with a reason
func (s *OrdemProducaoService) CancelarOrdem(ctx context.Context, session identity.Session, input CancelOrdemProducaoInput) (*sales.OrdemProducao, error) {
	return s.mutate(ctx, session, input.OrdemID, func(ordem *sales.OrdemProducao) error {
		return ordem.Cancelar(input.Motivo)
	})
}

// ListOrdens returns production orders matching the filter
func (s *OrdemProducaoService) ListOrdens(ctx context.Context, session identity.Session, filter shared.Filter) ([]sales.OrdemProducao, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionManageOrdemProducao, nil); err != nil {
		return nil, 0, err
	}
	return s.ordemRepo.FindAll(ctx, filter)
}

func (s *OrdemProducaoService) mutate(ctx context.Context, session identity.Session, ordemID uuid.UUID, op func(*sales.OrdemProducao) error) (*sales.OrdemProducao, error) {
	if err := s.gate.Authorize(session, authz.ActionManageOrdemProducao, nil); err != nil {
		return nil, err
	}
	ordem, err := s.ordemRepo.FindByID(ctx, ordemID)
	if err != nil {
		return nil, err
	}
	from := ordem.Status
	if err := op(ordem); err != nil {
		return nil, err
	}
	if err := s.ordemRepo.TransitionStatus(ctx, ordem, from); err != nil {
		return nil, err
	}
	return ordem, nil
}
