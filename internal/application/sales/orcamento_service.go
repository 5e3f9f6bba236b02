package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/crm"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/sales"
	"github.com/lojamae/backend/internal/domain/shared"
)

// OrcamentoService manages budgets through their lifecycle. Status
// changes go through the domain transition table and are persisted with
// a conditional write; budget events also push the customer's open lead
// forward so the two pipelines stay in step.
type OrcamentoService struct {
	orcamentoRepo sales.OrcamentoRepository
	leadRepo      crm.LeadRepository
	gate          *authz.Gate
	logger        *zap.Logger
}

// NewOrcamentoService creates a new budget service
func NewOrcamentoService(
	orcamentoRepo sales.OrcamentoRepository,
	leadRepo crm.LeadRepository,
	gate *authz.Gate,
	logger *zap.Logger,
) *OrcamentoService {
	return &OrcamentoService{
		orcamentoRepo: orcamentoRepo,
		leadRepo:      leadRepo,
		gate:          gate,
		logger:        logger,
	}
}

// CreateOrcamento opens a draft budget owned by the calling vendedor
func (s *OrcamentoService) CreateOrcamento(ctx context.Context, session identity.Session, input CreateOrcamentoInput) (*sales.Orcamento, error) {
	if err := s.gate.Authorize(session, authz.ActionManageOrcamento, nil); err != nil {
		return nil, err
	}

	orcamento, err := sales.NewOrcamento(input.ClienteID, session.UserID)
	if err != nil {
		return nil, err
	}
	orcamento.Observacoes = input.Observacoes
	for _, item := range input.Itens {
		if _, err := orcamento.AddItem(item.TipoProduto, item.Descricao,
			item.Largura, item.Altura, item.PrecoUnitario); err != nil {
			return nil, err
		}
	}

	if err := s.orcamentoRepo.Save(ctx, orcamento); err != nil {
		return nil, err
	}
	s.logger.Info("Orcamento created",
		zap.String("orcamento_id", orcamento.ID.String()),
		zap.String("cliente_id", input.ClienteID.String()))
	return orcamento, nil
}

// GetOrcamento returns one budget. A vendedor asking for a colleague's
// budget gets not-found, not a confirmation that it exists.
func (s *OrcamentoService) GetOrcamento(ctx context.Context, session identity.Session, id uuid.UUID) (*sales.Orcamento, error) {
	if err := s.gate.Authorize(session, authz.ActionManageOrcamento, nil); err != nil {
		return nil, err
	}
	orcamento, err := s.orcamentoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(session, authz.ActionManageOrcamento, &orcamento.VendedorID); err != nil {
		if errors.Is(err, shared.ErrNotOwner) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return orcamento, nil
}

// ListOrcamentos returns the caller's budgets, or every budget for ADMIN
func (s *OrcamentoService) ListOrcamentos(ctx context.Context, session identity.Session, filter shared.Filter) ([]sales.Orcamento, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionManageOrcamento, nil); err != nil {
		return nil, 0, err
	}
	if session.IsAdmin() {
		return s.orcamentoRepo.FindAll(ctx, filter)
	}
	return s.orcamentoRepo.FindByVendedor(ctx, session.UserID, filter)
}

// AddItem appends a line to a draft budget
func (s *OrcamentoService) AddItem(ctx context.Context, session identity.Session, input AddItemInput) (*sales.Orcamento, error) {
	orcamento, err := s.loadOwned(ctx, session, input.OrcamentoID)
	if err != nil {
		return nil, err
	}
	if _, err := orcamento.AddItem(input.Item.TipoProduto, input.Item.Descricao,
		input.Item.Largura, input.Item.Altura, input.Item.PrecoUnitario); err != nil {
		return nil, err
	}
	if err := s.orcamentoRepo.Save(ctx, orcamento); err != nil {
		return nil, err
	}
	return orcamento, nil
}

// RemoveItem removes a line from a draft budget
func (s *OrcamentoService) RemoveItem(ctx context.Context, session identity.Session, orcamentoID, itemID uuid.UUID) (*sales.Orcamento, error) {
	orcamento, err := s.loadOwned(ctx, session, orcamentoID)
	if err != nil {
		return nil, err
	}
	if err := orcamento.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.orcamentoRepo.Save(ctx, orcamento); err != nil {
		return nil, err
	}
	return orcamento, nil
}

// ApplyDesconto applies a percentage discount under the caller's own
// role limits. A vendedor above their ceiling gets a
// DISCOUNT_REQUIRES_APPROVAL error and nothing is written.
func (s *OrcamentoService) ApplyDesconto(ctx context.Context, session identity.Session, input ApplyDescontoInput) (*ApplyDescontoResult, error) {
	orcamento, err := s.loadOwned(ctx, session, input.OrcamentoID)
	if err != nil {
		return nil, err
	}
	alert, err := orcamento.ApplyDesconto(input.Percentual, session.Role)
	if err != nil {
		return nil, err
	}
	if err := s.orcamentoRepo.Save(ctx, orcamento); err != nil {
		return nil, err
	}
	if alert {
		s.logger.Warn("High discount applied",
			zap.String("orcamento_id", orcamento.ID.String()),
			zap.String("percentual", input.Percentual.String()),
			zap.String("applied_by", session.UserID.String()))
	}
	return &ApplyDescontoResult{Orcamento: orcamento, Alert: alert}, nil
}

// ApproveDesconto applies a discount that exceeded the vendedor limit.
// Only ADMIN holds the approve action; the discount is evaluated under
// ADMIN rules regardless of who owns the budget.
func (s *OrcamentoService) ApproveDesconto(ctx context.Context, session identity.Session, input ApplyDescontoInput) (*ApplyDescontoResult, error) {
	if err := s.gate.Authorize(session, authz.ActionApproveDesconto, nil); err != nil {
		return nil, err
	}
	orcamento, err := s.orcamentoRepo.FindByID(ctx, input.OrcamentoID)
	if err != nil {
		return nil, err
	}
	alert, err := orcamento.ApplyDesconto(input.Percentual, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.orcamentoRepo.Save(ctx, orcamento); err != nil {
		return nil, err
	}
	s.logger.Info("Discount approved",
		zap.String("orcamento_id", orcamento.ID.String()),
		zap.String("percentual", input.Percentual.String()),
		zap.String("approved_by", session.UserID.String()),
		zap.Bool("alert", alert))
	return &ApplyDescontoResult{Orcamento: orcamento, Alert: alert}, nil
}

// TransitionOrcamento applies a lifecycle event to a budget. The guard
// write keeps a stale caller from clobbering a newer status; the
// customer's open lead is advanced to match afterwards.
func (s *OrcamentoService) TransitionOrcamento(ctx context.Context, session identity.Session, input TransitionOrcamentoInput) (*sales.Orcamento, error) {
	orcamento, err := s.loadOwned(ctx, session, input.OrcamentoID)
	if err != nil {
		return nil, err
	}

	from := orcamento.Status
	if err := orcamento.Apply(input.Event); err != nil {
		return nil, err
	}
	if err := s.orcamentoRepo.TransitionStatus(ctx, orcamento, from); err != nil {
		return nil, err
	}

	s.logger.Info("Orcamento transitioned",
		zap.String("orcamento_id", orcamento.ID.String()),
		zap.String("event", string(input.Event)),
		zap.String("from", from.String()),
		zap.String("to", orcamento.Status.String()))

	s.syncLead(ctx, orcamento.ClienteID, input.Event)
	return orcamento, nil
}

func (s *OrcamentoService) loadOwned(ctx context.Context, session identity.Session, id uuid.UUID) (*sales.Orcamento, error) {
	if err := s.gate.Authorize(session, authz.ActionManageOrcamento, nil); err != nil {
		return nil, err
	}
	orcamento, err := s.orcamentoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(session, authz.ActionManageOrcamento, &orcamento.VendedorID); err != nil {
		return nil, err
	}
	return orcamento, nil
}

// orcamentoLeadEvents maps budget events to the lead event that mirrors
// them on the CRM side
var orcamentoLeadEvents = map[sales.OrcamentoEvent]crm.LeadEvent{
	sales.OrcamentoEventEnviado:        crm.LeadEventOrcamentoEnviado,
	sales.OrcamentoEventContraProposta: crm.LeadEventContraProposta,
	sales.OrcamentoEventReenviado:      crm.LeadEventReaberto,
	sales.OrcamentoEventFechado:        crm.LeadEventFechado,
	sales.OrcamentoEventPerdido:        crm.LeadEventPerdido,
}

// syncLead mirrors a budget event onto the customer's open lead. A
// missing lead or a rejected transition ends the sync quietly; the
// budget change already committed and lead regression is never forced.
func (s *OrcamentoService) syncLead(ctx context.Context, clienteID uuid.UUID, event sales.OrcamentoEvent) {
	leadEvent, ok := orcamentoLeadEvents[event]
	if !ok {
		return
	}
	lead, err := s.leadRepo.FindOpenByCliente(ctx, clienteID)
	if err != nil {
		return
	}
	from := lead.Status
	if err := lead.Apply(leadEvent); err != nil {
		return
	}
	if err := s.leadRepo.TransitionStatus(ctx, lead.ID, from, lead.Status); err != nil {
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			s.logger.Error("Failed to sync lead with orcamento", zap.Error(err))
		}
		return
	}
	s.logger.Info("Lead synced with orcamento",
		zap.String("lead_id", lead.ID.String()),
		zap.String("from", from.String()),
		zap.String("to", lead.Status.String()))
}
