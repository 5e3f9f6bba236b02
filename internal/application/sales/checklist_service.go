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

// ChecklistService manages installation checklists. A checklist is a
// snapshot of the closed budget's items; completing the last item moves
// the budget to INSTALACAO_CONCLUIDA.
type ChecklistService struct {
	checklistRepo sales.ChecklistRepository
	orcamentoRepo sales.OrcamentoRepository
	gate          *authz.Gate
	logger        *zap.Logger
}

// NewChecklistService creates a new checklist service
func NewChecklistService(
	checklistRepo sales.ChecklistRepository,
	orcamentoRepo sales.OrcamentoRepository,
	gate *authz.Gate,
	logger *zap.Logger,
) *ChecklistService {
	return &ChecklistService{
		checklistRepo: checklistRepo,
		orcamentoRepo: orcamentoRepo,
		gate:          gate,
		logger:        logger,
	}
}

// CreateChecklist snapshots a closed budget's items into a checklist.
// Only one checklist may exist per budget.
func (s *ChecklistService) CreateChecklist(ctx context.Context, session identity.Session, input CreateChecklistInput) (*sales.ChecklistInstalacao, error) {
	if err := s.gate.Authorize(session, authz.ActionCreateChecklist, nil); err != nil {
		return nil, err
	}

	orcamento, err := s.orcamentoRepo.FindByID(ctx, input.OrcamentoID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checklistRepo.FindByOrcamento(ctx, input.OrcamentoID); err == nil {
		return nil, shared.NewDomainError("CHECKLIST_ALREADY_EXISTS",
			"Orcamento already has an installation checklist")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	checklist, err := sales.NewChecklistInstalacao(orcamento)
	if err != nil {
		return nil, err
	}
	if err := s.checklistRepo.Save(ctx, checklist); err != nil {
		return nil, err
	}

	s.logger.Info("Checklist created",
		zap.String("checklist_id", checklist.ID.String()),
		zap.String("orcamento_id", orcamento.ID.String()),
		zap.Int("itens", len(checklist.ItensConferidos)))
	return checklist, nil
}

// AgendarInstalacao assigns an installer and a date
func (s *ChecklistService) AgendarInstalacao(ctx context.Context, session identity.Session, input AgendarChecklistInput) (*sales.ChecklistInstalacao, error) {
	if err := s.gate.Authorize(session, authz.ActionCreateChecklist, nil); err != nil {
		return nil, err
	}
	checklist, err := s.checklistRepo.FindByID(ctx, input.ChecklistID)
	if err != nil {
		return nil, err
	}
	from := checklist.Status
	if err := checklist.Agendar(input.InstaladorID, input.Data); err != nil {
		return nil, err
	}
	if err := s.checklistRepo.TransitionStatus(ctx, checklist, from); err != nil {
		return nil, err
	}
	return checklist, nil
}

// ConferirItem checks off one installed item. An instalador may only
// work their own assignments; ADMIN may work any. Checking the last
// item completes the checklist and closes out the budget.
func (s *ChecklistService) ConferirItem(ctx context.Context, session identity.Session, input ConferirItemInput) (*sales.ChecklistInstalacao, error) {
	if err := s.gate.Authorize(session, authz.ActionExecuteChecklist, nil); err != nil {
		return nil, err
	}
	checklist, err := s.checklistRepo.FindByID(ctx, input.ChecklistID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(session, authz.ActionExecuteChecklist, checklist.InstaladorID); err != nil {
		return nil, err
	}

	from := checklist.Status
	if err := checklist.ConferirItem(input.ItemID, input.Observacao); err != nil {
		return nil, err
	}
	if err := s.checklistRepo.TransitionStatus(ctx, checklist, from); err != nil {
		return nil, err
	}

	if checklist.Status == sales.ChecklistStatusConcluido {
		s.concludeOrcamento(ctx, checklist.OrcamentoID)
	}
	return checklist, nil
}

// GetChecklist returns one checklist
func (s *ChecklistService) GetChecklist(ctx context.Context, session identity.Session, id uuid.UUID) (*sales.ChecklistInstalacao, error) {
	if err := s.gate.Authorize(session, authz.ActionExecuteChecklist, nil); err != nil {
		return nil, err
	}
	return s.checklistRepo.FindByID(ctx, id)
}

// ListMinhasInstalacoes returns the calling installer's assignments
func (s *ChecklistService) ListMinhasInstalacoes(ctx context.Context, session identity.Session, filter shared.Filter) ([]sales.ChecklistInstalacao, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionExecuteChecklist, nil); err != nil {
		return nil, 0, err
	}
	if session.IsAdmin() {
		return s.checklistRepo.FindAll(ctx, filter)
	}
	return s.checklistRepo.FindByInstalador(ctx, session.UserID, filter)
}

// concludeOrcamento moves the budget out of FECHADO once its
// installation checklist completed. A budget that already moved on is
// left alone.
func (s *ChecklistService) concludeOrcamento(ctx context.Context, orcamentoID uuid.UUID) {
	orcamento, err := s.orcamentoRepo.FindByID(ctx, orcamentoID)
	if err != nil {
		s.logger.Error("Failed to conclude orcamento after checklist",
			zap.String("orcamento_id", orcamentoID.String()),
			zap.Error(err))
		return
	}
	from := orcamento.Status
	if err := orcamento.Apply(sales.OrcamentoEventInstalacaoConcluida); err != nil {
		return
	}
	if err := s.orcamentoRepo.TransitionStatus(ctx, orcamento, from); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return
		}
		s.logger.Error("Failed to conclude orcamento after checklist",
			zap.String("orcamento_id", orcamentoID.String()),
			zap.Error(err))
		return
	}
	s.logger.Info("Orcamento installation concluded",
		zap.String("orcamento_id", orcamentoID.String()))
}
