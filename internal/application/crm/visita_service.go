package crm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/crm"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/shared"
)

// VisitaService schedules and closes out customer visits. Scheduling a
// visit also advances the customer's open lead, but never regresses one
// that already moved further down the pipeline.
type VisitaService struct {
	visitaRepo crm.VisitaRepository
	leadRepo   crm.LeadRepository
	gate       *authz.Gate
	logger     *zap.Logger
}

// NewVisitaService creates a new visit service
func NewVisitaService(
	visitaRepo crm.VisitaRepository,
	leadRepo crm.LeadRepository,
	gate *authz.Gate,
	logger *zap.Logger,
) *VisitaService {
	return &VisitaService{
		visitaRepo: visitaRepo,
		leadRepo:   leadRepo,
		gate:       gate,
		logger:     logger,
	}
}

// ScheduleVisita books a visit for the calling vendedor and, when the
// customer has an open lead early in the pipeline, advances it to
// VISITA_AGENDADA
func (s *VisitaService) ScheduleVisita(ctx context.Context, session identity.Session, input ScheduleVisitaInput) (*crm.Visita, error) {
	if err := s.gate.Authorize(session, authz.ActionScheduleVisita, nil); err != nil {
		return nil, err
	}

	visita, err := crm.NewVisita(input.ClienteID, session.UserID, input.DataHora, input.TipoVisita)
	if err != nil {
		return nil, err
	}
	if err := s.visitaRepo.Save(ctx, visita); err != nil {
		return nil, err
	}

	s.advanceLead(ctx, session, input.ClienteID, crm.LeadEventVisitaAgendada)

	s.logger.Info("Visita scheduled",
		zap.String("visita_id", visita.ID.String()),
		zap.String("cliente_id", input.ClienteID.String()))
	return visita, nil
}

// FinalizeVisita marks a visit as done and moves the lead to
// PRE_ORCAMENTO
func (s *VisitaService) FinalizeVisita(ctx context.Context, session identity.Session, input FinalizeVisitaInput) (*crm.Visita, error) {
	if err := s.gate.Authorize(session, authz.ActionScheduleVisita, nil); err != nil {
		return nil, err
	}

	visita, err := s.visitaRepo.FindByID(ctx, input.VisitaID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(session, authz.ActionScheduleVisita, &visita.VendedorID); err != nil {
		return nil, err
	}
	if err := visita.Finalizar(input.Observacao); err != nil {
		return nil, err
	}
	if err := s.visitaRepo.Save(ctx, visita); err != nil {
		return nil, err
	}

	s.advanceLead(ctx, session, visita.ClienteID, crm.LeadEventVisitaFinalizada)
	return visita, nil
}

// CancelVisita cancels a scheduled visit. The lead is left untouched.
func (s *VisitaService) CancelVisita(ctx context.Context, session identity.Session, visitaID uuid.UUID) (*crm.Visita, error) {
	if err := s.gate.Authorize(session, authz.ActionScheduleVisita, nil); err != nil {
		return nil, err
	}
	visita, err := s.visitaRepo.FindByID(ctx, visitaID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(session, authz.ActionScheduleVisita, &visita.VendedorID); err != nil {
		return nil, err
	}
	if err := visita.Cancelar(); err != nil {
		return nil, err
	}
	if err := s.visitaRepo.Save(ctx, visita); err != nil {
		return nil, err
	}
	return visita, nil
}

// ListVisitasByCliente returns a customer's visits
func (s *VisitaService) ListVisitasByCliente(ctx context.Context, session identity.Session, clienteID uuid.UUID, filter shared.Filter) ([]crm.Visita, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionScheduleVisita, nil); err != nil {
		return nil, 0, err
	}
	return s.visitaRepo.FindByCliente(ctx, clienteID, filter)
}

// ListMinhasVisitas returns the calling vendedor's visits
func (s *VisitaService) ListMinhasVisitas(ctx context.Context, session identity.Session, filter shared.Filter) ([]crm.Visita, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionScheduleVisita, nil); err != nil {
		return nil, 0, err
	}
	return s.visitaRepo.FindByVendedor(ctx, session.UserID, filter)
}

// advanceLead applies a pipeline event to the customer's open lead. A
// missing lead, a lead past the target stage or a lost conditional write
// are all fine: the visit itself is already booked and the pipeline must
// not move backwards for a stale trigger.
func (s *VisitaService) advanceLead(ctx context.Context, session identity.Session, clienteID uuid.UUID, event crm.LeadEvent) {
	lead, err := s.leadRepo.FindOpenByCliente(ctx, clienteID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load lead for visita", zap.Error(err))
		}
		return
	}
	if event == crm.LeadEventVisitaAgendada && !lead.ShouldAdvanceOnVisita() {
		return
	}

	from := lead.Status
	if err := lead.Apply(event); err != nil {
		return
	}
	if err := s.leadRepo.TransitionStatus(ctx, lead.ID, from, lead.Status); err != nil {
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			s.logger.Error("Failed to advance lead from visita", zap.Error(err))
		}
		return
	}
	s.logger.Info("Lead advanced by visita",
		zap.String("lead_id", lead.ID.String()),
		zap.String("from", from.String()),
		zap.String("to", lead.Status.String()),
		zap.String("vendedor_id", session.UserID.String()))
}
