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

// LeadService drives leads through the sales pipeline. All mutations
// follow the same shape: authorize, load, derive the transition in the
// domain, then persist with a conditional write so a stale caller never
// overwrites newer state.
type LeadService struct {
	leadRepo crm.LeadRepository
	gate     *authz.Gate
	logger   *zap.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(leadRepo crm.LeadRepository, gate *authz.Gate, logger *zap.Logger) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		gate:     gate,
		logger:   logger,
	}
}

// CreateLead registers a new unowned lead in the pool
func (s *LeadService) CreateLead(ctx context.Context, session identity.Session, input CreateLeadInput) (*LeadResult, error) {
	if err := s.gate.Authorize(session, authz.ActionViewLeads, nil); err != nil {
		return nil, err
	}
	lead, err := crm.NewLead(input.Nome, input.Telefone, input.Email, input.Origem)
	if err != nil {
		return nil, err
	}
	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}
	s.logger.Info("Lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("origem", lead.Origem))
	result := LeadResultFromDomain(lead)
	return &result, nil
}

// GetLead returns one lead. A vendedor asking for a colleague's lead
// gets not-found rather than a hint that the lead exists.
func (s *LeadService) GetLead(ctx context.Context, session identity.Session, id uuid.UUID) (*LeadResult, error) {
	if err := s.gate.Authorize(session, authz.ActionViewLeads, nil); err != nil {
		return nil, err
	}
	lead, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(session, authz.ActionViewLeads, lead.VendedorID); err != nil {
		if errors.Is(err, shared.ErrNotOwner) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	result := LeadResultFromDomain(lead)
	return &result, nil
}

// ListLeads returns the caller's slice of the pipeline: every lead for
// ADMIN, only owned leads for a vendedor
func (s *LeadService) ListLeads(ctx context.Context, session identity.Session, filter shared.Filter) ([]LeadResult, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionViewLeads, nil); err != nil {
		return nil, 0, err
	}

	var (
		leads []crm.Lead
		total int64
		err   error
	)
	if session.IsAdmin() {
		leads, total, err = s.leadRepo.FindAll(ctx, filter)
	} else {
		leads, total, err = s.leadRepo.FindByVendedor(ctx, session.UserID, filter)
	}
	if err != nil {
		return nil, 0, err
	}
	return leadResults(leads), total, nil
}

// ListUnclaimedLeads returns the SEM_DONO pool visible to every vendedor
func (s *LeadService) ListUnclaimedLeads(ctx context.Context, session identity.Session, filter shared.Filter) ([]LeadResult, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionViewLeads, nil); err != nil {
		return nil, 0, err
	}
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["status"] = crm.LeadStatusSemDono

	leads, total, err := s.leadRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return leadResults(leads), total, nil
}

// ClaimLead assigns an unowned lead to the calling vendedor. The write
// is a compare-and-set on (SEM_DONO, no owner), so when two vendedores
// race for the same lead exactly one wins and the other receives a
// conflict.
func (s *LeadService) ClaimLead(ctx context.Context, session identity.Session, leadID uuid.UUID) (*LeadResult, error) {
	if err := s.gate.Authorize(session, authz.ActionClaimLead, nil); err != nil {
		return nil, err
	}

	if err := s.leadRepo.Claim(ctx, leadID, session.UserID); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			s.logger.Info("Lead claim lost race",
				zap.String("lead_id", leadID.String()),
				zap.String("vendedor_id", session.UserID.String()))
		}
		return nil, err
	}

	s.logger.Info("Lead claimed",
		zap.String("lead_id", leadID.String()),
		zap.String("vendedor_id", session.UserID.String()))

	lead, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	result := LeadResultFromDomain(lead)
	return &result, nil
}

// TransitionLead applies a pipeline event to a lead. The target status
// is derived from the transition table, never taken from the caller.
func (s *LeadService) TransitionLead(ctx context.Context, session identity.Session, input TransitionLeadInput) (*LeadResult, error) {
	if err := s.gate.Authorize(session, authz.ActionTransitionLead, nil); err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(session, authz.ActionTransitionLead, lead.VendedorID); err != nil {
		return nil, err
	}

	from := lead.Status
	if err := lead.Apply(input.Event); err != nil {
		return nil, err
	}
	if err := s.leadRepo.TransitionStatus(ctx, lead.ID, from, lead.Status); err != nil {
		return nil, err
	}

	s.logger.Info("Lead transitioned",
		zap.String("lead_id", lead.ID.String()),
		zap.String("event", string(input.Event)),
		zap.String("from", from.String()),
		zap.String("to", lead.Status.String()))

	result := LeadResultFromDomain(lead)
	return &result, nil
}

func leadResults(leads []crm.Lead) []LeadResult {
	results := make([]LeadResult, len(leads))
	for i := range leads {
		results[i] = LeadResultFromDomain(&leads[i])
	}
	return results
}
