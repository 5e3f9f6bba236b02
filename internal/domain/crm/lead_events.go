package crm

import (
	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// Event types for the lead aggregate
const (
	EventTypeLeadCriado         = "crm.lead.criado"
	EventTypeLeadReivindicado   = "crm.lead.reivindicado"
	EventTypeLeadStatusAlterado = "crm.lead.status_alterado"
)

// LeadCriadoEvent is raised when a new lead enters the pipeline
type LeadCriadoEvent struct {
	shared.BaseDomainEvent
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Origem   string `json:"origem,omitempty"`
}

// NewLeadCriadoEvent creates a new LeadCriadoEvent
func NewLeadCriadoEvent(lead *Lead) *LeadCriadoEvent {
	return &LeadCriadoEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadCriado, "Lead", lead.ID),
		Nome:            lead.Nome,
		Telefone:        lead.Telefone,
		Origem:          lead.Origem,
	}
}

// LeadReivindicadoEvent is raised when a vendedor claims an unowned lead
type LeadReivindicadoEvent struct {
	shared.BaseDomainEvent
	VendedorID uuid.UUID `json:"vendedor_id"`
}

// NewLeadReivindicadoEvent creates a new LeadReivindicadoEvent
func NewLeadReivindicadoEvent(lead *Lead, vendedorID uuid.UUID) *LeadReivindicadoEvent {
	return &LeadReivindicadoEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadReivindicado, "Lead", lead.ID),
		VendedorID:      vendedorID,
	}
}

// LeadStatusAlteradoEvent is raised on every pipeline transition
type LeadStatusAlteradoEvent struct {
	shared.BaseDomainEvent
	De      LeadStatus `json:"de"`
	Para    LeadStatus `json:"para"`
	Gatilho LeadEvent  `json:"gatilho"`
}

// NewLeadStatusAlteradoEvent creates a new LeadStatusAlteradoEvent
func NewLeadStatusAlteradoEvent(lead *Lead, previous LeadStatus, trigger LeadEvent) *LeadStatusAlteradoEvent {
	return &LeadStatusAlteradoEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadStatusAlterado, "Lead", lead.ID),
		De:              previous,
		Para:            lead.Status,
		Gatilho:         trigger,
	}
}
