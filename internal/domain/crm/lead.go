package crm

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// LeadStatus represents the sales pipeline stage of a lead
type LeadStatus string

const (
	LeadStatusSemDono          LeadStatus = "SEM_DONO"
	LeadStatusPrimeiroContato  LeadStatus = "PRIMEIRO_CONTATO"
	LeadStatusVisitaAgendada   LeadStatus = "VISITA_AGENDADA"
	LeadStatusPreOrcamento     LeadStatus = "PRE_ORCAMENTO"
	LeadStatusOrcamentoEnviado LeadStatus = "ORCAMENTO_ENVIADO"
	LeadStatusContraProposta   LeadStatus = "CONTRA_PROPOSTA"
	LeadStatusSemResposta      LeadStatus = "SEM_RESPOSTA"
	LeadStatusFechado          LeadStatus = "FECHADO"
	LeadStatusPerdido          LeadStatus = "PERDIDO"
)

// IsValid checks if the status is a valid LeadStatus
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusSemDono, LeadStatusPrimeiroContato, LeadStatusVisitaAgendada,
		LeadStatusPreOrcamento, LeadStatusOrcamentoEnviado, LeadStatusContraProposta,
		LeadStatusSemResposta, LeadStatusFechado, LeadStatusPerdido:
		return true
	}
	return false
}

// String returns the string representation of LeadStatus
func (s LeadStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusFechado || s == LeadStatusPerdido
}

// Stage returns the pipeline depth of the status. Used to guard against
// replayed events regressing a lead that already advanced further.
// Terminal statuses rank above every open stage.
func (s LeadStatus) Stage() int {
	switch s {
	case LeadStatusSemDono:
		return 0
	case LeadStatusPrimeiroContato:
		return 1
	case LeadStatusVisitaAgendada:
		return 2
	case LeadStatusPreOrcamento:
		return 3
	case LeadStatusOrcamentoEnviado:
		return 4
	case LeadStatusContraProposta, LeadStatusSemResposta:
		return 5
	case LeadStatusFechado, LeadStatusPerdido:
		return 6
	}
	return -1
}

// LeadEvent is a domain event that drives the lead pipeline. Callers never
// submit a target status directly; the resulting status is derived here.
type LeadEvent string

const (
	LeadEventReivindicado     LeadEvent = "LEAD_REIVINDICADO"
	LeadEventVisitaAgendada   LeadEvent = "VISITA_AGENDADA"
	LeadEventVisitaFinalizada LeadEvent = "VISITA_FINALIZADA"
	LeadEventOrcamentoEnviado LeadEvent = "ORCAMENTO_ENVIADO"
	LeadEventContraProposta   LeadEvent = "CONTRA_PROPOSTA"
	LeadEventSemResposta      LeadEvent = "SEM_RESPOSTA"
	LeadEventReaberto         LeadEvent = "REABERTO"
	LeadEventFechado          LeadEvent = "FECHADO"
	LeadEventPerdido          LeadEvent = "PERDIDO"
)

// leadTransitions maps each open status to the events it accepts and the
// status each event produces. CONTRA_PROPOSTA and SEM_RESPOSTA can reopen
// back to ORCAMENTO_ENVIADO; the pipeline is ordered but not strictly linear.
var leadTransitions = map[LeadStatus]map[LeadEvent]LeadStatus{
	LeadStatusSemDono: {
		LeadEventReivindicado: LeadStatusPrimeiroContato,
		LeadEventPerdido:      LeadStatusPerdido,
	},
	LeadStatusPrimeiroContato: {
		LeadEventVisitaAgendada: LeadStatusVisitaAgendada,
		LeadEventPerdido:        LeadStatusPerdido,
	},
	LeadStatusVisitaAgendada: {
		LeadEventVisitaFinalizada: LeadStatusPreOrcamento,
		LeadEventPerdido:          LeadStatusPerdido,
	},
	LeadStatusPreOrcamento: {
		LeadEventOrcamentoEnviado: LeadStatusOrcamentoEnviado,
		LeadEventPerdido:          LeadStatusPerdido,
	},
	LeadStatusOrcamentoEnviado: {
		LeadEventContraProposta: LeadStatusContraProposta,
		LeadEventSemResposta:    LeadStatusSemResposta,
		LeadEventFechado:        LeadStatusFechado,
		LeadEventPerdido:        LeadStatusPerdido,
	},
	LeadStatusContraProposta: {
		LeadEventReaberto: LeadStatusOrcamentoEnviado,
		LeadEventFechado:  LeadStatusFechado,
		LeadEventPerdido:  LeadStatusPerdido,
	},
	LeadStatusSemResposta: {
		LeadEventReaberto: LeadStatusOrcamentoEnviado,
		LeadEventFechado:  LeadStatusFechado,
		LeadEventPerdido:  LeadStatusPerdido,
	},
}

// NextLeadStatus resolves the status produced by applying event to current.
// Returns ErrTerminalState for terminal statuses and ErrInvalidTransition
// when the event is not in the allowed-edge set.
func NextLeadStatus(current LeadStatus, event LeadEvent) (LeadStatus, error) {
	if current.IsTerminal() {
		return current, shared.ErrTerminalState
	}
	edges, ok := leadTransitions[current]
	if !ok {
		return current, shared.ErrInvalidTransition
	}
	next, ok := edges[event]
	if !ok {
		return current, shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Event %s not allowed for lead in %s status", event, current))
	}
	return next, nil
}

// Lead represents a prospective customer moving through the sales pipeline
type Lead struct {
	shared.BaseAggregateRoot
	Nome       string
	Telefone   string
	Email      string
	Status     LeadStatus
	VendedorID *uuid.UUID
	ClienteID  *uuid.UUID
	Origem     string
}

// NewLead creates a new unowned lead at the start of the pipeline
func NewLead(nome, telefone, email, origem string) (*Lead, error) {
	if nome == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Nome cannot be empty")
	}
	if telefone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Telefone cannot be empty")
	}

	lead := &Lead{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Nome:              nome,
		Telefone:          telefone,
		Email:             email,
		Status:            LeadStatusSemDono,
		Origem:            origem,
	}
	lead.AddDomainEvent(NewLeadCriadoEvent(lead))
	return lead, nil
}

// Apply transitions the lead by a pipeline event
func (l *Lead) Apply(event LeadEvent) error {
	next, err := NextLeadStatus(l.Status, event)
	if err != nil {
		return err
	}
	previous := l.Status
	l.Status = next
	l.Touch()
	l.AddDomainEvent(NewLeadStatusAlteradoEvent(l, previous, event))
	return nil
}

// Claim assigns an unowned lead to a vendedor and moves it to
// PRIMEIRO_CONTATO. The repository enforces the matching compare-and-set so
// two concurrent claims produce exactly one winner.
func (l *Lead) Claim(vendedorID uuid.UUID) error {
	if l.Status != LeadStatusSemDono {
		return shared.ErrInvalidTransition
	}
	if l.VendedorID != nil {
		return shared.ErrConcurrencyConflict
	}
	if vendedorID == uuid.Nil {
		return shared.NewDomainError("INVALID_VENDEDOR", "Vendedor ID cannot be empty")
	}
	if err := l.Apply(LeadEventReivindicado); err != nil {
		return err
	}
	l.VendedorID = &vendedorID
	l.AddDomainEvent(NewLeadReivindicadoEvent(l, vendedorID))
	return nil
}

// IsOwnedBy reports whether the lead is owned by the given user
func (l *Lead) IsOwnedBy(userID uuid.UUID) bool {
	return l.VendedorID != nil && *l.VendedorID == userID
}

// AttachCliente links the lead to its converted customer record
func (l *Lead) AttachCliente(clienteID uuid.UUID) {
	l.ClienteID = &clienteID
	l.Touch()
}

// ShouldAdvanceOnVisita reports whether a scheduled visit may move the lead
// to VISITA_AGENDADA. A lead that already advanced past that stage, or that
// reached a terminal status, must not be regressed by a stale event replay.
func (l *Lead) ShouldAdvanceOnVisita() bool {
	return !l.Status.IsTerminal() && l.Status.Stage() < LeadStatusVisitaAgendada.Stage()
}
