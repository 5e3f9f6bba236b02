package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/lojamae/backend/internal/domain/crm"
)

// CreateLeadInput contains the input for lead creation
type CreateLeadInput struct {
	Nome     string
	Telefone string
	Email    string
	Origem   string
}

// TransitionLeadInput contains the pipeline event to apply to a lead
type TransitionLeadInput struct {
	LeadID uuid.UUID
	Event  crm.LeadEvent
}

// LeadResult is the client representation of a lead
type LeadResult struct {
	ID         uuid.UUID
	Nome       string
	Telefone   string
	Email      string
	Status     crm.LeadStatus
	VendedorID *uuid.UUID
	ClienteID  *uuid.UUID
	Origem     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LeadResultFromDomain maps a domain lead to its client representation
func LeadResultFromDomain(lead *crm.Lead) LeadResult {
	return LeadResult{
		ID:         lead.ID,
		Nome:       lead.Nome,
		Telefone:   lead.Telefone,
		Email:      lead.Email,
		Status:     lead.Status,
		VendedorID: lead.VendedorID,
		ClienteID:  lead.ClienteID,
		Origem:     lead.Origem,
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
}

// CreateClienteInput contains the input for customer creation
type CreateClienteInput struct {
	Nome        string
	NomeSocial  string
	Telefone    string
	Email       string
	CPF         string
	Sexo        string
	Aniversario *time.Time
	Endereco    crm.Endereco
	Tipo        crm.TipoCliente
	OrigemLead  string
	InteresseEm []string
	Observacoes string
	LeadID      *uuid.UUID
}

// UpdateClienteInput contains a partial customer update
type UpdateClienteInput struct {
	Telefone    *string
	Email       *string
	Endereco    *crm.Endereco
	InteresseEm []string
	Observacoes *string
}

// ScheduleVisitaInput contains the input for visit scheduling
type ScheduleVisitaInput struct {
	ClienteID  uuid.UUID
	DataHora   time.Time
	TipoVisita string
}

// FinalizeVisitaInput contains the input for closing out a visit
type FinalizeVisitaInput struct {
	VisitaID   uuid.UUID
	Observacao string
}

// AddFollowUpInput contains the input for a follow-up note
type AddFollowUpInput struct {
	ClienteID uuid.UUID
	Mensagem  string
}
