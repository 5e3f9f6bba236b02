package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// VisitaStatus represents the lifecycle of a scheduled visit
type VisitaStatus string

const (
	VisitaStatusAgendada  VisitaStatus = "AGENDADA"
	VisitaStatusRealizada VisitaStatus = "REALIZADA"
	VisitaStatusCancelada VisitaStatus = "CANCELADA"
)

// IsValid checks if the status is a valid VisitaStatus
func (s VisitaStatus) IsValid() bool {
	switch s {
	case VisitaStatusAgendada, VisitaStatusRealizada, VisitaStatusCancelada:
		return true
	}
	return false
}

// Visita represents a sales visit scheduled against a customer
type Visita struct {
	shared.BaseAggregateRoot
	ClienteID  uuid.UUID
	VendedorID uuid.UUID
	DataHora   time.Time
	TipoVisita string
	Status     VisitaStatus
	Observacao string
}

// NewVisita schedules a new visit. Visits exist only against a converted
// Cliente; advancing the related lead is the application service's job.
func NewVisita(clienteID, vendedorID uuid.UUID, dataHora time.Time, tipoVisita string) (*Visita, error) {
	if clienteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENTE", "Cliente ID cannot be empty")
	}
	if vendedorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDEDOR", "Vendedor ID cannot be empty")
	}
	if dataHora.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Data e hora da visita are required")
	}

	return &Visita{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClienteID:         clienteID,
		VendedorID:        vendedorID,
		DataHora:          dataHora,
		TipoVisita:        tipoVisita,
		Status:            VisitaStatusAgendada,
	}, nil
}

// Finalizar marks the visit as carried out
func (v *Visita) Finalizar(observacao string) error {
	if v.Status != VisitaStatusAgendada {
		return shared.ErrInvalidTransition
	}
	v.Status = VisitaStatusRealizada
	v.Observacao = observacao
	v.Touch()
	return nil
}

// Cancelar cancels a scheduled visit
func (v *Visita) Cancelar() error {
	if v.Status != VisitaStatusAgendada {
		return shared.ErrInvalidTransition
	}
	v.Status = VisitaStatusCancelada
	v.Touch()
	return nil
}
