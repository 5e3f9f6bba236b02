package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// OrdemProducaoStatus represents the status of a production order
type OrdemProducaoStatus string

const (
	OrdemProducaoStatusPendente   OrdemProducaoStatus = "PENDENTE"
	OrdemProducaoStatusEmProducao OrdemProducaoStatus = "EM_PRODUCAO"
	OrdemProducaoStatusConcluida  OrdemProducaoStatus = "CONCLUIDA"
	OrdemProducaoStatusCancelada  OrdemProducaoStatus = "CANCELADA"
)

// IsValid checks if the status is a valid OrdemProducaoStatus
func (s OrdemProducaoStatus) IsValid() bool {
	switch s {
	case OrdemProducaoStatusPendente, OrdemProducaoStatusEmProducao,
		OrdemProducaoStatusConcluida, OrdemProducaoStatusCancelada:
		return true
	}
	return false
}

// String returns the string representation of OrdemProducaoStatus
func (s OrdemProducaoStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted
func (s OrdemProducaoStatus) IsTerminal() bool {
	return s == OrdemProducaoStatusConcluida || s == OrdemProducaoStatusCancelada
}

// OrdemProducao represents a factory production order derived from a closed budget
type OrdemProducao struct {
	shared.BaseAggregateRoot
	OrcamentoID   uuid.UUID
	Status        OrdemProducaoStatus
	Descricao     string
	PrevisaoEm    *time.Time
	IniciadaAt    *time.Time
	ConcluidaAt   *time.Time
	CanceladaAt   *time.Time
	MotivoCancelo string
}

// NewOrdemProducao creates a pending production order for a closed budget
func NewOrdemProducao(orcamento *Orcamento, descricao string) (*OrdemProducao, error) {
	if orcamento == nil {
		return nil, shared.NewDomainError("INVALID_ORCAMENTO", "Orcamento cannot be nil")
	}
	if !orcamento.Status.IsWon() {
		return nil, shared.NewDomainError("INVALID_STATE", "Production order requires a closed orcamento")
	}

	op := &OrdemProducao{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrcamentoID:       orcamento.ID,
		Status:            OrdemProducaoStatusPendente,
		Descricao:         descricao,
	}
	op.AddDomainEvent(&OrdemProducaoCriadaEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrdemProducaoCriada, "OrdemProducao", op.ID),
		OrcamentoID:     orcamento.ID.String(),
	})
	return op, nil
}

// OrdemProducaoCriadaEvent is raised when a production order is opened
type OrdemProducaoCriadaEvent struct {
	shared.BaseDomainEvent
	OrcamentoID string
}

// Iniciar moves the order to EM_PRODUCAO
func (op *OrdemProducao) Iniciar() error {
	if op.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	if op.Status != OrdemProducaoStatusPendente {
		return shared.ErrInvalidTransition
	}
	now := time.Now()
	op.Status = OrdemProducaoStatusEmProducao
	op.IniciadaAt = &now
	op.UpdatedAt = now
	return nil
}

// Concluir completes a running order
func (op *OrdemProducao) Concluir() error {
	if op.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	if op.Status != OrdemProducaoStatusEmProducao {
		return shared.ErrInvalidTransition
	}
	now := time.Now()
	op.Status = OrdemProducaoStatusConcluida
	op.ConcluidaAt = &now
	op.UpdatedAt = now
	return nil
}

// Cancelar cancels a not-yet-finished order
func (op *OrdemProducao) Cancelar(motivo string) error {
	if op.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	now := time.Now()
	op.Status = OrdemProducaoStatusCancelada
	op.CanceladaAt = &now
	op.MotivoCancelo = motivo
	op.UpdatedAt = now
	return nil
}
