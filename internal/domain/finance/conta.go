package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TipoConta distinguishes payables from receivables
type TipoConta string

const (
	ContaPagar   TipoConta = "PAGAR"
	ContaReceber TipoConta = "RECEBER"
)

// IsValid checks if the value is a valid TipoConta
func (t TipoConta) IsValid() bool {
	return t == ContaPagar || t == ContaReceber
}

// ContaStatus represents the status of a financial entry
type ContaStatus string

const (
	ContaStatusPendente  ContaStatus = "PENDENTE"
	ContaStatusPaga      ContaStatus = "PAGA"
	ContaStatusVencida   ContaStatus = "VENCIDA"
	ContaStatusCancelada ContaStatus = "CANCELADA"
)

// IsValid checks if the status is a valid ContaStatus
func (s ContaStatus) IsValid() bool {
	switch s {
	case ContaStatusPendente, ContaStatusPaga, ContaStatusVencida, ContaStatusCancelada:
		return true
	}
	return false
}

// String returns the string representation of ContaStatus
func (s ContaStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted.
// VENCIDA is not terminal: an overdue entry can still be paid or cancelled.
func (s ContaStatus) IsTerminal() bool {
	return s == ContaStatusPaga || s == ContaStatusCancelada
}

// OrigemConta records what produced the entry
type OrigemConta string

const (
	OrigemNFe       OrigemConta = "NFE"
	OrigemOrcamento OrigemConta = "ORCAMENTO"
	OrigemManual    OrigemConta = "MANUAL"
)

// Conta represents a payable or receivable aggregate root
type Conta struct {
	shared.BaseAggregateRoot
	Tipo         TipoConta
	Status       ContaStatus
	Descricao    string
	Valor        decimal.Decimal
	Vencimento   time.Time
	Origem       OrigemConta
	OrigemID     *uuid.UUID
	FornecedorID *uuid.UUID
	ClienteID    *uuid.UUID
	PagaAt       *time.Time
	CanceladaAt  *time.Time
}

// NewConta creates a pending financial entry
func NewConta(tipo TipoConta, descricao string, valor decimal.Decimal, vencimento time.Time, origem OrigemConta, origemID *uuid.UUID) (*Conta, error) {
	if !tipo.IsValid() {
		return nil, shared.NewDomainError("INVALID_TIPO", fmt.Sprintf("Invalid tipo de conta: %s", tipo))
	}
	if descricao == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Descricao cannot be empty")
	}
	if !valor.IsPositive() {
		return nil, shared.NewDomainError("INVALID_VALOR", "Valor must be positive")
	}
	if vencimento.IsZero() {
		return nil, shared.NewDomainError("INVALID_VENCIMENTO", "Vencimento cannot be zero")
	}
	if origem == "" {
		origem = OrigemManual
	}

	return &Conta{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Tipo:              tipo,
		Status:            ContaStatusPendente,
		Descricao:         descricao,
		Valor:             valor,
		Vencimento:        vencimento,
		Origem:            origem,
		OrigemID:          origemID,
	}, nil
}

// Pagar settles the entry. Overdue entries can still be paid.
func (c *Conta) Pagar() error {
	if c.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	now := time.Now()
	c.Status = ContaStatusPaga
	c.PagaAt = &now
	c.UpdatedAt = now
	return nil
}

// Cancelar voids an unsettled entry
func (c *Conta) Cancelar() error {
	if c.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	now := time.Now()
	c.Status = ContaStatusCancelada
	c.CanceladaAt = &now
	c.UpdatedAt = now
	return nil
}

// MarcarVencida flags a pending entry past its due date
func (c *Conta) MarcarVencida(ref time.Time) error {
	if c.Status != ContaStatusPendente {
		return shared.ErrInvalidTransition
	}
	if !ref.After(c.Vencimento) {
		return shared.NewDomainError("NOT_OVERDUE", "Conta has not passed its due date")
	}
	c.Status = ContaStatusVencida
	c.Touch()
	return nil
}
