package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PedidoCompraStatus represents the status of a purchase order
type PedidoCompraStatus string

const (
	PedidoCompraStatusRascunho  PedidoCompraStatus = "RASCUNHO"
	PedidoCompraStatusEnviado   PedidoCompraStatus = "ENVIADO"
	PedidoCompraStatusRecebido  PedidoCompraStatus = "RECEBIDO"
	PedidoCompraStatusCancelado PedidoCompraStatus = "CANCELADO"
)

// IsValid checks if the status is a valid PedidoCompraStatus
func (s PedidoCompraStatus) IsValid() bool {
	switch s {
	case PedidoCompraStatusRascunho, PedidoCompraStatusEnviado,
		PedidoCompraStatusRecebido, PedidoCompraStatusCancelado:
		return true
	}
	return false
}

// String returns the string representation of PedidoCompraStatus
func (s PedidoCompraStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted
func (s PedidoCompraStatus) IsTerminal() bool {
	return s == PedidoCompraStatusRecebido || s == PedidoCompraStatusCancelado
}

// ItemPedidoCompra is a line item of a purchase order
type ItemPedidoCompra struct {
	ID            uuid.UUID
	PedidoID      uuid.UUID
	Descricao     string
	Quantidade    decimal.Decimal
	PrecoUnitario decimal.Decimal
	Subtotal      decimal.Decimal
}

// PedidoCompra represents a purchase order aggregate root
type PedidoCompra struct {
	shared.BaseAggregateRoot
	FornecedorID uuid.UUID
	CompradorID  uuid.UUID
	Status       PedidoCompraStatus
	Itens        []ItemPedidoCompra
	ValorTotal   decimal.Decimal
	Observacoes  string
	EnviadoAt    *time.Time
	RecebidoAt   *time.Time
	CanceladoAt  *time.Time
}

// NewPedidoCompra creates a new draft purchase order
func NewPedidoCompra(fornecedorID, compradorID uuid.UUID) (*PedidoCompra, error) {
	if fornecedorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FORNECEDOR", "Fornecedor ID cannot be empty")
	}
	if compradorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPRADOR", "Comprador ID cannot be empty")
	}

	return &PedidoCompra{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FornecedorID:      fornecedorID,
		CompradorID:       compradorID,
		Status:            PedidoCompraStatusRascunho,
		Itens:             make([]ItemPedidoCompra, 0),
		ValorTotal:        decimal.Zero,
	}, nil
}

// AddItem adds a line item. Only allowed in RASCUNHO status.
func (p *PedidoCompra) AddItem(descricao string, quantidade, precoUnitario decimal.Decimal) error {
	if p.Status != PedidoCompraStatusRascunho {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft pedido")
	}
	if descricao == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Descricao cannot be empty")
	}
	if !quantidade.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantidade must be positive")
	}
	if precoUnitario.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Preco unitario cannot be negative")
	}

	item := ItemPedidoCompra{
		ID:            uuid.New(),
		PedidoID:      p.ID,
		Descricao:     descricao,
		Quantidade:    quantidade,
		PrecoUnitario: precoUnitario,
		Subtotal:      quantidade.Mul(precoUnitario).Round(2),
	}
	p.Itens = append(p.Itens, item)
	p.ValorTotal = p.ValorTotal.Add(item.Subtotal)
	p.Touch()
	return nil
}

// Enviar submits the order to the supplier
func (p *PedidoCompra) Enviar() error {
	if p.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	if p.Status != PedidoCompraStatusRascunho {
		return shared.ErrInvalidTransition
	}
	if len(p.Itens) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send a pedido without items")
	}
	now := time.Now()
	p.Status = PedidoCompraStatusEnviado
	p.EnviadoAt = &now
	p.UpdatedAt = now
	return nil
}

// Receber marks goods as received
func (p *PedidoCompra) Receber() error {
	if p.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	if p.Status != PedidoCompraStatusEnviado {
		return shared.ErrInvalidTransition
	}
	now := time.Now()
	p.Status = PedidoCompraStatusRecebido
	p.RecebidoAt = &now
	p.UpdatedAt = now
	return nil
}

// Cancelar cancels an unreceived order
func (p *PedidoCompra) Cancelar() error {
	if p.Status.IsTerminal() {
		return shared.ErrTerminalState
	}
	now := time.Now()
	p.Status = PedidoCompraStatusCancelado
	p.CanceladoAt = &now
	p.UpdatedAt = now
	return nil
}
