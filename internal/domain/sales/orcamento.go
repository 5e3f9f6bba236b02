package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrcamentoStatus represents the status of a budget
type OrcamentoStatus string

const (
	OrcamentoStatusRascunho            OrcamentoStatus = "RASCUNHO"
	OrcamentoStatusEnviado             OrcamentoStatus = "ENVIADO"
	OrcamentoStatusContraProposta      OrcamentoStatus = "CONTRA_PROPOSTA"
	OrcamentoStatusFechado             OrcamentoStatus = "FECHADO"
	OrcamentoStatusInstalacaoConcluida OrcamentoStatus = "INSTALACAO_CONCLUIDA"
	OrcamentoStatusPerdido             OrcamentoStatus = "PERDIDO"
)

// IsValid checks if the status is a valid OrcamentoStatus
func (s OrcamentoStatus) IsValid() bool {
	switch s {
	case OrcamentoStatusRascunho, OrcamentoStatusEnviado, OrcamentoStatusContraProposta,
		OrcamentoStatusFechado, OrcamentoStatusInstalacaoConcluida, OrcamentoStatusPerdido:
		return true
	}
	return false
}

// String returns the string representation of OrcamentoStatus
func (s OrcamentoStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted
func (s OrcamentoStatus) IsTerminal() bool {
	return s == OrcamentoStatusPerdido || s == OrcamentoStatusInstalacaoConcluida
}

// IsWon reports whether the budget counts as a closed sale for reporting.
// INSTALACAO_CONCLUIDA supersedes FECHADO but both are won.
func (s OrcamentoStatus) IsWon() bool {
	return s == OrcamentoStatusFechado || s == OrcamentoStatusInstalacaoConcluida
}

// OrcamentoEvent drives the budget lifecycle. The resulting status is
// derived here; callers never submit a target status directly.
type OrcamentoEvent string

const (
	OrcamentoEventEnviado             OrcamentoEvent = "ENVIADO"
	OrcamentoEventContraProposta      OrcamentoEvent = "CONTRA_PROPOSTA"
	OrcamentoEventReenviado           OrcamentoEvent = "REENVIADO"
	OrcamentoEventFechado             OrcamentoEvent = "FECHADO"
	OrcamentoEventPerdido             OrcamentoEvent = "PERDIDO"
	OrcamentoEventInstalacaoConcluida OrcamentoEvent = "INSTALACAO_CONCLUIDA"
)

var orcamentoTransitions = map[OrcamentoStatus]map[OrcamentoEvent]OrcamentoStatus{
	OrcamentoStatusRascunho: {
		OrcamentoEventEnviado: OrcamentoStatusEnviado,
		OrcamentoEventPerdido: OrcamentoStatusPerdido,
	},
	OrcamentoStatusEnviado: {
		OrcamentoEventContraProposta: OrcamentoStatusContraProposta,
		OrcamentoEventFechado:        OrcamentoStatusFechado,
		OrcamentoEventPerdido:        OrcamentoStatusPerdido,
	},
	OrcamentoStatusContraProposta: {
		OrcamentoEventReenviado: OrcamentoStatusEnviado,
		OrcamentoEventFechado:   OrcamentoStatusFechado,
		OrcamentoEventPerdido:   OrcamentoStatusPerdido,
	},
	// FECHADO only moves forward when the installation checklist completes.
	OrcamentoStatusFechado: {
		OrcamentoEventInstalacaoConcluida: OrcamentoStatusInstalacaoConcluida,
	},
}

// NextOrcamentoStatus resolves the status produced by applying event to current
func NextOrcamentoStatus(current OrcamentoStatus, event OrcamentoEvent) (OrcamentoStatus, error) {
	if current.IsTerminal() {
		return current, shared.ErrTerminalState
	}
	edges, ok := orcamentoTransitions[current]
	if !ok {
		return current, shared.ErrInvalidTransition
	}
	next, ok := edges[event]
	if !ok {
		return current, shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Event %s not allowed for orcamento in %s status", event, current))
	}
	return next, nil
}

// Discount limits mirrored from the store's commercial policy
var (
	MaxDescontoVendedor       = decimal.NewFromInt(10)
	MaxDescontoAdminSemAlerta = decimal.NewFromInt(20)
)

// ValidateDesconto checks a discount percentage against the acting role.
// A VENDEDOR may discount up to 10%; anything above needs an ADMIN. An
// ADMIN above 20% is allowed but flagged for an alert.
func ValidateDesconto(percent decimal.Decimal, role identity.Role) (alert bool, err error) {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return false, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100 percent")
	}
	if percent.IsZero() {
		return false, nil
	}
	switch role {
	case identity.RoleVendedor:
		if percent.GreaterThan(MaxDescontoVendedor) {
			return false, shared.NewDomainError("DISCOUNT_REQUIRES_APPROVAL",
				fmt.Sprintf("Desconto de %s%% excede o limite de %s%% para vendedor", percent, MaxDescontoVendedor))
		}
		return false, nil
	case identity.RoleAdmin:
		return percent.GreaterThan(MaxDescontoAdminSemAlerta), nil
	default:
		return false, shared.NewDomainError("DISCOUNT_FORBIDDEN",
			fmt.Sprintf("Role %s cannot apply discounts", role))
	}
}

// ItemOrcamento represents a line item in a budget
type ItemOrcamento struct {
	ID            uuid.UUID
	OrcamentoID   uuid.UUID
	TipoProduto   string
	Descricao     string
	Largura       decimal.Decimal // meters
	Altura        decimal.Decimal // meters
	Metragem      decimal.Decimal // Largura * Altura
	PrecoUnitario decimal.Decimal // price per square meter or per unit
	PrecoFinal    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewItemOrcamento creates a new budget line item. For dimensioned products
// the final price derives from the measured area; otherwise from the unit price.
func NewItemOrcamento(orcamentoID uuid.UUID, tipoProduto, descricao string, largura, altura, precoUnitario decimal.Decimal) (*ItemOrcamento, error) {
	if tipoProduto == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TYPE", "Tipo de produto cannot be empty")
	}
	if descricao == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Descricao cannot be empty")
	}
	if largura.IsNegative() || altura.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DIMENSIONS", "Dimensions cannot be negative")
	}
	if precoUnitario.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Preco unitario cannot be negative")
	}

	now := time.Now()
	metragem := largura.Mul(altura).Round(4)
	precoFinal := precoUnitario
	if metragem.IsPositive() {
		precoFinal = metragem.Mul(precoUnitario).Round(2)
	}

	return &ItemOrcamento{
		ID:            uuid.New(),
		OrcamentoID:   orcamentoID,
		TipoProduto:   tipoProduto,
		Descricao:     descricao,
		Largura:       largura,
		Altura:        altura,
		Metragem:      metragem,
		PrecoUnitario: precoUnitario,
		PrecoFinal:    precoFinal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Orcamento represents a budget/quote aggregate root
type Orcamento struct {
	shared.BaseAggregateRoot
	ClienteID          uuid.UUID
	VendedorID         uuid.UUID
	Itens              []ItemOrcamento
	Status             OrcamentoStatus
	ValorTotal         decimal.Decimal
	DescontoPercentual decimal.Decimal
	ValorFinal         decimal.Decimal
	Observacoes        string
	EnviadoAt          *time.Time
	FechadoAt          *time.Time
	PerdidoAt          *time.Time
}

// NewOrcamento creates a new draft budget
func NewOrcamento(clienteID, vendedorID uuid.UUID) (*Orcamento, error) {
	if clienteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENTE", "Cliente ID cannot be empty")
	}
	if vendedorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDEDOR", "Vendedor ID cannot be empty")
	}

	o := &Orcamento{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		ClienteID:          clienteID,
		VendedorID:         vendedorID,
		Itens:              make([]ItemOrcamento, 0),
		Status:             OrcamentoStatusRascunho,
		ValorTotal:         decimal.Zero,
		DescontoPercentual: decimal.Zero,
		ValorFinal:         decimal.Zero,
	}
	o.AddDomainEvent(NewOrcamentoCriadoEvent(o))
	return o, nil
}

// AddItem adds a line item. Only allowed in RASCUNHO status.
func (o *Orcamento) AddItem(tipoProduto, descricao string, largura, altura, precoUnitario decimal.Decimal) (*ItemOrcamento, error) {
	if o.Status != OrcamentoStatusRascunho {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft orcamento")
	}

	item, err := NewItemOrcamento(o.ID, tipoProduto, descricao, largura, altura, precoUnitario)
	if err != nil {
		return nil, err
	}

	o.Itens = append(o.Itens, *item)
	o.recalcular()
	o.Touch()
	return item, nil
}

// RemoveItem removes a line item. Only allowed in RASCUNHO status.
func (o *Orcamento) RemoveItem(itemID uuid.UUID) error {
	if o.Status != OrcamentoStatusRascunho {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft orcamento")
	}

	for idx, item := range o.Itens {
		if item.ID == itemID {
			o.Itens = append(o.Itens[:idx], o.Itens[idx+1:]...)
			o.recalcular()
			o.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Orcamento item not found")
}

// ApplyDesconto applies a percentage discount subject to role limits
func (o *Orcamento) ApplyDesconto(percent decimal.Decimal, role identity.Role) (alert bool, err error) {
	if o.Status != OrcamentoStatusRascunho && o.Status != OrcamentoStatusContraProposta {
		return false, shared.NewDomainError("INVALID_STATE", "Cannot apply discount in current status")
	}
	alert, err = ValidateDesconto(percent, role)
	if err != nil {
		return false, err
	}
	o.DescontoPercentual = percent
	o.recalcular()
	o.Touch()
	return alert, nil
}

// Apply transitions the budget by a lifecycle event
func (o *Orcamento) Apply(event OrcamentoEvent) error {
	if event == OrcamentoEventEnviado && len(o.Itens) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send an orcamento without items")
	}

	next, err := NextOrcamentoStatus(o.Status, event)
	if err != nil {
		return err
	}
	previous := o.Status
	o.Status = next
	now := time.Now()
	o.UpdatedAt = now

	switch next {
	case OrcamentoStatusEnviado:
		o.EnviadoAt = &now
	case OrcamentoStatusFechado:
		o.FechadoAt = &now
	case OrcamentoStatusPerdido:
		o.PerdidoAt = &now
	}

	o.AddDomainEvent(NewOrcamentoStatusAlteradoEvent(o, previous, event))
	if next == OrcamentoStatusFechado {
		o.AddDomainEvent(NewOrcamentoFechadoEvent(o))
	}
	return nil
}

// recalcular recomputes the totals from items and discount
func (o *Orcamento) recalcular() {
	total := decimal.Zero
	for _, item := range o.Itens {
		total = total.Add(item.PrecoFinal)
	}
	o.ValorTotal = total
	desconto := total.Mul(o.DescontoPercentual).Div(decimal.NewFromInt(100)).Round(2)
	o.ValorFinal = total.Sub(desconto)
}

// IsOwnedBy reports whether the budget belongs to the given vendedor
func (o *Orcamento) IsOwnedBy(userID uuid.UUID) bool {
	return o.VendedorID == userID
}
