package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojamae/backend/internal/domain/sales"
)

// CreateOrcamentoInput contains the input for budget creation
type CreateOrcamentoInput struct {
	ClienteID   uuid.UUID
	Observacoes string
	Itens       []ItemInput
}

// ItemInput describes one budget line. Largura and Altura are in
// meters; zero dimensions mean a per-unit product.
type ItemInput struct {
	TipoProduto   string
	Descricao     string
	Largura       decimal.Decimal
	Altura        decimal.Decimal
	PrecoUnitario decimal.Decimal
}

// AddItemInput contains the input for appending a line to a draft
type AddItemInput struct {
	OrcamentoID uuid.UUID
	Item        ItemInput
}

// ApplyDescontoInput contains the input for a discount request
type ApplyDescontoInput struct {
	OrcamentoID uuid.UUID
	Percentual  decimal.Decimal
}

// ApplyDescontoResult reports the discount outcome. Alert is set when
// an ADMIN discount above the no-questions threshold was applied.
type ApplyDescontoResult struct {
	Orcamento *sales.Orcamento
	Alert     bool
}

// TransitionOrcamentoInput contains the lifecycle event to apply
type TransitionOrcamentoInput struct {
	OrcamentoID uuid.UUID
	Event       sales.OrcamentoEvent
	Motivo      string
}

// CreateChecklistInput contains the input for checklist creation
type CreateChecklistInput struct {
	OrcamentoID uuid.UUID
}

// AgendarChecklistInput contains the input for scheduling installation
type AgendarChecklistInput struct {
	ChecklistID  uuid.UUID
	InstaladorID uuid.UUID
	Data         time.Time
}

// ConferirItemInput contains the input for checking off one item
type ConferirItemInput struct {
	ChecklistID uuid.UUID
	ItemID      uuid.UUID
	Observacao  string
}

// CreateOrdemProducaoInput contains the input for a production order
type CreateOrdemProducaoInput struct {
	OrcamentoID uuid.UUID
	Descricao   string
}

// CancelOrdemProducaoInput contains the input for cancelling an order
type CancelOrdemProducaoInput struct {
	OrdemID uuid.UUID
	Motivo  string
}
