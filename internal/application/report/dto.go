package report

import (
	"time"

	"github.com/google/uuid"
)

// PeriodoInput bounds a report to [Inicio, Fim)
type PeriodoInput struct {
	Inicio time.Time `json:"inicio" binding:"required"`
	Fim    time.Time `json:"fim" binding:"required"`
}

// VendasReport aggregates a seller's budget funnel over a period
type VendasReport struct {
	VendedorID         *uuid.UUID   `json:"vendedor_id,omitempty"`
	Periodo            PeriodoInput `json:"periodo"`
	OrcamentosCriados  int          `json:"orcamentos_criados"`
	OrcamentosFechados int          `json:"orcamentos_fechados"`
	OrcamentosPerdidos int          `json:"orcamentos_perdidos"`
	ValorFechado       string       `json:"valor_fechado"`
	TicketMedio        string       `json:"ticket_medio"`
	TaxaConversao      string       `json:"taxa_conversao"`
}

// FinanceiroReport aggregates open and settled entries of one tipo
type FinanceiroReport struct {
	Periodo       PeriodoInput `json:"periodo"`
	TotalPendente string       `json:"total_pendente"`
	TotalVencido  string       `json:"total_vencido"`
	TotalPago     string       `json:"total_pago"`
	Quantidade    int          `json:"quantidade"`
}

// EstoqueReport summarizes the stock position
type EstoqueReport struct {
	TotalProdutos   int    `json:"total_produtos"`
	AbaixoDoMinimo  int    `json:"abaixo_do_minimo"`
	ValorCustoTotal string `json:"valor_custo_total"`
}
