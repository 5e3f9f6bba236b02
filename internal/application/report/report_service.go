package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/inventory"
	"github.com/lojamae/backend/internal/domain/sales"
	"github.com/lojamae/backend/internal/domain/shared"
)

// reportPageSize bounds how many rows a single aggregation sweep pulls
// per repository page.
const reportPageSize = 500

// ReportService computes management reports from the operational
// repositories. Reports are computed on demand; nothing is cached.
type ReportService struct {
	orcamentoRepo sales.OrcamentoRepository
	contaRepo     finance.ContaRepository
	produtoRepo   inventory.ProdutoRepository
	gate          *authz.Gate
	logger        *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	orcamentoRepo sales.OrcamentoRepository,
	contaRepo finance.ContaRepository,
	produtoRepo inventory.ProdutoRepository,
	gate *authz.Gate,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		orcamentoRepo: orcamentoRepo,
		contaRepo:     contaRepo,
		produtoRepo:   produtoRepo,
		gate:          gate,
		logger:        logger,
	}
}

// VendasReport aggregates the budget funnel over a period. A vendedor
// only gets their own numbers; ADMIN can ask for any seller or, with a
// nil vendedorID, the whole store.
func (s *ReportService) VendasReport(ctx context.Context, session identity.Session, vendedorID *uuid.UUID, periodo PeriodoInput) (*VendasReport, error) {
	if err := s.gate.Authorize(session, authz.ActionViewSalesReport, vendedorID); err != nil {
		return nil, err
	}
	if !session.IsAdmin() && vendedorID == nil {
		vendedorID = &session.UserID
	}
	if err := validatePeriodo(periodo); err != nil {
		return nil, err
	}

	orcamentos, err := s.collectOrcamentos(ctx, vendedorID)
	if err != nil {
		return nil, err
	}

	report := &VendasReport{VendedorID: vendedorID, Periodo: periodo}
	valorFechado := decimal.Zero
	for i := range orcamentos {
		orcamento := &orcamentos[i]
		if inPeriodo(orcamento.CreatedAt, periodo) {
			report.OrcamentosCriados++
		}
		switch {
		case orcamento.Status.IsWon():
			if orcamento.FechadoAt != nil && inPeriodo(*orcamento.FechadoAt, periodo) {
				report.OrcamentosFechados++
				valorFechado = valorFechado.Add(orcamento.ValorFinal)
			}
		case orcamento.Status == sales.OrcamentoStatusPerdido:
			if inPeriodo(orcamento.UpdatedAt, periodo) {
				report.OrcamentosPerdidos++
			}
		}
	}

	report.ValorFechado = valorFechado.StringFixed(2)
	report.TicketMedio = "0.00"
	if report.OrcamentosFechados > 0 {
		report.TicketMedio = valorFechado.
			Div(decimal.NewFromInt(int64(report.OrcamentosFechados))).
			Round(2).StringFixed(2)
	}
	report.TaxaConversao = "0.00"
	decididos := report.OrcamentosFechados + report.OrcamentosPerdidos
	if decididos > 0 {
		report.TaxaConversao = decimal.NewFromInt(int64(report.OrcamentosFechados)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(decididos))).
			Round(2).StringFixed(2)
	}
	return report, nil
}

// FinanceiroReport aggregates entries of one tipo with a due date
// inside the period
func (s *ReportService) FinanceiroReport(ctx context.Context, session identity.Session, tipo finance.TipoConta, periodo PeriodoInput) (*FinanceiroReport, error) {
	if err := s.gate.Authorize(session, authz.ActionViewFinanceiroReport, nil); err != nil {
		return nil, err
	}
	if !tipo.IsValid() {
		return nil, shared.NewDomainError("INVALID_TIPO", "Tipo must be PAGAR or RECEBER")
	}
	if err := validatePeriodo(periodo); err != nil {
		return nil, err
	}

	report := &FinanceiroReport{Periodo: periodo}
	pendente, vencido, pago := decimal.Zero, decimal.Zero, decimal.Zero

	filter := shared.DefaultFilter()
	filter.PageSize = reportPageSize
	for {
		contas, total, err := s.contaRepo.FindAll(ctx, tipo, filter)
		if err != nil {
			return nil, err
		}
		for i := range contas {
			conta := &contas[i]
			if !inPeriodo(conta.Vencimento, periodo) {
				continue
			}
			report.Quantidade++
			switch conta.Status {
			case finance.ContaStatusPendente:
				pendente = pendente.Add(conta.Valor)
			case finance.ContaStatusVencida:
				vencido = vencido.Add(conta.Valor)
			case finance.ContaStatusPaga:
				pago = pago.Add(conta.Valor)
			}
		}
		if int64(filter.Page*filter.PageSize) >= total {
			break
		}
		filter.Page++
	}

	report.TotalPendente = pendente.StringFixed(2)
	report.TotalVencido = vencido.StringFixed(2)
	report.TotalPago = pago.StringFixed(2)
	return report, nil
}

// EstoqueReport summarizes the current stock position
func (s *ReportService) EstoqueReport(ctx context.Context, session identity.Session) (*EstoqueReport, error) {
	if err := s.gate.Authorize(session, authz.ActionViewStockReport, nil); err != nil {
		return nil, err
	}

	report := &EstoqueReport{}
	custo := decimal.Zero

	filter := shared.DefaultFilter()
	filter.PageSize = reportPageSize
	for {
		produtos, total, err := s.produtoRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		for i := range produtos {
			produto := &produtos[i]
			report.TotalProdutos++
			if produto.AbaixoDoMinimo() {
				report.AbaixoDoMinimo++
			}
			custo = custo.Add(produto.Quantidade.Mul(produto.PrecoCusto))
		}
		if int64(filter.Page*filter.PageSize) >= total {
			break
		}
		filter.Page++
	}

	report.ValorCustoTotal = custo.Round(2).StringFixed(2)
	return report, nil
}

func (s *ReportService) collectOrcamentos(ctx context.Context, vendedorID *uuid.UUID) ([]sales.Orcamento, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = reportPageSize

	var all []sales.Orcamento
	for {
		var (
			page  []sales.Orcamento
			total int64
			err   error
		)
		if vendedorID != nil {
			page, total, err = s.orcamentoRepo.FindByVendedor(ctx, *vendedorID, filter)
		} else {
			page, total, err = s.orcamentoRepo.FindAll(ctx, filter)
		}
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if int64(filter.Page*filter.PageSize) >= total {
			break
		}
		filter.Page++
	}
	return all, nil
}

func validatePeriodo(periodo PeriodoInput) error {
	if !periodo.Fim.After(periodo.Inicio) {
		return shared.NewDomainError("INVALID_PERIODO", "Fim must be after inicio")
	}
	return nil
}

func inPeriodo(t time.Time, periodo PeriodoInput) bool {
	return !t.Before(periodo.Inicio) && t.Before(periodo.Fim)
}
