package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PrazoPagamentoPadrao is applied when the invoice XML carries no
// duplicatas: a single installment due 30 days after emission.
const PrazoPagamentoPadrao = 30 * 24 * time.Hour

// ProdutoNFe is a product line parsed from an NFe XML
type ProdutoNFe struct {
	ID            uuid.UUID
	NFeID         uuid.UUID
	Codigo        string
	Descricao     string
	NCM           string
	Unidade       string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	ValorTotal    decimal.Decimal
}

// DuplicataNFe is a payment installment declared on the invoice
type DuplicataNFe struct {
	ID         uuid.UUID
	NFeID      uuid.UUID
	Numero     string
	Vencimento time.Time
	Valor      decimal.Decimal
}

// NFe represents an imported supplier electronic invoice
type NFe struct {
	shared.BaseAggregateRoot
	ChaveAcesso  string
	Numero       string
	Serie        string
	EmitenteCNPJ string
	EmitenteNome string
	FornecedorID *uuid.UUID
	DataEmissao  time.Time
	ValorTotal   decimal.Decimal
	Produtos     []ProdutoNFe
	Duplicatas   []DuplicataNFe
	ImportadaPor uuid.UUID
	XMLOriginal  string
}

// NewNFe creates an invoice aggregate from parsed XML data
func NewNFe(chaveAcesso, numero, serie, emitenteCNPJ, emitenteNome string, dataEmissao time.Time, valorTotal decimal.Decimal, importadaPor uuid.UUID) (*NFe, error) {
	if len(chaveAcesso) != 44 {
		return nil, shared.NewDomainError("INVALID_CHAVE_ACESSO", "Chave de acesso must have 44 digits")
	}
	if emitenteCNPJ == "" {
		return nil, shared.NewDomainError("INVALID_EMITENTE", "Emitente CNPJ cannot be empty")
	}
	if dataEmissao.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATA_EMISSAO", "Data de emissao cannot be zero")
	}
	if !valorTotal.IsPositive() {
		return nil, shared.NewDomainError("INVALID_VALOR", "Valor total must be positive")
	}

	return &NFe{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ChaveAcesso:       chaveAcesso,
		Numero:            numero,
		Serie:             serie,
		EmitenteCNPJ:      normalizeCNPJ(emitenteCNPJ),
		EmitenteNome:      emitenteNome,
		DataEmissao:       dataEmissao,
		ValorTotal:        valorTotal,
		Produtos:          make([]ProdutoNFe, 0),
		Duplicatas:        make([]DuplicataNFe, 0),
		ImportadaPor:      importadaPor,
	}, nil
}

// AddProduto appends a product line
func (n *NFe) AddProduto(codigo, descricao, ncm, unidade string, quantidade, valorUnitario, valorTotal decimal.Decimal) {
	n.Produtos = append(n.Produtos, ProdutoNFe{
		ID:            uuid.New(),
		NFeID:         n.ID,
		Codigo:        codigo,
		Descricao:     descricao,
		NCM:           ncm,
		Unidade:       unidade,
		Quantidade:    quantidade,
		ValorUnitario: valorUnitario,
		ValorTotal:    valorTotal,
	})
}

// AddDuplicata appends a declared installment
func (n *NFe) AddDuplicata(numero string, vencimento time.Time, valor decimal.Decimal) {
	n.Duplicatas = append(n.Duplicatas, DuplicataNFe{
		ID:         uuid.New(),
		NFeID:      n.ID,
		Numero:     numero,
		Vencimento: vencimento,
		Valor:      valor,
	})
}

// Parcelas returns the payable installments. When the XML declares
// duplicatas those are used as-is; otherwise a single installment for
// the full amount falls due 30 days after emission.
func (n *NFe) Parcelas() []DuplicataNFe {
	if len(n.Duplicatas) > 0 {
		return n.Duplicatas
	}
	return []DuplicataNFe{{
		ID:         uuid.New(),
		NFeID:      n.ID,
		Numero:     "001",
		Vencimento: n.DataEmissao.Add(PrazoPagamentoPadrao),
		Valor:      n.ValorTotal,
	}}
}

// VincularFornecedor links the invoice to a registered supplier
func (n *NFe) VincularFornecedor(fornecedorID uuid.UUID) {
	n.FornecedorID = &fornecedorID
	n.Touch()
}
