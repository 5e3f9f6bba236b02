package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TipoMovimento classifies a stock movement
type TipoMovimento string

const (
	MovimentoEntrada TipoMovimento = "ENTRADA"
	MovimentoSaida   TipoMovimento = "SAIDA"
	MovimentoAjuste  TipoMovimento = "AJUSTE"
)

// MovimentoEstoque records a single stock change
type MovimentoEstoque struct {
	ID         uuid.UUID
	ProdutoID  uuid.UUID
	Tipo       TipoMovimento
	Quantidade decimal.Decimal
	Motivo     string
	UsuarioID  uuid.UUID
	CreatedAt  time.Time
}

// Produto represents a stocked product aggregate root
type Produto struct {
	shared.BaseAggregateRoot
	Codigo        string
	Descricao     string
	Categoria     string
	Unidade       string
	Quantidade    decimal.Decimal
	EstoqueMinimo decimal.Decimal
	PrecoCusto    decimal.Decimal
	Active        bool
}

// NewProduto creates a new product with zero stock
func NewProduto(codigo, descricao, categoria, unidade string) (*Produto, error) {
	if codigo == "" {
		return nil, shared.NewDomainError("INVALID_CODIGO", "Codigo cannot be empty")
	}
	if descricao == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Descricao cannot be empty")
	}
	if unidade == "" {
		unidade = "UN"
	}

	return &Produto{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Codigo:            codigo,
		Descricao:         descricao,
		Categoria:         categoria,
		Unidade:           unidade,
		Quantidade:        decimal.Zero,
		EstoqueMinimo:     decimal.Zero,
		Active:            true,
	}, nil
}

// Entrada registers incoming stock and returns the movement record
func (p *Produto) Entrada(quantidade decimal.Decimal, motivo string, usuarioID uuid.UUID) (*MovimentoEstoque, error) {
	if !quantidade.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantidade must be positive")
	}
	p.Quantidade = p.Quantidade.Add(quantidade)
	p.Touch()
	return p.movimento(MovimentoEntrada, quantidade, motivo, usuarioID), nil
}

// Saida registers outgoing stock. Stock never goes negative.
func (p *Produto) Saida(quantidade decimal.Decimal, motivo string, usuarioID uuid.UUID) (*MovimentoEstoque, error) {
	if !quantidade.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantidade must be positive")
	}
	if quantidade.GreaterThan(p.Quantidade) {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Quantidade exceeds current stock")
	}
	p.Quantidade = p.Quantidade.Sub(quantidade)
	p.Touch()
	return p.movimento(MovimentoSaida, quantidade, motivo, usuarioID), nil
}

// Ajustar sets the absolute stock quantity after a physical count
func (p *Produto) Ajustar(quantidade decimal.Decimal, motivo string, usuarioID uuid.UUID) (*MovimentoEstoque, error) {
	if quantidade.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantidade cannot be negative")
	}
	delta := quantidade.Sub(p.Quantidade)
	p.Quantidade = quantidade
	p.Touch()
	return p.movimento(MovimentoAjuste, delta, motivo, usuarioID), nil
}

// AbaixoDoMinimo reports whether stock fell below the replenishment threshold
func (p *Produto) AbaixoDoMinimo() bool {
	return p.EstoqueMinimo.IsPositive() && p.Quantidade.LessThan(p.EstoqueMinimo)
}

func (p *Produto) movimento(tipo TipoMovimento, quantidade decimal.Decimal, motivo string, usuarioID uuid.UUID) *MovimentoEstoque {
	return &MovimentoEstoque{
		ID:         uuid.New(),
		ProdutoID:  p.ID,
		Tipo:       tipo,
		Quantidade: quantidade,
		Motivo:     motivo,
		UsuarioID:  usuarioID,
		CreatedAt:  time.Now(),
	}
}
