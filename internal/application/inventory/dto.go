package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProdutoInput carries the data for registering a product
type CreateProdutoInput struct {
	Codigo        string          `json:"codigo" binding:"required"`
	Descricao     string          `json:"descricao" binding:"required"`
	Categoria     string          `json:"categoria"`
	Unidade       string          `json:"unidade"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"`
}

// UpdateProdutoInput carries a partial product update
type UpdateProdutoInput struct {
	Descricao     *string          `json:"descricao"`
	Categoria     *string          `json:"categoria"`
	EstoqueMinimo *decimal.Decimal `json:"estoque_minimo"`
	PrecoCusto    *decimal.Decimal `json:"preco_custo"`
}

// MovimentoInput carries a stock movement request. For entrada and
// saida the quantity is the delta; for ajuste it is the counted total.
type MovimentoInput struct {
	ProdutoID  uuid.UUID       `json:"produto_id" binding:"required"`
	Quantidade decimal.Decimal `json:"quantidade" binding:"required"`
	Motivo     string          `json:"motivo"`
}
