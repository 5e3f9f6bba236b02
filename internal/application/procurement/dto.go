package procurement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateFornecedorInput carries the data for registering a supplier
type CreateFornecedorInput struct {
	RazaoSocial  string `json:"razao_social" binding:"required"`
	NomeFantasia string `json:"nome_fantasia"`
	CNPJ         string `json:"cnpj" binding:"required"`
	Email        string `json:"email"`
	Telefone     string `json:"telefone"`
	Endereco     string `json:"endereco"`
}

// UpdateFornecedorInput carries a partial supplier update
type UpdateFornecedorInput struct {
	NomeFantasia *string `json:"nome_fantasia"`
	Email        *string `json:"email"`
	Telefone     *string `json:"telefone"`
	Endereco     *string `json:"endereco"`
}

// CreatePedidoCompraInput carries the data for a new purchase order
type CreatePedidoCompraInput struct {
	FornecedorID uuid.UUID               `json:"fornecedor_id" binding:"required"`
	Observacoes  string                  `json:"observacoes"`
	Itens        []ItemPedidoCompraInput `json:"itens"`
}

// ItemPedidoCompraInput is a purchase order line
type ItemPedidoCompraInput struct {
	Descricao     string          `json:"descricao" binding:"required"`
	Quantidade    decimal.Decimal `json:"quantidade" binding:"required"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario" binding:"required"`
}

// AddItemPedidoInput appends a line to a draft purchase order
type AddItemPedidoInput struct {
	PedidoID      uuid.UUID       `json:"pedido_id" binding:"required"`
	Descricao     string          `json:"descricao" binding:"required"`
	Quantidade    decimal.Decimal `json:"quantidade" binding:"required"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario" binding:"required"`
}

// ImportNFeInput carries the raw invoice XML to import
type ImportNFeInput struct {
	XML []byte
}

// ImportNFeResult reports what the import produced
type ImportNFeResult struct {
	NFeID          uuid.UUID  `json:"nfe_id"`
	ChaveAcesso    string     `json:"chave_acesso"`
	FornecedorID   *uuid.UUID `json:"fornecedor_id,omitempty"`
	FornecedorNovo bool       `json:"fornecedor_novo"`
	ContasGeradas  int        `json:"contas_geradas"`
	ValorTotal     string     `json:"valor_total"`
}
