package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojamae/backend/internal/domain/inventory"
)

// ProdutoModel is the persistence model for the Produto aggregate
type ProdutoModel struct {
	AggregateModel
	Codigo        string          `gorm:"type:varchar(60);not null;uniqueIndex"`
	Descricao     string          `gorm:"type:varchar(500);not null"`
	Categoria     string          `gorm:"type:varchar(100);index"`
	Unidade       string          `gorm:"type:varchar(10);not null"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	EstoqueMinimo decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	PrecoCusto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProdutoModel) TableName() string {
	return "produtos"
}

// ToDomain converts the persistence model to a domain Produto
func (m *ProdutoModel) ToDomain() *inventory.Produto {
	return &inventory.Produto{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Codigo:            m.Codigo,
		Descricao:         m.Descricao,
		Categoria:         m.Categoria,
		Unidade:           m.Unidade,
		Quantidade:        m.Quantidade,
		EstoqueMinimo:     m.EstoqueMinimo,
		PrecoCusto:        m.PrecoCusto,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Produto
func (m *ProdutoModel) FromDomain(p *inventory.Produto) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Codigo = p.Codigo
	m.Descricao = p.Descricao
	m.Categoria = p.Categoria
	m.Unidade = p.Unidade
	m.Quantidade = p.Quantidade
	m.EstoqueMinimo = p.EstoqueMinimo
	m.PrecoCusto = p.PrecoCusto
	m.Active = p.Active
}

// ProdutoModelFromDomain creates a new persistence model from a domain Produto
func ProdutoModelFromDomain(p *inventory.Produto) *ProdutoModel {
	m := &ProdutoModel{}
	m.FromDomain(p)
	return m
}

// MovimentoEstoqueModel is the persistence model for stock movements
type MovimentoEstoqueModel struct {
	ID         uuid.UUID               `gorm:"type:uuid;primary_key"`
	ProdutoID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	Tipo       inventory.TipoMovimento `gorm:"type:varchar(10);not null"`
	Quantidade decimal.Decimal         `gorm:"type:decimal(12,4);not null"`
	Motivo     string                  `gorm:"type:varchar(500)"`
	UsuarioID  uuid.UUID               `gorm:"type:uuid;not null"`
	CreatedAt  time.Time               `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (MovimentoEstoqueModel) TableName() string {
	return "movimentos_estoque"
}

// ToDomain converts the persistence model to a domain MovimentoEstoque
func (m *MovimentoEstoqueModel) ToDomain() *inventory.MovimentoEstoque {
	return &inventory.MovimentoEstoque{
		ID:         m.ID,
		ProdutoID:  m.ProdutoID,
		Tipo:       m.Tipo,
		Quantidade: m.Quantidade,
		Motivo:     m.Motivo,
		UsuarioID:  m.UsuarioID,
		CreatedAt:  m.CreatedAt,
	}
}

// MovimentoEstoqueModelFromDomain creates a new persistence model from a domain MovimentoEstoque
func MovimentoEstoqueModelFromDomain(mov *inventory.MovimentoEstoque) *MovimentoEstoqueModel {
	return &MovimentoEstoqueModel{
		ID:         mov.ID,
		ProdutoID:  mov.ProdutoID,
		Tipo:       mov.Tipo,
		Quantidade: mov.Quantidade,
		Motivo:     mov.Motivo,
		UsuarioID:  mov.UsuarioID,
		CreatedAt:  mov.CreatedAt,
	}
}
