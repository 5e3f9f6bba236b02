package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojamae/backend/internal/domain/finance"
)

// ContaModel is the persistence model for the Conta aggregate
type ContaModel struct {
	AggregateModel
	Tipo         finance.TipoConta   `gorm:"type:varchar(10);not null;index"`
	Status       finance.ContaStatus `gorm:"type:varchar(20);not null;index"`
	Descricao    string              `gorm:"type:varchar(500);not null"`
	Valor        decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Vencimento   time.Time           `gorm:"not null;index"`
	Origem       finance.OrigemConta `gorm:"type:varchar(20);not null"`
	OrigemID     *uuid.UUID          `gorm:"type:uuid;index"`
	FornecedorID *uuid.UUID          `gorm:"type:uuid;index"`
	ClienteID    *uuid.UUID          `gorm:"type:uuid;index"`
	PagaAt       *time.Time
	CanceladaAt  *time.Time
}

// TableName returns the table name for GORM
func (ContaModel) TableName() string {
	return "contas"
}

// ToDomain converts the persistence model to a domain Conta
func (m *ContaModel) ToDomain() *finance.Conta {
	return &finance.Conta{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Tipo:              m.Tipo,
		Status:            m.Status,
		Descricao:         m.Descricao,
		Valor:             m.Valor,
		Vencimento:        m.Vencimento,
		Origem:            m.Origem,
		OrigemID:          m.OrigemID,
		FornecedorID:      m.FornecedorID,
		ClienteID:         m.ClienteID,
		PagaAt:            m.PagaAt,
		CanceladaAt:       m.CanceladaAt,
	}
}

// FromDomain populates the persistence model from a domain Conta
func (m *ContaModel) FromDomain(c *finance.Conta) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Tipo = c.Tipo
	m.Status = c.Status
	m.Descricao = c.Descricao
	m.Valor = c.Valor
	m.Vencimento = c.Vencimento
	m.Origem = c.Origem
	m.OrigemID = c.OrigemID
	m.FornecedorID = c.FornecedorID
	m.ClienteID = c.ClienteID
	m.PagaAt = c.PagaAt
	m.CanceladaAt = c.CanceladaAt
}

// ContaModelFromDomain creates a new persistence model from a domain Conta
func ContaModelFromDomain(c *finance.Conta) *ContaModel {
	m := &ContaModel{}
	m.FromDomain(c)
	return m
}
