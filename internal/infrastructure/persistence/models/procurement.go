package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojamae/backend/internal/domain/procurement"
)

// FornecedorModel is the persistence model for the Fornecedor aggregate
type FornecedorModel struct {
	AggregateModel
	RazaoSocial  string `gorm:"type:varchar(200);not null"`
	NomeFantasia string `gorm:"type:varchar(200)"`
	CNPJ         string `gorm:"type:varchar(14);not null;uniqueIndex"`
	Email        string `gorm:"type:varchar(200)"`
	Telefone     string `gorm:"type:varchar(50)"`
	Endereco     string `gorm:"type:varchar(500)"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (FornecedorModel) TableName() string {
	return "fornecedores"
}

// ToDomain converts the persistence model to a domain Fornecedor
func (m *FornecedorModel) ToDomain() *procurement.Fornecedor {
	return &procurement.Fornecedor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RazaoSocial:       m.RazaoSocial,
		NomeFantasia:      m.NomeFantasia,
		CNPJ:              m.CNPJ,
		Email:             m.Email,
		Telefone:          m.Telefone,
		Endereco:          m.Endereco,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Fornecedor
func (m *FornecedorModel) FromDomain(f *procurement.Fornecedor) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.RazaoSocial = f.RazaoSocial
	m.NomeFantasia = f.NomeFantasia
	m.CNPJ = f.CNPJ
	m.Email = f.Email
	m.Telefone = f.Telefone
	m.Endereco = f.Endereco
	m.Active = f.Active
}

// FornecedorModelFromDomain creates a new persistence model from a domain Fornecedor
func FornecedorModelFromDomain(f *procurement.Fornecedor) *FornecedorModel {
	m := &FornecedorModel{}
	m.FromDomain(f)
	return m
}

// PedidoCompraModel is the persistence model for the PedidoCompra aggregate
type PedidoCompraModel struct {
	AggregateModel
	FornecedorID uuid.UUID                      `gorm:"type:uuid;not null;index"`
	CompradorID  uuid.UUID                      `gorm:"type:uuid;not null;index"`
	Status       procurement.PedidoCompraStatus `gorm:"type:varchar(20);not null;index"`
	ValorTotal   decimal.Decimal                `gorm:"type:decimal(12,2);not null"`
	Observacoes  string                         `gorm:"type:text"`
	EnviadoAt    *time.Time
	RecebidoAt   *time.Time
	CanceladoAt  *time.Time
	Itens        []ItemPedidoCompraModel `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PedidoCompraModel) TableName() string {
	return "pedidos_compra"
}

// ItemPedidoCompraModel is the persistence model for purchase order items
type ItemPedidoCompraModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	PedidoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Descricao     string          `gorm:"type:varchar(500);not null"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (ItemPedidoCompraModel) TableName() string {
	return "pedido_compra_itens"
}

// ToDomain converts the persistence model to a domain PedidoCompra
func (m *PedidoCompraModel) ToDomain() *procurement.PedidoCompra {
	itens := make([]procurement.ItemPedidoCompra, len(m.Itens))
	for i, item := range m.Itens {
		itens[i] = procurement.ItemPedidoCompra{
			ID:            item.ID,
			PedidoID:      item.PedidoID,
			Descricao:     item.Descricao,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			Subtotal:      item.Subtotal,
		}
	}
	return &procurement.PedidoCompra{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FornecedorID:      m.FornecedorID,
		CompradorID:       m.CompradorID,
		Status:            m.Status,
		Itens:             itens,
		ValorTotal:        m.ValorTotal,
		Observacoes:       m.Observacoes,
		EnviadoAt:         m.EnviadoAt,
		RecebidoAt:        m.RecebidoAt,
		CanceladoAt:       m.CanceladoAt,
	}
}

// FromDomain populates the persistence model from a domain PedidoCompra
func (m *PedidoCompraModel) FromDomain(p *procurement.PedidoCompra) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.FornecedorID = p.FornecedorID
	m.CompradorID = p.CompradorID
	m.Status = p.Status
	m.ValorTotal = p.ValorTotal
	m.Observacoes = p.Observacoes
	m.EnviadoAt = p.EnviadoAt
	m.RecebidoAt = p.RecebidoAt
	m.CanceladoAt = p.CanceladoAt

	m.Itens = make([]ItemPedidoCompraModel, len(p.Itens))
	for i, item := range p.Itens {
		m.Itens[i] = ItemPedidoCompraModel{
			ID:            item.ID,
			PedidoID:      item.PedidoID,
			Descricao:     item.Descricao,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			Subtotal:      item.Subtotal,
		}
	}
}

// PedidoCompraModelFromDomain creates a new persistence model from a domain PedidoCompra
func PedidoCompraModelFromDomain(p *procurement.PedidoCompra) *PedidoCompraModel {
	m := &PedidoCompraModel{}
	m.FromDomain(p)
	return m
}

// NFeModel is the persistence model for the NFe aggregate
type NFeModel struct {
	AggregateModel
	ChaveAcesso  string          `gorm:"type:varchar(44);not null;uniqueIndex"`
	Numero       string          `gorm:"type:varchar(20)"`
	Serie        string          `gorm:"type:varchar(10)"`
	EmitenteCNPJ string          `gorm:"type:varchar(14);not null;index"`
	EmitenteNome string          `gorm:"type:varchar(200)"`
	FornecedorID *uuid.UUID      `gorm:"type:uuid;index"`
	DataEmissao  time.Time       `gorm:"not null"`
	ValorTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImportadaPor uuid.UUID       `gorm:"type:uuid;not null"`
	XMLOriginal  string          `gorm:"type:text"`
	Produtos     []ProdutoNFeModel   `gorm:"foreignKey:NFeID;constraint:OnDelete:CASCADE"`
	Duplicatas   []DuplicataNFeModel `gorm:"foreignKey:NFeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (NFeModel) TableName() string {
	return "nfes"
}

// ProdutoNFeModel is the persistence model for invoice product lines
type ProdutoNFeModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	NFeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Codigo        string          `gorm:"type:varchar(60)"`
	Descricao     string          `gorm:"type:varchar(500);not null"`
	NCM           string          `gorm:"type:varchar(8)"`
	Unidade       string          `gorm:"type:varchar(10)"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (ProdutoNFeModel) TableName() string {
	return "nfe_produtos"
}

// DuplicataNFeModel is the persistence model for invoice installments
type DuplicataNFeModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	NFeID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Numero     string          `gorm:"type:varchar(20)"`
	Vencimento time.Time       `gorm:"not null"`
	Valor      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (DuplicataNFeModel) TableName() string {
	return "nfe_duplicatas"
}

// ToDomain converts the persistence model to a domain NFe
func (m *NFeModel) ToDomain() *procurement.NFe {
	produtos := make([]procurement.ProdutoNFe, len(m.Produtos))
	for i, p := range m.Produtos {
		produtos[i] = procurement.ProdutoNFe{
			ID:            p.ID,
			NFeID:         p.NFeID,
			Codigo:        p.Codigo,
			Descricao:     p.Descricao,
			NCM:           p.NCM,
			Unidade:       p.Unidade,
			Quantidade:    p.Quantidade,
			ValorUnitario: p.ValorUnitario,
			ValorTotal:    p.ValorTotal,
		}
	}
	duplicatas := make([]procurement.DuplicataNFe, len(m.Duplicatas))
	for i, d := range m.Duplicatas {
		duplicatas[i] = procurement.DuplicataNFe{
			ID:         d.ID,
			NFeID:      d.NFeID,
			Numero:     d.Numero,
			Vencimento: d.Vencimento,
			Valor:      d.Valor,
		}
	}
	return &procurement.NFe{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ChaveAcesso:       m.ChaveAcesso,
		Numero:            m.Numero,
		Serie:             m.Serie,
		EmitenteCNPJ:      m.EmitenteCNPJ,
		EmitenteNome:      m.EmitenteNome,
		FornecedorID:      m.FornecedorID,
		DataEmissao:       m.DataEmissao,
		ValorTotal:        m.ValorTotal,
		Produtos:          produtos,
		Duplicatas:        duplicatas,
		ImportadaPor:      m.ImportadaPor,
		XMLOriginal:       m.XMLOriginal,
	}
}

// FromDomain populates the persistence model from a domain NFe
func (m *NFeModel) FromDomain(n *procurement.NFe) {
	m.FromDomainAggregateRoot(n.BaseAggregateRoot)
	m.ChaveAcesso = n.ChaveAcesso
	m.Numero = n.Numero
	m.Serie = n.Serie
	m.EmitenteCNPJ = n.EmitenteCNPJ
	m.EmitenteNome = n.EmitenteNome
	m.FornecedorID = n.FornecedorID
	m.DataEmissao = n.DataEmissao
	m.ValorTotal = n.ValorTotal
	m.ImportadaPor = n.ImportadaPor
	m.XMLOriginal = n.XMLOriginal

	m.Produtos = make([]ProdutoNFeModel, len(n.Produtos))
	for i, p := range n.Produtos {
		m.Produtos[i] = ProdutoNFeModel{
			ID:            p.ID,
			NFeID:         p.NFeID,
			Codigo:        p.Codigo,
			Descricao:     p.Descricao,
			NCM:           p.NCM,
			Unidade:       p.Unidade,
			Quantidade:    p.Quantidade,
			ValorUnitario: p.ValorUnitario,
			ValorTotal:    p.ValorTotal,
		}
	}
	m.Duplicatas = make([]DuplicataNFeModel, len(n.Duplicatas))
	for i, d := range n.Duplicatas {
		m.Duplicatas[i] = DuplicataNFeModel{
			ID:         d.ID,
			NFeID:      d.NFeID,
			Numero:     d.Numero,
			Vencimento: d.Vencimento,
			Valor:      d.Valor,
		}
	}
}

// NFeModelFromDomain creates a new persistence model from a domain NFe
func NFeModelFromDomain(n *procurement.NFe) *NFeModel {
	m := &NFeModel{}
	m.FromDomain(n)
	return m
}
