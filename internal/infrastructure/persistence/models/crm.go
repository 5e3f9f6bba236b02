package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lojamae/backend/internal/domain/crm"
)

// LeadModel is the persistence model for the Lead aggregate
type LeadModel struct {
	AggregateModel
	Nome       string         `gorm:"type:varchar(200);not null"`
	Telefone   string         `gorm:"type:varchar(50)"`
	Email      string         `gorm:"type:varchar(200)"`
	Status     crm.LeadStatus `gorm:"type:varchar(30);not null;index"`
	VendedorID *uuid.UUID     `gorm:"type:uuid;index"`
	ClienteID  *uuid.UUID     `gorm:"type:uuid;index"`
	Origem     string         `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead
func (m *LeadModel) ToDomain() *crm.Lead {
	return &crm.Lead{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Nome:              m.Nome,
		Telefone:          m.Telefone,
		Email:             m.Email,
		Status:            m.Status,
		VendedorID:        m.VendedorID,
		ClienteID:         m.ClienteID,
		Origem:            m.Origem,
	}
}

// FromDomain populates the persistence model from a domain Lead
func (m *LeadModel) FromDomain(l *crm.Lead) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.Nome = l.Nome
	m.Telefone = l.Telefone
	m.Email = l.Email
	m.Status = l.Status
	m.VendedorID = l.VendedorID
	m.ClienteID = l.ClienteID
	m.Origem = l.Origem
}

// LeadModelFromDomain creates a new persistence model from a domain Lead
func LeadModelFromDomain(l *crm.Lead) *LeadModel {
	m := &LeadModel{}
	m.FromDomain(l)
	return m
}

// ClienteModel is the persistence model for the Cliente aggregate
type ClienteModel struct {
	AggregateModel
	Nome        string          `gorm:"type:varchar(200);not null"`
	NomeSocial  string          `gorm:"type:varchar(200)"`
	Telefone    string          `gorm:"type:varchar(50)"`
	Email       string          `gorm:"type:varchar(200);index"`
	CPF         string          `gorm:"type:varchar(14)"`
	Sexo        string          `gorm:"type:varchar(20)"`
	Aniversario *time.Time
	CEP         string          `gorm:"type:varchar(10)"`
	Estado      string          `gorm:"type:varchar(2)"`
	Cidade      string          `gorm:"type:varchar(100)"`
	Bairro      string          `gorm:"type:varchar(100)"`
	Rua         string          `gorm:"type:varchar(200)"`
	Numero      string          `gorm:"type:varchar(20)"`
	Complemento string          `gorm:"type:varchar(200)"`
	Tipo        crm.TipoCliente `gorm:"type:varchar(20);not null"`
	OrigemLead  string          `gorm:"type:varchar(100)"`
	InteresseEm pq.StringArray  `gorm:"type:text[]"`
	Observacoes string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClienteModel) TableName() string {
	return "clientes"
}

// ToDomain converts the persistence model to a domain Cliente
func (m *ClienteModel) ToDomain() *crm.Cliente {
	return &crm.Cliente{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Nome:              m.Nome,
		NomeSocial:        m.NomeSocial,
		Telefone:          m.Telefone,
		Email:             m.Email,
		CPF:               m.CPF,
		Sexo:              m.Sexo,
		Aniversario:       m.Aniversario,
		Endereco: crm.Endereco{
			CEP:         m.CEP,
			Estado:      m.Estado,
			Cidade:      m.Cidade,
			Bairro:      m.Bairro,
			Rua:         m.Rua,
			Numero:      m.Numero,
			Complemento: m.Complemento,
		},
		Tipo:        m.Tipo,
		OrigemLead:  m.OrigemLead,
		InteresseEm: m.InteresseEm,
		Observacoes: m.Observacoes,
	}
}

// FromDomain populates the persistence model from a domain Cliente
func (m *ClienteModel) FromDomain(c *crm.Cliente) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Nome = c.Nome
	m.NomeSocial = c.NomeSocial
	m.Telefone = c.Telefone
	m.Email = c.Email
	m.CPF = c.CPF
	m.Sexo = c.Sexo
	m.Aniversario = c.Aniversario
	m.CEP = c.Endereco.CEP
	m.Estado = c.Endereco.Estado
	m.Cidade = c.Endereco.Cidade
	m.Bairro = c.Endereco.Bairro
	m.Rua = c.Endereco.Rua
	m.Numero = c.Endereco.Numero
	m.Complemento = c.Endereco.Complemento
	m.Tipo = c.Tipo
	m.OrigemLead = c.OrigemLead
	m.InteresseEm = c.InteresseEm
	m.Observacoes = c.Observacoes
}

// ClienteModelFromDomain creates a new persistence model from a domain Cliente
func ClienteModelFromDomain(c *crm.Cliente) *ClienteModel {
	m := &ClienteModel{}
	m.FromDomain(c)
	return m
}

// VisitaModel is the persistence model for the Visita aggregate
type VisitaModel struct {
	AggregateModel
	ClienteID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	VendedorID uuid.UUID        `gorm:"type:uuid;not null;index"`
	DataHora   time.Time        `gorm:"not null;index"`
	TipoVisita string           `gorm:"type:varchar(50)"`
	Status     crm.VisitaStatus `gorm:"type:varchar(20);not null"`
	Observacao string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VisitaModel) TableName() string {
	return "visitas"
}

// ToDomain converts the persistence model to a domain Visita
func (m *VisitaModel) ToDomain() *crm.Visita {
	return &crm.Visita{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ClienteID:         m.ClienteID,
		VendedorID:        m.VendedorID,
		DataHora:          m.DataHora,
		TipoVisita:        m.TipoVisita,
		Status:            m.Status,
		Observacao:        m.Observacao,
	}
}

// FromDomain populates the persistence model from a domain Visita
func (m *VisitaModel) FromDomain(v *crm.Visita) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.ClienteID = v.ClienteID
	m.VendedorID = v.VendedorID
	m.DataHora = v.DataHora
	m.TipoVisita = v.TipoVisita
	m.Status = v.Status
	m.Observacao = v.Observacao
}

// VisitaModelFromDomain creates a new persistence model from a domain Visita
func VisitaModelFromDomain(v *crm.Visita) *VisitaModel {
	m := &VisitaModel{}
	m.FromDomain(v)
	return m
}

// FollowUpModel is the persistence model for the FollowUp entity
type FollowUpModel struct {
	BaseModel
	ClienteID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Mensagem  string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (FollowUpModel) TableName() string {
	return "follow_ups"
}

// ToDomain converts the persistence model to a domain FollowUp
func (m *FollowUpModel) ToDomain() *crm.FollowUp {
	return &crm.FollowUp{
		BaseEntity: m.BaseModel.ToDomain(),
		ClienteID:  m.ClienteID,
		UserID:     m.UserID,
		Mensagem:   m.Mensagem,
	}
}

// FollowUpModelFromDomain creates a new persistence model from a domain FollowUp
func FollowUpModelFromDomain(f *crm.FollowUp) *FollowUpModel {
	m := &FollowUpModel{}
	m.FromDomainBaseEntity(f.BaseEntity)
	m.ClienteID = f.ClienteID
	m.UserID = f.UserID
	m.Mensagem = f.Mensagem
	return m
}
