package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojamae/backend/internal/domain/sales"
)

// OrcamentoModel is the persistence model for the Orcamento aggregate
type OrcamentoModel struct {
	AggregateModel
	ClienteID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	VendedorID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	Status             sales.OrcamentoStatus `gorm:"type:varchar(30);not null;index"`
	ValorTotal         decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	DescontoPercentual decimal.Decimal       `gorm:"type:decimal(5,2);not null"`
	ValorFinal         decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	Observacoes        string                `gorm:"type:text"`
	EnviadoAt          *time.Time
	FechadoAt          *time.Time
	PerdidoAt          *time.Time
	Itens              []ItemOrcamentoModel `gorm:"foreignKey:OrcamentoID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrcamentoModel) TableName() string {
	return "orcamentos"
}

// ItemOrcamentoModel is the persistence model for budget line items
type ItemOrcamentoModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrcamentoID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	TipoProduto   string          `gorm:"type:varchar(100);not null"`
	Descricao     string          `gorm:"type:varchar(500);not null"`
	Largura       decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	Altura        decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	Metragem      decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecoFinal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemOrcamentoModel) TableName() string {
	return "orcamento_itens"
}

// ToDomain converts the persistence model to a domain Orcamento
func (m *OrcamentoModel) ToDomain() *sales.Orcamento {
	itens := make([]sales.ItemOrcamento, len(m.Itens))
	for i, item := range m.Itens {
		itens[i] = sales.ItemOrcamento{
			ID:            item.ID,
			OrcamentoID:   item.OrcamentoID,
			TipoProduto:   item.TipoProduto,
			Descricao:     item.Descricao,
			Largura:       item.Largura,
			Altura:        item.Altura,
			Metragem:      item.Metragem,
			PrecoUnitario: item.PrecoUnitario,
			PrecoFinal:    item.PrecoFinal,
			CreatedAt:     item.CreatedAt,
			UpdatedAt:     item.UpdatedAt,
		}
	}
	return &sales.Orcamento{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		ClienteID:          m.ClienteID,
		VendedorID:         m.VendedorID,
		Itens:              itens,
		Status:             m.Status,
		ValorTotal:         m.ValorTotal,
		DescontoPercentual: m.DescontoPercentual,
		ValorFinal:         m.ValorFinal,
		Observacoes:        m.Observacoes,
		EnviadoAt:          m.EnviadoAt,
		FechadoAt:          m.FechadoAt,
		PerdidoAt:          m.PerdidoAt,
	}
}

// FromDomain populates the persistence model from a domain Orcamento
func (m *OrcamentoModel) FromDomain(o *sales.Orcamento) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.ClienteID = o.ClienteID
	m.VendedorID = o.VendedorID
	m.Status = o.Status
	m.ValorTotal = o.ValorTotal
	m.DescontoPercentual = o.DescontoPercentual
	m.ValorFinal = o.ValorFinal
	m.Observacoes = o.Observacoes
	m.EnviadoAt = o.EnviadoAt
	m.FechadoAt = o.FechadoAt
	m.PerdidoAt = o.PerdidoAt

	m.Itens = make([]ItemOrcamentoModel, len(o.Itens))
	for i, item := range o.Itens {
		m.Itens[i] = ItemOrcamentoModel{
			ID:            item.ID,
			OrcamentoID:   item.OrcamentoID,
			TipoProduto:   item.TipoProduto,
			Descricao:     item.Descricao,
			Largura:       item.Largura,
			Altura:        item.Altura,
			Metragem:      item.Metragem,
			PrecoUnitario: item.PrecoUnitario,
			PrecoFinal:    item.PrecoFinal,
			CreatedAt:     item.CreatedAt,
			UpdatedAt:     item.UpdatedAt,
		}
	}
}

// OrcamentoModelFromDomain creates a new persistence model from a domain Orcamento
func OrcamentoModelFromDomain(o *sales.Orcamento) *OrcamentoModel {
	m := &OrcamentoModel{}
	m.FromDomain(o)
	return m
}

// ChecklistModel is the persistence model for the ChecklistInstalacao aggregate
type ChecklistModel struct {
	AggregateModel
	OrcamentoID  uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex"`
	InstaladorID *uuid.UUID            `gorm:"type:uuid;index"`
	Status       sales.ChecklistStatus `gorm:"type:varchar(20);not null"`
	DataAgendada *time.Time
	ConcluidoAt  *time.Time
	Observacoes  string               `gorm:"type:text"`
	Itens        []ItemConferidoModel `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ChecklistModel) TableName() string {
	return "checklists_instalacao"
}

// ItemConferidoModel is the persistence model for checklist snapshot items
type ItemConferidoModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ChecklistID uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID      uuid.UUID `gorm:"type:uuid;not null"`
	Descricao   string    `gorm:"type:varchar(500);not null"`
	TipoProduto string    `gorm:"type:varchar(100)"`
	Conferido   bool      `gorm:"not null;default:false"`
	ConferidoAt *time.Time
	Observacao  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ItemConferidoModel) TableName() string {
	return "checklist_itens"
}

// ToDomain converts the persistence model to a domain ChecklistInstalacao
func (m *ChecklistModel) ToDomain() *sales.ChecklistInstalacao {
	itens := make([]sales.ItemConferido, len(m.Itens))
	for i, item := range m.Itens {
		itens[i] = sales.ItemConferido{
			ID:          item.ID,
			ChecklistID: item.ChecklistID,
			ItemID:      item.ItemID,
			Descricao:   item.Descricao,
			TipoProduto: item.TipoProduto,
			Conferido:   item.Conferido,
			ConferidoAt: item.ConferidoAt,
			Observacao:  item.Observacao,
		}
	}
	return &sales.ChecklistInstalacao{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrcamentoID:       m.OrcamentoID,
		InstaladorID:      m.InstaladorID,
		Status:            m.Status,
		ItensConferidos:   itens,
		DataAgendada:      m.DataAgendada,
		ConcluidoAt:       m.ConcluidoAt,
		Observacoes:       m.Observacoes,
	}
}

// FromDomain populates the persistence model from a domain ChecklistInstalacao
func (m *ChecklistModel) FromDomain(c *sales.ChecklistInstalacao) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.OrcamentoID = c.OrcamentoID
	m.InstaladorID = c.InstaladorID
	m.Status = c.Status
	m.DataAgendada = c.DataAgendada
	m.ConcluidoAt = c.ConcluidoAt
	m.Observacoes = c.Observacoes

	m.Itens = make([]ItemConferidoModel, len(c.ItensConferidos))
	for i, item := range c.ItensConferidos {
		m.Itens[i] = ItemConferidoModel{
			ID:          item.ID,
			ChecklistID: item.ChecklistID,
			ItemID:      item.ItemID,
			Descricao:   item.Descricao,
			TipoProduto: item.TipoProduto,
			Conferido:   item.Conferido,
			ConferidoAt: item.ConferidoAt,
			Observacao:  item.Observacao,
		}
	}
}

// ChecklistModelFromDomain creates a new persistence model from a domain ChecklistInstalacao
func ChecklistModelFromDomain(c *sales.ChecklistInstalacao) *ChecklistModel {
	m := &ChecklistModel{}
	m.FromDomain(c)
	return m
}

// OrdemProducaoModel is the persistence model for the OrdemProducao aggregate
type OrdemProducaoModel struct {
	AggregateModel
	OrcamentoID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Status        sales.OrdemProducaoStatus `gorm:"type:varchar(20);not null;index"`
	Descricao     string                    `gorm:"type:text"`
	PrevisaoEm    *time.Time
	IniciadaAt    *time.Time
	ConcluidaAt   *time.Time
	CanceladaAt   *time.Time
	MotivoCancelo string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrdemProducaoModel) TableName() string {
	return "ordens_producao"
}

// ToDomain converts the persistence model to a domain OrdemProducao
func (m *OrdemProducaoModel) ToDomain() *sales.OrdemProducao {
	return &sales.OrdemProducao{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrcamentoID:       m.OrcamentoID,
		Status:            m.Status,
		Descricao:         m.Descricao,
		PrevisaoEm:        m.PrevisaoEm,
		IniciadaAt:        m.IniciadaAt,
		ConcluidaAt:       m.ConcluidaAt,
		CanceladaAt:       m.CanceladaAt,
		MotivoCancelo:     m.MotivoCancelo,
	}
}

// FromDomain populates the persistence model from a domain OrdemProducao
func (m *OrdemProducaoModel) FromDomain(op *sales.OrdemProducao) {
	m.FromDomainAggregateRoot(op.BaseAggregateRoot)
	m.OrcamentoID = op.OrcamentoID
	m.Status = op.Status
	m.Descricao = op.Descricao
	m.PrevisaoEm = op.PrevisaoEm
	m.IniciadaAt = op.IniciadaAt
	m.ConcluidaAt = op.ConcluidaAt
	m.CanceladaAt = op.CanceladaAt
	m.MotivoCancelo = op.MotivoCancelo
}

// OrdemProducaoModelFromDomain creates a new persistence model from a domain OrdemProducao
func OrdemProducaoModelFromDomain(op *sales.OrdemProducao) *OrdemProducaoModel {
	m := &OrdemProducaoModel{}
	m.FromDomain(op)
	return m
}
