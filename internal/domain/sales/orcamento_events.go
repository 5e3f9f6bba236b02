package sales

import (
	"github.com/shopspring/decimal"

	"github.com/lojamae/backend/internal/domain/shared"
)

const (
	EventTypeOrcamentoCriado         = "sales.orcamento.criado"
	EventTypeOrcamentoStatusAlterado = "sales.orcamento.status_alterado"
	EventTypeOrcamentoFechado        = "sales.orcamento.fechado"
	EventTypeChecklistConcluido      = "sales.checklist.concluido"
	EventTypeOrdemProducaoCriada     = "sales.ordem_producao.criada"
)

// OrcamentoCriadoEvent is raised when a new draft budget is created
type OrcamentoCriadoEvent struct {
	shared.BaseDomainEvent
	ClienteID  string
	VendedorID string
}

func NewOrcamentoCriadoEvent(o *Orcamento) *OrcamentoCriadoEvent {
	return &OrcamentoCriadoEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrcamentoCriado, "Orcamento", o.ID),
		ClienteID:       o.ClienteID.String(),
		VendedorID:      o.VendedorID.String(),
	}
}

// OrcamentoStatusAlteradoEvent records a lifecycle transition
type OrcamentoStatusAlteradoEvent struct {
	shared.BaseDomainEvent
	De      OrcamentoStatus
	Para    OrcamentoStatus
	Gatilho OrcamentoEvent
}

func NewOrcamentoStatusAlteradoEvent(o *Orcamento, de OrcamentoStatus, gatilho OrcamentoEvent) *OrcamentoStatusAlteradoEvent {
	return &OrcamentoStatusAlteradoEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrcamentoStatusAlterado, "Orcamento", o.ID),
		De:              de,
		Para:            o.Status,
		Gatilho:         gatilho,
	}
}

// OrcamentoFechadoEvent is raised when a budget closes as won. Downstream
// listeners create the installation checklist and production order.
type OrcamentoFechadoEvent struct {
	shared.BaseDomainEvent
	ClienteID  string
	VendedorID string
	ValorFinal decimal.Decimal
}

func NewOrcamentoFechadoEvent(o *Orcamento) *OrcamentoFechadoEvent {
	return &OrcamentoFechadoEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrcamentoFechado, "Orcamento", o.ID),
		ClienteID:       o.ClienteID.String(),
		VendedorID:      o.VendedorID.String(),
		ValorFinal:      o.ValorFinal,
	}
}

// ChecklistConcluidoEvent is raised when every checklist item is verified
type ChecklistConcluidoEvent struct {
	shared.BaseDomainEvent
	OrcamentoID string
}

func NewChecklistConcluidoEvent(c *ChecklistInstalacao) *ChecklistConcluidoEvent {
	return &ChecklistConcluidoEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChecklistConcluido, "ChecklistInstalacao", c.ID),
		OrcamentoID:     c.OrcamentoID.String(),
	}
}
