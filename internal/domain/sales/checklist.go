package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// ChecklistStatus represents the status of an installation checklist
type ChecklistStatus string

const (
	ChecklistStatusPendente    ChecklistStatus = "PENDENTE"
	ChecklistStatusEmAndamento ChecklistStatus = "EM_ANDAMENTO"
	ChecklistStatusConcluido   ChecklistStatus = "CONCLUIDO"
)

// IsValid checks if the status is a valid ChecklistStatus
func (s ChecklistStatus) IsValid() bool {
	switch s {
	case ChecklistStatusPendente, ChecklistStatusEmAndamento, ChecklistStatusConcluido:
		return true
	}
	return false
}

// String returns the string representation of ChecklistStatus
func (s ChecklistStatus) String() string {
	return string(s)
}

// ItemConferido is a snapshot of a budget line item at checklist creation
// time, with its verification state. Later edits to the budget do not
// affect the snapshot.
type ItemConferido struct {
	ID          uuid.UUID
	ChecklistID uuid.UUID
	ItemID      uuid.UUID
	Descricao   string
	TipoProduto string
	Conferido   bool
	ConferidoAt *time.Time
	Observacao  string
}

// ChecklistInstalacao tracks the on-site installation of a closed budget
type ChecklistInstalacao struct {
	shared.BaseAggregateRoot
	OrcamentoID     uuid.UUID
	InstaladorID    *uuid.UUID
	Status          ChecklistStatus
	ItensConferidos []ItemConferido
	DataAgendada    *time.Time
	ConcluidoAt     *time.Time
	Observacoes     string
}

// NewChecklistInstalacao creates a checklist for a closed budget, snapshotting
// its line items as verification entries
func NewChecklistInstalacao(orcamento *Orcamento) (*ChecklistInstalacao, error) {
	if orcamento == nil {
		return nil, shared.NewDomainError("INVALID_ORCAMENTO", "Orcamento cannot be nil")
	}
	if !orcamento.Status.IsWon() {
		return nil, shared.NewDomainError("INVALID_STATE", "Checklist requires a closed orcamento")
	}
	if len(orcamento.Itens) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot create checklist for an orcamento without items")
	}

	c := &ChecklistInstalacao{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrcamentoID:       orcamento.ID,
		Status:            ChecklistStatusPendente,
		ItensConferidos:   make([]ItemConferido, 0, len(orcamento.Itens)),
	}
	for _, item := range orcamento.Itens {
		c.ItensConferidos = append(c.ItensConferidos, ItemConferido{
			ID:          uuid.New(),
			ChecklistID: c.ID,
			ItemID:      item.ID,
			Descricao:   item.Descricao,
			TipoProduto: item.TipoProduto,
		})
	}
	return c, nil
}

// Agendar schedules the installation and assigns the installer
func (c *ChecklistInstalacao) Agendar(instaladorID uuid.UUID, data time.Time) error {
	if c.Status == ChecklistStatusConcluido {
		return shared.ErrTerminalState
	}
	if instaladorID == uuid.Nil {
		return shared.NewDomainError("INVALID_INSTALADOR", "Instalador ID cannot be empty")
	}
	c.InstaladorID = &instaladorID
	c.DataAgendada = &data
	c.Touch()
	return nil
}

// ConferirItem marks a snapshot item as verified. The first verification
// moves the checklist to EM_ANDAMENTO; verifying the last pending item
// completes it.
func (c *ChecklistInstalacao) ConferirItem(itemID uuid.UUID, observacao string) error {
	if c.Status == ChecklistStatusConcluido {
		return shared.ErrTerminalState
	}

	found := false
	now := time.Now()
	for idx := range c.ItensConferidos {
		if c.ItensConferidos[idx].ItemID == itemID {
			if c.ItensConferidos[idx].Conferido {
				return shared.NewDomainError("ITEM_ALREADY_CHECKED", "Item already verified")
			}
			c.ItensConferidos[idx].Conferido = true
			c.ItensConferidos[idx].ConferidoAt = &now
			c.ItensConferidos[idx].Observacao = observacao
			found = true
			break
		}
	}
	if !found {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Checklist item not found")
	}

	c.Status = ChecklistStatusEmAndamento
	c.UpdatedAt = now
	if c.todosConferidos() {
		c.Status = ChecklistStatusConcluido
		c.ConcluidoAt = &now
		c.AddDomainEvent(NewChecklistConcluidoEvent(c))
	}
	return nil
}

func (c *ChecklistInstalacao) todosConferidos() bool {
	for _, item := range c.ItensConferidos {
		if !item.Conferido {
			return false
		}
	}
	return true
}

// IsAssignedTo reports whether the checklist belongs to the given installer
func (c *ChecklistInstalacao) IsAssignedTo(userID uuid.UUID) bool {
	return c.InstaladorID != nil && *c.InstaladorID == userID
}
