package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojamae/backend/internal/domain/shared"
)

func newClosedOrcamento(t *testing.T, itemCount int) *Orcamento {
	t.Helper()
	o := newDraftOrcamento(t)
	for i := 0; i < itemCount; i++ {
		_, err := o.AddItem("PERSIANA", "Persiana rolô",
			decimal.NewFromInt(2), decimal.NewFromInt(1), decimal.NewFromInt(90))
		require.NoError(t, err)
	}
	require.NoError(t, o.Apply(OrcamentoEventEnviado))
	require.NoError(t, o.Apply(OrcamentoEventFechado))
	return o
}

// ============================================================================
// ChecklistInstalacao Tests
// ============================================================================

func TestNewChecklistInstalacao(t *testing.T) {
	o := newClosedOrcamento(t, 3)

	c, err := NewChecklistInstalacao(o)
	require.NoError(t, err)
	assert.Equal(t, ChecklistStatusPendente, c.Status)
	assert.Equal(t, o.ID, c.OrcamentoID)
	require.Len(t, c.ItensConferidos, 3)
	for idx, item := range c.ItensConferidos {
		assert.Equal(t, o.Itens[idx].ID, item.ItemID)
		assert.Equal(t, o.Itens[idx].Descricao, item.Descricao)
		assert.False(t, item.Conferido)
	}
}

func TestNewChecklistInstalacao_RequiresClosedOrcamento(t *testing.T) {
	draft := newDraftOrcamento(t)
	_, err := draft.AddItem("CORTINA", "Cortina voil",
		decimal.NewFromInt(3), decimal.NewFromInt(2), decimal.NewFromInt(40))
	require.NoError(t, err)

	_, err = NewChecklistInstalacao(draft)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	_, err = NewChecklistInstalacao(nil)
	assert.Error(t, err)
}

func TestChecklistInstalacao_SnapshotIsIndependent(t *testing.T) {
	o := newClosedOrcamento(t, 2)
	c, err := NewChecklistInstalacao(o)
	require.NoError(t, err)

	// mutating the budget item afterwards must not reach the snapshot
	o.Itens[0].Descricao = "alterada depois"
	assert.Equal(t, "Persiana rolô", c.ItensConferidos[0].Descricao)
}

func TestChecklistInstalacao_Agendar(t *testing.T) {
	o := newClosedOrcamento(t, 1)
	c, err := NewChecklistInstalacao(o)
	require.NoError(t, err)

	instalador := uuid.New()
	data := time.Now().Add(48 * time.Hour)
	require.NoError(t, c.Agendar(instalador, data))
	assert.True(t, c.IsAssignedTo(instalador))
	assert.False(t, c.IsAssignedTo(uuid.New()))

	err = c.Agendar(uuid.Nil, data)
	assert.Error(t, err)
}

func TestChecklistInstalacao_ConferirItem(t *testing.T) {
	o := newClosedOrcamento(t, 2)
	c, err := NewChecklistInstalacao(o)
	require.NoError(t, err)

	first := c.ItensConferidos[0].ID
	second := c.ItensConferidos[1].ID

	require.NoError(t, c.ConferirItem(first, "instalada sem ajustes"))
	assert.Equal(t, ChecklistStatusEmAndamento, c.Status)
	assert.True(t, c.ItensConferidos[0].Conferido)
	assert.NotNil(t, c.ItensConferidos[0].ConferidoAt)

	err = c.ConferirItem(first, "")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ITEM_ALREADY_CHECKED", domainErr.Code)

	err = c.ConferirItem(uuid.New(), "")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ITEM_NOT_FOUND", domainErr.Code)

	require.NoError(t, c.ConferirItem(second, ""))
	assert.Equal(t, ChecklistStatusConcluido, c.Status)
	require.NotNil(t, c.ConcluidoAt)

	found := false
	for _, ev := range c.GetDomainEvents() {
		if ev.EventType() == EventTypeChecklistConcluido {
			found = true
		}
	}
	assert.True(t, found, "completion must raise ChecklistConcluidoEvent")

	err = c.ConferirItem(second, "")
	assert.ErrorIs(t, err, shared.ErrTerminalState)
}

// ============================================================================
// OrdemProducao Tests
// ============================================================================

func TestOrdemProducao_Lifecycle(t *testing.T) {
	o := newClosedOrcamento(t, 1)

	op, err := NewOrdemProducao(o, "Confecção persiana rolô 2x1")
	require.NoError(t, err)
	assert.Equal(t, OrdemProducaoStatusPendente, op.Status)
	assert.Len(t, op.GetDomainEvents(), 1)

	err = op.Concluir()
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	require.NoError(t, op.Iniciar())
	assert.Equal(t, OrdemProducaoStatusEmProducao, op.Status)

	err = op.Iniciar()
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	require.NoError(t, op.Concluir())
	assert.Equal(t, OrdemProducaoStatusConcluida, op.Status)
	assert.NotNil(t, op.ConcluidaAt)

	err = op.Cancelar("qualquer")
	assert.ErrorIs(t, err, shared.ErrTerminalState)
}

func TestOrdemProducao_Cancelar(t *testing.T) {
	o := newClosedOrcamento(t, 1)
	op, err := NewOrdemProducao(o, "")
	require.NoError(t, err)

	require.NoError(t, op.Cancelar("cliente desistiu da instalação"))
	assert.Equal(t, OrdemProducaoStatusCancelada, op.Status)
	assert.Equal(t, "cliente desistiu da instalação", op.MotivoCancelo)
}

func TestNewOrdemProducao_RequiresClosedOrcamento(t *testing.T) {
	draft := newDraftOrcamento(t)
	_, err := NewOrdemProducao(draft, "")
	assert.Error(t, err)
}
