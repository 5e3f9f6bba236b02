package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLead(t *testing.T) *Lead {
	lead, err := NewLead("Maria Silva", "11999990000", "maria@example.com", "instagram")
	require.NoError(t, err)
	return lead
}

// ============================================
// LeadStatus Tests
// ============================================

func TestLeadStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  LeadStatus
		isValid bool
	}{
		{LeadStatusSemDono, true},
		{LeadStatusPrimeiroContato, true},
		{LeadStatusVisitaAgendada, true},
		{LeadStatusPreOrcamento, true},
		{LeadStatusOrcamentoEnviado, true},
		{LeadStatusContraProposta, true},
		{LeadStatusSemResposta, true},
		{LeadStatusFechado, true},
		{LeadStatusPerdido, true},
		{LeadStatus("INVALID"), false},
		{LeadStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestLeadStatus_IsTerminal(t *testing.T) {
	assert.True(t, LeadStatusFechado.IsTerminal())
	assert.True(t, LeadStatusPerdido.IsTerminal())
	assert.False(t, LeadStatusSemDono.IsTerminal())
	assert.False(t, LeadStatusOrcamentoEnviado.IsTerminal())
	assert.False(t, LeadStatusSemResposta.IsTerminal())
}

func TestNextLeadStatus_AllowedEdges(t *testing.T) {
	tests := []struct {
		from  LeadStatus
		event LeadEvent
		to    LeadStatus
	}{
		{LeadStatusSemDono, LeadEventReivindicado, LeadStatusPrimeiroContato},
		{LeadStatusPrimeiroContato, LeadEventVisitaAgendada, LeadStatusVisitaAgendada},
		{LeadStatusVisitaAgendada, LeadEventVisitaFinalizada, LeadStatusPreOrcamento},
		{LeadStatusPreOrcamento, LeadEventOrcamentoEnviado, LeadStatusOrcamentoEnviado},
		{LeadStatusOrcamentoEnviado, LeadEventContraProposta, LeadStatusContraProposta},
		{LeadStatusOrcamentoEnviado, LeadEventSemResposta, LeadStatusSemResposta},
		{LeadStatusOrcamentoEnviado, LeadEventFechado, LeadStatusFechado},
		// reopen edges are allowed, the pipeline is not strictly linear
		{LeadStatusContraProposta, LeadEventReaberto, LeadStatusOrcamentoEnviado},
		{LeadStatusSemResposta, LeadEventReaberto, LeadStatusOrcamentoEnviado},
		{LeadStatusContraProposta, LeadEventFechado, LeadStatusFechado},
		{LeadStatusSemResposta, LeadEventPerdido, LeadStatusPerdido},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.event), func(t *testing.T) {
			next, err := NextLeadStatus(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.to, next)
		})
	}
}

func TestNextLeadStatus_RejectsInvalidEdges(t *testing.T) {
	tests := []struct {
		from  LeadStatus
		event LeadEvent
	}{
		{LeadStatusSemDono, LeadEventFechado},
		{LeadStatusSemDono, LeadEventVisitaAgendada},
		{LeadStatusPrimeiroContato, LeadEventOrcamentoEnviado},
		{LeadStatusVisitaAgendada, LeadEventReivindicado},
		{LeadStatusPreOrcamento, LeadEventContraProposta},
		{LeadStatusOrcamentoEnviado, LeadEventReivindicado},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.event), func(t *testing.T) {
			next, err := NextLeadStatus(tt.from, tt.event)
			require.Error(t, err)
			assert.Equal(t, tt.from, next)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		})
	}
}

func TestNextLeadStatus_TerminalStatesRejectEverything(t *testing.T) {
	events := []LeadEvent{
		LeadEventReivindicado, LeadEventVisitaAgendada, LeadEventVisitaFinalizada,
		LeadEventOrcamentoEnviado, LeadEventContraProposta, LeadEventSemResposta,
		LeadEventReaberto, LeadEventFechado, LeadEventPerdido,
	}

	for _, terminal := range []LeadStatus{LeadStatusFechado, LeadStatusPerdido} {
		for _, event := range events {
			next, err := NextLeadStatus(terminal, event)
			assert.ErrorIs(t, err, shared.ErrTerminalState)
			assert.Equal(t, terminal, next, "terminal status must remain unchanged")
		}
	}
}

// ============================================
// Lead Tests
// ============================================

func TestNewLead(t *testing.T) {
	t.Run("creates lead without owner", func(t *testing.T) {
		lead := createTestLead(t)

		assert.Equal(t, LeadStatusSemDono, lead.Status)
		assert.Nil(t, lead.VendedorID)
		assert.Nil(t, lead.ClienteID)
		assert.Len(t, lead.GetDomainEvents(), 1)
	})

	t.Run("rejects empty nome", func(t *testing.T) {
		_, err := NewLead("", "11999990000", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty telefone", func(t *testing.T) {
		_, err := NewLead("Maria", "", "", "")
		assert.Error(t, err)
	})
}

func TestLead_Claim(t *testing.T) {
	t.Run("claims unowned lead", func(t *testing.T) {
		lead := createTestLead(t)
		vendedorID := uuid.New()

		err := lead.Claim(vendedorID)

		require.NoError(t, err)
		assert.Equal(t, LeadStatusPrimeiroContato, lead.Status)
		require.NotNil(t, lead.VendedorID)
		assert.Equal(t, vendedorID, *lead.VendedorID)
		assert.True(t, lead.IsOwnedBy(vendedorID))
	})

	t.Run("rejects claim of owned lead", func(t *testing.T) {
		lead := createTestLead(t)
		require.NoError(t, lead.Claim(uuid.New()))

		err := lead.Claim(uuid.New())

		assert.ErrorIs(t, err, shared.ErrInvalidTransition)
		assert.Equal(t, LeadStatusPrimeiroContato, lead.Status)
	})

	t.Run("rejects nil vendedor", func(t *testing.T) {
		lead := createTestLead(t)
		err := lead.Claim(uuid.Nil)
		assert.Error(t, err)
		assert.Equal(t, LeadStatusSemDono, lead.Status)
	})
}

func TestLead_Apply(t *testing.T) {
	t.Run("walks the happy path to FECHADO", func(t *testing.T) {
		lead := createTestLead(t)
		require.NoError(t, lead.Claim(uuid.New()))

		for _, event := range []LeadEvent{
			LeadEventVisitaAgendada,
			LeadEventVisitaFinalizada,
			LeadEventOrcamentoEnviado,
			LeadEventFechado,
		} {
			require.NoError(t, lead.Apply(event))
		}

		assert.Equal(t, LeadStatusFechado, lead.Status)
	})

	t.Run("invalid event leaves status unchanged", func(t *testing.T) {
		lead := createTestLead(t)
		require.NoError(t, lead.Claim(uuid.New()))

		err := lead.Apply(LeadEventOrcamentoEnviado)

		assert.Error(t, err)
		assert.Equal(t, LeadStatusPrimeiroContato, lead.Status)
	})
}

func TestLead_ShouldAdvanceOnVisita(t *testing.T) {
	t.Run("advances early stage lead", func(t *testing.T) {
		lead := createTestLead(t)
		require.NoError(t, lead.Claim(uuid.New()))
		assert.True(t, lead.ShouldAdvanceOnVisita())
	})

	t.Run("does not regress a lead past the visit stage", func(t *testing.T) {
		lead := createTestLead(t)
		require.NoError(t, lead.Claim(uuid.New()))
		require.NoError(t, lead.Apply(LeadEventVisitaAgendada))
		require.NoError(t, lead.Apply(LeadEventVisitaFinalizada))
		require.NoError(t, lead.Apply(LeadEventOrcamentoEnviado))

		assert.False(t, lead.ShouldAdvanceOnVisita())
	})

	t.Run("does not touch a closed lead", func(t *testing.T) {
		lead := createTestLead(t)
		require.NoError(t, lead.Claim(uuid.New()))
		require.NoError(t, lead.Apply(LeadEventVisitaAgendada))
		require.NoError(t, lead.Apply(LeadEventVisitaFinalizada))
		require.NoError(t, lead.Apply(LeadEventOrcamentoEnviado))
		require.NoError(t, lead.Apply(LeadEventFechado))

		assert.False(t, lead.ShouldAdvanceOnVisita())
	})
}
