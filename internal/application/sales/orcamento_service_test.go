package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/crm"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/sales"
	"github.com/lojamae/backend/internal/domain/shared"
)

// MockOrcamentoRepository is a mock implementation of sales.OrcamentoRepository
type MockOrcamentoRepository struct {
	mock.Mock
}

func (m *MockOrcamentoRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Orcamento, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Orcamento), args.Error(1)
}

func (m *MockOrcamentoRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Orcamento, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Orcamento), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrcamentoRepository) FindByVendedor(ctx context.Context, vendedorID uuid.UUID, filter shared.Filter) ([]sales.Orcamento, int64, error) {
	args := m.Called(ctx, vendedorID, filter)
	return args.Get(0).([]sales.Orcamento), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrcamentoRepository) FindByCliente(ctx context.Context, clienteID uuid.UUID) ([]sales.Orcamento, error) {
	args := m.Called(ctx, clienteID)
	return args.Get(0).([]sales.Orcamento), args.Error(1)
}

func (m *MockOrcamentoRepository) Save(ctx context.Context, orcamento *sales.Orcamento) error {
	args := m.Called(ctx, orcamento)
	return args.Error(0)
}

func (m *MockOrcamentoRepository) TransitionStatus(ctx context.Context, orcamento *sales.Orcamento, from sales.OrcamentoStatus) error {
	args := m.Called(ctx, orcamento, from)
	return args.Error(0)
}

func (m *MockOrcamentoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLeadRepository is a mock implementation of crm.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Lead, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadRepository) FindByVendedor(ctx context.Context, vendedorID uuid.UUID, filter shared.Filter) ([]crm.Lead, int64, error) {
	args := m.Called(ctx, vendedorID, filter)
	return args.Get(0).([]crm.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadRepository) FindOpenByCliente(ctx context.Context, clienteID uuid.UUID) (*crm.Lead, error) {
	args := m.Called(ctx, clienteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Claim(ctx context.Context, leadID, vendedorID uuid.UUID) error {
	args := m.Called(ctx, leadID, vendedorID)
	return args.Error(0)
}

func (m *MockLeadRepository) TransitionStatus(ctx context.Context, leadID uuid.UUID, from, to crm.LeadStatus) error {
	args := m.Called(ctx, leadID, from, to)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func vendedorSession() identity.Session {
	return identity.NewSession(uuid.New(), "Ana Lima", "ana@lojamae.com.br", identity.RoleVendedor)
}

func adminSession() identity.Session {
	return identity.NewSession(uuid.New(), "Rui Prado", "rui@lojamae.com.br", identity.RoleAdmin)
}

func newOrcamentoService(orcamentoRepo *MockOrcamentoRepository, leadRepo *MockLeadRepository) *OrcamentoService {
	return NewOrcamentoService(orcamentoRepo, leadRepo, authz.NewGate(), zap.NewNop())
}

func draftWithItems(t *testing.T, vendedorID uuid.UUID) *sales.Orcamento {
	orcamento, err := sales.NewOrcamento(uuid.New(), vendedorID)
	require.NoError(t, err)
	_, err = orcamento.AddItem("cortina", "Cortina sala",
		decimal.NewFromFloat(2.0), decimal.NewFromFloat(1.5), decimal.NewFromInt(100))
	require.NoError(t, err)
	return orcamento
}

// ============================================================================
// CreateOrcamento / items
// ============================================================================

func TestOrcamentoService_CreateOrcamento(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	orcamentoRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Orcamento")).Return(nil)

	orcamento, err := service.CreateOrcamento(context.Background(), session, CreateOrcamentoInput{
		ClienteID: uuid.New(),
		Itens: []ItemInput{{
			TipoProduto:   "persiana",
			Descricao:     "Persiana quarto casal",
			Largura:       decimal.NewFromFloat(1.6),
			Altura:        decimal.NewFromFloat(1.4),
			PrecoUnitario: decimal.NewFromInt(95),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, session.UserID, orcamento.VendedorID)
	assert.Equal(t, sales.OrcamentoStatusRascunho, orcamento.Status)
	require.Len(t, orcamento.Itens, 1)
	// 1.6 x 1.4 = 2.24 m2 at 95 = 212.80
	assert.True(t, decimal.NewFromFloat(212.80).Equal(orcamento.ValorFinal))
}

func TestOrcamentoService_AddItem_NotOwner(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	other := draftWithItems(t, uuid.New())
	orcamentoRepo.On("FindByID", mock.Anything, other.ID).Return(other, nil)

	_, err := service.AddItem(context.Background(), session, AddItemInput{
		OrcamentoID: other.ID,
		Item: ItemInput{
			TipoProduto:   "cortina",
			Descricao:     "Extra",
			PrecoUnitario: decimal.NewFromInt(50),
		},
	})
	assert.ErrorIs(t, err, shared.ErrNotOwner)
	orcamentoRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ============================================================================
// Descontos
// ============================================================================

func TestOrcamentoService_ApplyDesconto_VendedorWithinLimit(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	orcamento := draftWithItems(t, session.UserID)
	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)
	orcamentoRepo.On("Save", mock.Anything, orcamento).Return(nil)

	result, err := service.ApplyDesconto(context.Background(), session, ApplyDescontoInput{
		OrcamentoID: orcamento.ID,
		Percentual:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.False(t, result.Alert)
	assert.True(t, decimal.NewFromInt(10).Equal(result.Orcamento.DescontoPercentual))
}

func TestOrcamentoService_ApplyDesconto_VendedorAboveLimit(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	orcamento := draftWithItems(t, session.UserID)
	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)

	_, err := service.ApplyDesconto(context.Background(), session, ApplyDescontoInput{
		OrcamentoID: orcamento.ID,
		Percentual:  decimal.NewFromInt(15),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DISCOUNT_REQUIRES_APPROVAL", domainErr.Code)
	orcamentoRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrcamentoService_ApproveDesconto_AdminOnly(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)

	_, err := service.ApproveDesconto(context.Background(), vendedorSession(), ApplyDescontoInput{
		OrcamentoID: uuid.New(),
		Percentual:  decimal.NewFromInt(15),
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestOrcamentoService_ApproveDesconto_HighDiscountAlert(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)

	orcamento := draftWithItems(t, uuid.New())
	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)
	orcamentoRepo.On("Save", mock.Anything, orcamento).Return(nil)

	result, err := service.ApproveDesconto(context.Background(), adminSession(), ApplyDescontoInput{
		OrcamentoID: orcamento.ID,
		Percentual:  decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.True(t, result.Alert)
}

// ============================================================================
// Transitions
// ============================================================================

func TestOrcamentoService_TransitionOrcamento_EnviadoSyncsLead(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	orcamento := draftWithItems(t, session.UserID)

	lead, err := crm.NewLead("Carlos Mota", "+55 11 97777-0002", "", "indicacao")
	require.NoError(t, err)
	require.NoError(t, lead.Claim(session.UserID))
	require.NoError(t, lead.Apply(crm.LeadEventVisitaAgendada))
	require.NoError(t, lead.Apply(crm.LeadEventVisitaFinalizada))
	lead.AttachCliente(orcamento.ClienteID)

	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)
	orcamentoRepo.On("TransitionStatus", mock.Anything, orcamento,
		sales.OrcamentoStatusRascunho).Return(nil)
	leadRepo.On("FindOpenByCliente", mock.Anything, orcamento.ClienteID).Return(lead, nil)
	leadRepo.On("TransitionStatus", mock.Anything, lead.ID,
		crm.LeadStatusPreOrcamento, crm.LeadStatusOrcamentoEnviado).Return(nil)

	updated, err := service.TransitionOrcamento(context.Background(), session, TransitionOrcamentoInput{
		OrcamentoID: orcamento.ID,
		Event:       sales.OrcamentoEventEnviado,
	})
	require.NoError(t, err)
	assert.Equal(t, sales.OrcamentoStatusEnviado, updated.Status)
	assert.NotNil(t, updated.EnviadoAt)
	leadRepo.AssertExpectations(t)
}

// A transition must commit status and timestamps in the one guarded
// write. A follow-up full-row save would overwrite whatever a concurrent
// transition wrote after our guard succeeded.
func TestOrcamentoService_TransitionOrcamento_NoFullRowSave(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	orcamento := draftWithItems(t, session.UserID)
	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)
	orcamentoRepo.On("TransitionStatus", mock.Anything, orcamento,
		sales.OrcamentoStatusRascunho).Return(nil)
	leadRepo.On("FindOpenByCliente", mock.Anything, orcamento.ClienteID).
		Return(nil, shared.ErrNotFound)

	updated, err := service.TransitionOrcamento(context.Background(), session, TransitionOrcamentoInput{
		OrcamentoID: orcamento.ID,
		Event:       sales.OrcamentoEventEnviado,
	})
	require.NoError(t, err)
	assert.NotNil(t, updated.EnviadoAt)
	orcamentoRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrcamentoService_TransitionOrcamento_EmptyDraftCannotSend(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	orcamento, err := sales.NewOrcamento(uuid.New(), session.UserID)
	require.NoError(t, err)
	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)

	_, err = service.TransitionOrcamento(context.Background(), session, TransitionOrcamentoInput{
		OrcamentoID: orcamento.ID,
		Event:       sales.OrcamentoEventEnviado,
	})
	require.Error(t, err)
	orcamentoRepo.AssertNotCalled(t, "TransitionStatus",
		mock.Anything, mock.Anything, mock.Anything)
}

func TestOrcamentoService_TransitionOrcamento_TerminalRejected(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	orcamento := draftWithItems(t, session.UserID)
	orcamento.Status = sales.OrcamentoStatusPerdido
	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)

	_, err := service.TransitionOrcamento(context.Background(), session, TransitionOrcamentoInput{
		OrcamentoID: orcamento.ID,
		Event:       sales.OrcamentoEventEnviado,
	})
	assert.ErrorIs(t, err, shared.ErrTerminalState)
}

func TestOrcamentoService_TransitionOrcamento_ConflictPropagates(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	orcamento := draftWithItems(t, session.UserID)
	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)
	orcamentoRepo.On("TransitionStatus", mock.Anything, orcamento,
		sales.OrcamentoStatusRascunho).
		Return(shared.ErrConcurrencyConflict)

	_, err := service.TransitionOrcamento(context.Background(), session, TransitionOrcamentoInput{
		OrcamentoID: orcamento.ID,
		Event:       sales.OrcamentoEventEnviado,
	})
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

// ============================================================================
// Reads
// ============================================================================

func TestOrcamentoService_GetOrcamento_OtherOwnerHiddenAsNotFound(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	other := draftWithItems(t, uuid.New())
	orcamentoRepo.On("FindByID", mock.Anything, other.ID).Return(other, nil)

	_, err := service.GetOrcamento(context.Background(), session, other.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrcamentoService_ListOrcamentos_VendedorScoped(t *testing.T) {
	orcamentoRepo := new(MockOrcamentoRepository)
	leadRepo := new(MockLeadRepository)
	service := newOrcamentoService(orcamentoRepo, leadRepo)
	session := vendedorSession()

	orcamentoRepo.On("FindByVendedor", mock.Anything, session.UserID, mock.Anything).
		Return([]sales.Orcamento{}, int64(0), nil)

	_, _, err := service.ListOrcamentos(context.Background(), session, shared.DefaultFilter())
	require.NoError(t, err)
	orcamentoRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}
