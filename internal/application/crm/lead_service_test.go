package crm

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/crm"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/shared"
)

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

func newPoolLead(t *testing.T) *crm.Lead {
	lead, err := crm.NewLead("Carlos Mota", "+55 11 97777-0002", "carlos@example.com", "meta_ads")
	require.NoError(t, err)
	return lead
}

func newLeadService(repo *MockLeadRepository) *LeadService {
	return NewLeadService(repo, authz.NewGate(), zap.NewNop())
}

// ============================================================================
// ClaimLead
// ============================================================================

func TestLeadService_ClaimLead(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()

	lead := newPoolLead(t)
	require.NoError(t, lead.Claim(session.UserID))

	repo.On("Claim", mock.Anything, lead.ID, session.UserID).Return(nil)
	repo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	result, err := service.ClaimLead(context.Background(), session, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, crm.LeadStatusPrimeiroContato, result.Status)
	require.NotNil(t, result.VendedorID)
	assert.Equal(t, session.UserID, *result.VendedorID)
	repo.AssertExpectations(t)
}

func TestLeadService_ClaimLead_LostRace(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()
	leadID := uuid.New()

	repo.On("Claim", mock.Anything, leadID, session.UserID).Return(shared.ErrConcurrencyConflict)

	_, err := service.ClaimLead(context.Background(), session, leadID)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestLeadService_ClaimLead_Anonymous(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)

	_, err := service.ClaimLead(context.Background(), identity.Anonymous(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
	repo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadService_ClaimLead_ForbiddenRole(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := identity.NewSession(uuid.New(), "Ze Brito", "ze@lojamae.com.br", identity.RoleEstoquista)

	_, err := service.ClaimLead(context.Background(), session, uuid.New())
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

// ============================================================================
// TransitionLead
// ============================================================================

func TestLeadService_TransitionLead(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()

	lead := newPoolLead(t)
	require.NoError(t, lead.Claim(session.UserID))

	repo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	repo.On("TransitionStatus", mock.Anything, lead.ID,
		crm.LeadStatusPrimeiroContato, crm.LeadStatusVisitaAgendada).Return(nil)

	result, err := service.TransitionLead(context.Background(), session, TransitionLeadInput{
		LeadID: lead.ID,
		Event:  crm.LeadEventVisitaAgendada,
	})
	require.NoError(t, err)
	assert.Equal(t, crm.LeadStatusVisitaAgendada, result.Status)
	repo.AssertExpectations(t)
}

func TestLeadService_TransitionLead_InvalidEvent(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()

	lead := newPoolLead(t)
	require.NoError(t, lead.Claim(session.UserID))
	repo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	// FECHADO is not reachable from PRIMEIRO_CONTATO
	_, err := service.TransitionLead(context.Background(), session, TransitionLeadInput{
		LeadID: lead.ID,
		Event:  crm.LeadEventFechado,
	})
	require.Error(t, err)
	repo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadService_TransitionLead_TerminalLead(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()

	lead := newPoolLead(t)
	require.NoError(t, lead.Claim(session.UserID))
	lead.Status = crm.LeadStatusPerdido
	repo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	_, err := service.TransitionLead(context.Background(), session, TransitionLeadInput{
		LeadID: lead.ID,
		Event:  crm.LeadEventReaberto,
	})
	assert.ErrorIs(t, err, shared.ErrTerminalState)
}

func TestLeadService_TransitionLead_NotOwner(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()

	lead := newPoolLead(t)
	require.NoError(t, lead.Claim(uuid.New()))
	repo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	_, err := service.TransitionLead(context.Background(), session, TransitionLeadInput{
		LeadID: lead.ID,
		Event:  crm.LeadEventVisitaAgendada,
	})
	assert.ErrorIs(t, err, shared.ErrNotOwner)
}

func TestLeadService_TransitionLead_AdminBypassesOwnership(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)

	lead := newPoolLead(t)
	require.NoError(t, lead.Claim(uuid.New()))

	repo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	repo.On("TransitionStatus", mock.Anything, lead.ID,
		crm.LeadStatusPrimeiroContato, crm.LeadStatusVisitaAgendada).Return(nil)

	_, err := service.TransitionLead(context.Background(), adminSession(), TransitionLeadInput{
		LeadID: lead.ID,
		Event:  crm.LeadEventVisitaAgendada,
	})
	require.NoError(t, err)
}

// ============================================================================
// GetLead / ListLeads
// ============================================================================

func TestLeadService_GetLead_OtherOwnerHiddenAsNotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()

	lead := newPoolLead(t)
	require.NoError(t, lead.Claim(uuid.New()))
	repo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	_, err := service.GetLead(context.Background(), session, lead.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLeadService_GetLead_UnownedVisible(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()

	lead := newPoolLead(t)
	repo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	result, err := service.GetLead(context.Background(), session, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, crm.LeadStatusSemDono, result.Status)
}

func TestLeadService_ListLeads_VendedorSeesOnlyOwn(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()

	repo.On("FindByVendedor", mock.Anything, session.UserID, mock.Anything).
		Return([]crm.Lead{}, int64(0), nil)

	_, _, err := service.ListLeads(context.Background(), session, shared.DefaultFilter())
	require.NoError(t, err)
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestLeadService_ListLeads_AdminSeesAll(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)

	repo.On("FindAll", mock.Anything, mock.Anything).Return([]crm.Lead{}, int64(0), nil)

	_, _, err := service.ListLeads(context.Background(), adminSession(), shared.DefaultFilter())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLeadService_ListUnclaimedLeads_FiltersPool(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newLeadService(repo)
	session := vendedorSession()

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["status"] == crm.LeadStatusSemDono
	})).Return([]crm.Lead{}, int64(0), nil)

	_, _, err := service.ListUnclaimedLeads(context.Background(), session, shared.DefaultFilter())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
