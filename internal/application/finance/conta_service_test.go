package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/shared"
)

// MockContaRepository is a mock implementation of finance.ContaRepository
type MockContaRepository struct {
	mock.Mock
}

func (m *MockContaRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Conta, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Conta), args.Error(1)
}

func (m *MockContaRepository) FindAll(ctx context.Context, tipo finance.TipoConta, filter shared.Filter) ([]finance.Conta, int64, error) {
	args := m.Called(ctx, tipo, filter)
	return args.Get(0).([]finance.Conta), args.Get(1).(int64), args.Error(2)
}

func (m *MockContaRepository) FindPendentesVencidas(ctx context.Context, ref time.Time) ([]finance.Conta, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).([]finance.Conta), args.Error(1)
}

func (m *MockContaRepository) FindByOrigem(ctx context.Context, origem finance.OrigemConta, origemID uuid.UUID) ([]finance.Conta, error) {
	args := m.Called(ctx, origem, origemID)
	return args.Get(0).([]finance.Conta), args.Error(1)
}

func (m *MockContaRepository) Save(ctx context.Context, conta *finance.Conta) error {
	args := m.Called(ctx, conta)
	return args.Error(0)
}

func (m *MockContaRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to finance.ContaStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

// ============================================================================
// Helpers
// ============================================================================

func financeiroSession() identity.Session {
	return identity.NewSession(uuid.New(), "Financeiro", "financeiro@lojamae.com.br", identity.RoleFinanceiro)
}

func newContaService(contaRepo *MockContaRepository) *ContaService {
	return NewContaService(contaRepo, authz.NewGate(), zap.NewNop())
}

func pendenteConta(t *testing.T, vencimento time.Time) *finance.Conta {
	t.Helper()
	conta, err := finance.NewConta(finance.ContaPagar, "Aluguel da loja",
		decimal.NewFromInt(3500), vencimento, finance.OrigemManual, nil)
	require.NoError(t, err)
	return conta
}

// ============================================================================
// CreateConta
// ============================================================================

func TestContaService_CreateConta(t *testing.T) {
	contaRepo := new(MockContaRepository)
	service := newContaService(contaRepo)

	contaRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Conta")).Return(nil)

	conta, err := service.CreateConta(context.Background(), financeiroSession(), CreateContaInput{
		Tipo:       finance.ContaReceber,
		Descricao:  "Entrada orcamento 1020",
		Valor:      decimal.NewFromInt(1500),
		Vencimento: time.Now().Add(7 * 24 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, finance.ContaStatusPendente, conta.Status)
	assert.Equal(t, finance.OrigemManual, conta.Origem)
	assert.Nil(t, conta.OrigemID)
}

func TestContaService_CreateConta_VendedorForbidden(t *testing.T) {
	contaRepo := new(MockContaRepository)
	service := newContaService(contaRepo)

	vendedor := identity.NewSession(uuid.New(), "Vendedor", "vendedor@lojamae.com.br", identity.RoleVendedor)
	_, err := service.CreateConta(context.Background(), vendedor, CreateContaInput{
		Tipo:       finance.ContaPagar,
		Descricao:  "x",
		Valor:      decimal.NewFromInt(1),
		Vencimento: time.Now(),
	})

	assert.ErrorIs(t, err, shared.ErrForbidden)
	contaRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ============================================================================
// Settling
// ============================================================================

func TestContaService_PagarConta(t *testing.T) {
	contaRepo := new(MockContaRepository)
	service := newContaService(contaRepo)

	conta := pendenteConta(t, time.Now().Add(24*time.Hour))
	contaRepo.On("FindByID", mock.Anything, conta.ID).Return(conta, nil)
	contaRepo.On("TransitionStatus", mock.Anything, conta.ID,
		finance.ContaStatusPendente, finance.ContaStatusPaga).Return(nil)

	paga, err := service.PagarConta(context.Background(), financeiroSession(), conta.ID)

	require.NoError(t, err)
	assert.Equal(t, finance.ContaStatusPaga, paga.Status)
	assert.NotNil(t, paga.PagaAt)
	contaRepo.AssertExpectations(t)
}

func TestContaService_PagarConta_AlreadyPaga(t *testing.T) {
	contaRepo := new(MockContaRepository)
	service := newContaService(contaRepo)

	conta := pendenteConta(t, time.Now())
	require.NoError(t, conta.Pagar())
	contaRepo.On("FindByID", mock.Anything, conta.ID).Return(conta, nil)

	_, err := service.PagarConta(context.Background(), financeiroSession(), conta.ID)

	assert.ErrorIs(t, err, shared.ErrTerminalState)
	contaRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestContaService_PagarConta_LostRace(t *testing.T) {
	contaRepo := new(MockContaRepository)
	service := newContaService(contaRepo)

	conta := pendenteConta(t, time.Now())
	contaRepo.On("FindByID", mock.Anything, conta.ID).Return(conta, nil)
	contaRepo.On("TransitionStatus", mock.Anything, conta.ID,
		finance.ContaStatusPendente, finance.ContaStatusPaga).
		Return(shared.ErrConcurrencyConflict)

	_, err := service.PagarConta(context.Background(), financeiroSession(), conta.ID)

	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

// ============================================================================
// Overdue sweep
// ============================================================================

func TestContaService_MarcarVencidas(t *testing.T) {
	contaRepo := new(MockContaRepository)
	service := newContaService(contaRepo)

	ref := time.Now()
	a := pendenteConta(t, ref.Add(-48*time.Hour))
	b := pendenteConta(t, ref.Add(-24*time.Hour))
	contaRepo.On("FindPendentesVencidas", mock.Anything, ref).Return([]finance.Conta{*a, *b}, nil)
	contaRepo.On("TransitionStatus", mock.Anything, a.ID,
		finance.ContaStatusPendente, finance.ContaStatusVencida).Return(nil)
	contaRepo.On("TransitionStatus", mock.Anything, b.ID,
		finance.ContaStatusPendente, finance.ContaStatusVencida).Return(nil)

	result, err := service.MarcarVencidas(context.Background(), financeiroSession(), ref)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Marcadas)
	contaRepo.AssertExpectations(t)
}

func TestContaService_MarcarVencidas_SkipsSettledMidSweep(t *testing.T) {
	contaRepo := new(MockContaRepository)
	service := newContaService(contaRepo)

	ref := time.Now()
	a := pendenteConta(t, ref.Add(-48*time.Hour))
	b := pendenteConta(t, ref.Add(-24*time.Hour))
	contaRepo.On("FindPendentesVencidas", mock.Anything, ref).Return([]finance.Conta{*a, *b}, nil)
	// a was paid between the query and the sweep; only b is marked
	contaRepo.On("TransitionStatus", mock.Anything, a.ID,
		finance.ContaStatusPendente, finance.ContaStatusVencida).
		Return(shared.ErrConcurrencyConflict)
	contaRepo.On("TransitionStatus", mock.Anything, b.ID,
		finance.ContaStatusPendente, finance.ContaStatusVencida).Return(nil)

	result, err := service.MarcarVencidas(context.Background(), financeiroSession(), ref)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Marcadas)
}

func TestContaService_ListContas_InvalidTipo(t *testing.T) {
	contaRepo := new(MockContaRepository)
	service := newContaService(contaRepo)

	_, _, err := service.ListContas(context.Background(), financeiroSession(), finance.TipoConta("OUTRO"), shared.DefaultFilter())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TIPO", domainErr.Code)
}
