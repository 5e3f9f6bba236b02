package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/sales"
	"github.com/lojamae/backend/internal/domain/shared"
)

// MockOrdemProducaoRepository is a mock implementation of sales.OrdemProducaoRepository
type MockOrdemProducaoRepository struct {
	mock.Mock
}

func (m *MockOrdemProducaoRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.OrdemProducao, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.OrdemProducao), args.Error(1)
}

func (m *MockOrdemProducaoRepository) FindByOrcamento(ctx context.Context, orcamentoID uuid.UUID) (*sales.OrdemProducao, error) {
	args := m.Called(ctx, orcamentoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.OrdemProducao), args.Error(1)
}

func (m *MockOrdemProducaoRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.OrdemProducao, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.OrdemProducao), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrdemProducaoRepository) Save(ctx context.Context, ordem *sales.OrdemProducao) error {
	args := m.Called(ctx, ordem)
	return args.Error(0)
}

func (m *MockOrdemProducaoRepository) TransitionStatus(ctx context.Context, ordem *sales.OrdemProducao, from sales.OrdemProducaoStatus) error {
	args := m.Called(ctx, ordem, from)
	return args.Error(0)
}

func newOrdemService(ordemRepo *MockOrdemProducaoRepository, orcamentoRepo *MockOrcamentoRepository) *OrdemProducaoService {
	return NewOrdemProducaoService(ordemRepo, orcamentoRepo, authz.NewGate(), zap.NewNop())
}

func pendingOrdem(t *testing.T) *sales.OrdemProducao {
	t.Helper()
	ordem, err := sales.NewOrdemProducao(closedOrcamento(t), "Cortinas sala")
	require.NoError(t, err)
	return ordem
}

func TestOrdemProducaoService_CreateOrdem(t *testing.T) {
	ordemRepo := new(MockOrdemProducaoRepository)
	orcamentoRepo := new(MockOrcamentoRepository)
	service := newOrdemService(ordemRepo, orcamentoRepo)

	orcamento := closedOrcamento(t)
	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)
	ordemRepo.On("FindByOrcamento", mock.Anything, orcamento.ID).Return(nil, shared.ErrNotFound)
	ordemRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.OrdemProducao")).Return(nil)

	ordem, err := service.CreateOrdem(context.Background(), adminSession(), CreateOrdemProducaoInput{
		OrcamentoID: orcamento.ID,
		Descricao:   "Persianas quarto",
	})
	require.NoError(t, err)
	assert.Equal(t, sales.OrdemProducaoStatusPendente, ordem.Status)
	assert.Equal(t, orcamento.ID, ordem.OrcamentoID)
}

func TestOrdemProducaoService_CreateOrdem_Duplicate(t *testing.T) {
	ordemRepo := new(MockOrdemProducaoRepository)
	orcamentoRepo := new(MockOrcamentoRepository)
	service := newOrdemService(ordemRepo, orcamentoRepo)

	orcamento := closedOrcamento(t)
	existing := pendingOrdem(t)
	orcamentoRepo.On("FindByID", mock.Anything, orcamento.ID).Return(orcamento, nil)
	ordemRepo.On("FindByOrcamento", mock.Anything, orcamento.ID).Return(existing, nil)

	_, err := service.CreateOrdem(context.Background(), adminSession(), CreateOrdemProducaoInput{
		OrcamentoID: orcamento.ID,
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ORDEM_ALREADY_EXISTS", domainErr.Code)
	ordemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Lifecycle mutations persist through the status-guarded write only: a
// full-row save here would let the losing side of Concluir vs Cancelar
// silently overwrite the winner.
func TestOrdemProducaoService_ConcluirOrdem_GuardedWrite(t *testing.T) {
	ordemRepo := new(MockOrdemProducaoRepository)
	orcamentoRepo := new(MockOrcamentoRepository)
	service := newOrdemService(ordemRepo, orcamentoRepo)

	ordem := pendingOrdem(t)
	require.NoError(t, ordem.Iniciar())
	ordemRepo.On("FindByID", mock.Anything, ordem.ID).Return(ordem, nil)
	ordemRepo.On("TransitionStatus", mock.Anything, ordem,
		sales.OrdemProducaoStatusEmProducao).Return(nil)

	updated, err := service.ConcluirOrdem(context.Background(), adminSession(), ordem.ID)
	require.NoError(t, err)
	assert.Equal(t, sales.OrdemProducaoStatusConcluida, updated.Status)
	assert.NotNil(t, updated.ConcluidaAt)
	ordemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrdemProducaoService_CancelarOrdem_LosesRace(t *testing.T) {
	ordemRepo := new(MockOrdemProducaoRepository)
	orcamentoRepo := new(MockOrcamentoRepository)
	service := newOrdemService(ordemRepo, orcamentoRepo)

	ordem := pendingOrdem(t)
	require.NoError(t, ordem.Iniciar())
	ordemRepo.On("FindByID", mock.Anything, ordem.ID).Return(ordem, nil)
	ordemRepo.On("TransitionStatus", mock.Anything, ordem,
		sales.OrdemProducaoStatusEmProducao).Return(shared.ErrConcurrencyConflict)

	_, err := service.CancelarOrdem(context.Background(), adminSession(), CancelOrdemProducaoInput{
		OrdemID: ordem.ID,
		Motivo:  "cliente desistiu",
	})
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestOrdemProducaoService_IniciarOrdem_InvalidFromTerminal(t *testing.T) {
	ordemRepo := new(MockOrdemProducaoRepository)
	orcamentoRepo := new(MockOrcamentoRepository)
	service := newOrdemService(ordemRepo, orcamentoRepo)

	ordem := pendingOrdem(t)
	require.NoError(t, ordem.Iniciar())
	require.NoError(t, ordem.Concluir())
	ordemRepo.On("FindByID", mock.Anything, ordem.ID).Return(ordem, nil)

	_, err := service.IniciarOrdem(context.Background(), adminSession(), ordem.ID)
	assert.ErrorIs(t, err, shared.ErrTerminalState)
	ordemRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrdemProducaoService_VendedorForbidden(t *testing.T) {
	ordemRepo := new(MockOrdemProducaoRepository)
	orcamentoRepo := new(MockOrcamentoRepository)
	service := newOrdemService(ordemRepo, orcamentoRepo)

	_, err := service.ConcluirOrdem(context.Background(), vendedorSession(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrForbidden)
	ordemRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
