package procurement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/shared"
)

func newFornecedorService(fornecedorRepo *MockFornecedorRepository) *FornecedorService {
	return NewFornecedorService(fornecedorRepo, authz.NewGate(), zap.NewNop())
}

func TestFornecedorService_CreateFornecedor_NormalizesCNPJ(t *testing.T) {
	fornecedorRepo := new(MockFornecedorRepository)
	service := newFornecedorService(fornecedorRepo)

	fornecedorRepo.On("FindByCNPJ", mock.Anything, "14200166000187").Return(nil, shared.ErrNotFound)
	fornecedorRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.Fornecedor")).Return(nil)

	fornecedor, err := service.CreateFornecedor(context.Background(), compradorSession(), CreateFornecedorInput{
		RazaoSocial: "Tecidos Santa Clara Ltda",
		CNPJ:        "14.200.166/0001-87",
		Email:       "vendas@santaclara.com.br",
	})

	require.NoError(t, err)
	assert.Equal(t, "14200166000187", fornecedor.CNPJ)
	assert.Equal(t, "vendas@santaclara.com.br", fornecedor.Email)
	assert.True(t, fornecedor.Active)
}

func TestFornecedorService_CreateFornecedor_CNPJTaken(t *testing.T) {
	fornecedorRepo := new(MockFornecedorRepository)
	service := newFornecedorService(fornecedorRepo)

	existing := registeredFornecedor(t, "14200166000187")
	fornecedorRepo.On("FindByCNPJ", mock.Anything, "14200166000187").Return(existing, nil)

	_, err := service.CreateFornecedor(context.Background(), compradorSession(), CreateFornecedorInput{
		RazaoSocial: "Outra Razao",
		CNPJ:        "14200166000187",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CNPJ_TAKEN", domainErr.Code)
	fornecedorRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFornecedorService_UpdateFornecedor_Partial(t *testing.T) {
	fornecedorRepo := new(MockFornecedorRepository)
	service := newFornecedorService(fornecedorRepo)

	fornecedor := registeredFornecedor(t, "14200166000187")
	fornecedor.Email = "antigo@santaclara.com.br"
	fornecedorRepo.On("FindByID", mock.Anything, fornecedor.ID).Return(fornecedor, nil)
	fornecedorRepo.On("Save", mock.Anything, fornecedor).Return(nil)

	telefone := "(54) 3222-1100"
	updated, err := service.UpdateFornecedor(context.Background(), compradorSession(), fornecedor.ID, UpdateFornecedorInput{
		Telefone: &telefone,
	})

	require.NoError(t, err)
	assert.Equal(t, telefone, updated.Telefone)
	// untouched fields keep their values
	assert.Equal(t, "antigo@santaclara.com.br", updated.Email)
}

func TestFornecedorService_DeactivateFornecedor(t *testing.T) {
	fornecedorRepo := new(MockFornecedorRepository)
	service := newFornecedorService(fornecedorRepo)

	fornecedor := registeredFornecedor(t, "14200166000187")
	fornecedorRepo.On("FindByID", mock.Anything, fornecedor.ID).Return(fornecedor, nil)
	fornecedorRepo.On("Save", mock.Anything, fornecedor).Return(nil)

	err := service.DeactivateFornecedor(context.Background(), compradorSession(), fornecedor.ID)

	require.NoError(t, err)
	assert.False(t, fornecedor.Active)
}

func TestFornecedorService_Anonymous(t *testing.T) {
	fornecedorRepo := new(MockFornecedorRepository)
	service := newFornecedorService(fornecedorRepo)

	_, _, err := service.ListFornecedores(context.Background(), identity.Anonymous(), shared.DefaultFilter())

	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}
