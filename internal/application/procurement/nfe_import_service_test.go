package procurement

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
	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/procurement"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/nfe"
)

// ============================================================================
// Mocks
// ============================================================================

// MockNFeRepository is a mock implementation of procurement.NFeRepository
type MockNFeRepository struct {
	mock.Mock
}

func (m *MockNFeRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.NFe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.NFe), args.Error(1)
}

func (m *MockNFeRepository) FindByChaveAcesso(ctx context.Context, chave string) (*procurement.NFe, error) {
	args := m.Called(ctx, chave)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.NFe), args.Error(1)
}

func (m *MockNFeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.NFe, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]procurement.NFe), args.Get(1).(int64), args.Error(2)
}

func (m *MockNFeRepository) Save(ctx context.Context, invoice *procurement.NFe) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockNFeRepository) SaveWithContas(ctx context.Context, invoice *procurement.NFe, contas []*finance.Conta) error {
	args := m.Called(ctx, invoice, contas)
	return args.Error(0)
}

// MockFornecedorRepository is a mock implementation of procurement.FornecedorRepository
type MockFornecedorRepository struct {
	mock.Mock
}

func (m *MockFornecedorRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Fornecedor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Fornecedor), args.Error(1)
}

func (m *MockFornecedorRepository) FindByCNPJ(ctx context.Context, cnpj string) (*procurement.Fornecedor, error) {
	args := m.Called(ctx, cnpj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Fornecedor), args.Error(1)
}

func (m *MockFornecedorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.Fornecedor, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]procurement.Fornecedor), args.Get(1).(int64), args.Error(2)
}

func (m *MockFornecedorRepository) Save(ctx context.Context, fornecedor *procurement.Fornecedor) error {
	args := m.Called(ctx, fornecedor)
	return args.Error(0)
}

func (m *MockFornecedorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ============================================================================
// Fixtures
// ============================================================================

const notaComDuplicatas = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35200714200166000187550010000000046550000046" versao="4.00">
      <ide>
        <nNF>4655</nNF>
        <serie>1</serie>
        <dhEmi>2026-07-10T09:30:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>14200166000187</CNPJ>
        <xNome>Tecidos Santa Clara Ltda</xNome>
      </emit>
      <det nItem="1">
        <prod>
          <cProd>TS-401</cProd>
          <xProd>Tecido blackout bege</xProd>
          <NCM>54077390</NCM>
          <uCom>M</uCom>
          <qCom>25.0000</qCom>
          <vUnCom>50.0000</vUnCom>
          <vProd>1250.00</vProd>
        </prod>
      </det>
      <total>
        <ICMSTot>
          <vNF>1250.00</vNF>
        </ICMSTot>
      </total>
      <cobr>
        <dup>
          <nDup>001</nDup>
          <dVenc>2026-08-10</dVenc>
          <vDup>625.00</vDup>
        </dup>
        <dup>
          <nDup>002</nDup>
          <dVenc>2026-09-10</dVenc>
          <vDup>625.00</vDup>
        </dup>
      </cobr>
    </infNFe>
  </NFe>
</nfeProc>`

const notaSemCobranca = `<?xml version="1.0" encoding="UTF-8"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe35200714200166000187550010000000046550000047" versao="4.00">
    <ide>
      <nNF>4656</nNF>
      <serie>1</serie>
      <dhEmi>2026-07-12T14:00:00-03:00</dhEmi>
    </ide>
    <emit>
      <CNPJ>02558157000162</CNPJ>
      <xNome>Aluminios do Vale SA</xNome>
    </emit>
    <total>
      <ICMSTot>
        <vNF>980.50</vNF>
      </ICMSTot>
    </total>
  </infNFe>
</NFe>`

const chaveNotaComDuplicatas = "35200714200166000187550010000000046550000046"

// ============================================================================
// Helpers
// ============================================================================

func compradorSession() identity.Session {
	return identity.NewSession(uuid.New(), "Comprador", "comprador@lojamae.com.br", identity.RoleComprador)
}

func newImportService(nfeRepo *MockNFeRepository, fornecedorRepo *MockFornecedorRepository) *NFeImportService {
	return NewNFeImportService(nfeRepo, fornecedorRepo,
		nfe.NewParser(), authz.NewGate(), zap.NewNop())
}

func registeredFornecedor(t *testing.T, cnpj string) *procurement.Fornecedor {
	t.Helper()
	fornecedor, err := procurement.NewFornecedor("Tecidos Santa Clara Ltda", cnpj)
	require.NoError(t, err)
	return fornecedor
}

// ============================================================================
// ImportNFe
// ============================================================================

func TestNFeImportService_ImportNFe_KnownFornecedor(t *testing.T) {
	nfeRepo := new(MockNFeRepository)
	fornecedorRepo := new(MockFornecedorRepository)
	service := newImportService(nfeRepo, fornecedorRepo)

	fornecedor := registeredFornecedor(t, "14200166000187")
	nfeRepo.On("FindByChaveAcesso", mock.Anything, chaveNotaComDuplicatas).Return(nil, shared.ErrNotFound)
	fornecedorRepo.On("FindByCNPJ", mock.Anything, "14200166000187").Return(fornecedor, nil)

	var contas []*finance.Conta
	nfeRepo.On("SaveWithContas", mock.Anything, mock.AnythingOfType("*procurement.NFe"),
		mock.AnythingOfType("[]*finance.Conta")).Run(func(args mock.Arguments) {
		contas = args.Get(2).([]*finance.Conta)
	}).Return(nil)

	result, err := service.ImportNFe(context.Background(), compradorSession(), ImportNFeInput{XML: []byte(notaComDuplicatas)})

	require.NoError(t, err)
	assert.Equal(t, chaveNotaComDuplicatas, result.ChaveAcesso)
	assert.False(t, result.FornecedorNovo)
	require.NotNil(t, result.FornecedorID)
	assert.Equal(t, fornecedor.ID, *result.FornecedorID)
	assert.Equal(t, 2, result.ContasGeradas)
	assert.Equal(t, "1250.00", result.ValorTotal)

	require.Len(t, contas, 2)
	for _, conta := range contas {
		assert.Equal(t, finance.ContaPagar, conta.Tipo)
		assert.Equal(t, finance.OrigemNFe, conta.Origem)
		require.NotNil(t, conta.OrigemID)
		assert.Equal(t, result.NFeID, *conta.OrigemID)
		assert.True(t, conta.Valor.Equal(decimal.RequireFromString("625.00")))
	}
	assert.Equal(t, "2026-08-10", contas[0].Vencimento.Format("2006-01-02"))
	assert.Equal(t, "2026-09-10", contas[1].Vencimento.Format("2006-01-02"))
	fornecedorRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestNFeImportService_ImportNFe_UnknownCNPJRegistersFornecedor(t *testing.T) {
	nfeRepo := new(MockNFeRepository)
	fornecedorRepo := new(MockFornecedorRepository)
	service := newImportService(nfeRepo, fornecedorRepo)

	nfeRepo.On("FindByChaveAcesso", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	fornecedorRepo.On("FindByCNPJ", mock.Anything, "02558157000162").Return(nil, shared.ErrNotFound)

	var novo *procurement.Fornecedor
	fornecedorRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.Fornecedor")).Run(func(args mock.Arguments) {
		novo = args.Get(1).(*procurement.Fornecedor)
	}).Return(nil)
	nfeRepo.On("SaveWithContas", mock.Anything, mock.AnythingOfType("*procurement.NFe"),
		mock.AnythingOfType("[]*finance.Conta")).Return(nil)

	result, err := service.ImportNFe(context.Background(), compradorSession(), ImportNFeInput{XML: []byte(notaSemCobranca)})

	require.NoError(t, err)
	assert.True(t, result.FornecedorNovo)
	require.NotNil(t, novo)
	assert.Equal(t, "Aluminios do Vale SA", novo.RazaoSocial)
	assert.Equal(t, "02558157000162", novo.CNPJ)
	assert.Equal(t, novo.ID, *result.FornecedorID)
}

func TestNFeImportService_ImportNFe_NoCobrancaOpensSingleConta(t *testing.T) {
	nfeRepo := new(MockNFeRepository)
	fornecedorRepo := new(MockFornecedorRepository)
	service := newImportService(nfeRepo, fornecedorRepo)

	fornecedor, err := procurement.NewFornecedor("Aluminios do Vale SA", "02558157000162")
	require.NoError(t, err)
	nfeRepo.On("FindByChaveAcesso", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	fornecedorRepo.On("FindByCNPJ", mock.Anything, "02558157000162").Return(fornecedor, nil)

	var contas []*finance.Conta
	nfeRepo.On("SaveWithContas", mock.Anything, mock.AnythingOfType("*procurement.NFe"),
		mock.AnythingOfType("[]*finance.Conta")).Run(func(args mock.Arguments) {
		contas = args.Get(2).([]*finance.Conta)
	}).Return(nil)

	result, err := service.ImportNFe(context.Background(), compradorSession(), ImportNFeInput{XML: []byte(notaSemCobranca)})

	require.NoError(t, err)
	assert.Equal(t, 1, result.ContasGeradas)
	require.Len(t, contas, 1)
	assert.True(t, contas[0].Valor.Equal(decimal.RequireFromString("980.50")))
	// single installment falls due 30 days after emission
	assert.Equal(t, "2026-08-11", contas[0].Vencimento.Format("2006-01-02"))
}

func TestNFeImportService_ImportNFe_DuplicateRejected(t *testing.T) {
	nfeRepo := new(MockNFeRepository)
	fornecedorRepo := new(MockFornecedorRepository)
	service := newImportService(nfeRepo, fornecedorRepo)

	existing := &procurement.NFe{ChaveAcesso: chaveNotaComDuplicatas}
	nfeRepo.On("FindByChaveAcesso", mock.Anything, chaveNotaComDuplicatas).Return(existing, nil)

	_, err := service.ImportNFe(context.Background(), compradorSession(), ImportNFeInput{XML: []byte(notaComDuplicatas)})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NFE_ALREADY_IMPORTED", domainErr.Code)
	nfeRepo.AssertNotCalled(t, "SaveWithContas", mock.Anything, mock.Anything, mock.Anything)
}

func TestNFeImportService_ImportNFe_MalformedXML(t *testing.T) {
	nfeRepo := new(MockNFeRepository)
	fornecedorRepo := new(MockFornecedorRepository)
	service := newImportService(nfeRepo, fornecedorRepo)

	_, err := service.ImportNFe(context.Background(), compradorSession(), ImportNFeInput{XML: []byte("<NFe><infNFe>")})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_NFE_XML", domainErr.Code)
	nfeRepo.AssertNotCalled(t, "FindByChaveAcesso", mock.Anything, mock.Anything)
}

func TestNFeImportService_ImportNFe_VendedorForbidden(t *testing.T) {
	nfeRepo := new(MockNFeRepository)
	fornecedorRepo := new(MockFornecedorRepository)
	service := newImportService(nfeRepo, fornecedorRepo)

	vendedor := identity.NewSession(uuid.New(), "Vendedor", "vendedor@lojamae.com.br", identity.RoleVendedor)
	_, err := service.ImportNFe(context.Background(), vendedor, ImportNFeInput{XML: []byte(notaComDuplicatas)})

	assert.ErrorIs(t, err, shared.ErrForbidden)
	nfeRepo.AssertNotCalled(t, "FindByChaveAcesso", mock.Anything, mock.Anything)
}

// Invoice and contas commit together: when the transactional save fails
// the error surfaces as-is and nothing is considered imported, so the
// same chave de acesso can be retried.
func TestNFeImportService_ImportNFe_AtomicSaveFailure(t *testing.T) {
	nfeRepo := new(MockNFeRepository)
	fornecedorRepo := new(MockFornecedorRepository)
	service := newImportService(nfeRepo, fornecedorRepo)

	fornecedor := registeredFornecedor(t, "14200166000187")
	nfeRepo.On("FindByChaveAcesso", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	fornecedorRepo.On("FindByCNPJ", mock.Anything, mock.Anything).Return(fornecedor, nil)
	nfeRepo.On("SaveWithContas", mock.Anything, mock.AnythingOfType("*procurement.NFe"),
		mock.AnythingOfType("[]*finance.Conta")).Return(assert.AnError)

	_, err := service.ImportNFe(context.Background(), compradorSession(), ImportNFeInput{XML: []byte(notaComDuplicatas)})

	assert.ErrorIs(t, err, assert.AnError)
	nfeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
