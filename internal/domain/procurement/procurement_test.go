package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojamae/backend/internal/domain/shared"
)

// ============================================================================
// Fornecedor Tests
// ============================================================================

func TestNewFornecedor(t *testing.T) {
	f, err := NewFornecedor("Tecidos Brasil LTDA", "12.345.678/0001-95")
	require.NoError(t, err)
	assert.Equal(t, "12345678000195", f.CNPJ, "CNPJ must be normalized to digits")
	assert.True(t, f.Active)

	_, err = NewFornecedor("", "12345678000195")
	assert.Error(t, err)

	_, err = NewFornecedor("Tecidos Brasil LTDA", "123")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CNPJ", domainErr.Code)
}

// ============================================================================
// PedidoCompra Tests
// ============================================================================

func newDraftPedido(t *testing.T) *PedidoCompra {
	t.Helper()
	p, err := NewPedidoCompra(uuid.New(), uuid.New())
	require.NoError(t, err)
	return p
}

func TestPedidoCompra_AddItem(t *testing.T) {
	p := newDraftPedido(t)

	require.NoError(t, p.AddItem("Tecido blackout rolo 30m", decimal.NewFromInt(3), decimal.NewFromFloat(420.50)))
	assert.Equal(t, "1261.5", p.ValorTotal.String())

	err := p.AddItem("", decimal.NewFromInt(1), decimal.NewFromInt(10))
	assert.Error(t, err)
	err = p.AddItem("Trilho", decimal.Zero, decimal.NewFromInt(10))
	assert.Error(t, err)
}

func TestPedidoCompra_Lifecycle(t *testing.T) {
	p := newDraftPedido(t)

	err := p.Enviar()
	require.Error(t, err, "cannot send without items")

	require.NoError(t, p.AddItem("Motor tubular", decimal.NewFromInt(2), decimal.NewFromInt(380)))
	require.NoError(t, p.Enviar())
	assert.Equal(t, PedidoCompraStatusEnviado, p.Status)

	err = p.AddItem("Item tardio", decimal.NewFromInt(1), decimal.NewFromInt(5))
	assert.Error(t, err, "items locked after sending")

	require.NoError(t, p.Receber())
	assert.Equal(t, PedidoCompraStatusRecebido, p.Status)
	assert.NotNil(t, p.RecebidoAt)

	err = p.Cancelar()
	assert.ErrorIs(t, err, shared.ErrTerminalState)
}

func TestPedidoCompra_Cancelar(t *testing.T) {
	p := newDraftPedido(t)
	require.NoError(t, p.Cancelar())
	assert.Equal(t, PedidoCompraStatusCancelado, p.Status)

	err := p.Receber()
	assert.ErrorIs(t, err, shared.ErrTerminalState)
}

// ============================================================================
// NFe Tests
// ============================================================================

const chaveValida = "35200714200166000187550010000000046550000046"

func newNFe(t *testing.T) *NFe {
	t.Helper()
	n, err := NewNFe(chaveValida, "4655", "1", "14.200.166/0001-87", "Persianas SP LTDA",
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), decimal.NewFromFloat(1500.00), uuid.New())
	require.NoError(t, err)
	return n
}

func TestNewNFe(t *testing.T) {
	n := newNFe(t)
	assert.Equal(t, "14200166000187", n.EmitenteCNPJ)

	_, err := NewNFe("123", "1", "1", "14200166000187", "X", time.Now(), decimal.NewFromInt(10), uuid.New())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CHAVE_ACESSO", domainErr.Code)

	_, err = NewNFe(chaveValida, "1", "1", "14200166000187", "X", time.Now(), decimal.Zero, uuid.New())
	assert.Error(t, err)
}

func TestNFe_Parcelas_FromDuplicatas(t *testing.T) {
	n := newNFe(t)
	venc1 := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	venc2 := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	n.AddDuplicata("001", venc1, decimal.NewFromInt(750))
	n.AddDuplicata("002", venc2, decimal.NewFromInt(750))

	parcelas := n.Parcelas()
	require.Len(t, parcelas, 2)
	assert.Equal(t, venc1, parcelas[0].Vencimento)
	assert.Equal(t, venc2, parcelas[1].Vencimento)
}

func TestNFe_Parcelas_FallbackThirtyDays(t *testing.T) {
	n := newNFe(t)

	parcelas := n.Parcelas()
	require.Len(t, parcelas, 1)
	assert.Equal(t, n.DataEmissao.Add(PrazoPagamentoPadrao), parcelas[0].Vencimento)
	assert.True(t, parcelas[0].Valor.Equal(n.ValorTotal))
}
