package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lojamae/backend/internal/domain/sales"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/persistence/models"
)

func setupOrcamentoTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.OrcamentoModel{}, &models.ItemOrcamentoModel{}))
	return db
}

func newTestOrcamento(t *testing.T) *sales.Orcamento {
	orcamento, err := sales.NewOrcamento(uuid.New(), uuid.New())
	require.NoError(t, err)
	_, err = orcamento.AddItem("cortina", "Cortina sala",
		decimal.NewFromFloat(2.5), decimal.NewFromFloat(2.0), decimal.NewFromInt(120))
	require.NoError(t, err)
	_, err = orcamento.AddItem("persiana", "Persiana quarto",
		decimal.NewFromFloat(1.2), decimal.NewFromFloat(1.5), decimal.NewFromInt(90))
	require.NoError(t, err)
	return orcamento
}

func TestGormOrcamentoRepository_SaveAndFindByID(t *testing.T) {
	db := setupOrcamentoTestDB(t)
	repo := NewGormOrcamentoRepository(db)
	ctx := context.Background()

	orcamento := newTestOrcamento(t)
	require.NoError(t, repo.Save(ctx, orcamento))

	retrieved, err := repo.FindByID(ctx, orcamento.ID)
	require.NoError(t, err)
	assert.Equal(t, orcamento.ID, retrieved.ID)
	assert.Equal(t, sales.OrcamentoStatusRascunho, retrieved.Status)
	require.Len(t, retrieved.Itens, 2)
	assert.True(t, orcamento.ValorTotal.Equal(retrieved.ValorTotal))
	assert.True(t, orcamento.ValorFinal.Equal(retrieved.ValorFinal))
}

func TestGormOrcamentoRepository_Save_ReplacesItems(t *testing.T) {
	db := setupOrcamentoTestDB(t)
	repo := NewGormOrcamentoRepository(db)
	ctx := context.Background()

	orcamento := newTestOrcamento(t)
	require.NoError(t, repo.Save(ctx, orcamento))

	require.NoError(t, orcamento.RemoveItem(orcamento.Itens[0].ID))
	require.NoError(t, repo.Save(ctx, orcamento))

	retrieved, err := repo.FindByID(ctx, orcamento.ID)
	require.NoError(t, err)
	require.Len(t, retrieved.Itens, 1)
	assert.Equal(t, "persiana", retrieved.Itens[0].TipoProduto)

	// no orphan rows left behind
	var count int64
	require.NoError(t, db.Model(&models.ItemOrcamentoModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormOrcamentoRepository_TransitionStatus(t *testing.T) {
	db := setupOrcamentoTestDB(t)
	repo := NewGormOrcamentoRepository(db)
	ctx := context.Background()

	orcamento := newTestOrcamento(t)
	require.NoError(t, repo.Save(ctx, orcamento))

	from := orcamento.Status
	require.NoError(t, orcamento.Apply(sales.OrcamentoEventEnviado))
	require.NoError(t, repo.TransitionStatus(ctx, orcamento, from))

	// status and transition timestamp land in the same write
	retrieved, err := repo.FindByID(ctx, orcamento.ID)
	require.NoError(t, err)
	assert.Equal(t, sales.OrcamentoStatusEnviado, retrieved.Status)
	assert.NotNil(t, retrieved.EnviadoAt)
}

func TestGormOrcamentoRepository_TransitionStatus_StaleFrom(t *testing.T) {
	db := setupOrcamentoTestDB(t)
	repo := NewGormOrcamentoRepository(db)
	ctx := context.Background()

	orcamento := newTestOrcamento(t)
	require.NoError(t, repo.Save(ctx, orcamento))

	stale := orcamento.Status
	require.NoError(t, orcamento.Apply(sales.OrcamentoEventEnviado))
	require.NoError(t, repo.TransitionStatus(ctx, orcamento, stale))

	// a caller still holding RASCUNHO lost the race: nothing is written
	loser, err := repo.FindByID(ctx, orcamento.ID)
	require.NoError(t, err)
	require.NoError(t, loser.Apply(sales.OrcamentoEventFechado))
	err = repo.TransitionStatus(ctx, loser, stale)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	retrieved, err := repo.FindByID(ctx, orcamento.ID)
	require.NoError(t, err)
	assert.Equal(t, sales.OrcamentoStatusEnviado, retrieved.Status)
	assert.Nil(t, retrieved.FechadoAt)

	missing := newTestOrcamento(t)
	err = repo.TransitionStatus(ctx, missing, missing.Status)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// A concurrent transition that lands after ours must survive: winning
// the guard never licenses a later full-row write with stale fields.
func TestGormOrcamentoRepository_TransitionStatus_KeepsNewerWrite(t *testing.T) {
	db := setupOrcamentoTestDB(t)
	repo := NewGormOrcamentoRepository(db)
	ctx := context.Background()

	orcamento := newTestOrcamento(t)
	require.NoError(t, repo.Save(ctx, orcamento))
	require.NoError(t, orcamento.Apply(sales.OrcamentoEventEnviado))
	require.NoError(t, repo.TransitionStatus(ctx, orcamento, sales.OrcamentoStatusRascunho))
	require.NoError(t, orcamento.Apply(sales.OrcamentoEventFechado))
	require.NoError(t, repo.TransitionStatus(ctx, orcamento, sales.OrcamentoStatusEnviado))

	// another actor concludes the installation
	winner, err := repo.FindByID(ctx, orcamento.ID)
	require.NoError(t, err)
	require.NoError(t, winner.Apply(sales.OrcamentoEventInstalacaoConcluida))
	require.NoError(t, repo.TransitionStatus(ctx, winner, sales.OrcamentoStatusFechado))

	// the first caller replays its stale state and is rejected
	err = repo.TransitionStatus(ctx, orcamento, sales.OrcamentoStatusEnviado)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	err = repo.Save(ctx, orcamento)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	retrieved, err := repo.FindByID(ctx, orcamento.ID)
	require.NoError(t, err)
	assert.Equal(t, sales.OrcamentoStatusInstalacaoConcluida, retrieved.Status)
}

func TestGormOrcamentoRepository_Save_StaleVersionRejected(t *testing.T) {
	db := setupOrcamentoTestDB(t)
	repo := NewGormOrcamentoRepository(db)
	ctx := context.Background()

	orcamento := newTestOrcamento(t)
	require.NoError(t, repo.Save(ctx, orcamento))

	fresh, err := repo.FindByID(ctx, orcamento.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, fresh))

	// the copy loaded before the second save now carries an old version
	err = repo.Save(ctx, orcamento)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestGormOrcamentoRepository_FindByCliente(t *testing.T) {
	db := setupOrcamentoTestDB(t)
	repo := NewGormOrcamentoRepository(db)
	ctx := context.Background()

	clienteID := uuid.New()
	first, err := sales.NewOrcamento(clienteID, uuid.New())
	require.NoError(t, err)
	second, err := sales.NewOrcamento(clienteID, uuid.New())
	require.NoError(t, err)
	other, err := sales.NewOrcamento(uuid.New(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	orcamentos, err := repo.FindByCliente(ctx, clienteID)
	require.NoError(t, err)
	assert.Len(t, orcamentos, 2)
	for _, o := range orcamentos {
		assert.Equal(t, clienteID, o.ClienteID)
	}
}

func TestGormOrcamentoRepository_FindByVendedor(t *testing.T) {
	db := setupOrcamentoTestDB(t)
	repo := NewGormOrcamentoRepository(db)
	ctx := context.Background()

	vendedorID := uuid.New()
	mine, err := sales.NewOrcamento(uuid.New(), vendedorID)
	require.NoError(t, err)
	other, err := sales.NewOrcamento(uuid.New(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, mine))
	require.NoError(t, repo.Save(ctx, other))

	orcamentos, total, err := repo.FindByVendedor(ctx, vendedorID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orcamentos, 1)
	assert.Equal(t, mine.ID, orcamentos[0].ID)
}
