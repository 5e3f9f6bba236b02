package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/persistence/models"
)

func setupContaTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.ContaModel{}))
	return db
}

func newTestConta(t *testing.T, tipo finance.TipoConta, vencimento time.Time) *finance.Conta {
	conta, err := finance.NewConta(tipo, "Duplicata fornecedor",
		decimal.NewFromInt(1500), vencimento, finance.OrigemManual, nil)
	require.NoError(t, err)
	return conta
}

func TestGormContaRepository_SaveAndFindByID(t *testing.T) {
	db := setupContaTestDB(t)
	repo := NewGormContaRepository(db)
	ctx := context.Background()

	conta := newTestConta(t, finance.ContaPagar, time.Now().AddDate(0, 1, 0))
	require.NoError(t, repo.Save(ctx, conta))

	retrieved, err := repo.FindByID(ctx, conta.ID)
	require.NoError(t, err)
	assert.Equal(t, conta.ID, retrieved.ID)
	assert.Equal(t, finance.ContaPagar, retrieved.Tipo)
	assert.Equal(t, finance.ContaStatusPendente, retrieved.Status)
	assert.True(t, conta.Valor.Equal(retrieved.Valor))
}

func TestGormContaRepository_FindAll_ByTipo(t *testing.T) {
	db := setupContaTestDB(t)
	repo := NewGormContaRepository(db)
	ctx := context.Background()

	vencimento := time.Now().AddDate(0, 1, 0)
	require.NoError(t, repo.Save(ctx, newTestConta(t, finance.ContaPagar, vencimento)))
	require.NoError(t, repo.Save(ctx, newTestConta(t, finance.ContaPagar, vencimento)))
	require.NoError(t, repo.Save(ctx, newTestConta(t, finance.ContaReceber, vencimento)))

	contas, total, err := repo.FindAll(ctx, finance.ContaPagar, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, contas, 2)
	for _, conta := range contas {
		assert.Equal(t, finance.ContaPagar, conta.Tipo)
	}
}

func TestGormContaRepository_FindPendentesVencidas(t *testing.T) {
	db := setupContaTestDB(t)
	repo := NewGormContaRepository(db)
	ctx := context.Background()

	ref := time.Now()
	overdue := newTestConta(t, finance.ContaPagar, ref.AddDate(0, 0, -5))
	future := newTestConta(t, finance.ContaPagar, ref.AddDate(0, 0, 5))
	paid := newTestConta(t, finance.ContaPagar, ref.AddDate(0, 0, -10))
	require.NoError(t, paid.Pagar())

	require.NoError(t, repo.Save(ctx, overdue))
	require.NoError(t, repo.Save(ctx, future))
	require.NoError(t, repo.Save(ctx, paid))

	contas, err := repo.FindPendentesVencidas(ctx, ref)
	require.NoError(t, err)
	require.Len(t, contas, 1)
	assert.Equal(t, overdue.ID, contas[0].ID)
}

func TestGormContaRepository_FindByOrigem(t *testing.T) {
	db := setupContaTestDB(t)
	repo := NewGormContaRepository(db)
	ctx := context.Background()

	nfeID := uuid.New()
	vencimento := time.Now().AddDate(0, 1, 0)

	parcela1, err := finance.NewConta(finance.ContaPagar, "NFe 46 parcela 001",
		decimal.NewFromInt(500), vencimento, finance.OrigemNFe, &nfeID)
	require.NoError(t, err)
	parcela2, err := finance.NewConta(finance.ContaPagar, "NFe 46 parcela 002",
		decimal.NewFromInt(500), vencimento.AddDate(0, 1, 0), finance.OrigemNFe, &nfeID)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, parcela1))
	require.NoError(t, repo.Save(ctx, parcela2))
	require.NoError(t, repo.Save(ctx, newTestConta(t, finance.ContaPagar, vencimento)))

	contas, err := repo.FindByOrigem(ctx, finance.OrigemNFe, nfeID)
	require.NoError(t, err)
	require.Len(t, contas, 2)
	assert.Equal(t, parcela1.ID, contas[0].ID)
	assert.Equal(t, parcela2.ID, contas[1].ID)
}

func TestGormContaRepository_TransitionStatus_Pagar(t *testing.T) {
	db := setupContaTestDB(t)
	repo := NewGormContaRepository(db)
	ctx := context.Background()

	conta := newTestConta(t, finance.ContaReceber, time.Now().AddDate(0, 1, 0))
	require.NoError(t, repo.Save(ctx, conta))

	err := repo.TransitionStatus(ctx, conta.ID, finance.ContaStatusPendente, finance.ContaStatusPaga)
	require.NoError(t, err)

	retrieved, err := repo.FindByID(ctx, conta.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.ContaStatusPaga, retrieved.Status)
	assert.NotNil(t, retrieved.PagaAt)
}

func TestGormContaRepository_TransitionStatus_StaleFrom(t *testing.T) {
	db := setupContaTestDB(t)
	repo := NewGormContaRepository(db)
	ctx := context.Background()

	conta := newTestConta(t, finance.ContaPagar, time.Now().AddDate(0, 1, 0))
	require.NoError(t, repo.Save(ctx, conta))
	require.NoError(t, repo.TransitionStatus(ctx, conta.ID, finance.ContaStatusPendente, finance.ContaStatusPaga))

	// already settled; a second settlement attempt must lose
	err := repo.TransitionStatus(ctx, conta.ID, finance.ContaStatusPendente, finance.ContaStatusPaga)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	err = repo.TransitionStatus(ctx, uuid.New(), finance.ContaStatusPendente, finance.ContaStatusPaga)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
