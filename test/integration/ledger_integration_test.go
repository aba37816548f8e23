//go:build integration

package integration

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/valueobject"
	"github.com/moneta-app/moneta/internal/infrastructure/postgres"
	"github.com/moneta-app/moneta/pkg/testutil"
)

func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "migrations")
}

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pg := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pg.Cleanup(t) })

	pg.RunMigrations(t, migrationsDir())
	return pg.Pool
}

func newTestAccount(t *testing.T, ownerID uuid.UUID) model.Account {
	t.Helper()
	account, err := model.NewAccount(ownerID, "Checking", "USD", model.AccountKindDepository, decimal.Zero)
	require.NoError(t, err)
	return account
}

func TestAccountRepo_SaveAndGet(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewAccountRepo(pool)
	ctx := context.Background()

	account := newTestAccount(t, uuid.New())
	require.NoError(t, repo.Save(ctx, account))

	retrieved, err := repo.GetAccount(ctx, account.ID())
	require.NoError(t, err)
	assert.Equal(t, account.ID(), retrieved.ID())
	assert.Equal(t, account.OwnerID(), retrieved.OwnerID())
	assert.Equal(t, account.Name(), retrieved.Name())
	assert.Equal(t, account.Currency(), retrieved.Currency())
	assert.Equal(t, account.Kind(), retrieved.Kind())
	assert.True(t, retrieved.Balance().IsZero())
	assert.Equal(t, 1, retrieved.Version())
}

func TestAccountRepo_UpdateBalance(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewAccountRepo(pool)
	ctx := context.Background()

	account := newTestAccount(t, uuid.New())
	require.NoError(t, repo.Save(ctx, account))

	require.NoError(t, repo.UpdateBalance(ctx, account.ID(), decimal.RequireFromString("250.75")))
	require.NoError(t, repo.UpdateBalance(ctx, account.ID(), decimal.RequireFromString("-100.25")))

	retrieved, err := repo.GetAccount(ctx, account.ID())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("150.50").Equal(retrieved.Balance()))
	assert.Equal(t, 3, retrieved.Version())
}

func TestAccountRepo_UpdateBalance_UnknownAccount(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewAccountRepo(pool)

	err := repo.UpdateBalance(context.Background(), uuid.New(), decimal.NewFromInt(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAccountRepo_ClosedAccountNotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewAccountRepo(pool)
	ctx := context.Background()

	account := newTestAccount(t, uuid.New())
	require.NoError(t, repo.Save(ctx, account))

	closed, err := account.Close(time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, closed))

	_, err = repo.GetAccount(ctx, account.ID())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	owned, err := repo.ListByOwner(ctx, account.OwnerID())
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestTransactionRepo_RoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	accounts := postgres.NewAccountRepo(pool)
	transactions := postgres.NewTransactionRepo(pool)
	ctx := context.Background()

	ownerID := uuid.New()
	account := newTestAccount(t, ownerID)
	require.NoError(t, accounts.Save(ctx, account))

	tx, err := model.NewTransaction(
		ownerID, valueobject.KindExpense, account.ID(), nil,
		decimal.RequireFromString("45.99"), decimal.Zero, "USD",
		nil, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "groceries",
	)
	require.NoError(t, err)
	require.NoError(t, transactions.Save(ctx, tx))

	retrieved, err := transactions.FindByID(ctx, tx.ID())
	require.NoError(t, err)
	assert.Equal(t, tx.Kind(), retrieved.Kind())
	assert.True(t, tx.Amount().Equal(retrieved.Amount()))
	assert.Equal(t, "groceries", retrieved.Note())

	listed, err := transactions.ListByAccount(ctx, account.ID(), time.Time{}, time.Time{}, 50, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, tx.ID(), listed[0].ID())

	require.NoError(t, transactions.Delete(ctx, tx.ID()))
	_, err = transactions.FindByID(ctx, tx.ID())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTradeRepo_ListOrderedByExecution(t *testing.T) {
	pool := setupTestDB(t)
	accounts := postgres.NewAccountRepo(pool)
	investments := postgres.NewInvestmentRepo(pool)
	trades := postgres.NewTradeRepo(pool)
	ctx := context.Background()

	ownerID := uuid.New()
	account := newTestAccount(t, ownerID)
	require.NoError(t, accounts.Save(ctx, account))

	inv, err := model.NewInvestment(ownerID, "ACME", model.ModePriced, "USD", nil)
	require.NoError(t, err)
	require.NoError(t, investments.Save(ctx, inv))

	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	later, err := model.NewTrade(inv.ID(), account.ID(), model.SideSell,
		decimal.NewFromInt(5), decimal.NewFromInt(120), decimal.NewFromInt(600), decimal.Zero, "USD", nil, base.Add(48*time.Hour))
	require.NoError(t, err)
	earlier, err := model.NewTrade(inv.ID(), account.ID(), model.SideBuy,
		decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromInt(1000), decimal.Zero, "USD", nil, base)
	require.NoError(t, err)

	// Insert out of order; the repo must return execution order.
	require.NoError(t, trades.Save(ctx, later))
	require.NoError(t, trades.Save(ctx, earlier))

	listed, err := trades.ListByInvestment(ctx, inv.ID())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, earlier.ID(), listed[0].ID())
	assert.Equal(t, later.ID(), listed[1].ID())
}

func TestValuationRepo_FindLatest(t *testing.T) {
	pool := setupTestDB(t)
	investments := postgres.NewInvestmentRepo(pool)
	valuations := postgres.NewValuationRepo(pool)
	ctx := context.Background()

	inv, err := model.NewInvestment(uuid.New(), "Pension pot", model.ModeManual, "GBP", nil)
	require.NoError(t, err)
	require.NoError(t, investments.Save(ctx, inv))

	_, err = valuations.FindLatest(ctx, inv.ID())
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	old := decimal.RequireFromString("24000")
	current := decimal.RequireFromString("25500")

	v1, err := model.NewValuation(inv.ID(), nil, &old, "GBP", nil, nil, base)
	require.NoError(t, err)
	v2, err := model.NewValuation(inv.ID(), nil, &current, "GBP", nil, nil, base.Add(30*24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, valuations.Save(ctx, v2))
	require.NoError(t, valuations.Save(ctx, v1))

	latest, err := valuations.FindLatest(ctx, inv.ID())
	require.NoError(t, err)
	require.NotNil(t, latest.Value())
	assert.True(t, current.Equal(*latest.Value()))
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	pool := setupTestDB(t)
	accounts := postgres.NewAccountRepo(pool)
	uow := postgres.NewUnitOfWork(pool)
	ctx := context.Background()

	account := newTestAccount(t, uuid.New())
	require.NoError(t, accounts.Save(ctx, account))

	boom := errors.New("boom")
	err := uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		if err := s.Accounts.UpdateBalance(ctx, account.ID(), decimal.NewFromInt(500)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	retrieved, err := accounts.GetAccount(ctx, account.ID())
	require.NoError(t, err)
	assert.True(t, retrieved.Balance().IsZero(), "balance write must roll back with the failed unit of work")
}

func TestUnitOfWork_CommitsBothLegsOfATransfer(t *testing.T) {
	pool := setupTestDB(t)
	accounts := postgres.NewAccountRepo(pool)
	uow := postgres.NewUnitOfWork(pool)
	ctx := context.Background()

	ownerID := uuid.New()
	src := newTestAccount(t, ownerID)
	dst := newTestAccount(t, ownerID)
	require.NoError(t, accounts.Save(ctx, src))
	require.NoError(t, accounts.Save(ctx, dst))

	err := uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		if err := s.Accounts.UpdateBalance(ctx, src.ID(), decimal.NewFromInt(-200)); err != nil {
			return err
		}
		return s.Accounts.UpdateBalance(ctx, dst.ID(), decimal.NewFromInt(200))
	})
	require.NoError(t, err)

	srcAfter, err := accounts.GetAccount(ctx, src.ID())
	require.NoError(t, err)
	dstAfter, err := accounts.GetAccount(ctx, dst.ID())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-200).Equal(srcAfter.Balance()))
	assert.True(t, decimal.NewFromInt(200).Equal(dstAfter.Balance()))
}
