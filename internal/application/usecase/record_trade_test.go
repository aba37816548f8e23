package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/application/usecase"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/service"
)

func seedInvestment(t *testing.T, env *testEnv, ownerID uuid.UUID, mode model.InvestmentMode) model.Investment {
	t.Helper()
	inv, err := model.NewInvestment(ownerID, "Brokerage", mode, "USD", nil)
	require.NoError(t, err)
	require.NoError(t, env.investments.Save(context.Background(), inv))
	return inv
}

func newTradeUsecase(env *testEnv) *usecase.RecordTrade {
	engine := service.NewBalanceEngine(env.rates)
	positions := service.NewPositionEngine(env.rates)
	return usecase.NewRecordTrade(env.uow, engine, positions, env.publisher)
}

func TestRecordTrade_BuySpendsCash(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "5000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModePriced)
	uc := newTradeUsecase(env)

	resp, err := uc.Execute(context.Background(), dto.RecordTradeRequest{
		OwnerID:      owner,
		InvestmentID: inv.ID(),
		AccountID:    account.ID(),
		Side:         "buy",
		Quantity:     mustDec(t, "10"),
		Price:        mustDec(t, "100"),
		Amount:       mustDec(t, "1000"),
		Fee:          mustDec(t, "5"),
		Currency:     "USD",
		ExecutedAt:   time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, "buy", resp.Side)
	assert.True(t, env.accounts.balances[account.ID()].Equal(mustDec(t, "3995")))
	assert.Len(t, env.trades.trades, 1)
	assert.Len(t, env.publisher.publishedEvents, 1)
}

func TestRecordTrade_SellReceivesCash(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "5000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModePriced)
	uc := newTradeUsecase(env)
	ctx := context.Background()

	base := time.Now()
	_, err := uc.Execute(ctx, dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "buy", Quantity: mustDec(t, "10"), Price: mustDec(t, "100"),
		Amount: mustDec(t, "1000"), Currency: "USD", ExecutedAt: base,
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "sell", Quantity: mustDec(t, "4"), Price: mustDec(t, "150"),
		Amount: mustDec(t, "600"), Fee: mustDec(t, "2"), Currency: "USD",
		ExecutedAt: base.Add(time.Hour),
	})
	require.NoError(t, err)

	// 5000 - 1000 + (600 - 2).
	assert.True(t, env.accounts.balances[account.ID()].Equal(mustDec(t, "4598")))
	assert.Len(t, env.trades.trades, 2)
}

func TestRecordTrade_OversellRejectedBeforeAnyWrite(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "5000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModePriced)
	uc := newTradeUsecase(env)
	ctx := context.Background()

	base := time.Now()
	_, err := uc.Execute(ctx, dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "buy", Quantity: mustDec(t, "10"), Price: mustDec(t, "100"),
		Amount: mustDec(t, "1000"), Currency: "USD", ExecutedAt: base,
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "sell", Quantity: mustDec(t, "11"), Price: mustDec(t, "100"),
		Amount: mustDec(t, "1100"), Currency: "USD", ExecutedAt: base.Add(time.Hour),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvariant)

	// The rejected sell left no trace: balance and history are untouched.
	assert.True(t, env.accounts.balances[account.ID()].Equal(mustDec(t, "4000")))
	assert.Len(t, env.trades.trades, 1)
}

func TestRecordTrade_ManualInvestmentRejected(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "5000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModeManual)
	uc := newTradeUsecase(env)

	_, err := uc.Execute(context.Background(), dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "buy", Quantity: mustDec(t, "10"), Price: mustDec(t, "100"),
		Amount: mustDec(t, "1000"), Currency: "USD", ExecutedAt: time.Now(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteTrade_RejectsOrphaningSells(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "5000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModePriced)
	record := newTradeUsecase(env)
	engine := service.NewBalanceEngine(env.rates)
	positions := service.NewPositionEngine(env.rates)
	del := usecase.NewDeleteTrade(env.uow, engine, positions, env.publisher)
	ctx := context.Background()

	base := time.Now()
	buy, err := record.Execute(ctx, dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "buy", Quantity: mustDec(t, "10"), Price: mustDec(t, "100"),
		Amount: mustDec(t, "1000"), Currency: "USD", ExecutedAt: base,
	})
	require.NoError(t, err)
	_, err = record.Execute(ctx, dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "sell", Quantity: mustDec(t, "5"), Price: mustDec(t, "120"),
		Amount: mustDec(t, "600"), Currency: "USD", ExecutedAt: base.Add(time.Hour),
	})
	require.NoError(t, err)

	// Removing the buy would leave the sell without a position to sell from.
	err = del.Execute(ctx, dto.DeleteTradeRequest{OwnerID: owner, TradeID: buy.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvariant)
	assert.Len(t, env.trades.trades, 2)
}

func TestDeleteTrade_RevertsCashEffect(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "5000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModePriced)
	record := newTradeUsecase(env)
	engine := service.NewBalanceEngine(env.rates)
	positions := service.NewPositionEngine(env.rates)
	del := usecase.NewDeleteTrade(env.uow, engine, positions, env.publisher)
	ctx := context.Background()

	buy, err := record.Execute(ctx, dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "buy", Quantity: mustDec(t, "10"), Price: mustDec(t, "100"),
		Amount: mustDec(t, "1000"), Fee: mustDec(t, "5"), Currency: "USD",
		ExecutedAt: time.Now(),
	})
	require.NoError(t, err)
	require.True(t, env.accounts.balances[account.ID()].Equal(mustDec(t, "3995")))

	require.NoError(t, del.Execute(ctx, dto.DeleteTradeRequest{OwnerID: owner, TradeID: buy.ID}))

	assert.True(t, env.accounts.balances[account.ID()].Equal(mustDec(t, "5000")))
	assert.Empty(t, env.trades.trades)
}
