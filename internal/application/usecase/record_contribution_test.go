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

func newContributionUsecase(env *testEnv) *usecase.RecordContribution {
	engine := service.NewBalanceEngine(env.rates)
	positions := service.NewPositionEngine(env.rates)
	return usecase.NewRecordContribution(env.uow, engine, positions, env.publisher)
}

func TestRecordContribution_LinkedDepositDebitsAccount(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "2000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModeManual)
	uc := newContributionUsecase(env)

	accountID := account.ID()
	resp, err := uc.Execute(context.Background(), dto.RecordContributionRequest{
		OwnerID:      owner,
		InvestmentID: inv.ID(),
		AccountID:    &accountID,
		Kind:         "deposit",
		Amount:       mustDec(t, "500"),
		Currency:     "USD",
		OccurredAt:   time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, "deposit", resp.Kind)
	assert.True(t, env.accounts.balances[account.ID()].Equal(mustDec(t, "1500")))
	assert.Len(t, env.contributions.contributions, 1)
}

func TestRecordContribution_UnlinkedLeavesBalancesAlone(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "2000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModeManual)
	uc := newContributionUsecase(env)

	_, err := uc.Execute(context.Background(), dto.RecordContributionRequest{
		OwnerID:      owner,
		InvestmentID: inv.ID(),
		Kind:         "deposit",
		Amount:       mustDec(t, "500"),
		Currency:     "USD",
		OccurredAt:   time.Now(),
	})
	require.NoError(t, err)

	assert.True(t, env.accounts.balances[account.ID()].Equal(mustDec(t, "2000")))
	assert.Len(t, env.contributions.contributions, 1)
}

func TestRecordContribution_OverWithdrawalRejected(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "2000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModeManual)
	uc := newContributionUsecase(env)
	ctx := context.Background()

	base := time.Now()
	accountID := account.ID()
	_, err := uc.Execute(ctx, dto.RecordContributionRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: &accountID,
		Kind: "deposit", Amount: mustDec(t, "500"), Currency: "USD", OccurredAt: base,
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, dto.RecordContributionRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: &accountID,
		Kind: "withdrawal", Amount: mustDec(t, "600"), Currency: "USD",
		OccurredAt: base.Add(time.Hour),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvariant)

	// Rejected before any write: balance still reflects only the deposit.
	assert.True(t, env.accounts.balances[account.ID()].Equal(mustDec(t, "1500")))
	assert.Len(t, env.contributions.contributions, 1)
}

func TestRecordContribution_PricedInvestmentRejected(t *testing.T) {
	owner := uuid.New()
	env := newTestEnv()
	inv := seedInvestment(t, env, owner, model.ModePriced)
	uc := newContributionUsecase(env)

	_, err := uc.Execute(context.Background(), dto.RecordContributionRequest{
		OwnerID: owner, InvestmentID: inv.ID(),
		Kind: "deposit", Amount: mustDec(t, "500"), Currency: "USD",
		OccurredAt: time.Now(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteContribution_RejectsOverdrawingThePool(t *testing.T) {
	owner := uuid.New()
	env := newTestEnv()
	inv := seedInvestment(t, env, owner, model.ModeManual)
	record := newContributionUsecase(env)
	engine := service.NewBalanceEngine(env.rates)
	positions := service.NewPositionEngine(env.rates)
	del := usecase.NewDeleteContribution(env.uow, engine, positions, env.publisher)
	ctx := context.Background()

	base := time.Now()
	deposit, err := record.Execute(ctx, dto.RecordContributionRequest{
		OwnerID: owner, InvestmentID: inv.ID(),
		Kind: "deposit", Amount: mustDec(t, "500"), Currency: "USD", OccurredAt: base,
	})
	require.NoError(t, err)
	_, err = record.Execute(ctx, dto.RecordContributionRequest{
		OwnerID: owner, InvestmentID: inv.ID(),
		Kind: "withdrawal", Amount: mustDec(t, "200"), Currency: "USD",
		OccurredAt: base.Add(time.Hour),
	})
	require.NoError(t, err)

	err = del.Execute(ctx, dto.DeleteContributionRequest{OwnerID: owner, ContributionID: deposit.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvariant)
	assert.Len(t, env.contributions.contributions, 2)
}

func TestGetPosition_PricedEndToEnd(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "10000")
	env := newTestEnv(account)
	inv := seedInvestment(t, env, owner, model.ModePriced)
	record := newTradeUsecase(env)
	ctx := context.Background()

	base := time.Now()
	_, err := record.Execute(ctx, dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "buy", Quantity: mustDec(t, "10"), Price: mustDec(t, "100"),
		Amount: mustDec(t, "1000"), Currency: "USD", ExecutedAt: base,
	})
	require.NoError(t, err)
	_, err = record.Execute(ctx, dto.RecordTradeRequest{
		OwnerID: owner, InvestmentID: inv.ID(), AccountID: account.ID(),
		Side: "buy", Quantity: mustDec(t, "10"), Price: mustDec(t, "200"),
		Amount: mustDec(t, "2000"), Currency: "USD", ExecutedAt: base.Add(time.Hour),
	})
	require.NoError(t, err)

	valuations := usecase.NewRecordValuation(env.investments, env.valuations, env.publisher)
	price := mustDec(t, "250")
	_, err = valuations.Execute(ctx, dto.RecordValuationRequest{
		OwnerID: owner, InvestmentID: inv.ID(), Price: &price,
		Currency: "USD", ObservedAt: base.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	get := usecase.NewGetPosition(env.investments, env.trades, env.contributions, env.valuations, service.NewPositionEngine(env.rates))
	pos, err := get.Execute(ctx, dto.GetPositionRequest{OwnerID: owner, InvestmentID: inv.ID()})
	require.NoError(t, err)

	require.NotNil(t, pos.Quantity)
	assert.True(t, pos.Quantity.Equal(mustDec(t, "20")))
	require.NotNil(t, pos.AvgCost)
	assert.True(t, pos.AvgCost.Equal(mustDec(t, "150")))
	assert.True(t, pos.CostBasis.Equal(mustDec(t, "3000")))
	require.NotNil(t, pos.LastValue)
	assert.True(t, pos.LastValue.Equal(mustDec(t, "5000")))
	assert.True(t, pos.UnrealizedPnl.Equal(mustDec(t, "2000")))
}

func TestGetPosition_ForeignInvestmentReadsAsNotFound(t *testing.T) {
	owner := uuid.New()
	env := newTestEnv()
	inv := seedInvestment(t, env, owner, model.ModePriced)

	get := usecase.NewGetPosition(env.investments, env.trades, env.contributions, env.valuations, service.NewPositionEngine(env.rates))
	_, err := get.Execute(context.Background(), dto.GetPositionRequest{
		OwnerID:      uuid.New(),
		InvestmentID: inv.ID(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
