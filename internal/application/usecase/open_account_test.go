package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/application/usecase"
	"github.com/moneta-app/moneta/internal/domain"
)

func TestOpenAccount(t *testing.T) {
	env := newTestEnv()
	uc := usecase.NewOpenAccount(env.accounts, env.publisher)

	resp, err := uc.Execute(context.Background(), dto.OpenAccountRequest{
		OwnerID:  uuid.New(),
		Name:     "Savings",
		Currency: "EUR",
		Kind:     "depository",
	})
	require.NoError(t, err)

	assert.Equal(t, "Savings", resp.Name)
	assert.Equal(t, "EUR", resp.Currency)
	assert.True(t, resp.Balance.IsZero())
	assert.Len(t, env.publisher.publishedEvents, 1)
	assert.Equal(t, "ledger.account.opened", env.publisher.publishedEvents[0].EventType())
}

func TestOpenAccount_CreditLimitOnlyForCreditLines(t *testing.T) {
	env := newTestEnv()
	uc := usecase.NewOpenAccount(env.accounts, env.publisher)

	_, err := uc.Execute(context.Background(), dto.OpenAccountRequest{
		OwnerID:     uuid.New(),
		Name:        "Checking",
		Currency:    "USD",
		Kind:        "depository",
		CreditLimit: decimal.NewFromInt(500),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCloseAccount(t *testing.T) {
	owner := uuid.New()
	account := seedAccount(t, owner, "USD", "0")
	env := newTestEnv(account)
	uc := usecase.NewCloseAccount(env.uow, env.publisher)

	_, err := uc.Execute(context.Background(), dto.CloseAccountRequest{
		OwnerID:   owner,
		AccountID: account.ID(),
	})
	require.NoError(t, err)

	// A closed account stops resolving.
	get := usecase.NewGetAccount(env.accounts)
	_, err = get.Execute(context.Background(), dto.GetAccountRequest{OwnerID: owner, AccountID: account.ID()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCloseAccount_Foreign(t *testing.T) {
	account := seedAccount(t, uuid.New(), "USD", "0")
	env := newTestEnv(account)
	uc := usecase.NewCloseAccount(env.uow, env.publisher)

	_, err := uc.Execute(context.Background(), dto.CloseAccountRequest{
		OwnerID:   uuid.New(),
		AccountID: account.ID(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
