package usecase

import (
	"context"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/port"
)

// GetAccount retrieves a single account owned by the caller.
type GetAccount struct {
	accounts port.AccountRepository
}

func NewGetAccount(accounts port.AccountRepository) *GetAccount {
	return &GetAccount{accounts: accounts}
}

func (uc *GetAccount) Execute(ctx context.Context, req dto.GetAccountRequest) (dto.AccountResponse, error) {
	account, err := uc.accounts.GetAccount(ctx, req.AccountID)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("failed to get account: %w", err)
	}
	// A foreign account is indistinguishable from a missing one.
	if !account.IsOwnedBy(req.OwnerID) {
		return dto.AccountResponse{}, fmt.Errorf("account %s: %w", req.AccountID, domain.ErrNotFound)
	}
	return toAccountResponse(account), nil
}
