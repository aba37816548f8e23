package usecase

import (
	"context"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain/port"
)

// ListAccounts retrieves all live accounts owned by the caller.
type ListAccounts struct {
	accounts port.AccountRepository
}

func NewListAccounts(accounts port.AccountRepository) *ListAccounts {
	return &ListAccounts{accounts: accounts}
}

func (uc *ListAccounts) Execute(ctx context.Context, req dto.ListAccountsRequest) (dto.ListAccountsResponse, error) {
	accounts, err := uc.accounts.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		return dto.ListAccountsResponse{}, fmt.Errorf("failed to list accounts: %w", err)
	}

	resp := dto.ListAccountsResponse{Accounts: make([]dto.AccountResponse, 0, len(accounts))}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, toAccountResponse(a))
	}
	return resp, nil
}
