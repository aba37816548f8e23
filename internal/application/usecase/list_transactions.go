package usecase

import (
	"context"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/port"
)

const defaultPageSize = 50

// ListTransactions retrieves a page of an account's transactions within a
// date window.
type ListTransactions struct {
	accounts     port.AccountRepository
	transactions port.TransactionRepository
}

func NewListTransactions(accounts port.AccountRepository, transactions port.TransactionRepository) *ListTransactions {
	return &ListTransactions{accounts: accounts, transactions: transactions}
}

func (uc *ListTransactions) Execute(ctx context.Context, req dto.ListTransactionsRequest) (dto.ListTransactionsResponse, error) {
	account, err := uc.accounts.GetAccount(ctx, req.AccountID)
	if err != nil {
		return dto.ListTransactionsResponse{}, fmt.Errorf("failed to get account: %w", err)
	}
	if !account.IsOwnedBy(req.OwnerID) {
		return dto.ListTransactionsResponse{}, fmt.Errorf("account %s: %w", req.AccountID, domain.ErrNotFound)
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	txs, err := uc.transactions.ListByAccount(ctx, req.AccountID, req.From, req.To, pageSize, req.Offset)
	if err != nil {
		return dto.ListTransactionsResponse{}, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := dto.ListTransactionsResponse{Transactions: make([]dto.TransactionResponse, 0, len(txs))}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}
	return resp, nil
}
