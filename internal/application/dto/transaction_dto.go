package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest is the input DTO for recording a transaction.
// DestinationAmount, for transfers, is the explicit amount credited to the
// counter account in its own currency.
type RecordTransactionRequest struct {
	OwnerID           uuid.UUID
	Kind              string
	AccountID         uuid.UUID
	CounterAccountID  *uuid.UUID
	Amount            decimal.Decimal
	Fee               decimal.Decimal
	Currency          string
	DestinationAmount *decimal.Decimal
	Date              time.Time
	Note              string
}

// UpdateTransactionRequest carries the full replacement shape of an existing
// transaction. Every mutable field is replaced in one step.
type UpdateTransactionRequest struct {
	OwnerID           uuid.UUID
	TransactionID     uuid.UUID
	Kind              string
	AccountID         uuid.UUID
	CounterAccountID  *uuid.UUID
	Amount            decimal.Decimal
	Fee               decimal.Decimal
	Currency          string
	DestinationAmount *decimal.Decimal
	Date              time.Time
	Note              string
}

// DeleteTransactionRequest is the input DTO for deleting a transaction.
type DeleteTransactionRequest struct {
	OwnerID       uuid.UUID
	TransactionID uuid.UUID
}

// ListTransactionsRequest is the input DTO for listing account transactions.
type ListTransactionsRequest struct {
	From      time.Time
	To        time.Time
	PageSize  int
	Offset    int
	OwnerID   uuid.UUID
	AccountID uuid.UUID
}

// TransactionResponse is the output DTO for a transaction.
type TransactionResponse struct {
	Date              time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Kind              string
	Currency          string
	Note              string
	Amount            decimal.Decimal
	Fee               decimal.Decimal
	DestinationAmount *decimal.Decimal
	CounterAccountID  *uuid.UUID
	Version           int
	ID                uuid.UUID
	OwnerID           uuid.UUID
	AccountID         uuid.UUID
}

// ListTransactionsResponse is the output DTO for a transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse
}
