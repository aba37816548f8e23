package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest is the input DTO for opening an account.
type OpenAccountRequest struct {
	OwnerID     uuid.UUID
	Name        string
	Currency    string
	Kind        string
	CreditLimit decimal.Decimal
}

// GetAccountRequest is the input DTO for a single-account lookup.
type GetAccountRequest struct {
	OwnerID   uuid.UUID
	AccountID uuid.UUID
}

// ListAccountsRequest is the input DTO for listing a user's accounts.
type ListAccountsRequest struct {
	OwnerID uuid.UUID
}

// CloseAccountRequest is the input DTO for closing an account.
type CloseAccountRequest struct {
	OwnerID   uuid.UUID
	AccountID uuid.UUID
}

// AccountResponse is the output DTO for an account.
type AccountResponse struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Currency    string
	Kind        string
	Balance     decimal.Decimal
	CreditLimit decimal.Decimal
	Version     int
	ID          uuid.UUID
	OwnerID     uuid.UUID
}

// ListAccountsResponse is the output DTO for an account listing.
type ListAccountsResponse struct {
	Accounts []AccountResponse
}
