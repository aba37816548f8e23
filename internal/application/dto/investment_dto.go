package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvestmentRequest is the input DTO for creating an investment.
type CreateInvestmentRequest struct {
	OwnerID      uuid.UUID
	Name         string
	Mode         string
	Currency     string
	BaseCurrency *string
}

// InvestmentResponse is the output DTO for an investment.
type InvestmentResponse struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string
	Mode         string
	Currency     string
	BaseCurrency *string
	ID           uuid.UUID
	OwnerID      uuid.UUID
}

// RecordTradeRequest is the input DTO for recording a priced-mode trade.
// BaseAmount, when set, is the trade's total in the investment's base
// currency, captured at execution time.
type RecordTradeRequest struct {
	OwnerID      uuid.UUID
	InvestmentID uuid.UUID
	AccountID    uuid.UUID
	Side         string
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	Currency     string
	BaseAmount   *decimal.Decimal
	ExecutedAt   time.Time
}

// DeleteTradeRequest is the input DTO for deleting a trade.
type DeleteTradeRequest struct {
	OwnerID uuid.UUID
	TradeID uuid.UUID
}

// TradeResponse is the output DTO for a trade.
type TradeResponse struct {
	ExecutedAt   time.Time
	CreatedAt    time.Time
	Side         string
	Currency     string
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	BaseAmount   *decimal.Decimal
	ID           uuid.UUID
	InvestmentID uuid.UUID
	AccountID    uuid.UUID
}

// RecordContributionRequest is the input DTO for a manual-mode contribution.
// AccountID, when set, links the contribution to a funding account whose
// balance receives the cash effect.
type RecordContributionRequest struct {
	OwnerID      uuid.UUID
	InvestmentID uuid.UUID
	AccountID    *uuid.UUID
	Kind         string
	Amount       decimal.Decimal
	Currency     string
	BaseAmount   *decimal.Decimal
	OccurredAt   time.Time
}

// DeleteContributionRequest is the input DTO for deleting a contribution.
type DeleteContributionRequest struct {
	OwnerID        uuid.UUID
	ContributionID uuid.UUID
}

// ContributionResponse is the output DTO for a contribution.
type ContributionResponse struct {
	OccurredAt   time.Time
	CreatedAt    time.Time
	Kind         string
	Currency     string
	Amount       decimal.Decimal
	BaseAmount   *decimal.Decimal
	AccountID    *uuid.UUID
	ID           uuid.UUID
	InvestmentID uuid.UUID
}

// RecordValuationRequest is the input DTO for recording a valuation. Exactly
// one of Price or Value must be set, matching the investment's mode.
type RecordValuationRequest struct {
	OwnerID      uuid.UUID
	InvestmentID uuid.UUID
	Price        *decimal.Decimal
	Value        *decimal.Decimal
	Currency     string
	BasePrice    *decimal.Decimal
	Rate         *decimal.Decimal
	ObservedAt   time.Time
}

// ValuationResponse is the output DTO for a valuation.
type ValuationResponse struct {
	ObservedAt   time.Time
	CreatedAt    time.Time
	Currency     string
	Price        *decimal.Decimal
	Value        *decimal.Decimal
	BasePrice    *decimal.Decimal
	Rate         *decimal.Decimal
	ID           uuid.UUID
	InvestmentID uuid.UUID
}

// GetPositionRequest is the input DTO for computing an investment position.
type GetPositionRequest struct {
	OwnerID      uuid.UUID
	InvestmentID uuid.UUID
}

// PositionResponse is the output DTO for a computed position. Nil fields mean
// "not applicable" or "no data yet", mirroring the domain position.
type PositionResponse struct {
	Quantity *decimal.Decimal
	AvgCost  *decimal.Decimal

	CostBasis        decimal.Decimal
	RealizedPnl      decimal.Decimal
	UnrealizedPnl    decimal.Decimal
	NetContributions decimal.Decimal

	LastPrice *decimal.Decimal
	LastValue *decimal.Decimal

	CostBasisBase        *decimal.Decimal
	RealizedPnlBase      *decimal.Decimal
	UnrealizedPnlBase    *decimal.Decimal
	LastValueBase        *decimal.Decimal
	ExchangeRateGainLoss *decimal.Decimal

	InvestmentID uuid.UUID
}

// ListInvestmentsRequest is the input DTO for listing a user's investments.
type ListInvestmentsRequest struct {
	OwnerID uuid.UUID
}

// ListInvestmentsResponse is the output DTO for an investment listing.
type ListInvestmentsResponse struct {
	Investments []InvestmentResponse
}
