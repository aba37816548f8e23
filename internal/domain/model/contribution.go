package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContributionType is the direction of a manual-mode cash flow.
type ContributionType string

const (
	ContributionDeposit    ContributionType = "deposit"
	ContributionWithdrawal ContributionType = "withdrawal"
)

// ParseContributionType validates a raw contribution type string.
func ParseContributionType(raw string) (ContributionType, error) {
	switch ContributionType(raw) {
	case ContributionDeposit, ContributionWithdrawal:
		return ContributionType(raw), nil
	default:
		return "", fmt.Errorf("unknown contribution type %q", raw)
	}
}

// Contribution is a cash flow into or out of a manual-mode investment.
// The funding account is optional: cash can arrive from outside the ledger.
type Contribution struct {
	id           uuid.UUID
	investmentID uuid.UUID
	accountID    *uuid.UUID
	kind         ContributionType
	amount       decimal.Decimal
	currency     string
	baseAmount   *decimal.Decimal
	occurredAt   time.Time
	createdAt    time.Time
}

// NewContribution creates a Contribution after validating magnitudes.
func NewContribution(
	investmentID uuid.UUID,
	accountID *uuid.UUID,
	kind ContributionType,
	amount decimal.Decimal,
	currency string,
	baseAmount *decimal.Decimal,
	occurredAt time.Time,
) (Contribution, error) {
	if investmentID == uuid.Nil {
		return Contribution{}, fmt.Errorf("investment ID is required")
	}
	if accountID != nil && *accountID == uuid.Nil {
		return Contribution{}, fmt.Errorf("account ID must not be the nil UUID")
	}
	if _, err := ParseContributionType(string(kind)); err != nil {
		return Contribution{}, err
	}
	if !amount.IsPositive() {
		return Contribution{}, fmt.Errorf("amount must be positive, got %s", amount)
	}
	if len(currency) != 3 {
		return Contribution{}, fmt.Errorf("currency must be a 3-letter ISO code, got %q", currency)
	}
	if baseAmount != nil && !baseAmount.IsPositive() {
		return Contribution{}, fmt.Errorf("base amount must be positive, got %s", baseAmount)
	}
	if occurredAt.IsZero() {
		return Contribution{}, fmt.Errorf("occurrence time is required")
	}

	return Contribution{
		id:           uuid.New(),
		investmentID: investmentID,
		accountID:    accountID,
		kind:         kind,
		amount:       amount,
		currency:     currency,
		baseAmount:   baseAmount,
		occurredAt:   occurredAt,
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructContribution recreates a Contribution from persistence without validation.
func ReconstructContribution(
	id, investmentID uuid.UUID,
	accountID *uuid.UUID,
	kind ContributionType,
	amount decimal.Decimal,
	currency string,
	baseAmount *decimal.Decimal,
	occurredAt, createdAt time.Time,
) Contribution {
	return Contribution{
		id:           id,
		investmentID: investmentID,
		accountID:    accountID,
		kind:         kind,
		amount:       amount,
		currency:     currency,
		baseAmount:   baseAmount,
		occurredAt:   occurredAt,
		createdAt:    createdAt,
	}
}

// Accessors

func (c Contribution) ID() uuid.UUID                { return c.id }
func (c Contribution) InvestmentID() uuid.UUID      { return c.investmentID }
func (c Contribution) AccountID() *uuid.UUID        { return c.accountID }
func (c Contribution) Kind() ContributionType       { return c.kind }
func (c Contribution) Amount() decimal.Decimal      { return c.amount }
func (c Contribution) Currency() string             { return c.currency }
func (c Contribution) BaseAmount() *decimal.Decimal { return c.baseAmount }
func (c Contribution) OccurredAt() time.Time        { return c.occurredAt }
func (c Contribution) CreatedAt() time.Time         { return c.createdAt }
