package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvestmentMode selects the position algorithm for an investment.
// Priced investments carry unit trades with price and quantity; manual
// investments carry cash contributions plus periodic total-value snapshots.
type InvestmentMode string

const (
	ModePriced InvestmentMode = "priced"
	ModeManual InvestmentMode = "manual"
)

// ParseInvestmentMode validates a raw mode string.
func ParseInvestmentMode(raw string) (InvestmentMode, error) {
	switch InvestmentMode(raw) {
	case ModePriced, ModeManual:
		return InvestmentMode(raw), nil
	default:
		return "", fmt.Errorf("unknown investment mode %q", raw)
	}
}

// Investment is an aggregate root for a tracked asset. Its position is never
// stored; it is recomputed from the event history on every read.
type Investment struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	name         string
	mode         InvestmentMode
	currency     string
	baseCurrency *string
	deletedAt    *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewInvestment creates a new Investment.
// baseCurrency, when set, is the user's reporting currency; it enables the
// base-currency mirror ledger in position calculation.
func NewInvestment(
	ownerID uuid.UUID,
	name string,
	mode InvestmentMode,
	currency string,
	baseCurrency *string,
) (Investment, error) {
	if ownerID == uuid.Nil {
		return Investment{}, fmt.Errorf("owner ID is required")
	}
	if name == "" {
		return Investment{}, fmt.Errorf("investment name is required")
	}
	if _, err := ParseInvestmentMode(string(mode)); err != nil {
		return Investment{}, err
	}
	if len(currency) != 3 {
		return Investment{}, fmt.Errorf("currency must be a 3-letter ISO code, got %q", currency)
	}
	if baseCurrency != nil {
		if len(*baseCurrency) != 3 {
			return Investment{}, fmt.Errorf("base currency must be a 3-letter ISO code, got %q", *baseCurrency)
		}
		if *baseCurrency == currency {
			return Investment{}, fmt.Errorf("base currency must differ from the native currency")
		}
	}

	now := time.Now().UTC()
	return Investment{
		id:           uuid.New(),
		ownerID:      ownerID,
		name:         name,
		mode:         mode,
		currency:     currency,
		baseCurrency: baseCurrency,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructInvestment recreates an Investment from persistence without validation.
func ReconstructInvestment(
	id, ownerID uuid.UUID,
	name string,
	mode InvestmentMode,
	currency string,
	baseCurrency *string,
	deletedAt *time.Time,
	createdAt, updatedAt time.Time,
) Investment {
	return Investment{
		id:           id,
		ownerID:      ownerID,
		name:         name,
		mode:         mode,
		currency:     currency,
		baseCurrency: baseCurrency,
		deletedAt:    deletedAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// IsDeleted reports whether the investment was soft-deleted.
func (i Investment) IsDeleted() bool {
	return i.deletedAt != nil
}

// IsOwnedBy reports whether the given user owns this investment.
func (i Investment) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// Accessors

func (i Investment) ID() uuid.UUID         { return i.id }
func (i Investment) OwnerID() uuid.UUID    { return i.ownerID }
func (i Investment) Name() string          { return i.name }
func (i Investment) Mode() InvestmentMode  { return i.mode }
func (i Investment) Currency() string      { return i.currency }
func (i Investment) BaseCurrency() *string { return i.baseCurrency }
func (i Investment) DeletedAt() *time.Time { return i.deletedAt }
func (i Investment) CreatedAt() time.Time  { return i.createdAt }
func (i Investment) UpdatedAt() time.Time  { return i.updatedAt }
