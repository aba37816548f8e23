package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Valuation is a point-in-time observation of an investment's worth.
// Priced investments carry a per-unit price; manual investments carry a total
// value. BasePrice and Rate, when captured, pin the base-currency equivalent
// at observation time.
type Valuation struct {
	id           uuid.UUID
	investmentID uuid.UUID
	price        *decimal.Decimal
	value        *decimal.Decimal
	currency     string
	basePrice    *decimal.Decimal
	rate         *decimal.Decimal
	observedAt   time.Time
	createdAt    time.Time
}

// NewValuation creates a Valuation. Exactly one of price or value must be set.
func NewValuation(
	investmentID uuid.UUID,
	price, value *decimal.Decimal,
	currency string,
	basePrice, rate *decimal.Decimal,
	observedAt time.Time,
) (Valuation, error) {
	if investmentID == uuid.Nil {
		return Valuation{}, fmt.Errorf("investment ID is required")
	}
	if (price == nil) == (value == nil) {
		return Valuation{}, fmt.Errorf("exactly one of price or value is required")
	}
	if price != nil && price.IsNegative() {
		return Valuation{}, fmt.Errorf("price must not be negative, got %s", price)
	}
	if value != nil && value.IsNegative() {
		return Valuation{}, fmt.Errorf("value must not be negative, got %s", value)
	}
	if len(currency) != 3 {
		return Valuation{}, fmt.Errorf("currency must be a 3-letter ISO code, got %q", currency)
	}
	if basePrice != nil && basePrice.IsNegative() {
		return Valuation{}, fmt.Errorf("base price must not be negative, got %s", basePrice)
	}
	if rate != nil && !rate.IsPositive() {
		return Valuation{}, fmt.Errorf("rate must be positive, got %s", rate)
	}
	if observedAt.IsZero() {
		return Valuation{}, fmt.Errorf("observation time is required")
	}

	return Valuation{
		id:           uuid.New(),
		investmentID: investmentID,
		price:        price,
		value:        value,
		currency:     currency,
		basePrice:    basePrice,
		rate:         rate,
		observedAt:   observedAt,
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructValuation recreates a Valuation from persistence without validation.
func ReconstructValuation(
	id, investmentID uuid.UUID,
	price, value *decimal.Decimal,
	currency string,
	basePrice, rate *decimal.Decimal,
	observedAt, createdAt time.Time,
) Valuation {
	return Valuation{
		id:           id,
		investmentID: investmentID,
		price:        price,
		value:        value,
		currency:     currency,
		basePrice:    basePrice,
		rate:         rate,
		observedAt:   observedAt,
		createdAt:    createdAt,
	}
}

// Accessors

func (v Valuation) ID() uuid.UUID               { return v.id }
func (v Valuation) InvestmentID() uuid.UUID     { return v.investmentID }
func (v Valuation) Price() *decimal.Decimal     { return v.price }
func (v Valuation) Value() *decimal.Decimal     { return v.value }
func (v Valuation) Currency() string            { return v.currency }
func (v Valuation) BasePrice() *decimal.Decimal { return v.basePrice }
func (v Valuation) Rate() *decimal.Decimal      { return v.rate }
func (v Valuation) ObservedAt() time.Time       { return v.observedAt }
func (v Valuation) CreatedAt() time.Time        { return v.createdAt }
