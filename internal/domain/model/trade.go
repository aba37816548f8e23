package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeSide is the direction of a priced-mode trade.
type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

// ParseTradeSide validates a raw side string.
func ParseTradeSide(raw string) (TradeSide, error) {
	switch TradeSide(raw) {
	case SideBuy, SideSell:
		return TradeSide(raw), nil
	default:
		return "", fmt.Errorf("unknown trade side %q", raw)
	}
}

// Trade is a unit trade against a priced-mode investment. Amount is the total
// consideration in the trade currency; BaseAmount, when present, is the same
// consideration in the investment's base currency, captured at entry.
type Trade struct {
	id           uuid.UUID
	investmentID uuid.UUID
	accountID    uuid.UUID
	side         TradeSide
	quantity     decimal.Decimal
	price        decimal.Decimal
	amount       decimal.Decimal
	fee          decimal.Decimal
	currency     string
	baseAmount   *decimal.Decimal
	executedAt   time.Time
	createdAt    time.Time
}

// NewTrade creates a Trade after validating magnitudes.
func NewTrade(
	investmentID, accountID uuid.UUID,
	side TradeSide,
	quantity, price, amount, fee decimal.Decimal,
	currency string,
	baseAmount *decimal.Decimal,
	executedAt time.Time,
) (Trade, error) {
	if investmentID == uuid.Nil {
		return Trade{}, fmt.Errorf("investment ID is required")
	}
	if accountID == uuid.Nil {
		return Trade{}, fmt.Errorf("account ID is required")
	}
	if _, err := ParseTradeSide(string(side)); err != nil {
		return Trade{}, err
	}
	if !quantity.IsPositive() {
		return Trade{}, fmt.Errorf("quantity must be positive, got %s", quantity)
	}
	if price.IsNegative() {
		return Trade{}, fmt.Errorf("price must not be negative, got %s", price)
	}
	if !amount.IsPositive() {
		return Trade{}, fmt.Errorf("amount must be positive, got %s", amount)
	}
	if fee.IsNegative() {
		return Trade{}, fmt.Errorf("fee must not be negative, got %s", fee)
	}
	if len(currency) != 3 {
		return Trade{}, fmt.Errorf("currency must be a 3-letter ISO code, got %q", currency)
	}
	if baseAmount != nil && !baseAmount.IsPositive() {
		return Trade{}, fmt.Errorf("base amount must be positive, got %s", baseAmount)
	}
	if executedAt.IsZero() {
		return Trade{}, fmt.Errorf("execution time is required")
	}

	return Trade{
		id:           uuid.New(),
		investmentID: investmentID,
		accountID:    accountID,
		side:         side,
		quantity:     quantity,
		price:        price,
		amount:       amount,
		fee:          fee,
		currency:     currency,
		baseAmount:   baseAmount,
		executedAt:   executedAt,
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructTrade recreates a Trade from persistence without validation.
func ReconstructTrade(
	id, investmentID, accountID uuid.UUID,
	side TradeSide,
	quantity, price, amount, fee decimal.Decimal,
	currency string,
	baseAmount *decimal.Decimal,
	executedAt, createdAt time.Time,
) Trade {
	return Trade{
		id:           id,
		investmentID: investmentID,
		accountID:    accountID,
		side:         side,
		quantity:     quantity,
		price:        price,
		amount:       amount,
		fee:          fee,
		currency:     currency,
		baseAmount:   baseAmount,
		executedAt:   executedAt,
		createdAt:    createdAt,
	}
}

// Accessors

func (t Trade) ID() uuid.UUID                { return t.id }
func (t Trade) InvestmentID() uuid.UUID      { return t.investmentID }
func (t Trade) AccountID() uuid.UUID         { return t.accountID }
func (t Trade) Side() TradeSide              { return t.side }
func (t Trade) Quantity() decimal.Decimal    { return t.quantity }
func (t Trade) Price() decimal.Decimal       { return t.price }
func (t Trade) Amount() decimal.Decimal      { return t.amount }
func (t Trade) Fee() decimal.Decimal         { return t.fee }
func (t Trade) Currency() string             { return t.currency }
func (t Trade) BaseAmount() *decimal.Decimal { return t.baseAmount }
func (t Trade) ExecutedAt() time.Time        { return t.executedAt }
func (t Trade) CreatedAt() time.Time         { return t.createdAt }
