package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain/valueobject"
)

// Transaction is a recorded cash event against one account, or two for a
// transfer. The record itself carries no balance: its monetary effect lives in
// the account balances and is applied and reverted by the balance engine.
type Transaction struct {
	id                uuid.UUID
	ownerID           uuid.UUID
	kind              valueobject.EventKind
	accountID         uuid.UUID
	counterAccountID  *uuid.UUID
	amount            decimal.Decimal
	fee               decimal.Decimal
	currency          string
	destinationAmount *decimal.Decimal
	date              time.Time
	note              string
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewTransaction creates a Transaction after validating shape-level rules.
// The destination amount, when present, is the explicit amount credited to the
// counter account in its own currency (a cross-rate captured at entry).
func NewTransaction(
	ownerID uuid.UUID,
	kind valueobject.EventKind,
	accountID uuid.UUID,
	counterAccountID *uuid.UUID,
	amount, fee decimal.Decimal,
	currency string,
	destinationAmount *decimal.Decimal,
	date time.Time,
	note string,
) (Transaction, error) {
	if ownerID == uuid.Nil {
		return Transaction{}, fmt.Errorf("owner ID is required")
	}
	if !kind.IsTransactionKind() {
		return Transaction{}, fmt.Errorf("kind %q is not a transaction kind", kind)
	}
	if accountID == uuid.Nil {
		return Transaction{}, fmt.Errorf("account ID is required")
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("amount must be positive, got %s", amount)
	}
	if fee.IsNegative() {
		return Transaction{}, fmt.Errorf("fee must not be negative, got %s", fee)
	}
	if len(currency) != 3 {
		return Transaction{}, fmt.Errorf("currency must be a 3-letter ISO code, got %q", currency)
	}
	if date.IsZero() {
		return Transaction{}, fmt.Errorf("date is required")
	}
	if kind == valueobject.KindTransfer {
		if counterAccountID == nil || *counterAccountID == uuid.Nil {
			return Transaction{}, fmt.Errorf("transfer requires a destination account")
		}
		if *counterAccountID == accountID {
			return Transaction{}, fmt.Errorf("transfer source and destination must differ")
		}
		if destinationAmount != nil && !destinationAmount.IsPositive() {
			return Transaction{}, fmt.Errorf("destination amount must be positive, got %s", destinationAmount)
		}
	} else {
		if counterAccountID != nil {
			return Transaction{}, fmt.Errorf("secondary account is only valid for transfers")
		}
		if destinationAmount != nil {
			return Transaction{}, fmt.Errorf("destination amount is only valid for transfers")
		}
	}

	now := time.Now().UTC()
	return Transaction{
		id:                uuid.New(),
		ownerID:           ownerID,
		kind:              kind,
		accountID:         accountID,
		counterAccountID:  counterAccountID,
		amount:            amount,
		fee:               fee,
		currency:          currency,
		destinationAmount: destinationAmount,
		date:              date,
		note:              note,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructTransaction recreates a Transaction from persistence without validation.
func ReconstructTransaction(
	id, ownerID uuid.UUID,
	kind valueobject.EventKind,
	accountID uuid.UUID,
	counterAccountID *uuid.UUID,
	amount, fee decimal.Decimal,
	currency string,
	destinationAmount *decimal.Decimal,
	date time.Time,
	note string,
	version int,
	createdAt, updatedAt time.Time,
) Transaction {
	return Transaction{
		id:                id,
		ownerID:           ownerID,
		kind:              kind,
		accountID:         accountID,
		counterAccountID:  counterAccountID,
		amount:            amount,
		fee:               fee,
		currency:          currency,
		destinationAmount: destinationAmount,
		date:              date,
		note:              note,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// WithRevision returns a copy carrying the fields of replacement but the
// identity and creation time of the original. Used by transaction edits.
func (t Transaction) WithRevision(replacement Transaction, now time.Time) Transaction {
	updated := replacement
	updated.id = t.id
	updated.ownerID = t.ownerID
	updated.createdAt = t.createdAt
	updated.updatedAt = now
	updated.version = t.version + 1
	return updated
}

// IsOwnedBy reports whether the given user owns this transaction.
func (t Transaction) IsOwnedBy(userID uuid.UUID) bool {
	return t.ownerID == userID
}

// Accessors

func (t Transaction) ID() uuid.UUID                       { return t.id }
func (t Transaction) OwnerID() uuid.UUID                  { return t.ownerID }
func (t Transaction) Kind() valueobject.EventKind         { return t.kind }
func (t Transaction) AccountID() uuid.UUID                { return t.accountID }
func (t Transaction) CounterAccountID() *uuid.UUID        { return t.counterAccountID }
func (t Transaction) Amount() decimal.Decimal             { return t.amount }
func (t Transaction) Fee() decimal.Decimal                { return t.fee }
func (t Transaction) Currency() string                    { return t.currency }
func (t Transaction) DestinationAmount() *decimal.Decimal { return t.destinationAmount }
func (t Transaction) Date() time.Time                     { return t.date }
func (t Transaction) Note() string                        { return t.note }
func (t Transaction) Version() int                        { return t.version }
func (t Transaction) CreatedAt() time.Time                { return t.createdAt }
func (t Transaction) UpdatedAt() time.Time                { return t.updatedAt }
