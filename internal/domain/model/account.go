package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/pkg/events"
	"github.com/moneta-app/moneta/internal/domain/event"
)

// AccountKind classifies an account for reporting purposes.
type AccountKind string

const (
	AccountKindDepository AccountKind = "depository"
	AccountKindCreditLine AccountKind = "credit_line"
	AccountKindOther      AccountKind = "other"
)

// ParseAccountKind validates a raw account kind string.
func ParseAccountKind(raw string) (AccountKind, error) {
	switch AccountKind(raw) {
	case AccountKindDepository, AccountKindCreditLine, AccountKindOther:
		return AccountKind(raw), nil
	default:
		return "", fmt.Errorf("unknown account kind %q", raw)
	}
}

// Account is an aggregate root holding a cash balance in a single currency.
// The balance is mutated only through the balance engine; the account itself
// enforces no overdraft floor - that policy belongs to the calling use case.
// It is immutable; all state transitions return a new instance.
type Account struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	name         string
	currency     string
	balance      decimal.Decimal
	kind         AccountKind
	creditLimit  decimal.Decimal
	deletedAt    *time.Time
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []events.DomainEvent
}

// NewAccount creates a new Account with a zero balance.
// It emits an AccountOpened domain event.
func NewAccount(
	ownerID uuid.UUID,
	name string,
	currency string,
	kind AccountKind,
	creditLimit decimal.Decimal,
) (Account, error) {
	if ownerID == uuid.Nil {
		return Account{}, fmt.Errorf("owner ID is required")
	}
	if name == "" {
		return Account{}, fmt.Errorf("account name is required")
	}
	if len(currency) != 3 {
		return Account{}, fmt.Errorf("currency must be a 3-letter ISO code, got %q", currency)
	}
	if _, err := ParseAccountKind(string(kind)); err != nil {
		return Account{}, err
	}
	if creditLimit.IsNegative() {
		return Account{}, fmt.Errorf("credit limit must not be negative")
	}
	// Credit limit only carries meaning for a credit line.
	if kind != AccountKindCreditLine && !creditLimit.IsZero() {
		return Account{}, fmt.Errorf("credit limit is only valid for credit_line accounts")
	}

	now := time.Now().UTC()
	id := uuid.New()

	account := Account{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		currency:    currency,
		balance:     decimal.Zero,
		kind:        kind,
		creditLimit: creditLimit,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}

	account.domainEvents = append(account.domainEvents,
		event.NewAccountOpened(id, ownerID, name, currency, string(kind)))

	return account, nil
}

// ReconstructAccount recreates an Account from persisted data without
// validation or emitting events. Used by repository implementations.
func ReconstructAccount(
	id uuid.UUID,
	ownerID uuid.UUID,
	name string,
	currency string,
	balance decimal.Decimal,
	kind AccountKind,
	creditLimit decimal.Decimal,
	deletedAt *time.Time,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) Account {
	return Account{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		currency:    currency,
		balance:     balance,
		kind:        kind,
		creditLimit: creditLimit,
		deletedAt:   deletedAt,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ApplyDelta returns a new Account with the balance adjusted by delta. The
// persisted balance is adjusted by the repository as an atomic SQL delta;
// ApplyDelta expresses the same adjustment on an in-memory aggregate.
func (a Account) ApplyDelta(delta decimal.Decimal, now time.Time) Account {
	updated := a
	updated.balance = a.balance.Add(delta)
	updated.updatedAt = now
	updated.version = a.version + 1
	return updated
}

// Close soft-deletes the account. A closed account is treated as missing by
// every lookup.
func (a Account) Close(now time.Time) (Account, error) {
	if a.deletedAt != nil {
		return Account{}, fmt.Errorf("account %s is already closed", a.id)
	}

	updated := a
	updated.deletedAt = &now
	updated.updatedAt = now
	updated.version = a.version + 1
	updated.domainEvents = append([]events.DomainEvent{}, a.domainEvents...)
	updated.domainEvents = append(updated.domainEvents,
		event.NewAccountClosed(a.id, a.ownerID, now))
	return updated, nil
}

// IsDeleted reports whether the account was soft-deleted.
func (a Account) IsDeleted() bool {
	return a.deletedAt != nil
}

// IsOwnedBy reports whether the given user owns this account.
func (a Account) IsOwnedBy(userID uuid.UUID) bool {
	return a.ownerID == userID
}

// Accessors

func (a Account) ID() uuid.UUID                { return a.id }
func (a Account) OwnerID() uuid.UUID           { return a.ownerID }
func (a Account) Name() string                 { return a.name }
func (a Account) Currency() string             { return a.currency }
func (a Account) Balance() decimal.Decimal     { return a.balance }
func (a Account) Kind() AccountKind            { return a.kind }
func (a Account) CreditLimit() decimal.Decimal { return a.creditLimit }
func (a Account) DeletedAt() *time.Time        { return a.deletedAt }
func (a Account) Version() int                 { return a.version }
func (a Account) CreatedAt() time.Time         { return a.createdAt }
func (a Account) UpdatedAt() time.Time         { return a.updatedAt }

// DomainEvents returns events collected on the aggregate.
func (a Account) DomainEvents() []events.DomainEvent { return a.domainEvents }
