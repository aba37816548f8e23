package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/pkg/events"
	"github.com/moneta-app/moneta/internal/domain/model"
)

// AccountStore is the narrow account surface the balance engine mutates
// through. Implementations are transaction-scoped: the engine never opens or
// commits a unit of work itself, the calling use case does.
type AccountStore interface {
	// GetAccount retrieves an account by ID, locking it for the duration of
	// the surrounding unit of work. Soft-deleted accounts are not found.
	GetAccount(ctx context.Context, id uuid.UUID) (model.Account, error)

	// UpdateBalance atomically adjusts the account balance by delta, which is
	// expressed in the account's own currency.
	UpdateBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

// RateProvider resolves a conversion factor between two currencies such that
// an amount in `from` times the factor is the equivalent amount in `to`.
// An unsupported pair fails explicitly; it never silently defaults to 1.
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	AccountStore

	// Save persists a new account.
	Save(ctx context.Context, account model.Account) error
	// Update persists a changed account (soft delete, rename).
	Update(ctx context.Context, account model.Account) error
	// ListByOwner returns all live accounts owned by a user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Account, error)
}

// TransactionRepository defines persistence operations for transaction records.
type TransactionRepository interface {
	Save(ctx context.Context, tx model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Transaction, error)
	Update(ctx context.Context, tx model.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, from, to time.Time, limit, offset int) ([]model.Transaction, error)
}

// InvestmentRepository defines persistence operations for investments.
type InvestmentRepository interface {
	Save(ctx context.Context, inv model.Investment) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Investment, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Investment, error)
	Update(ctx context.Context, inv model.Investment) error
}

// TradeRepository defines persistence operations for priced-mode trades.
type TradeRepository interface {
	Save(ctx context.Context, trade model.Trade) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Trade, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByInvestment returns all trades for an investment ordered by
	// execution time ascending. Position replay depends on this ordering.
	ListByInvestment(ctx context.Context, investmentID uuid.UUID) ([]model.Trade, error)
}

// ContributionRepository defines persistence operations for manual-mode contributions.
type ContributionRepository interface {
	Save(ctx context.Context, c model.Contribution) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Contribution, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByInvestment returns all contributions for an investment ordered by
	// occurrence time ascending.
	ListByInvestment(ctx context.Context, investmentID uuid.UUID) ([]model.Contribution, error)
}

// ValuationRepository defines persistence operations for valuations.
type ValuationRepository interface {
	Save(ctx context.Context, v model.Valuation) error
	// FindLatest returns the most recent valuation for an investment.
	FindLatest(ctx context.Context, investmentID uuid.UUID) (model.Valuation, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}
