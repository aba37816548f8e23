package port

import "context"

// Stores is the full set of repositories visible to a unit of work. Inside a
// unit of work every repository operates over the same database transaction.
type Stores struct {
	Accounts      AccountRepository
	Transactions  TransactionRepository
	Investments   InvestmentRepository
	Trades        TradeRepository
	Contributions ContributionRepository
	Valuations    ValuationRepository
}

// UnitOfWork executes a function against a transaction-bound Stores view.
// The transaction commits when fn returns nil and rolls back on any error,
// so an engine mutation and its record write land or vanish together.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
