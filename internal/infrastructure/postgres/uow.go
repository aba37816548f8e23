package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneta-app/moneta/internal/domain/port"
	pg "github.com/moneta-app/moneta/pkg/postgres"
)

// Compile-time interface check
var _ port.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork binds every repository to a single database transaction for the
// duration of one call. Row locks taken by GetAccount hold until commit, so
// concurrent mutations against the same account serialize here.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, s port.Stores) error) error {
	return pg.WithTransaction(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(ctx, NewStores(tx))
	})
}

// NewStores builds the repository set over a shared Querier: a pool for
// standalone reads, a transaction for a unit of work.
func NewStores(q pg.Querier) port.Stores {
	return port.Stores{
		Accounts:      NewAccountRepo(q),
		Transactions:  NewTransactionRepo(q),
		Investments:   NewInvestmentRepo(q),
		Trades:        NewTradeRepo(q),
		Contributions: NewContributionRepo(q),
		Valuations:    NewValuationRepo(q),
	}
}
