package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/valueobject"
	pg "github.com/moneta-app/moneta/pkg/postgres"
)

// Compile-time interface check
var _ port.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implements TransactionRepository using PostgreSQL.
type TransactionRepo struct {
	q pg.Querier
}

func NewTransactionRepo(q pg.Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func (r *TransactionRepo) Save(ctx context.Context, tx model.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (id, owner_id, kind, account_id, counter_account_id, amount, fee, currency, destination_amount, date, note, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, tx.ID(), tx.OwnerID(), string(tx.Kind()), tx.AccountID(), tx.CounterAccountID(),
		tx.Amount(), tx.Fee(), tx.Currency(), tx.DestinationAmount(), tx.Date(), tx.Note(),
		tx.Version(), tx.CreatedAt(), tx.UpdatedAt())
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, owner_id, kind, account_id, counter_account_id, amount, fee, currency, destination_amount, date, note, version, created_at, updated_at
		FROM transactions WHERE id = $1
	`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
		}
		return model.Transaction{}, err
	}
	return tx, nil
}

func (r *TransactionRepo) Update(ctx context.Context, tx model.Transaction) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE transactions
		SET kind = $2, account_id = $3, counter_account_id = $4, amount = $5, fee = $6,
		    currency = $7, destination_amount = $8, date = $9, note = $10, version = $11, updated_at = $12
		WHERE id = $1
	`, tx.ID(), string(tx.Kind()), tx.AccountID(), tx.CounterAccountID(), tx.Amount(), tx.Fee(),
		tx.Currency(), tx.DestinationAmount(), tx.Date(), tx.Note(), tx.Version(), tx.UpdatedAt())
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", tx.ID(), domain.ErrNotFound)
	}
	return nil
}

func (r *TransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *TransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, from, to time.Time, limit, offset int) ([]model.Transaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, owner_id, kind, account_id, counter_account_id, amount, fee, currency, destination_amount, date, note, version, created_at, updated_at
		FROM transactions
		WHERE (account_id = $1 OR counter_account_id = $1) AND date >= $2 AND date <= $3
		ORDER BY date DESC, created_at DESC
		LIMIT $4 OFFSET $5
	`, accountID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func scanTransaction(row pgx.Row) (model.Transaction, error) {
	var (
		id                uuid.UUID
		ownerID           uuid.UUID
		kind              string
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
	)
	err := row.Scan(&id, &ownerID, &kind, &accountID, &counterAccountID, &amount, &fee,
		&currency, &destinationAmount, &date, &note, &version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	return model.ReconstructTransaction(id, ownerID, valueobject.EventKind(kind), accountID,
		counterAccountID, amount, fee, currency, destinationAmount, date, note, version,
		createdAt, updatedAt), nil
}
