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
	pg "github.com/moneta-app/moneta/pkg/postgres"
)

// Compile-time interface check
var _ port.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implements AccountRepository using PostgreSQL. It operates over
// a Querier: handed a pool it runs standalone, handed a transaction it joins
// the surrounding unit of work.
type AccountRepo struct {
	q pg.Querier
}

func NewAccountRepo(q pg.Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// GetAccount fetches a live account, locking the row for the duration of the
// surrounding transaction. Closed accounts read as not found.
func (r *AccountRepo) GetAccount(ctx context.Context, id uuid.UUID) (model.Account, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, owner_id, name, currency, balance, kind, credit_limit, deleted_at, version, created_at, updated_at
		FROM accounts WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, id)
	return scanAccount(row, id)
}

// UpdateBalance adjusts the account balance by delta in the account currency.
func (r *AccountRepo) UpdateBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE accounts
		SET balance = balance + $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id, delta)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *AccountRepo) Save(ctx context.Context, account model.Account) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts (id, owner_id, name, currency, balance, kind, credit_limit, deleted_at, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, account.ID(), account.OwnerID(), account.Name(), account.Currency(), account.Balance(),
		string(account.Kind()), account.CreditLimit(), account.DeletedAt(), account.Version(),
		account.CreatedAt(), account.UpdatedAt())
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepo) Update(ctx context.Context, account model.Account) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE accounts
		SET name = $2, deleted_at = $3, version = $4, updated_at = $5
		WHERE id = $1
	`, account.ID(), account.Name(), account.DeletedAt(), account.Version(), account.UpdatedAt())
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", account.ID(), domain.ErrNotFound)
	}
	return nil
}

func (r *AccountRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Account, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, owner_id, name, currency, balance, kind, credit_limit, deleted_at, version, created_at, updated_at
		FROM accounts WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		account, err := scanAccount(rows, uuid.Nil)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func scanAccount(row pgx.Row, id uuid.UUID) (model.Account, error) {
	var (
		accountID   uuid.UUID
		ownerID     uuid.UUID
		name        string
		currency    string
		balance     decimal.Decimal
		kind        string
		creditLimit decimal.Decimal
		deletedAt   *time.Time
		version     int
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := row.Scan(&accountID, &ownerID, &name, &currency, &balance, &kind, &creditLimit,
		&deletedAt, &version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
		}
		return model.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return model.ReconstructAccount(accountID, ownerID, name, currency, balance,
		model.AccountKind(kind), creditLimit, deletedAt, version, createdAt, updatedAt), nil
}
