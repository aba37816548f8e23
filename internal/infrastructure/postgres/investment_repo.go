package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	pg "github.com/moneta-app/moneta/pkg/postgres"
)

// Compile-time interface check
var _ port.InvestmentRepository = (*InvestmentRepo)(nil)

// InvestmentRepo implements InvestmentRepository using PostgreSQL.
type InvestmentRepo struct {
	q pg.Querier
}

func NewInvestmentRepo(q pg.Querier) *InvestmentRepo {
	return &InvestmentRepo{q: q}
}

func (r *InvestmentRepo) Save(ctx context.Context, inv model.Investment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO investments (id, owner_id, name, mode, currency, base_currency, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, inv.ID(), inv.OwnerID(), inv.Name(), string(inv.Mode()), inv.Currency(),
		inv.BaseCurrency(), inv.DeletedAt(), inv.CreatedAt(), inv.UpdatedAt())
	if err != nil {
		return fmt.Errorf("insert investment: %w", err)
	}
	return nil
}

func (r *InvestmentRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Investment, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, owner_id, name, mode, currency, base_currency, deleted_at, created_at, updated_at
		FROM investments WHERE id = $1
	`, id)
	inv, err := scanInvestment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Investment{}, fmt.Errorf("investment %s: %w", id, domain.ErrNotFound)
		}
		return model.Investment{}, err
	}
	return inv, nil
}

func (r *InvestmentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Investment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, owner_id, name, mode, currency, base_currency, deleted_at, created_at, updated_at
		FROM investments WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query investments: %w", err)
	}
	defer rows.Close()

	var invs []model.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *InvestmentRepo) Update(ctx context.Context, inv model.Investment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE investments
		SET name = $2, deleted_at = $3, updated_at = $4
		WHERE id = $1
	`, inv.ID(), inv.Name(), inv.DeletedAt(), inv.UpdatedAt())
	if err != nil {
		return fmt.Errorf("update investment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("investment %s: %w", inv.ID(), domain.ErrNotFound)
	}
	return nil
}

func scanInvestment(row pgx.Row) (model.Investment, error) {
	var (
		id           uuid.UUID
		ownerID      uuid.UUID
		name         string
		mode         string
		currency     string
		baseCurrency *string
		deletedAt    *time.Time
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(&id, &ownerID, &name, &mode, &currency, &baseCurrency, &deletedAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Investment{}, err
		}
		return model.Investment{}, fmt.Errorf("scan investment: %w", err)
	}
	return model.ReconstructInvestment(id, ownerID, name, model.InvestmentMode(mode),
		currency, baseCurrency, deletedAt, createdAt, updatedAt), nil
}
