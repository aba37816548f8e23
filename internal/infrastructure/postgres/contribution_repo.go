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
var _ port.ContributionRepository = (*ContributionRepo)(nil)

// ContributionRepo implements ContributionRepository using PostgreSQL.
type ContributionRepo struct {
	q pg.Querier
}

func NewContributionRepo(q pg.Querier) *ContributionRepo {
	return &ContributionRepo{q: q}
}

func (r *ContributionRepo) Save(ctx context.Context, c model.Contribution) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contributions (id, investment_id, account_id, kind, amount, currency, base_amount, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID(), c.InvestmentID(), c.AccountID(), string(c.Kind()), c.Amount(), c.Currency(),
		c.BaseAmount(), c.OccurredAt(), c.CreatedAt())
	if err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

func (r *ContributionRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Contribution, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, investment_id, account_id, kind, amount, currency, base_amount, occurred_at, created_at
		FROM contributions WHERE id = $1
	`, id)
	c, err := scanContribution(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contribution{}, fmt.Errorf("contribution %s: %w", id, domain.ErrNotFound)
		}
		return model.Contribution{}, err
	}
	return c, nil
}

func (r *ContributionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM contributions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contribution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contribution %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByInvestment returns contributions ordered by occurrence time
// ascending, the order pool replay expects.
func (r *ContributionRepo) ListByInvestment(ctx context.Context, investmentID uuid.UUID) ([]model.Contribution, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, investment_id, account_id, kind, amount, currency, base_amount, occurred_at, created_at
		FROM contributions WHERE investment_id = $1
		ORDER BY occurred_at, created_at
	`, investmentID)
	if err != nil {
		return nil, fmt.Errorf("query contributions: %w", err)
	}
	defer rows.Close()

	var contributions []model.Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}
	return contributions, rows.Err()
}

func scanContribution(row pgx.Row) (model.Contribution, error) {
	var (
		id           uuid.UUID
		investmentID uuid.UUID
		accountID    *uuid.UUID
		kind         string
		amount       decimal.Decimal
		currency     string
		baseAmount   *decimal.Decimal
		occurredAt   time.Time
		createdAt    time.Time
	)
	err := row.Scan(&id, &investmentID, &accountID, &kind, &amount, &currency, &baseAmount, &occurredAt, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contribution{}, err
		}
		return model.Contribution{}, fmt.Errorf("scan contribution: %w", err)
	}
	return model.ReconstructContribution(id, investmentID, accountID, model.ContributionType(kind),
		amount, currency, baseAmount, occurredAt, createdAt), nil
}
