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
var _ port.ValuationRepository = (*ValuationRepo)(nil)

// ValuationRepo implements ValuationRepository using PostgreSQL.
type ValuationRepo struct {
	q pg.Querier
}

func NewValuationRepo(q pg.Querier) *ValuationRepo {
	return &ValuationRepo{q: q}
}

func (r *ValuationRepo) Save(ctx context.Context, v model.Valuation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO valuations (id, investment_id, price, value, currency, base_price, rate, observed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, v.ID(), v.InvestmentID(), v.Price(), v.Value(), v.Currency(), v.BasePrice(), v.Rate(),
		v.ObservedAt(), v.CreatedAt())
	if err != nil {
		return fmt.Errorf("insert valuation: %w", err)
	}
	return nil
}

// FindLatest returns the most recently observed valuation for an investment.
func (r *ValuationRepo) FindLatest(ctx context.Context, investmentID uuid.UUID) (model.Valuation, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, investment_id, price, value, currency, base_price, rate, observed_at, created_at
		FROM valuations WHERE investment_id = $1
		ORDER BY observed_at DESC, created_at DESC
		LIMIT 1
	`, investmentID)

	var (
		id        uuid.UUID
		invID     uuid.UUID
		price     *decimal.Decimal
		value     *decimal.Decimal
		currency  string
		basePrice *decimal.Decimal
		rate      *decimal.Decimal
		observed  time.Time
		created   time.Time
	)
	err := row.Scan(&id, &invID, &price, &value, &currency, &basePrice, &rate, &observed, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Valuation{}, fmt.Errorf("valuation for %s: %w", investmentID, domain.ErrNotFound)
		}
		return model.Valuation{}, fmt.Errorf("scan valuation: %w", err)
	}
	return model.ReconstructValuation(id, invID, price, value, currency, basePrice, rate, observed, created), nil
}
