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
var _ port.TradeRepository = (*TradeRepo)(nil)

// TradeRepo implements TradeRepository using PostgreSQL.
type TradeRepo struct {
	q pg.Querier
}

func NewTradeRepo(q pg.Querier) *TradeRepo {
	return &TradeRepo{q: q}
}

func (r *TradeRepo) Save(ctx context.Context, trade model.Trade) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO trades (id, investment_id, account_id, side, quantity, price, amount, fee, currency, base_amount, executed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, trade.ID(), trade.InvestmentID(), trade.AccountID(), string(trade.Side()),
		trade.Quantity(), trade.Price(), trade.Amount(), trade.Fee(), trade.Currency(),
		trade.BaseAmount(), trade.ExecutedAt(), trade.CreatedAt())
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

func (r *TradeRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Trade, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, investment_id, account_id, side, quantity, price, amount, fee, currency, base_amount, executed_at, created_at
		FROM trades WHERE id = $1
	`, id)
	trade, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Trade{}, fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
		}
		return model.Trade{}, err
	}
	return trade, nil
}

func (r *TradeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByInvestment returns trades ordered by execution time ascending, the
// order position replay expects.
func (r *TradeRepo) ListByInvestment(ctx context.Context, investmentID uuid.UUID) ([]model.Trade, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, investment_id, account_id, side, quantity, price, amount, fee, currency, base_amount, executed_at, created_at
		FROM trades WHERE investment_id = $1
		ORDER BY executed_at, created_at
	`, investmentID)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []model.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

func scanTrade(row pgx.Row) (model.Trade, error) {
	var (
		id           uuid.UUID
		investmentID uuid.UUID
		accountID    uuid.UUID
		side         string
		quantity     decimal.Decimal
		price        decimal.Decimal
		amount       decimal.Decimal
		fee          decimal.Decimal
		currency     string
		baseAmount   *decimal.Decimal
		executedAt   time.Time
		createdAt    time.Time
	)
	err := row.Scan(&id, &investmentID, &accountID, &side, &quantity, &price, &amount, &fee,
		&currency, &baseAmount, &executedAt, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Trade{}, err
		}
		return model.Trade{}, fmt.Errorf("scan trade: %w", err)
	}
	return model.ReconstructTrade(id, investmentID, accountID, model.TradeSide(side),
		quantity, price, amount, fee, currency, baseAmount, executedAt, createdAt), nil
}
