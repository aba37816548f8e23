package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/service"
)

// GetPosition computes the current position of an investment. The position is
// derived on every read from the stored history and the latest valuation;
// nothing is persisted.
type GetPosition struct {
	investments   port.InvestmentRepository
	trades        port.TradeRepository
	contributions port.ContributionRepository
	valuations    port.ValuationRepository
	positions     *service.PositionEngine
}

func NewGetPosition(
	investments port.InvestmentRepository,
	trades port.TradeRepository,
	contributions port.ContributionRepository,
	valuations port.ValuationRepository,
	positions *service.PositionEngine,
) *GetPosition {
	return &GetPosition{
		investments:   investments,
		trades:        trades,
		contributions: contributions,
		valuations:    valuations,
		positions:     positions,
	}
}

func (uc *GetPosition) Execute(ctx context.Context, req dto.GetPositionRequest) (dto.PositionResponse, error) {
	inv, err := requireOwnedInvestment(ctx, uc.investments, req.OwnerID, req.InvestmentID)
	if err != nil {
		return dto.PositionResponse{}, err
	}

	var (
		trades        []model.Trade
		contributions []model.Contribution
	)
	switch inv.Mode() {
	case model.ModePriced:
		trades, err = uc.trades.ListByInvestment(ctx, inv.ID())
		if err != nil {
			return dto.PositionResponse{}, fmt.Errorf("failed to list trades: %w", err)
		}
	case model.ModeManual:
		contributions, err = uc.contributions.ListByInvestment(ctx, inv.ID())
		if err != nil {
			return dto.PositionResponse{}, fmt.Errorf("failed to list contributions: %w", err)
		}
	}

	var latest *model.Valuation
	val, err := uc.valuations.FindLatest(ctx, inv.ID())
	switch {
	case err == nil:
		latest = &val
	case errors.Is(err, domain.ErrNotFound):
		// No valuation yet; the engine falls back where it can.
	default:
		return dto.PositionResponse{}, fmt.Errorf("failed to find latest valuation: %w", err)
	}

	position, err := uc.positions.Compute(ctx, inv, trades, contributions, latest)
	if err != nil {
		return dto.PositionResponse{}, err
	}

	return toPositionResponse(inv, position), nil
}
