package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain/event"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/service"
)

// DeleteTrade removes a trade and reverts its cash effect in one atomic
// unit. The remaining history is replayed first: deleting a buy that later
// sells depend on would leave an oversold position and is rejected.
type DeleteTrade struct {
	uow       port.UnitOfWork
	engine    *service.BalanceEngine
	positions *service.PositionEngine
	publisher port.EventPublisher
}

func NewDeleteTrade(uow port.UnitOfWork, engine *service.BalanceEngine, positions *service.PositionEngine, publisher port.EventPublisher) *DeleteTrade {
	return &DeleteTrade{uow: uow, engine: engine, positions: positions, publisher: publisher}
}

func (uc *DeleteTrade) Execute(ctx context.Context, req dto.DeleteTradeRequest) error {
	var investmentID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		trade, err := s.Trades.FindByID(ctx, req.TradeID)
		if err != nil {
			return fmt.Errorf("failed to find trade: %w", err)
		}
		inv, err := requireOwnedInvestment(ctx, s.Investments, req.OwnerID, trade.InvestmentID())
		if err != nil {
			return err
		}
		investmentID = inv.ID()

		existing, err := s.Trades.ListByInvestment(ctx, inv.ID())
		if err != nil {
			return fmt.Errorf("failed to list trades: %w", err)
		}
		remaining := make([]model.Trade, 0, len(existing))
		for _, t := range existing {
			if t.ID() != trade.ID() {
				remaining = append(remaining, t)
			}
		}
		if _, err := uc.positions.Compute(ctx, inv, remaining, nil, nil); err != nil {
			return err
		}

		if err := uc.engine.Revert(ctx, s.Accounts, service.TradeEffect(trade)); err != nil {
			return fmt.Errorf("failed to revert balance effect: %w", err)
		}
		if err := s.Trades.Delete(ctx, trade.ID()); err != nil {
			return fmt.Errorf("failed to delete trade: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	evt := event.NewInvestmentEventRecorded(investmentID, req.OwnerID, "trade_deleted", req.TradeID)
	if err := uc.publisher.Publish(ctx, TopicInvestments, evt); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}
	return nil
}
