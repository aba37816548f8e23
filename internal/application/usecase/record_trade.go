package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/event"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/service"
)

// RecordTrade records a buy or sell on a priced investment, applies the cash
// effect to the settlement account, and persists the trade in one atomic
// unit. A sell is validated against the replayed position before anything is
// written: an oversell never reaches the balance engine.
type RecordTrade struct {
	uow       port.UnitOfWork
	engine    *service.BalanceEngine
	positions *service.PositionEngine
	publisher port.EventPublisher
}

func NewRecordTrade(uow port.UnitOfWork, engine *service.BalanceEngine, positions *service.PositionEngine, publisher port.EventPublisher) *RecordTrade {
	return &RecordTrade{uow: uow, engine: engine, positions: positions, publisher: publisher}
}

func (uc *RecordTrade) Execute(ctx context.Context, req dto.RecordTradeRequest) (dto.TradeResponse, error) {
	side, err := model.ParseTradeSide(req.Side)
	if err != nil {
		return dto.TradeResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	trade, err := model.NewTrade(
		req.InvestmentID, req.AccountID, side,
		req.Quantity, req.Price, req.Amount, req.Fee,
		req.Currency, req.BaseAmount, req.ExecutedAt)
	if err != nil {
		return dto.TradeResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		inv, err := requireOwnedInvestment(ctx, s.Investments, req.OwnerID, req.InvestmentID)
		if err != nil {
			return err
		}
		if inv.Mode() != model.ModePriced {
			return fmt.Errorf("%w: trades require a priced investment", domain.ErrValidation)
		}

		accountID := trade.AccountID()
		if err := requireOwnedAccounts(ctx, s.Accounts, req.OwnerID, &accountID); err != nil {
			return err
		}

		// Replay the history with the new trade present. A sell that exceeds
		// the held quantity fails here, before any write.
		existing, err := s.Trades.ListByInvestment(ctx, inv.ID())
		if err != nil {
			return fmt.Errorf("failed to list trades: %w", err)
		}
		if _, err := uc.positions.Compute(ctx, inv, append(existing, trade), nil, nil); err != nil {
			return err
		}

		if err := uc.engine.Apply(ctx, s.Accounts, service.TradeEffect(trade)); err != nil {
			return fmt.Errorf("failed to apply balance effect: %w", err)
		}
		if err := s.Trades.Save(ctx, trade); err != nil {
			return fmt.Errorf("failed to save trade: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.TradeResponse{}, err
	}

	evt := event.NewInvestmentEventRecorded(req.InvestmentID, req.OwnerID, "trade", trade.ID())
	if err := uc.publisher.Publish(ctx, TopicInvestments, evt); err != nil {
		return dto.TradeResponse{}, fmt.Errorf("failed to publish events: %w", err)
	}

	return toTradeResponse(trade), nil
}

// requireOwnedInvestment resolves an investment and rejects foreign or
// deleted ones as not found.
func requireOwnedInvestment(ctx context.Context, investments port.InvestmentRepository, ownerID, id uuid.UUID) (model.Investment, error) {
	inv, err := investments.FindByID(ctx, id)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to find investment: %w", err)
	}
	if inv.IsDeleted() || !inv.IsOwnedBy(ownerID) {
		return model.Investment{}, fmt.Errorf("investment %s: %w", id, domain.ErrNotFound)
	}
	return inv, nil
}
