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

// DeleteContribution removes a contribution and reverts its cash effect in
// one atomic unit. The remaining history is replayed first: deleting a
// deposit that later withdrawals depend on would overdraw the pool and is
// rejected.
type DeleteContribution struct {
	uow       port.UnitOfWork
	engine    *service.BalanceEngine
	positions *service.PositionEngine
	publisher port.EventPublisher
}

func NewDeleteContribution(uow port.UnitOfWork, engine *service.BalanceEngine, positions *service.PositionEngine, publisher port.EventPublisher) *DeleteContribution {
	return &DeleteContribution{uow: uow, engine: engine, positions: positions, publisher: publisher}
}

func (uc *DeleteContribution) Execute(ctx context.Context, req dto.DeleteContributionRequest) error {
	var investmentID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		contribution, err := s.Contributions.FindByID(ctx, req.ContributionID)
		if err != nil {
			return fmt.Errorf("failed to find contribution: %w", err)
		}
		inv, err := requireOwnedInvestment(ctx, s.Investments, req.OwnerID, contribution.InvestmentID())
		if err != nil {
			return err
		}
		investmentID = inv.ID()

		existing, err := s.Contributions.ListByInvestment(ctx, inv.ID())
		if err != nil {
			return fmt.Errorf("failed to list contributions: %w", err)
		}
		remaining := make([]model.Contribution, 0, len(existing))
		for _, c := range existing {
			if c.ID() != contribution.ID() {
				remaining = append(remaining, c)
			}
		}
		if _, err := uc.positions.Compute(ctx, inv, nil, remaining, nil); err != nil {
			return err
		}

		if effect, ok := service.ContributionEffect(contribution); ok {
			if err := uc.engine.Revert(ctx, s.Accounts, effect); err != nil {
				return fmt.Errorf("failed to revert balance effect: %w", err)
			}
		}
		if err := s.Contributions.Delete(ctx, contribution.ID()); err != nil {
			return fmt.Errorf("failed to delete contribution: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	evt := event.NewInvestmentEventRecorded(investmentID, req.OwnerID, "contribution_deleted", req.ContributionID)
	if err := uc.publisher.Publish(ctx, TopicInvestments, evt); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}
	return nil
}
