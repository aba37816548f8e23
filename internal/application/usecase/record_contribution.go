package usecase

import (
	"context"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/event"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/service"
)

// RecordContribution records a deposit or withdrawal on a manual investment.
// A withdrawal is validated against the replayed pool before anything is
// written. When the contribution is linked to a funding account the cash
// effect lands on that account in the same atomic unit.
type RecordContribution struct {
	uow       port.UnitOfWork
	engine    *service.BalanceEngine
	positions *service.PositionEngine
	publisher port.EventPublisher
}

func NewRecordContribution(uow port.UnitOfWork, engine *service.BalanceEngine, positions *service.PositionEngine, publisher port.EventPublisher) *RecordContribution {
	return &RecordContribution{uow: uow, engine: engine, positions: positions, publisher: publisher}
}

func (uc *RecordContribution) Execute(ctx context.Context, req dto.RecordContributionRequest) (dto.ContributionResponse, error) {
	kind, err := model.ParseContributionType(req.Kind)
	if err != nil {
		return dto.ContributionResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	contribution, err := model.NewContribution(
		req.InvestmentID, req.AccountID, kind,
		req.Amount, req.Currency, req.BaseAmount, req.OccurredAt)
	if err != nil {
		return dto.ContributionResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		inv, err := requireOwnedInvestment(ctx, s.Investments, req.OwnerID, req.InvestmentID)
		if err != nil {
			return err
		}
		if inv.Mode() != model.ModeManual {
			return fmt.Errorf("%w: contributions require a manual investment", domain.ErrValidation)
		}
		if err := requireOwnedAccounts(ctx, s.Accounts, req.OwnerID, contribution.AccountID()); err != nil {
			return err
		}

		// Replay the pool with the new contribution present. An
		// over-withdrawal fails here, before any write.
		existing, err := s.Contributions.ListByInvestment(ctx, inv.ID())
		if err != nil {
			return fmt.Errorf("failed to list contributions: %w", err)
		}
		if _, err := uc.positions.Compute(ctx, inv, nil, append(existing, contribution), nil); err != nil {
			return err
		}

		if effect, ok := service.ContributionEffect(contribution); ok {
			if err := uc.engine.Apply(ctx, s.Accounts, effect); err != nil {
				return fmt.Errorf("failed to apply balance effect: %w", err)
			}
		}
		if err := s.Contributions.Save(ctx, contribution); err != nil {
			return fmt.Errorf("failed to save contribution: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.ContributionResponse{}, err
	}

	evt := event.NewInvestmentEventRecorded(req.InvestmentID, req.OwnerID, "contribution", contribution.ID())
	if err := uc.publisher.Publish(ctx, TopicInvestments, evt); err != nil {
		return dto.ContributionResponse{}, fmt.Errorf("failed to publish events: %w", err)
	}

	return toContributionResponse(contribution), nil
}
