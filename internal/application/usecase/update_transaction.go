package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/event"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/service"
	"github.com/moneta-app/moneta/internal/domain/valueobject"
)

// UpdateTransaction replaces an existing transaction in one atomic unit:
// the old effect is reverted, the new one applied, the record rewritten.
// Rates in force at edit time govern both conversions.
type UpdateTransaction struct {
	uow       port.UnitOfWork
	engine    *service.BalanceEngine
	publisher port.EventPublisher
}

func NewUpdateTransaction(uow port.UnitOfWork, engine *service.BalanceEngine, publisher port.EventPublisher) *UpdateTransaction {
	return &UpdateTransaction{uow: uow, engine: engine, publisher: publisher}
}

func (uc *UpdateTransaction) Execute(ctx context.Context, req dto.UpdateTransactionRequest) (dto.TransactionResponse, error) {
	kind, err := valueobject.NewEventKind(req.Kind)
	if err != nil {
		return dto.TransactionResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	replacement, err := model.NewTransaction(
		req.OwnerID, kind, req.AccountID, req.CounterAccountID,
		req.Amount, req.Fee, req.Currency, req.DestinationAmount,
		req.Date, req.Note)
	if err != nil {
		return dto.TransactionResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var revised model.Transaction
	err = uc.uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		existing, err := s.Transactions.FindByID(ctx, req.TransactionID)
		if err != nil {
			return fmt.Errorf("failed to find transaction: %w", err)
		}
		if !existing.IsOwnedBy(req.OwnerID) {
			return fmt.Errorf("transaction %s: %w", req.TransactionID, domain.ErrNotFound)
		}

		primary := replacement.AccountID()
		if err := requireOwnedAccounts(ctx, s.Accounts, req.OwnerID, &primary, replacement.CounterAccountID()); err != nil {
			return err
		}

		if err := uc.engine.Revert(ctx, s.Accounts, service.TransactionEffect(existing)); err != nil {
			return fmt.Errorf("failed to revert previous effect: %w", err)
		}
		if err := uc.engine.Apply(ctx, s.Accounts, service.TransactionEffect(replacement)); err != nil {
			return fmt.Errorf("failed to apply balance effect: %w", err)
		}

		revised = existing.WithRevision(replacement, time.Now().UTC())
		if err := s.Transactions.Update(ctx, revised); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.TransactionResponse{}, err
	}

	evt := event.NewTransactionRecorded(revised.ID(), revised.OwnerID(), string(revised.Kind()), revised.Amount().String(), revised.Currency())
	if err := uc.publisher.Publish(ctx, TopicTransactions, evt); err != nil {
		return dto.TransactionResponse{}, fmt.Errorf("failed to publish events: %w", err)
	}

	return toTransactionResponse(revised), nil
}
