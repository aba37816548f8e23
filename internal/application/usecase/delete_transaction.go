package usecase

import (
	"context"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/event"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/service"
)

// DeleteTransaction removes a transaction and reverts its balance effect in
// one atomic unit.
type DeleteTransaction struct {
	uow       port.UnitOfWork
	engine    *service.BalanceEngine
	publisher port.EventPublisher
}

func NewDeleteTransaction(uow port.UnitOfWork, engine *service.BalanceEngine, publisher port.EventPublisher) *DeleteTransaction {
	return &DeleteTransaction{uow: uow, engine: engine, publisher: publisher}
}

func (uc *DeleteTransaction) Execute(ctx context.Context, req dto.DeleteTransactionRequest) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		existing, err := s.Transactions.FindByID(ctx, req.TransactionID)
		if err != nil {
			return fmt.Errorf("failed to find transaction: %w", err)
		}
		if !existing.IsOwnedBy(req.OwnerID) {
			return fmt.Errorf("transaction %s: %w", req.TransactionID, domain.ErrNotFound)
		}

		if err := uc.engine.Revert(ctx, s.Accounts, service.TransactionEffect(existing)); err != nil {
			return fmt.Errorf("failed to revert balance effect: %w", err)
		}
		if err := s.Transactions.Delete(ctx, existing.ID()); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	evt := event.NewTransactionReversed(req.TransactionID, req.OwnerID, "deleted")
	if err := uc.publisher.Publish(ctx, TopicTransactions, evt); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}
	return nil
}
