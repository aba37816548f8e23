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
	"github.com/moneta-app/moneta/internal/domain/valueobject"
)

const TopicTransactions = "moneta.ledger.transactions"

// RecordTransaction records a cash transaction and applies its balance effect
// in one atomic unit.
type RecordTransaction struct {
	uow       port.UnitOfWork
	engine    *service.BalanceEngine
	publisher port.EventPublisher
}

func NewRecordTransaction(uow port.UnitOfWork, engine *service.BalanceEngine, publisher port.EventPublisher) *RecordTransaction {
	return &RecordTransaction{uow: uow, engine: engine, publisher: publisher}
}

func (uc *RecordTransaction) Execute(ctx context.Context, req dto.RecordTransactionRequest) (dto.TransactionResponse, error) {
	kind, err := valueobject.NewEventKind(req.Kind)
	if err != nil {
		return dto.TransactionResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tx, err := model.NewTransaction(
		req.OwnerID, kind, req.AccountID, req.CounterAccountID,
		req.Amount, req.Fee, req.Currency, req.DestinationAmount,
		req.Date, req.Note)
	if err != nil {
		return dto.TransactionResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		primary := tx.AccountID()
		if err := requireOwnedAccounts(ctx, s.Accounts, req.OwnerID, &primary, tx.CounterAccountID()); err != nil {
			return err
		}
		if err := uc.engine.Apply(ctx, s.Accounts, service.TransactionEffect(tx)); err != nil {
			return fmt.Errorf("failed to apply balance effect: %w", err)
		}
		if err := s.Transactions.Save(ctx, tx); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.TransactionResponse{}, err
	}

	evt := event.NewTransactionRecorded(tx.ID(), tx.OwnerID(), string(tx.Kind()), tx.Amount().String(), tx.Currency())
	if err := uc.publisher.Publish(ctx, TopicTransactions, evt); err != nil {
		return dto.TransactionResponse{}, fmt.Errorf("failed to publish events: %w", err)
	}

	return toTransactionResponse(tx), nil
}

// requireOwnedAccounts resolves each given account under the current unit of
// work and rejects any that the caller does not own. A foreign account reads
// as not found.
func requireOwnedAccounts(ctx context.Context, accounts port.AccountRepository, ownerID uuid.UUID, ids ...*uuid.UUID) error {
	for _, id := range ids {
		if id == nil {
			continue
		}
		account, err := accounts.GetAccount(ctx, *id)
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		if !account.IsOwnedBy(ownerID) {
			return fmt.Errorf("account %s: %w", *id, domain.ErrNotFound)
		}
	}
	return nil
}
