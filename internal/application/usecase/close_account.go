package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/pkg/events"
)

// CloseAccount soft-deletes an account. Closed accounts stop resolving in
// every lookup; their transaction history stays intact.
type CloseAccount struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
}

func NewCloseAccount(uow port.UnitOfWork, publisher port.EventPublisher) *CloseAccount {
	return &CloseAccount{uow: uow, publisher: publisher}
}

func (uc *CloseAccount) Execute(ctx context.Context, req dto.CloseAccountRequest) (dto.AccountResponse, error) {
	var (
		closed  model.Account
		pending []events.DomainEvent
	)

	err := uc.uow.Within(ctx, func(ctx context.Context, s port.Stores) error {
		account, err := s.Accounts.GetAccount(ctx, req.AccountID)
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		if !account.IsOwnedBy(req.OwnerID) {
			return fmt.Errorf("account %s: %w", req.AccountID, domain.ErrNotFound)
		}

		closed, err = account.Close(time.Now().UTC())
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvariant, err)
		}

		if err := s.Accounts.Update(ctx, closed); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		pending = closed.DomainEvents()
		return nil
	})
	if err != nil {
		return dto.AccountResponse{}, err
	}

	if len(pending) > 0 {
		if err := uc.publisher.Publish(ctx, TopicAccounts, pending...); err != nil {
			return dto.AccountResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return toAccountResponse(closed), nil
}
