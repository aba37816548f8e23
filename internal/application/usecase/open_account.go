package usecase

import (
	"context"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
)

const TopicAccounts = "moneta.ledger.accounts"

// OpenAccount handles the creation of a new account.
type OpenAccount struct {
	accounts  port.AccountRepository
	publisher port.EventPublisher
}

func NewOpenAccount(accounts port.AccountRepository, publisher port.EventPublisher) *OpenAccount {
	return &OpenAccount{accounts: accounts, publisher: publisher}
}

func (uc *OpenAccount) Execute(ctx context.Context, req dto.OpenAccountRequest) (dto.AccountResponse, error) {
	kind, err := model.ParseAccountKind(req.Kind)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	account, err := model.NewAccount(req.OwnerID, req.Name, req.Currency, kind, req.CreditLimit)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := uc.accounts.Save(ctx, account); err != nil {
		return dto.AccountResponse{}, fmt.Errorf("failed to save account: %w", err)
	}

	if events := account.DomainEvents(); len(events) > 0 {
		if err := uc.publisher.Publish(ctx, TopicAccounts, events...); err != nil {
			return dto.AccountResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return toAccountResponse(account), nil
}
