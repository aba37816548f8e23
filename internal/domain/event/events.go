package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-app/moneta/pkg/events"
)

const (
	AggregateTypeAccount     = "Account"
	AggregateTypeTransaction = "Transaction"
	AggregateTypeInvestment  = "Investment"
)

// AccountOpened is emitted when a new account is created.
type AccountOpened struct {
	events.BaseEvent
	AccountID uuid.UUID `json:"account_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Kind      string    `json:"kind"`
}

// NewAccountOpened creates an AccountOpened domain event.
func NewAccountOpened(accountID, ownerID uuid.UUID, name, currency, kind string) AccountOpened {
	payload, _ := json.Marshal(struct {
		AccountID uuid.UUID `json:"account_id"`
		OwnerID   uuid.UUID `json:"owner_id"`
		Name      string    `json:"name"`
		Currency  string    `json:"currency"`
		Kind      string    `json:"kind"`
	}{accountID, ownerID, name, currency, kind})

	return AccountOpened{
		BaseEvent: events.NewBaseEvent("ledger.account.opened", accountID, AggregateTypeAccount, payload),
		AccountID: accountID,
		OwnerID:   ownerID,
		Name:      name,
		Currency:  currency,
		Kind:      kind,
	}
}

// AccountClosed is emitted when an account is soft-deleted.
type AccountClosed struct {
	events.BaseEvent
	AccountID uuid.UUID `json:"account_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	ClosedAt  time.Time `json:"closed_at"`
}

// NewAccountClosed creates an AccountClosed domain event.
func NewAccountClosed(accountID, ownerID uuid.UUID, closedAt time.Time) AccountClosed {
	payload, _ := json.Marshal(struct {
		AccountID uuid.UUID `json:"account_id"`
		OwnerID   uuid.UUID `json:"owner_id"`
		ClosedAt  time.Time `json:"closed_at"`
	}{accountID, ownerID, closedAt})

	return AccountClosed{
		BaseEvent: events.NewBaseEvent("ledger.account.closed", accountID, AggregateTypeAccount, payload),
		AccountID: accountID,
		OwnerID:   ownerID,
		ClosedAt:  closedAt,
	}
}

// TransactionRecorded is emitted after a transaction and its balance effect
// commit together.
type TransactionRecorded struct {
	events.BaseEvent
	TransactionID uuid.UUID `json:"transaction_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Kind          string    `json:"kind"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
}

// NewTransactionRecorded creates a TransactionRecorded domain event.
func NewTransactionRecorded(transactionID, ownerID uuid.UUID, kind, amount, currency string) TransactionRecorded {
	payload, _ := json.Marshal(struct {
		TransactionID uuid.UUID `json:"transaction_id"`
		OwnerID       uuid.UUID `json:"owner_id"`
		Kind          string    `json:"kind"`
		Amount        string    `json:"amount"`
		Currency      string    `json:"currency"`
	}{transactionID, ownerID, kind, amount, currency})

	return TransactionRecorded{
		BaseEvent:     events.NewBaseEvent("ledger.transaction.recorded", transactionID, AggregateTypeTransaction, payload),
		TransactionID: transactionID,
		OwnerID:       ownerID,
		Kind:          kind,
		Amount:        amount,
		Currency:      currency,
	}
}

// TransactionReversed is emitted when a transaction edit or delete reverts its
// previous balance effect.
type TransactionReversed struct {
	events.BaseEvent
	TransactionID uuid.UUID `json:"transaction_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Reason        string    `json:"reason"`
}

// NewTransactionReversed creates a TransactionReversed domain event.
func NewTransactionReversed(transactionID, ownerID uuid.UUID, reason string) TransactionReversed {
	payload, _ := json.Marshal(struct {
		TransactionID uuid.UUID `json:"transaction_id"`
		OwnerID       uuid.UUID `json:"owner_id"`
		Reason        string    `json:"reason"`
	}{transactionID, ownerID, reason})

	return TransactionReversed{
		BaseEvent:     events.NewBaseEvent("ledger.transaction.reversed", transactionID, AggregateTypeTransaction, payload),
		TransactionID: transactionID,
		OwnerID:       ownerID,
		Reason:        reason,
	}
}

// InvestmentEventRecorded is emitted after a trade, contribution or valuation
// is written for an investment.
type InvestmentEventRecorded struct {
	events.BaseEvent
	InvestmentID uuid.UUID `json:"investment_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	RecordType   string    `json:"record_type"`
	RecordID     uuid.UUID `json:"record_id"`
}

// NewInvestmentEventRecorded creates an InvestmentEventRecorded domain event.
func NewInvestmentEventRecorded(investmentID, ownerID uuid.UUID, recordType string, recordID uuid.UUID) InvestmentEventRecorded {
	payload, _ := json.Marshal(struct {
		InvestmentID uuid.UUID `json:"investment_id"`
		OwnerID      uuid.UUID `json:"owner_id"`
		RecordType   string    `json:"record_type"`
		RecordID     uuid.UUID `json:"record_id"`
	}{investmentID, ownerID, recordType, recordID})

	return InvestmentEventRecorded{
		BaseEvent:    events.NewBaseEvent("ledger.investment.event_recorded", investmentID, AggregateTypeInvestment, payload),
		InvestmentID: investmentID,
		OwnerID:      ownerID,
		RecordType:   recordType,
		RecordID:     recordID,
	}
}
