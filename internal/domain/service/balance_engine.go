package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/valueobject"
)

// Effect is the cash effect of a ledger event: what to add to or subtract from
// one or two account balances. Transactions, trades and contributions all
// reduce to this shape.
type Effect struct {
	Kind             valueobject.EventKind
	AccountID        uuid.UUID
	CounterAccountID *uuid.UUID
	Amount           decimal.Decimal
	Fee              decimal.Decimal
	Currency         string

	// DestinationAmount, for transfers, is the explicit amount credited to
	// the counter account in its own currency - a cross-rate the caller
	// captured at entry. When nil the engine converts the source amount.
	DestinationAmount *decimal.Decimal
}

// TransactionEffect builds the Effect of a transaction record.
func TransactionEffect(t model.Transaction) Effect {
	return Effect{
		Kind:              t.Kind(),
		AccountID:         t.AccountID(),
		CounterAccountID:  t.CounterAccountID(),
		Amount:            t.Amount(),
		Fee:               t.Fee(),
		Currency:          t.Currency(),
		DestinationAmount: t.DestinationAmount(),
	}
}

// TradeEffect builds the Effect of a trade on its settlement account:
// a buy spends cash, a sell receives it.
func TradeEffect(t model.Trade) Effect {
	kind := valueobject.KindBuy
	if t.Side() == model.SideSell {
		kind = valueobject.KindSell
	}
	return Effect{
		Kind:      kind,
		AccountID: t.AccountID(),
		Amount:    t.Amount(),
		Fee:       t.Fee(),
		Currency:  t.Currency(),
	}
}

// ContributionEffect builds the Effect of a contribution on its funding
// account. The second return is false when the contribution is not linked to
// an account, in which case there is no cash effect to apply.
func ContributionEffect(c model.Contribution) (Effect, bool) {
	if c.AccountID() == nil {
		return Effect{}, false
	}
	kind := valueobject.KindDeposit
	if c.Kind() == model.ContributionWithdrawal {
		kind = valueobject.KindWithdrawal
	}
	return Effect{
		Kind:      kind,
		AccountID: *c.AccountID(),
		Amount:    c.Amount(),
		Fee:       decimal.Zero,
		Currency:  c.Currency(),
	}, true
}

// balanceDelta is one planned balance adjustment, already converted into the
// target account's currency.
type balanceDelta struct {
	accountID uuid.UUID
	delta     decimal.Decimal
}

// BalanceEngine applies and reverts the cash effect of ledger events onto
// account balances, converting through the rate provider as needed.
//
// Both operations are all-or-nothing with respect to validation: every
// account lookup and every rate resolution happens before the first balance
// write, so a failure leaves no partial mutation. Atomicity across the writes
// themselves is the caller's responsibility - the engine must be invoked with
// a transaction-scoped store.
type BalanceEngine struct {
	rates port.RateProvider
}

// NewBalanceEngine creates a BalanceEngine over the given rate provider.
func NewBalanceEngine(rates port.RateProvider) *BalanceEngine {
	return &BalanceEngine{rates: rates}
}

// Apply applies the cash effect of an event onto its account balances.
func (e *BalanceEngine) Apply(ctx context.Context, store port.AccountStore, effect Effect) error {
	deltas, err := e.plan(ctx, store, effect)
	if err != nil {
		return err
	}
	return applyDeltas(ctx, store, deltas)
}

// Revert reverses a previously applied effect. It is the exact sign mirror of
// Apply: the same plan is computed and every delta is negated. Conversion uses
// the rate in effect at call time.
func (e *BalanceEngine) Revert(ctx context.Context, store port.AccountStore, effect Effect) error {
	deltas, err := e.plan(ctx, store, effect)
	if err != nil {
		return err
	}
	for i := range deltas {
		deltas[i].delta = deltas[i].delta.Neg()
	}
	return applyDeltas(ctx, store, deltas)
}

// plan validates the effect and computes every balance adjustment without
// writing anything. All four failure classes are detected here.
func (e *BalanceEngine) plan(ctx context.Context, store port.AccountStore, effect Effect) ([]balanceDelta, error) {
	dir, err := effect.Kind.Direction()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !effect.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", domain.ErrValidation, effect.Amount)
	}
	if effect.Fee.IsNegative() {
		return nil, fmt.Errorf("%w: fee must not be negative, got %s", domain.ErrValidation, effect.Fee)
	}

	primary, err := store.GetAccount(ctx, effect.AccountID)
	if err != nil {
		return nil, fmt.Errorf("primary account %s: %w", effect.AccountID, err)
	}

	switch dir {
	case valueobject.DirectionCredit:
		delta, err := e.convert(ctx, effect.Amount.Sub(effect.Fee), effect.Currency, primary.Currency())
		if err != nil {
			return nil, err
		}
		return []balanceDelta{{accountID: primary.ID(), delta: delta}}, nil

	case valueobject.DirectionDebit:
		delta, err := e.convert(ctx, effect.Amount.Add(effect.Fee), effect.Currency, primary.Currency())
		if err != nil {
			return nil, err
		}
		return []balanceDelta{{accountID: primary.ID(), delta: delta.Neg()}}, nil

	case valueobject.DirectionTransfer:
		if effect.CounterAccountID == nil {
			return nil, fmt.Errorf("%w: transfer requires a destination account", domain.ErrValidation)
		}
		secondary, err := store.GetAccount(ctx, *effect.CounterAccountID)
		if err != nil {
			return nil, fmt.Errorf("destination account %s: %w", *effect.CounterAccountID, err)
		}

		outgoing, err := e.convert(ctx, effect.Amount.Add(effect.Fee), effect.Currency, primary.Currency())
		if err != nil {
			return nil, err
		}

		var incoming decimal.Decimal
		if effect.DestinationAmount != nil {
			// Caller captured the cross-rate at entry; the amount is already
			// in the destination account's currency.
			incoming = *effect.DestinationAmount
		} else {
			incoming, err = e.convert(ctx, effect.Amount, effect.Currency, secondary.Currency())
			if err != nil {
				return nil, err
			}
		}

		return []balanceDelta{
			{accountID: primary.ID(), delta: outgoing.Neg()},
			{accountID: secondary.ID(), delta: incoming},
		}, nil

	default:
		return nil, fmt.Errorf("%w: unhandled direction %d", domain.ErrValidation, dir)
	}
}

// convert converts an amount from the event currency into an account currency.
// Identical currencies return the amount untouched with no provider call,
// avoiding rounding noise on the common same-currency path.
func (e *BalanceEngine) convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	factor, err := e.rates.Rate(ctx, from, to)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s/%s: %v", domain.ErrConversion, from, to, err)
	}
	return amount.Mul(factor), nil
}

// applyDeltas writes the planned adjustments. Validation is complete by the
// time this runs: the sequence is straight-line with no conditional early
// return once the first write lands.
func applyDeltas(ctx context.Context, store port.AccountStore, deltas []balanceDelta) error {
	for _, d := range deltas {
		if err := store.UpdateBalance(ctx, d.accountID, d.delta); err != nil {
			return fmt.Errorf("update balance of %s: %w", d.accountID, err)
		}
	}
	return nil
}
