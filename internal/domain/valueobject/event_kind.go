package valueobject

import "fmt"

// EventKind identifies the cash effect of a ledger event. Transactions,
// trades and contributions all share this mutation contract.
type EventKind string

const (
	KindIncome       EventKind = "income"
	KindExpense      EventKind = "expense"
	KindTransfer     EventKind = "transfer"
	KindLoanGiven    EventKind = "loan_given"
	KindLoanReceived EventKind = "loan_received"
	KindRepayDebt    EventKind = "repay_debt"
	KindCollectDebt  EventKind = "collect_debt"
	KindBuy          EventKind = "buy"
	KindSell         EventKind = "sell"
	KindDeposit      EventKind = "deposit"
	KindWithdrawal   EventKind = "withdrawal"
)

// Direction is the sign of an event's effect on its primary account.
type Direction int

const (
	// DirectionCredit increases the primary balance by amount minus fee.
	DirectionCredit Direction = iota
	// DirectionDebit decreases the primary balance by amount plus fee.
	DirectionDebit
	// DirectionTransfer debits the primary account by amount plus fee and
	// credits the secondary account by the destination amount.
	DirectionTransfer
)

// NewEventKind validates a raw kind string.
func NewEventKind(raw string) (EventKind, error) {
	k := EventKind(raw)
	if _, err := k.Direction(); err != nil {
		return "", err
	}
	return k, nil
}

// Direction returns the balance direction for this kind, or an error for an
// unknown kind.
func (k EventKind) Direction() (Direction, error) {
	switch k {
	case KindIncome, KindLoanReceived, KindCollectDebt, KindSell, KindWithdrawal:
		return DirectionCredit, nil
	case KindExpense, KindLoanGiven, KindRepayDebt, KindBuy, KindDeposit:
		return DirectionDebit, nil
	case KindTransfer:
		return DirectionTransfer, nil
	default:
		return 0, fmt.Errorf("unknown event kind %q", string(k))
	}
}

// String returns the raw kind.
func (k EventKind) String() string {
	return string(k)
}

// TransactionKinds lists the kinds valid for a plain transaction record.
func TransactionKinds() []EventKind {
	return []EventKind{
		KindIncome, KindExpense, KindTransfer,
		KindLoanGiven, KindLoanReceived,
		KindRepayDebt, KindCollectDebt,
	}
}

// IsTransactionKind reports whether k belongs to the transaction record shape.
func (k EventKind) IsTransactionKind() bool {
	for _, tk := range TransactionKinds() {
		if k == tk {
			return true
		}
	}
	return false
}
