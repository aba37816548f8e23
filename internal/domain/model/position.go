package model

import "github.com/shopspring/decimal"

// Position is the derived state of an investment at read time. It is always a
// computed response, never a stored row: every field comes from replaying the
// event history plus the latest valuation.
//
// Nil pointer fields mean "not applicable" or "no data": quantity and average
// cost are nil in manual mode, base-currency mirrors are nil until the base
// ledger has received any data, and the exchange-rate gain/loss is nil when no
// current rate is known.
type Position struct {
	Quantity *decimal.Decimal
	AvgCost  *decimal.Decimal

	CostBasis        decimal.Decimal
	RealizedPnl      decimal.Decimal
	UnrealizedPnl    decimal.Decimal
	NetContributions decimal.Decimal

	LastPrice *decimal.Decimal
	LastValue *decimal.Decimal

	CostBasisBase        *decimal.Decimal
	RealizedPnlBase      *decimal.Decimal
	UnrealizedPnlBase    *decimal.Decimal
	LastValueBase        *decimal.Decimal
	ExchangeRateGainLoss *decimal.Decimal
}
