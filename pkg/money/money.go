// Package money holds the rounding rules for reported monetary figures.
package money

import "github.com/shopspring/decimal"

// Reported figures are rounded only at the result boundary, never
// mid-computation. Money amounts round to 2 places, per-unit costs to 6.
const (
	MoneyScale    = 2
	UnitCostScale = 6
)

// RoundMoney rounds a monetary amount to the reporting scale.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// RoundUnitCost rounds a per-unit cost to the reporting scale.
func RoundUnitCost(d decimal.Decimal) decimal.Decimal {
	return d.Round(UnitCostScale)
}
