package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/pkg/money"
)

// PositionEngine reconstructs an investment's point-in-time position from its
// full event history plus the latest valuation. Both algorithms are pure
// replays with no side effects, safe to re-run on every read.
//
// The native and base-currency figures are two parallel ledgers driven by the
// same control flow; the base ledger surfaces in the result only once it has
// received any data. All figures are rounded solely at the result boundary.
type PositionEngine struct {
	rates port.RateProvider
}

// NewPositionEngine creates a PositionEngine over the given rate provider.
// The provider is consulted only for the exchange-rate gain/loss figure; a
// failed lookup leaves that figure absent rather than failing the read.
func NewPositionEngine(rates port.RateProvider) *PositionEngine {
	return &PositionEngine{rates: rates}
}

// Compute dispatches on the investment mode once and replays the matching
// event history. latest may be nil when the investment has no valuation yet.
func (e *PositionEngine) Compute(
	ctx context.Context,
	inv model.Investment,
	trades []model.Trade,
	contributions []model.Contribution,
	latest *model.Valuation,
) (model.Position, error) {
	switch inv.Mode() {
	case model.ModePriced:
		return e.computePriced(ctx, inv, trades, latest)
	case model.ModeManual:
		return e.computeManual(ctx, inv, contributions, latest)
	default:
		return model.Position{}, fmt.Errorf("%w: unknown investment mode %q", domain.ErrValidation, inv.Mode())
	}
}

// computePriced maintains a weighted-average cost over unit trades.
func (e *PositionEngine) computePriced(
	ctx context.Context,
	inv model.Investment,
	trades []model.Trade,
	latest *model.Valuation,
) (model.Position, error) {
	ordered := make([]model.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExecutedAt().Before(ordered[j].ExecutedAt())
	})

	var (
		quantity         decimal.Decimal
		costBasis        decimal.Decimal
		realizedPnl      decimal.Decimal
		netContributions decimal.Decimal

		baseActive      bool
		costBasisBase   decimal.Decimal
		realizedPnlBase decimal.Decimal
	)

	for _, t := range ordered {
		switch t.Side() {
		case model.SideBuy:
			cost := t.Amount().Add(t.Fee())
			quantity = quantity.Add(t.Quantity())
			costBasis = costBasis.Add(cost)
			netContributions = netContributions.Add(cost)
			if t.BaseAmount() != nil {
				baseActive = true
				costBasisBase = costBasisBase.Add(*t.BaseAmount())
			}

		case model.SideSell:
			if t.Quantity().GreaterThan(quantity) {
				return model.Position{}, fmt.Errorf(
					"%w: sell of %s exceeds position of %s",
					domain.ErrInvariant, t.Quantity(), quantity)
			}

			preQuantity := quantity
			proceeds := t.Amount().Sub(t.Fee())

			// At zero quantity the average cost is treated as zero and the
			// trade contributes no realized P&L.
			if preQuantity.IsPositive() {
				avgCost := costBasis.Div(preQuantity)
				costOfSold := avgCost.Mul(t.Quantity())
				realizedPnl = realizedPnl.Add(proceeds.Sub(costOfSold))
				costBasis = costBasis.Sub(costOfSold)
			}
			netContributions = netContributions.Sub(proceeds)
			quantity = quantity.Sub(t.Quantity())

			if t.BaseAmount() != nil && costBasisBase.IsPositive() && preQuantity.IsPositive() {
				baseActive = true
				avgCostBase := costBasisBase.Div(preQuantity)
				costOfSoldBase := avgCostBase.Mul(t.Quantity())
				realizedPnlBase = realizedPnlBase.Add(baseAmountOf(t).Sub(costOfSoldBase))
				costBasisBase = costBasisBase.Sub(costOfSoldBase)
			}

		default:
			return model.Position{}, fmt.Errorf("%w: unknown trade side %q", domain.ErrValidation, t.Side())
		}
	}

	pos := model.Position{
		CostBasis:        money.RoundMoney(costBasis),
		RealizedPnl:      money.RoundMoney(realizedPnl),
		NetContributions: money.RoundMoney(netContributions),
	}
	pos.Quantity = &quantity

	if quantity.IsPositive() {
		avgCost := money.RoundUnitCost(costBasis.Div(quantity))
		pos.AvgCost = &avgCost
	}

	lastPrice := latestPrice(ordered, latest)
	if lastPrice != nil {
		rounded := money.RoundUnitCost(*lastPrice)
		pos.LastPrice = &rounded

		lastValue := money.RoundMoney(quantity.Mul(*lastPrice))
		pos.LastValue = &lastValue
		pos.UnrealizedPnl = money.RoundMoney(quantity.Mul(*lastPrice).Sub(costBasis))
	}

	if baseActive {
		cbb := money.RoundMoney(costBasisBase)
		rpb := money.RoundMoney(realizedPnlBase)
		pos.CostBasisBase = &cbb
		pos.RealizedPnlBase = &rpb

		if lvb := lastValueBase(quantity, lastPrice, latest); lvb != nil {
			rlvb := money.RoundMoney(*lvb)
			pos.LastValueBase = &rlvb
			upb := money.RoundMoney(lvb.Sub(costBasisBase))
			pos.UnrealizedPnlBase = &upb
		}

		e.attachFXGainLoss(ctx, inv, realizedPnl, realizedPnlBase, &pos)
	}

	return pos, nil
}

// computeManual maintains a pooled cash-flow cost over contributions. There is
// no quantity: assets valued only by periodic total-value snapshot are a
// pooled-cost problem, not a share-count problem.
func (e *PositionEngine) computeManual(
	ctx context.Context,
	inv model.Investment,
	contributions []model.Contribution,
	latest *model.Valuation,
) (model.Position, error) {
	ordered := make([]model.Contribution, len(contributions))
	copy(ordered, contributions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OccurredAt().Before(ordered[j].OccurredAt())
	})

	var (
		netContributions decimal.Decimal
		realizedPnl      decimal.Decimal

		baseActive      bool
		costBasisBase   decimal.Decimal
		realizedPnlBase decimal.Decimal
	)

	for _, c := range ordered {
		switch c.Kind() {
		case model.ContributionDeposit:
			netContributions = netContributions.Add(c.Amount())
			if c.BaseAmount() != nil {
				baseActive = true
				costBasisBase = costBasisBase.Add(*c.BaseAmount())
			}

		case model.ContributionWithdrawal:
			if netContributions.IsZero() || c.Amount().GreaterThan(netContributions) {
				return model.Position{}, fmt.Errorf(
					"%w: withdrawal of %s exceeds balance of %s",
					domain.ErrInvariant, c.Amount(), netContributions)
			}

			// Proportional release against the pre-withdrawal pool.
			ratio := c.Amount().Div(netContributions)
			released := netContributions.Mul(ratio)
			realizedPnl = realizedPnl.Add(c.Amount().Sub(released))
			netContributions = netContributions.Sub(released)

			if baseActive && costBasisBase.IsPositive() {
				releasedBase := costBasisBase.Mul(ratio)
				if c.BaseAmount() != nil {
					realizedPnlBase = realizedPnlBase.Add(c.BaseAmount().Sub(releasedBase))
				}
				costBasisBase = costBasisBase.Sub(releasedBase)
			}

		default:
			return model.Position{}, fmt.Errorf("%w: unknown contribution type %q", domain.ErrValidation, c.Kind())
		}
	}

	pos := model.Position{
		NetContributions: money.RoundMoney(netContributions),
		RealizedPnl:      money.RoundMoney(realizedPnl),
	}

	if latest != nil && latest.Value() != nil {
		lastValue := money.RoundMoney(*latest.Value())
		pos.LastValue = &lastValue
		pos.UnrealizedPnl = money.RoundMoney(latest.Value().Sub(netContributions))
	}

	if baseActive {
		cbb := money.RoundMoney(costBasisBase)
		rpb := money.RoundMoney(realizedPnlBase)
		pos.CostBasisBase = &cbb
		pos.RealizedPnlBase = &rpb

		if latest != nil && latest.Value() != nil && latest.Rate() != nil {
			lvb := money.RoundMoney(latest.Value().Mul(*latest.Rate()))
			pos.LastValueBase = &lvb
			upb := money.RoundMoney(latest.Value().Mul(*latest.Rate()).Sub(costBasisBase))
			pos.UnrealizedPnlBase = &upb
		}

		e.attachFXGainLoss(ctx, inv, realizedPnl, realizedPnlBase, &pos)
	}

	return pos, nil
}

// attachFXGainLoss isolates FX-driven P&L from asset-price-driven P&L by
// comparing the accumulated base-currency realized figure against the native
// figure translated at the current rate. Without a resolvable rate the figure
// stays absent.
func (e *PositionEngine) attachFXGainLoss(
	ctx context.Context,
	inv model.Investment,
	realizedPnl, realizedPnlBase decimal.Decimal,
	pos *model.Position,
) {
	if inv.BaseCurrency() == nil {
		return
	}
	rate, err := e.rates.Rate(ctx, inv.Currency(), *inv.BaseCurrency())
	if err != nil {
		return
	}
	fx := money.RoundMoney(realizedPnlBase.Sub(realizedPnl.Mul(rate)))
	pos.ExchangeRateGainLoss = &fx
}

// latestPrice resolves the most recent known per-unit price: the latest
// valuation's price when present, otherwise the most recent trade's price.
func latestPrice(ordered []model.Trade, latest *model.Valuation) *decimal.Decimal {
	if latest != nil && latest.Price() != nil {
		p := *latest.Price()
		return &p
	}
	if len(ordered) > 0 {
		p := ordered[len(ordered)-1].Price()
		return &p
	}
	return nil
}

// lastValueBase resolves the base-currency value of the held quantity from
// whatever the latest valuation captured: a base price directly, or an
// exchange rate applied to the native value.
func lastValueBase(quantity decimal.Decimal, lastPrice *decimal.Decimal, latest *model.Valuation) *decimal.Decimal {
	if latest == nil {
		return nil
	}
	if latest.BasePrice() != nil {
		v := quantity.Mul(*latest.BasePrice())
		return &v
	}
	if latest.Rate() != nil && lastPrice != nil {
		v := quantity.Mul(*lastPrice).Mul(*latest.Rate())
		return &v
	}
	return nil
}

func baseAmountOf(t model.Trade) decimal.Decimal {
	if t.BaseAmount() == nil {
		return decimal.Zero
	}
	return *t.BaseAmount()
}
