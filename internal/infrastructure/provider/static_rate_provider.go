package provider

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/valueobject"
)

// Compile-time interface check
var _ port.RateProvider = (*StaticRateProvider)(nil)

// staticRates is keyed by valueobject.CurrencyPair.String().
var staticRates = map[string]string{
	"EUR/USD": "1.0850",
	"GBP/USD": "1.2650",
	"USD/JPY": "149.50",
	"USD/CHF": "0.8820",
	"AUD/USD": "0.6520",
	"USD/CAD": "1.3580",
	"NZD/USD": "0.6080",
	"EUR/GBP": "0.8580",
	"EUR/JPY": "162.20",
	"GBP/JPY": "189.10",
}

// StaticRateProvider returns hardcoded exchange rates for common currency
// pairs. It is intended for development, testing, and CI environments.
type StaticRateProvider struct{}

// NewStaticRateProvider creates a new StaticRateProvider.
func NewStaticRateProvider() *StaticRateProvider {
	return &StaticRateProvider{}
}

// Rate returns the static conversion factor from one currency to another.
// Malformed codes and unknown pairs fail with the conversion error class; a
// rate is never silently defaulted.
func (p *StaticRateProvider) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	pair, err := valueobject.NewCurrencyPair(from, to)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", domain.ErrConversion, err)
	}

	if rateStr, ok := staticRates[pair.String()]; ok {
		d, _ := decimal.NewFromString(rateStr)
		return d, nil
	}

	// Try the inverse pair.
	if rateStr, ok := staticRates[pair.Inverse().String()]; ok {
		d, _ := decimal.NewFromString(rateStr)
		rate, err := valueobject.NewSpotRate(d)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: invalid static rate for %s", domain.ErrConversion, pair.Inverse())
		}
		return rate.Inverse().Rate(), nil
	}

	return decimal.Decimal{}, fmt.Errorf("%w: no static rate for %s", domain.ErrConversion, pair)
}
