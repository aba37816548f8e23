package valueobject

import (
	"fmt"
	"regexp"
	"strings"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsCurrencyCode reports whether code is a 3-letter uppercase ISO 4217 code.
func IsCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}

// CurrencyPair identifies a conversion direction: an amount in the base
// currency converts into the quote currency. Codes are normalised to upper
// case, so "usd","eur" and "USD","EUR" name the same pair.
type CurrencyPair struct {
	base  string
	quote string
}

// NewCurrencyPair builds a pair from two ISO 4217 codes. Both codes must be
// three letters and must differ; a same-currency pair has no rate.
func NewCurrencyPair(base, quote string) (CurrencyPair, error) {
	base = strings.ToUpper(base)
	quote = strings.ToUpper(quote)
	if !IsCurrencyCode(base) {
		return CurrencyPair{}, fmt.Errorf("invalid base currency %q", base)
	}
	if !IsCurrencyCode(quote) {
		return CurrencyPair{}, fmt.Errorf("invalid quote currency %q", quote)
	}
	if base == quote {
		return CurrencyPair{}, fmt.Errorf("base and quote currencies must differ: %s/%s", base, quote)
	}
	return CurrencyPair{base: base, quote: quote}, nil
}

// Base returns the base currency code.
func (cp CurrencyPair) Base() string {
	return cp.base
}

// Quote returns the quote currency code.
func (cp CurrencyPair) Quote() string {
	return cp.quote
}

// String formats the pair as "BASE/QUOTE". The form doubles as the lookup
// key in the rate providers.
func (cp CurrencyPair) String() string {
	return cp.base + "/" + cp.quote
}

// Inverse returns the pair for the opposite conversion direction.
func (cp CurrencyPair) Inverse() CurrencyPair {
	return CurrencyPair{base: cp.quote, quote: cp.base}
}

// Equal reports whether both pairs have the same base and quote.
func (cp CurrencyPair) Equal(other CurrencyPair) bool {
	return cp.base == other.base && cp.quote == other.quote
}
