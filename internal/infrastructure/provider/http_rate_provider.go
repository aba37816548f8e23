package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/valueobject"
)

// Compile-time interface check
var _ port.RateProvider = (*HTTPRateProvider)(nil)

// HTTPRateProvider fetches spot rates from an exchange-rate HTTP API that
// answers GET {base}/rates?base=FROM&quote=TO with a JSON rate payload.
type HTTPRateProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRateProvider creates a rate provider against the given API base URL.
func NewHTTPRateProvider(baseURL string) *HTTPRateProvider {
	return &HTTPRateProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// rateResponse represents the rate API response.
type rateResponse struct {
	Rate string `json:"rate"`
}

// Rate fetches the conversion factor for one currency pair. Every failure
// mode, transport included, surfaces as a conversion error so callers treat
// an unreachable provider the same as an unsupported pair.
func (p *HTTPRateProvider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	pair, err := valueobject.NewCurrencyPair(from, to)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", domain.ErrConversion, err)
	}
	url := fmt.Sprintf("%s/rates?base=%s&quote=%s", p.baseURL, pair.Base(), pair.Quote())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: build rate request: %v", domain.ErrConversion, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: fetch rate %s: %v", domain.ErrConversion, pair, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Decimal{}, fmt.Errorf("%w: rate API returned %d: %s", domain.ErrConversion, resp.StatusCode, body)
	}

	var payload rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: decode rate response: %v", domain.ErrConversion, err)
	}

	rate, err := decimal.NewFromString(payload.Rate)
	if err != nil || !rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid rate %q for %s", domain.ErrConversion, payload.Rate, pair)
	}
	return rate, nil
}
