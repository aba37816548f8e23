package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/domain"
)

func TestStaticRateProvider_KnownPair(t *testing.T) {
	p := NewStaticRateProvider()

	rate, err := p.Rate(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("1.0850")))
}

func TestStaticRateProvider_InversePair(t *testing.T) {
	p := NewStaticRateProvider()

	rate, err := p.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)

	direct := decimal.RequireFromString("1.0850")
	product := rate.Mul(direct)
	assert.True(t, product.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.RequireFromString("0.0001")),
		"inverse times direct should be ~1, got %s", product)
}

func TestStaticRateProvider_UnknownPair(t *testing.T) {
	p := NewStaticRateProvider()

	_, err := p.Rate(context.Background(), "USD", "XXX")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConversion)
}

func TestStaticRateProvider_MalformedCode(t *testing.T) {
	p := NewStaticRateProvider()

	for _, from := range []string{"", "US", "DOLLARS"} {
		_, err := p.Rate(context.Background(), from, "USD")
		require.Error(t, err, "from %q", from)
		assert.ErrorIs(t, err, domain.ErrConversion)
	}
}

func TestStaticRateProvider_NormalisesCase(t *testing.T) {
	p := NewStaticRateProvider()

	rate, err := p.Rate(context.Background(), "eur", "usd")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("1.0850")))
}

func TestHTTPRateProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "EUR", r.URL.Query().Get("quote"))
		fmt.Fprint(w, `{"rate":"0.92"}`)
	}))
	defer srv.Close()

	p := NewHTTPRateProvider(srv.URL)
	rate, err := p.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.92")))
}

func TestHTTPRateProvider_MalformedCode(t *testing.T) {
	// Validation rejects the pair before any request is made.
	p := NewHTTPRateProvider("http://rates.invalid")

	_, err := p.Rate(context.Background(), "USD", "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConversion)
}

func TestHTTPRateProvider_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such pair", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewHTTPRateProvider(srv.URL)
	_, err := p.Rate(context.Background(), "USD", "XXX")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConversion)
}

func TestHTTPRateProvider_InvalidRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"rate":"-1"}`)
	}))
	defer srv.Close()

	p := NewHTTPRateProvider(srv.URL)
	_, err := p.Rate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConversion)
}

type countingProvider struct {
	calls int
	rate  decimal.Decimal
	err   error
}

func (p *countingProvider) Rate(context.Context, string, string) (decimal.Decimal, error) {
	p.calls++
	if p.err != nil {
		return decimal.Decimal{}, p.err
	}
	return p.rate, nil
}

func TestCachedRateProvider_HitsUpstreamOnce(t *testing.T) {
	upstream := &countingProvider{rate: decimal.RequireFromString("0.9")}
	p := NewCachedRateProvider(upstream, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rate, err := p.Rate(ctx, "USD", "EUR")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.9")))
	}
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedRateProvider_DoesNotCacheErrors(t *testing.T) {
	upstream := &countingProvider{err: fmt.Errorf("upstream down")}
	p := NewCachedRateProvider(upstream, time.Minute)
	ctx := context.Background()

	_, err := p.Rate(ctx, "USD", "EUR")
	require.Error(t, err)
	_, err = p.Rate(ctx, "USD", "EUR")
	require.Error(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedRateProvider_KeysPerPair(t *testing.T) {
	upstream := &countingProvider{rate: decimal.RequireFromString("0.9")}
	p := NewCachedRateProvider(upstream, time.Minute)
	ctx := context.Background()

	_, err := p.Rate(ctx, "USD", "EUR")
	require.NoError(t, err)
	_, err = p.Rate(ctx, "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedRateProvider_ServesLastGoodWhenUpstreamFails(t *testing.T) {
	upstream := &countingProvider{rate: decimal.NewFromInt(2)}
	p := NewCachedRateProvider(upstream, 10*time.Millisecond)
	ctx := context.Background()

	rate, err := p.Rate(ctx, "USD", "EUR")
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.NewFromInt(2)))

	time.Sleep(20 * time.Millisecond)
	upstream.err = fmt.Errorf("feed down")

	rate, err = p.Rate(ctx, "USD", "EUR")
	require.NoError(t, err, "lapsed TTL with a failing feed should fall back to the last good rate")
	assert.True(t, rate.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedRateProvider_LastGoodIsPerPair(t *testing.T) {
	upstream := &countingProvider{rate: decimal.NewFromInt(2)}
	p := NewCachedRateProvider(upstream, 10*time.Millisecond)
	ctx := context.Background()

	_, err := p.Rate(ctx, "USD", "EUR")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	upstream.err = fmt.Errorf("feed down")

	// Never-fetched pair has no fallback, the upstream error surfaces.
	_, err = p.Rate(ctx, "GBP", "JPY")
	require.Error(t, err)
}
