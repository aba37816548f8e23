package provider

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain/port"
)

// Compile-time interface check
var _ port.RateProvider = (*CachedRateProvider)(nil)

// CachedRateProvider memoizes another provider's answers for a TTL. Position
// reads and multi-leg transfers hit the same pair repeatedly within one
// request; the cache keeps that to one upstream call. When a refresh fails
// after the TTL has lapsed, the last rate successfully fetched for the pair
// is served instead, so a flapping feed never blocks conversions that worked
// before. Cold-cache failures still surface the upstream error.
type CachedRateProvider struct {
	upstream port.RateProvider
	cache    *gocache.Cache
	lastGood *gocache.Cache
}

// NewCachedRateProvider wraps upstream with a TTL cache and a never-expiring
// last-known-good store.
func NewCachedRateProvider(upstream port.RateProvider, ttl time.Duration) *CachedRateProvider {
	return &CachedRateProvider{
		upstream: upstream,
		cache:    gocache.New(ttl, 2*ttl),
		lastGood: gocache.New(gocache.NoExpiration, 0),
	}
}

func (p *CachedRateProvider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := from + "/" + to
	if cached, ok := p.cache.Get(key); ok {
		return cached.(decimal.Decimal), nil
	}

	rate, err := p.upstream.Rate(ctx, from, to)
	if err != nil {
		if stale, ok := p.lastGood.Get(key); ok {
			return stale.(decimal.Decimal), nil
		}
		return decimal.Decimal{}, err
	}
	p.cache.Set(key, rate, gocache.DefaultExpiration)
	p.lastGood.Set(key, rate, gocache.NoExpiration)
	return rate, nil
}
