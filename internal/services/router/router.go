// Package router queries multiple venues for token quotes concurrently and
// picks the best execution venue per side.
package router

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
)

// VenueSource one exchange or pool that can quote a token.
type VenueSource interface {
	Name() string
	Quote(ctx context.Context, tokenAddress, symbol string) (domain.DEXPrice, error)
}

// Stats router observability counters. Snapshot values.
type Stats struct {
	TotalQueries      uint64
	SuccessfulQueries uint64
	FallbackCount     uint64
}

type cachedQuote struct {
	quote     domain.DEXPrice
	expiresAt time.Time
}

// Router fans quote requests out to all configured venues, filters garbage
// quotes and selects the best buy (lowest ask) and sell (highest bid) venue.
// Trading paths always bypass the quote cache; staleness risk outweighs
// latency savings on execution routing.
type Router struct {
	cfg    config.RouterConfig
	venues []VenueSource
	l      *zap.Logger

	// cache keyed "venue|token". Reads are lock-free; writes replace the
	// slot atomically.
	cache sync.Map

	totalQueries      atomic.Uint64
	successfulQueries atomic.Uint64
	fallbackCount     atomic.Uint64
}

// New builds a router over the given venue sources.
func New(cfg config.RouterConfig, venues []VenueSource, l *zap.Logger) *Router {
	return &Router{cfg: cfg, venues: venues, l: l}
}

// Quotes queries every venue concurrently and returns one DEXPrice per venue,
// failed branches included. A slow or failed venue degrades its own quote's
// Success flag, never its siblings. With useCache, quotes younger than the
// TTL are served from cache; execution paths must pass useCache=false.
func (r *Router) Quotes(ctx context.Context, tokenAddress, symbol string, useCache bool) []domain.DEXPrice {
	quotes := make([]domain.DEXPrice, len(r.venues))

	var wg sync.WaitGroup
	for i, venue := range r.venues {
		if useCache {
			if cached, ok := r.cachedQuote(venue.Name(), tokenAddress); ok {
				quotes[i] = cached
				continue
			}
		}

		wg.Add(1)
		i, venue := i, venue
		gopool.Go(func() {
			defer wg.Done()
			quotes[i] = r.queryVenue(ctx, venue, tokenAddress, symbol)
		})
	}
	wg.Wait()

	return quotes
}

func (r *Router) queryVenue(ctx context.Context, venue VenueSource, tokenAddress, symbol string) domain.DEXPrice {
	r.totalQueries.Add(1)

	ctx, cancel := context.WithTimeout(ctx, r.cfg.VenueTimeout)
	defer cancel()

	started := time.Now()
	quote, err := venue.Quote(ctx, tokenAddress, symbol)
	quote.VenueName = venue.Name()
	quote.TokenAddress = tokenAddress
	quote.Symbol = symbol
	quote.QueryTimeMs = float64(time.Since(started).Microseconds()) / 1000
	quote.QuotedAt = time.Now()

	if err != nil {
		quote.Success = false
		if errors.Is(err, context.DeadlineExceeded) {
			quote.Error = domain.ErrTimeout.Error()
		} else {
			quote.Error = err.Error()
		}
		r.l.Debug("venue quote failed",
			zap.String("venue", venue.Name()),
			zap.String("token", tokenAddress),
			zap.Error(err))
		return quote
	}

	quote.Success = true
	r.successfulQueries.Add(1)
	r.storeQuote(venue.Name(), tokenAddress, quote)

	return quote
}

// BestBuyVenue returns the venue with the lowest valid price. When no venue
// produced a usable quote it returns the configured default venue with price
// zero and bumps the fallback counter; callers must treat that zero as
// "routing failed", never as a real price.
func (r *Router) BestBuyVenue(ctx context.Context, tokenAddress, symbol string) (string, decimal.Decimal, error) {
	return r.bestVenue(ctx, tokenAddress, symbol, false)
}

// BestSellVenue returns the venue with the highest valid price, with the same
// fallback contract as BestBuyVenue.
func (r *Router) BestSellVenue(ctx context.Context, tokenAddress, symbol string) (string, decimal.Decimal, error) {
	return r.bestVenue(ctx, tokenAddress, symbol, true)
}

func (r *Router) bestVenue(ctx context.Context, tokenAddress, symbol string, sell bool) (string, decimal.Decimal, error) {
	if tokenAddress == "" || symbol == "" {
		return "", decimal.Zero, errors.Wrap(domain.ErrInvalidInput, "token address and symbol are required")
	}

	// fresh quotes for execution decisions
	quotes := r.Quotes(ctx, tokenAddress, symbol, false)

	var best *domain.DEXPrice
	for i := range quotes {
		q := &quotes[i]
		if !r.valid(*q) {
			continue
		}
		if best == nil {
			best = q
			continue
		}
		if sell && q.Price().GreaterThan(best.Price()) {
			best = q
		}
		if !sell && q.Price().LessThan(best.Price()) {
			best = q
		}
	}

	if best == nil {
		r.fallbackCount.Add(1)
		r.l.Warn("no venue produced a usable quote, using fallback",
			zap.String("token", tokenAddress),
			zap.String("fallback_venue", r.cfg.DefaultVenue),
			zap.Error(domain.ErrRoutingFailed))
		return r.cfg.DefaultVenue, decimal.Zero, nil
	}

	return best.VenueName, best.Price(), nil
}

// valid excludes failed quotes and prices outside the sanity band, which
// catches zero/garbage/overflow quotes common on thin test venues.
func (r *Router) valid(q domain.DEXPrice) bool {
	if !q.Success || q.PriceUSD == nil {
		return false
	}
	p := *q.PriceUSD
	return p.GreaterThanOrEqual(r.cfg.MinValidPrice) && p.LessThanOrEqual(r.cfg.MaxValidPrice)
}

func (r *Router) cacheKey(venue, token string) string {
	return venue + "|" + token
}

func (r *Router) cachedQuote(venue, token string) (domain.DEXPrice, bool) {
	v, ok := r.cache.Load(r.cacheKey(venue, token))
	if !ok {
		return domain.DEXPrice{}, false
	}
	entry := v.(cachedQuote)
	if time.Now().After(entry.expiresAt) {
		return domain.DEXPrice{}, false
	}
	return entry.quote, true
}

func (r *Router) storeQuote(venue, token string, quote domain.DEXPrice) {
	r.cache.Store(r.cacheKey(venue, token), cachedQuote{
		quote:     quote,
		expiresAt: time.Now().Add(r.cfg.CacheTTL),
	})
}

// Stats returns a snapshot of the router counters.
func (r *Router) Stats() Stats {
	return Stats{
		TotalQueries:      r.totalQueries.Load(),
		SuccessfulQueries: r.successfulQueries.Load(),
		FallbackCount:     r.fallbackCount.Load(),
	}
}
