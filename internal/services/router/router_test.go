package router

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
)

const (
	testToken  = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
	testSymbol = "DAI"
)

func testRouterConfig() config.RouterConfig {
	cfg := config.Default().Router
	cfg.VenueTimeout = 500 * time.Millisecond
	return cfg
}

func newTestRouter(venues ...VenueSource) *Router {
	return New(testRouterConfig(), venues, zap.NewNop())
}

func liq(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestRouter_BestBuyAndSell(t *testing.T) {
	r := newTestRouter(
		NewStaticVenue("venueA", decimal.NewFromInt(10), liq(100_000)),
		NewStaticVenue("venueB", decimal.NewFromInt(9), liq(100_000)),
		NewFailingVenue("venueC", "connection refused"),
	)

	venue, price, err := r.BestBuyVenue(context.Background(), testToken, testSymbol)
	require.NoError(t, err)
	require.Equal(t, "venueB", venue)
	require.True(t, price.Equal(decimal.NewFromInt(9)))

	venue, price, err = r.BestSellVenue(context.Background(), testToken, testSymbol)
	require.NoError(t, err)
	require.Equal(t, "venueA", venue)
	require.True(t, price.Equal(decimal.NewFromInt(10)))
}

func TestRouter_AllVenuesFailingFallsBack(t *testing.T) {
	r := newTestRouter(
		NewFailingVenue("venueA", "down"),
		NewFailingVenue("venueB", "down"),
	)

	before := r.Stats().FallbackCount
	venue, price, err := r.BestBuyVenue(context.Background(), testToken, testSymbol)
	require.NoError(t, err)
	require.Equal(t, "binance", venue, "fallback must be the configured default venue")
	require.True(t, price.IsZero(), "fallback price zero means routing failed, not a real price")
	require.Equal(t, before+1, r.Stats().FallbackCount, "fallback counter increments by exactly 1")
}

func TestRouter_GarbageQuotesAreFiltered(t *testing.T) {
	r := newTestRouter(
		NewStaticVenue("zero", decimal.Zero, liq(100_000)),
		NewStaticVenue("dust", decimal.NewFromFloat(1e-9), liq(100_000)),
		NewStaticVenue("overflow", decimal.NewFromFloat(1e12), liq(100_000)),
		NewStaticVenue("sane", decimal.NewFromInt(42), liq(100_000)),
	)

	venue, price, err := r.BestBuyVenue(context.Background(), testToken, testSymbol)
	require.NoError(t, err)
	require.Equal(t, "sane", venue)
	require.True(t, price.Equal(decimal.NewFromInt(42)))
}

func TestRouter_SlowVenueDegradesOnlyItsOwnQuote(t *testing.T) {
	r := newTestRouter(
		NewStaticVenue("fast", decimal.NewFromInt(10), liq(100_000)),
		NewStaticVenue("slow", decimal.NewFromInt(5), liq(100_000)).WithDelay(2*time.Second),
	)

	quotes := r.Quotes(context.Background(), testToken, testSymbol, false)
	require.Len(t, quotes, 2)

	byVenue := map[string]domain.DEXPrice{}
	for _, q := range quotes {
		byVenue[q.VenueName] = q
	}
	require.True(t, byVenue["fast"].Success)
	require.False(t, byVenue["slow"].Success)
	require.Equal(t, domain.ErrTimeout.Error(), byVenue["slow"].Error)
}

func TestRouter_CacheServesFreshQuotesAndExpires(t *testing.T) {
	venue := NewStaticVenue("venueA", decimal.NewFromInt(10), liq(100_000))
	cfg := testRouterConfig()
	cfg.CacheTTL = 50 * time.Millisecond
	r := New(cfg, []VenueSource{venue}, zap.NewNop())

	// first call populates the cache
	quotes := r.Quotes(context.Background(), testToken, testSymbol, true)
	require.True(t, quotes[0].Success)
	queriesAfterFirst := r.Stats().TotalQueries

	// second cached call must not hit the venue
	venue.SetPrice(decimal.NewFromInt(999))
	quotes = r.Quotes(context.Background(), testToken, testSymbol, true)
	require.True(t, quotes[0].Price().Equal(decimal.NewFromInt(10)), "cached price served within TTL")
	require.Equal(t, queriesAfterFirst, r.Stats().TotalQueries)

	// after expiry the venue is queried again
	time.Sleep(60 * time.Millisecond)
	quotes = r.Quotes(context.Background(), testToken, testSymbol, true)
	require.True(t, quotes[0].Price().Equal(decimal.NewFromInt(999)))
	require.Equal(t, queriesAfterFirst+1, r.Stats().TotalQueries)
}

func TestRouter_ExecutionPathBypassesCache(t *testing.T) {
	venue := NewStaticVenue("venueA", decimal.NewFromInt(10), liq(100_000))
	r := newTestRouter(venue)

	_ = r.Quotes(context.Background(), testToken, testSymbol, true)
	venue.SetPrice(decimal.NewFromInt(12))

	_, price, err := r.BestBuyVenue(context.Background(), testToken, testSymbol)
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.NewFromInt(12)), "execution routing must see the fresh price")
}

func TestRouter_InvalidInput(t *testing.T) {
	r := newTestRouter(NewStaticVenue("venueA", decimal.NewFromInt(10), liq(100_000)))

	_, _, err := r.BestBuyVenue(context.Background(), "", testSymbol)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = r.BestSellVenue(context.Background(), testToken, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRouter_CountsQueries(t *testing.T) {
	r := newTestRouter(
		NewStaticVenue("venueA", decimal.NewFromInt(10), liq(100_000)),
		NewFailingVenue("venueB", "down"),
	)

	_ = r.Quotes(context.Background(), testToken, testSymbol, false)

	stats := r.Stats()
	require.Equal(t, uint64(2), stats.TotalQueries)
	require.Equal(t, uint64(1), stats.SuccessfulQueries)
}
