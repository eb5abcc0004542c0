package arbitrage

import (
	"context"
	"testing"

	"github.com/pkg/errors"
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

type staticPricer struct {
	price decimal.Decimal
	err   error
}

func (p staticPricer) NativeTokenUSD(context.Context) (decimal.Decimal, error) {
	return p.price, p.err
}

func ethAt3000() staticPricer {
	return staticPricer{price: decimal.NewFromInt(3000)}
}

func newTestEngine(pricer NativeTokenPricer) *Engine {
	return NewEngine(config.Default().Arbitrage, pricer, zap.NewNop())
}

func quote(venue string, priceUSD, liquidityUSD float64) domain.DEXPrice {
	price := decimal.NewFromFloat(priceUSD)
	liq := decimal.NewFromFloat(liquidityUSD)
	return domain.DEXPrice{
		VenueName:    venue,
		TokenAddress: testToken,
		Symbol:       testSymbol,
		PriceUSD:     &price,
		LiquidityUSD: &liq,
		Success:      true,
	}
}

func failedQuote(venue string) domain.DEXPrice {
	return domain.DEXPrice{VenueName: venue, Success: false, Error: "down"}
}

func TestEngine_FindsOpportunityWhenNetProfitClearsMinimum(t *testing.T) {
	e := newTestEngine(ethAt3000())

	quotes := []domain.DEXPrice{
		quote("venueA", 100, 50_000),
		quote("venueB", 101, 50_000),
	}

	opp, err := e.FindOpportunity(context.Background(), quotes, testSymbol, testToken, 1, decimal.NewFromFloat(0.5))
	require.NoError(t, err)
	require.NotNil(t, opp)

	require.Equal(t, "venueA", opp.BuyVenue)
	require.Equal(t, "venueB", opp.SellVenue)
	require.True(t, opp.GrossSpreadPercent.Equal(decimal.NewFromInt(1)))

	// 10% of the 50k thinner side at the $100.50 average price, halved
	require.InDelta(t, 49.75, toFloat(opp.MaxTradeSize), 0.01)
	require.InDelta(t, 24.88, toFloat(opp.RecommendedTradeSize), 0.01)

	// $1 spread over ~24.88 tokens minus ~$0.23 gas and ~$0.20 slippage
	require.InDelta(t, 24.88, toFloat(opp.GrossProfitUSD), 0.01)
	require.True(t, opp.NetProfitUSD.GreaterThanOrEqual(decimal.NewFromInt(5)))

	require.Equal(t, float64(50), opp.MEVRiskScore)
	// 0.3*min(10,40) + 0.3*(100-50) + 0.4*60
	require.InDelta(t, 42.0, opp.ConfidenceScore, 0.01)

	require.Equal(t, uint64(1), e.Stats().Evaluated)
	require.Equal(t, uint64(1), e.Stats().Found)
}

func TestEngine_HighGasPushesNetProfitBelowMinimum(t *testing.T) {
	e := newTestEngine(ethAt3000())

	quotes := []domain.DEXPrice{
		quote("venueA", 100, 50_000),
		quote("venueB", 101, 50_000),
	}

	// 150k units * 50 gwei * $3000 = $22.50 gas against ~$24.88 gross
	opp, err := e.FindOpportunity(context.Background(), quotes, testSymbol, testToken, 1, decimal.NewFromInt(50))
	require.NoError(t, err)
	require.Nil(t, opp)
	require.Equal(t, uint64(0), e.Stats().Found)
}

func TestEngine_GasShareGateRejectsEvenWhenNetProfitPositive(t *testing.T) {
	e := newTestEngine(ethAt3000())

	// deep liquidity keeps gross profit large, gas still exceeds 20% of it
	quotes := []domain.DEXPrice{
		quote("venueA", 100, 2_000_000),
		quote("venueB", 101, 2_000_000),
	}

	// 150k units * 500 gwei * $3000 = $225 gas; gross ~ $995, ceiling $199
	opp, err := e.FindOpportunity(context.Background(), quotes, testSymbol, testToken, 1, decimal.NewFromInt(500))
	require.NoError(t, err)
	require.Nil(t, opp)
}

func TestEngine_NeedsAtLeastTwoValidQuotes(t *testing.T) {
	e := newTestEngine(ethAt3000())

	cases := map[string][]domain.DEXPrice{
		"no quotes":         {},
		"single quote":      {quote("venueA", 100, 50_000)},
		"one valid one bad": {quote("venueA", 100, 50_000), failedQuote("venueB")},
	}

	for name, quotes := range cases {
		t.Run(name, func(t *testing.T) {
			opp, err := e.FindOpportunity(context.Background(), quotes, testSymbol, testToken, 1, decimal.NewFromFloat(0.5))
			require.NoError(t, err)
			require.Nil(t, opp)
		})
	}
}

func TestEngine_SpreadBelowMinimumIsNotAnOpportunity(t *testing.T) {
	e := newTestEngine(ethAt3000())

	quotes := []domain.DEXPrice{
		quote("venueA", 100, 50_000),
		quote("venueB", 100.2, 50_000),
	}

	opp, err := e.FindOpportunity(context.Background(), quotes, testSymbol, testToken, 1, decimal.NewFromFloat(0.5))
	require.NoError(t, err)
	require.Nil(t, opp)
}

func TestEngine_PricerFailurePropagates(t *testing.T) {
	e := newTestEngine(staticPricer{err: errors.New("feed down")})

	quotes := []domain.DEXPrice{
		quote("venueA", 100, 50_000),
		quote("venueB", 101, 50_000),
	}

	opp, err := e.FindOpportunity(context.Background(), quotes, testSymbol, testToken, 1, decimal.NewFromFloat(0.5))
	require.Error(t, err)
	require.Nil(t, opp)
}

func TestEngine_UnknownChainFallsBackToMainnetGasUnits(t *testing.T) {
	e := newTestEngine(ethAt3000())

	quotes := []domain.DEXPrice{
		quote("venueA", 100, 50_000),
		quote("venueB", 101, 50_000),
	}

	opp, err := e.FindOpportunity(context.Background(), quotes, testSymbol, testToken, 999_999, decimal.NewFromFloat(0.5))
	require.NoError(t, err)
	require.NotNil(t, opp)

	// 150k mainnet units * 0.5 gwei * $3000
	require.InDelta(t, 0.225, toFloat(opp.EstimatedGasCostUSD), 0.001)
}

func TestMEVRiskForSpread(t *testing.T) {
	cases := []struct {
		spread float64
		want   float64
	}{
		{0.3, 10},
		{0.7, 30},
		{1.5, 50},
		{3, 70},
		{8, 90},
	}
	for _, c := range cases {
		require.Equal(t, c.want, mevRiskForSpread(decimal.NewFromFloat(c.spread)), "spread %v", c.spread)
	}
}

func TestLiquidityScoreBuckets(t *testing.T) {
	cases := []struct {
		usd  float64
		want float64
	}{
		{5_000, 20},
		{10_000, 40},
		{25_000, 60},
		{100_000, 80},
		{1_000_000, 100},
	}
	for _, c := range cases {
		require.Equal(t, c.want, liquidityScore(decimal.NewFromFloat(c.usd)), "liquidity %v", c.usd)
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
