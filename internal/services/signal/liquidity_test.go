package signal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/internal/domain"
)

func liquidityInputs(liquidityUSD, tradeSizeUSD float64) Inputs {
	liq := decimal.NewFromFloat(liquidityUSD)
	return Inputs{
		LiquidityUSD: &liq,
		TradeSizeUSD: decimal.NewFromFloat(tradeSizeUSD),
	}
}

func TestLiquidityAnalyzer_DepthBuckets(t *testing.T) {
	a := NewLiquidityAnalyzer(testThresholds(), zap.NewNop())

	cases := []struct {
		liquidity float64
		score     float64
		category  domain.LiquidityCategory
	}{
		{5_000, 20, domain.LiquidityDry},
		{15_000, 40, domain.LiquidityShallow},
		{50_000, 60, domain.LiquidityModerate},
		{500_000, 80, domain.LiquidityDeep},
		{5_000_000, 100, domain.LiquidityDeep},
	}

	for _, tc := range cases {
		reading := a.Analyze(liquidityInputs(tc.liquidity, 1000))
		require.Equal(t, domain.QualityExcellent, reading.Quality)
		require.NotNil(t, reading.DepthScore)
		require.Equal(t, tc.score, *reading.DepthScore, "liquidity %f", tc.liquidity)
		require.Equal(t, tc.category, reading.Category, "liquidity %f", tc.liquidity)
	}
}

func TestLiquidityAnalyzer_ExpectedSlippage(t *testing.T) {
	a := NewLiquidityAnalyzer(testThresholds(), zap.NewNop())

	reading := a.Analyze(liquidityInputs(100_000, 1_000))
	require.True(t, reading.ExpectedSlippagePercent.Equal(decimal.NewFromInt(1)),
		"1k trade into 100k pool expects 1%%, got %s", reading.ExpectedSlippagePercent)

	// trade larger than the pool caps at 100%
	reading = a.Analyze(liquidityInputs(10_000, 50_000))
	require.True(t, reading.ExpectedSlippagePercent.Equal(decimal.NewFromInt(100)))
}

func TestLiquidityAnalyzer_NoPool(t *testing.T) {
	skip := testThresholds()
	skip.SkipOnMissingData = true
	reading := NewLiquidityAnalyzer(skip, zap.NewNop()).Analyze(Inputs{})
	require.Equal(t, domain.QualityNoPool, reading.Quality)
	require.Nil(t, reading.DepthScore)

	zeroLiq := decimal.Zero
	reading = NewLiquidityAnalyzer(skip, zap.NewNop()).Analyze(Inputs{LiquidityUSD: &zeroLiq})
	require.Equal(t, domain.QualityNoPool, reading.Quality, "zero liquidity is no pool, not a zero score")

	degraded := testThresholds()
	degraded.SkipOnMissingData = false
	reading = NewLiquidityAnalyzer(degraded, zap.NewNop()).Analyze(Inputs{})
	require.Equal(t, domain.QualityPoor, reading.Quality)
	require.NotNil(t, reading.DepthScore)
	require.Zero(t, *reading.DepthScore)
}
