package signal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/internal/domain"
)

func risingHistory(n int, start, step float64) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.NewFromFloat(start + step*float64(i))
	}
	return out
}

func TestMarketStateAnalyzer_FullIndicatorPath(t *testing.T) {
	a := NewMarketStateAnalyzer(testThresholds(), zap.NewNop())

	vol := decimal.NewFromInt(20)
	reading := a.Analyze(Inputs{
		PriceHistory:    risingHistory(60, 100, 1),
		Volume24hChange: &vol,
	})

	require.Equal(t, domain.QualityExcellent, reading.Quality)
	require.NotNil(t, reading.StateScore)
	require.Greater(t, *reading.StateScore, 50.0, "steadily rising market should score above neutral")
	require.LessOrEqual(t, *reading.StateScore, 100.0)
	require.Equal(t, domain.TrendBullish, reading.Trend)
}

func TestMarketStateAnalyzer_ShortHistoryDegradesToFair(t *testing.T) {
	a := NewMarketStateAnalyzer(testThresholds(), zap.NewNop())

	reading := a.Analyze(Inputs{PriceHistory: risingHistory(10, 100, 2)})
	require.Equal(t, domain.QualityFair, reading.Quality)
	require.NotNil(t, reading.StateScore)
	require.Greater(t, *reading.StateScore, 50.0)
}

func TestMarketStateAnalyzer_NoHistory(t *testing.T) {
	skip := testThresholds()
	skip.SkipOnMissingData = true
	reading := NewMarketStateAnalyzer(skip, zap.NewNop()).Analyze(Inputs{})
	require.Equal(t, domain.QualityNoData, reading.Quality)
	require.Nil(t, reading.StateScore)

	degraded := testThresholds()
	degraded.SkipOnMissingData = false
	reading = NewMarketStateAnalyzer(degraded, zap.NewNop()).Analyze(Inputs{})
	require.Equal(t, domain.QualityPoor, reading.Quality)
	require.Zero(t, *reading.StateScore)
}

func TestMarketStateAnalyzer_ScoreBounds(t *testing.T) {
	a := NewMarketStateAnalyzer(testThresholds(), zap.NewNop())

	crash := a.Analyze(Inputs{PriceHistory: risingHistory(60, 1000, -15)})
	require.NotNil(t, crash.StateScore)
	require.GreaterOrEqual(t, *crash.StateScore, 0.0)
	require.LessOrEqual(t, *crash.StateScore, 100.0)
	require.Equal(t, domain.TrendBearish, crash.Trend)
}
