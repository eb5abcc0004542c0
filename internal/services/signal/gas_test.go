package signal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
)

func testThresholds() config.AnalyzerThresholds {
	return config.Default().Analyzer
}

func gasInputs(gwei float64) Inputs {
	price := decimal.NewFromFloat(gwei)
	return Inputs{GasPriceGwei: &price, DataSource: "test"}
}

func TestGasAnalyzer_CongestionBoundsAndMonotonicity(t *testing.T) {
	a := NewGasAnalyzer(testThresholds(), zap.NewNop())

	prev := -1.0
	for _, gwei := range []float64{0, 0.1, 0.25, 0.5, 1, 2, 3, 5, 7, 10, 20, 100, 1000} {
		reading := a.Analyze(gasInputs(gwei))
		require.NotNil(t, reading.Congestion, "congestion must be computed for %f gwei", gwei)

		congestion := *reading.Congestion
		require.GreaterOrEqual(t, congestion, 0.0)
		require.LessOrEqual(t, congestion, 100.0)
		require.GreaterOrEqual(t, congestion, prev, "congestion must be non-decreasing at %f gwei", gwei)
		prev = congestion
	}
}

func TestGasAnalyzer_BandEdges(t *testing.T) {
	a := NewGasAnalyzer(testThresholds(), zap.NewNop())

	require.InDelta(t, 10.0, *a.Analyze(gasInputs(0.25)).Congestion, 0.001)
	require.InDelta(t, 20.0, *a.Analyze(gasInputs(0.5)).Congestion, 0.001)
	require.InDelta(t, 50.0, *a.Analyze(gasInputs(2)).Congestion, 0.001)
	require.InDelta(t, 80.0, *a.Analyze(gasInputs(5)).Congestion, 0.001)
	require.InDelta(t, 100.0, *a.Analyze(gasInputs(10)).Congestion, 0.001)
	require.InDelta(t, 100.0, *a.Analyze(gasInputs(50)).Congestion, 0.001, "above extreme clamps to 100")
}

func TestGasAnalyzer_Categories(t *testing.T) {
	a := NewGasAnalyzer(testThresholds(), zap.NewNop())

	require.Equal(t, domain.GasCostLow, a.Analyze(gasInputs(0.3)).Category)
	require.Equal(t, domain.GasCostMedium, a.Analyze(gasInputs(1)).Category)
	require.Equal(t, domain.GasCostHigh, a.Analyze(gasInputs(3)).Category)
	require.Equal(t, domain.GasCostExtreme, a.Analyze(gasInputs(12)).Category)
}

func TestGasAnalyzer_PriorityFee(t *testing.T) {
	a := NewGasAnalyzer(testThresholds(), zap.NewNop())

	price := decimal.NewFromFloat(3)
	baseFee := decimal.NewFromFloat(2.5)
	reading := a.Analyze(Inputs{GasPriceGwei: &price, BaseFeeGwei: &baseFee})

	require.Equal(t, domain.QualityExcellent, reading.Quality)
	require.True(t, reading.PriorityFeeGwei.Equal(decimal.NewFromFloat(0.5)))

	// base fee above gas price clamps the priority fee to zero
	highBase := decimal.NewFromFloat(5)
	reading = a.Analyze(Inputs{GasPriceGwei: &price, BaseFeeGwei: &highBase})
	require.True(t, reading.PriorityFeeGwei.IsZero())
}

func TestGasAnalyzer_MissingDataPolicy(t *testing.T) {
	skip := testThresholds()
	skip.SkipOnMissingData = true
	reading := NewGasAnalyzer(skip, zap.NewNop()).Analyze(Inputs{})
	require.Equal(t, domain.QualityNoData, reading.Quality)
	require.Nil(t, reading.Congestion)
	require.NotEmpty(t, reading.Err)

	degraded := testThresholds()
	degraded.SkipOnMissingData = false
	reading = NewGasAnalyzer(degraded, zap.NewNop()).Analyze(Inputs{})
	require.Equal(t, domain.QualityPoor, reading.Quality)
	require.NotNil(t, reading.Congestion)
	require.Zero(t, *reading.Congestion)
}

func TestGasAnalyzer_NegativePriceIsError(t *testing.T) {
	a := NewGasAnalyzer(testThresholds(), zap.NewNop())

	price := decimal.NewFromInt(-1)
	reading := a.Analyze(Inputs{GasPriceGwei: &price})
	require.Equal(t, domain.QualityError, reading.Quality)
	require.Nil(t, reading.Congestion)
}
