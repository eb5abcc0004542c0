package signal

import (
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
)

// hoursPerYear annualization factor for hourly-sampled returns.
const hoursPerYear = 8760

// minHistoryPoints variance is undefined with fewer than 2 samples; the
// analyzer must short-circuit before any division.
const minHistoryPoints = 2

// VolatilityAnalyzer turns an ordered price history into an annualized
// volatility percentage, a 0-100 index, a trend direction and a momentum
// score.
type VolatilityAnalyzer struct {
	thresholds config.AnalyzerThresholds
	l          *zap.Logger
}

// NewVolatilityAnalyzer returns a configured volatility analyzer.
func NewVolatilityAnalyzer(thresholds config.AnalyzerThresholds, l *zap.Logger) *VolatilityAnalyzer {
	return &VolatilityAnalyzer{thresholds: thresholds, l: l}
}

// Analyze computes volatility statistics from the price history. Fewer than
// two points returns NO_DATA (or a zero-valued POOR reading when the policy
// accepts degraded data) rather than a spurious statistic.
func (a *VolatilityAnalyzer) Analyze(in Inputs) domain.VolatilityReading {
	meta := domain.SignalMeta{
		Kind:       domain.SignalVolatility,
		DataSource: in.DataSource,
	}

	history := in.PriceHistory
	if len(history) < minHistoryPoints {
		if a.thresholds.SkipOnMissingData {
			meta.Quality = domain.QualityNoData
			meta.Err = "price history has fewer than 2 points"
			return domain.VolatilityReading{SignalMeta: meta, Trend: domain.TrendNeutral}
		}

		meta.Quality = domain.QualityPoor
		zero := decimal.Zero
		idx, mom := 0.0, 0.0
		return domain.VolatilityReading{
			SignalMeta:        meta,
			AnnualizedPercent: &zero,
			Index:             &idx,
			Trend:             domain.TrendNeutral,
			Momentum:          &mom,
			Category:          domain.VolatilityLow,
		}
	}

	returns, ok := stepReturns(history)
	if !ok {
		err := errors.Wrap(domain.ErrComputation, "price history contains a zero price, returns undefined")
		meta.Quality = domain.QualityError
		meta.Err = err.Error()
		a.l.Warn("volatility analyzer hit zero price in history", zap.Error(err))
		return domain.VolatilityReading{SignalMeta: meta, Trend: domain.TrendNeutral}
	}

	sigma := populationStdDev(returns)
	annualizedPct := decimal.NewFromFloat(sigma * math.Sqrt(hoursPerYear) * 100)

	index := domain.ClampScore(toFloat(annualizedPct) / a.thresholds.VolatilityIndexScale * 100)

	current, _ := in.lastPrice()
	trend := trendAgainst(history, current, a.thresholds.TrendThresholdPct)

	pctFirstLast, _ := percentChange(history[0], history[len(history)-1]).Float64()
	momentum := clamp(2*pctFirstLast, -100, 100)

	if len(history) >= 24 {
		meta.Quality = domain.QualityExcellent
	} else {
		meta.Quality = domain.QualityGood
	}

	return domain.VolatilityReading{
		SignalMeta:        meta,
		AnnualizedPercent: &annualizedPct,
		Index:             &index,
		Trend:             trend,
		Momentum:          &momentum,
		Category:          a.categorize(toFloat(annualizedPct)),
	}
}

func (a *VolatilityAnalyzer) categorize(annualizedPct float64) domain.VolatilityCategory {
	switch {
	case annualizedPct < a.thresholds.VolatilityLowPct:
		return domain.VolatilityLow
	case annualizedPct < a.thresholds.VolatilityMediumPct:
		return domain.VolatilityMedium
	case annualizedPct < a.thresholds.VolatilityHighPct:
		return domain.VolatilityHigh
	default:
		return domain.VolatilityExtreme
	}
}

// stepReturns per-step fractional returns. Returns false when any price in
// the history is zero.
func stepReturns(history []decimal.Decimal) ([]float64, bool) {
	returns := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		prev := history[i-1]
		if prev.IsZero() {
			return nil, false
		}
		r, _ := history[i].Sub(prev).Div(prev).Float64()
		returns = append(returns, r)
	}
	return returns, true
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

func meanPrice(history []decimal.Decimal) decimal.Decimal {
	if len(history) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range history {
		sum = sum.Add(p)
	}
	return sum.Div(decimal.NewFromInt(int64(len(history))))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
