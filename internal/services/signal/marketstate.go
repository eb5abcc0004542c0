package signal

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
	"github.com/dexsignal/dexsignal/pkg/indicators"
)

// minCandlesForIndicators EMA50 needs a full 50-point warmup; below that the
// analyzer degrades to a momentum-only score.
const minCandlesForIndicators = 50

// MarketStateAnalyzer condenses price history and volume into a 0-100 market
// activity score. With enough history it leans on EMA20/EMA50 crossover and
// RSI14; with a short history it falls back to plain momentum at reduced
// quality.
type MarketStateAnalyzer struct {
	thresholds config.AnalyzerThresholds
	l          *zap.Logger
}

// NewMarketStateAnalyzer returns a configured market state analyzer.
func NewMarketStateAnalyzer(thresholds config.AnalyzerThresholds, l *zap.Logger) *MarketStateAnalyzer {
	return &MarketStateAnalyzer{thresholds: thresholds, l: l}
}

// Analyze computes the market state reading.
func (a *MarketStateAnalyzer) Analyze(in Inputs) domain.MarketStateReading {
	meta := domain.SignalMeta{
		Kind:       domain.SignalMarketState,
		DataSource: in.DataSource,
	}

	history := in.PriceHistory
	if len(history) < minHistoryPoints {
		if a.thresholds.SkipOnMissingData {
			meta.Quality = domain.QualityNoData
			meta.Err = "price history has fewer than 2 points"
			return domain.MarketStateReading{SignalMeta: meta, Trend: domain.TrendNeutral}
		}

		meta.Quality = domain.QualityPoor
		score := 0.0
		return domain.MarketStateReading{
			SignalMeta: meta,
			StateScore: &score,
			Trend:      domain.TrendNeutral,
			Category:   domain.MarketStateCalm,
		}
	}

	volumeHeat := 0.0
	if in.Volume24hChange != nil {
		v, _ := in.Volume24hChange.Abs().Float64()
		volumeHeat = clamp(v, 0, 100) * 0.15
	}

	var score float64
	if len(history) >= minCandlesForIndicators {
		score = a.indicatorScore(history, volumeHeat)
		if in.Volume24hChange != nil {
			meta.Quality = domain.QualityExcellent
		} else {
			meta.Quality = domain.QualityGood
		}
	} else {
		score = a.momentumScore(history, volumeHeat)
		// short history: usable, but capped below GOOD
		meta.Quality = domain.QualityFair
	}

	current, _ := in.lastPrice()
	trendDir := trendAgainst(history, current, a.thresholds.TrendThresholdPct)

	return domain.MarketStateReading{
		SignalMeta:      meta,
		StateScore:      &score,
		Trend:           trendDir,
		Volume24hChange: in.Volume24hChange,
		Category:        categorizeState(score),
	}
}

// indicatorScore EMA20/EMA50 crossover lean plus RSI14 oscillator balance.
func (a *MarketStateAnalyzer) indicatorScore(history []decimal.Decimal, volumeHeat float64) float64 {
	ema20, err20 := indicators.EMA(history, 20)
	ema50, err50 := indicators.EMA(history, 50)
	rsi14, errRSI := indicators.RSI(history, 14)

	if err20 != nil || err50 != nil || errRSI != nil ||
		len(ema20) == 0 || len(ema50) == 0 || len(rsi14) == 0 {
		return a.momentumScore(history, volumeHeat)
	}

	trendLean := 0.0
	switch {
	case ema20[len(ema20)-1] > ema50[len(ema50)-1]:
		trendLean = 15
	case ema20[len(ema20)-1] < ema50[len(ema50)-1]:
		trendLean = -15
	}

	oscillator := (rsi14[len(rsi14)-1] - 50) * 0.5

	return domain.ClampScore(50 + trendLean + oscillator + volumeHeat)
}

// momentumScore degraded path for short histories.
func (a *MarketStateAnalyzer) momentumScore(history []decimal.Decimal, volumeHeat float64) float64 {
	pct, _ := percentChange(history[0], history[len(history)-1]).Float64()
	return domain.ClampScore(50 + clamp(pct, -50, 50) + volumeHeat)
}

func trendAgainst(history []decimal.Decimal, current decimal.Decimal, thresholdPct float64) domain.TrendDirection {
	mean := meanPrice(history)
	if mean.IsZero() {
		return domain.TrendNeutral
	}

	diffPct, _ := percentChange(mean, current).Float64()
	switch {
	case diffPct > thresholdPct:
		return domain.TrendBullish
	case diffPct < -thresholdPct:
		return domain.TrendBearish
	default:
		return domain.TrendNeutral
	}
}

func categorizeState(score float64) domain.MarketStateCategory {
	switch {
	case score < 25:
		return domain.MarketStateCalm
	case score < 50:
		return domain.MarketStateActive
	case score < 75:
		return domain.MarketStateHeated
	default:
		return domain.MarketStateExtreme
	}
}
