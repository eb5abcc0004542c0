package signal

import (
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
)

// MEVAnalyzer estimates how attractive the current market makes the token to
// sandwich attacks and front-running. Thin pools are easy to move, volume
// spikes draw searcher attention, and strong directional moves invite
// copy-trading.
type MEVAnalyzer struct {
	thresholds config.AnalyzerThresholds
	l          *zap.Logger
}

// NewMEVAnalyzer returns a configured MEV threat analyzer.
func NewMEVAnalyzer(thresholds config.AnalyzerThresholds, l *zap.Logger) *MEVAnalyzer {
	return &MEVAnalyzer{thresholds: thresholds, l: l}
}

// Analyze combines liquidity, volume and raw price-trend inputs into a 0-100
// threat score. It works from raw inputs only, never from another analyzer's
// output, so it can run concurrently with its siblings.
func (a *MEVAnalyzer) Analyze(in Inputs) domain.MEVReading {
	meta := domain.SignalMeta{
		Kind:       domain.SignalMEV,
		DataSource: in.DataSource,
	}

	haveLiquidity := in.LiquidityUSD != nil && in.LiquidityUSD.GreaterThan(decimal.Zero)
	haveVolume := in.Volume24hChange != nil
	haveHistory := len(in.PriceHistory) >= minHistoryPoints

	if !haveLiquidity && !haveVolume && !haveHistory {
		if a.thresholds.SkipOnMissingData {
			meta.Quality = domain.QualityNoData
			meta.Err = "no liquidity, volume or price inputs for MEV scoring"
			return domain.MEVReading{SignalMeta: meta}
		}

		meta.Quality = domain.QualityPoor
		threat, sandwich, frontrun := 0.0, 0.0, 0.0
		return domain.MEVReading{
			SignalMeta:          meta,
			ThreatLevel:         &threat,
			SandwichRisk:        &sandwich,
			FrontrunProbability: &frontrun,
			Category:            domain.MEVLow,
		}
	}

	// thinner pools are cheaper to sandwich
	sandwich := 50.0
	if haveLiquidity {
		sandwich = 110 - depthBucket(*in.LiquidityUSD)
	}

	frontrun := 0.0
	if haveVolume {
		v, _ := in.Volume24hChange.Abs().Float64()
		frontrun = clamp(v, 0, 100)
	}

	trendStrength := 0.0
	if haveHistory {
		first := in.PriceHistory[0]
		last := in.PriceHistory[len(in.PriceHistory)-1]
		pct, _ := percentChange(first, last).Float64()
		trendStrength = clamp(math.Abs(pct), 0, 100)
	}

	threat := domain.ClampScore(0.5*sandwich + 0.3*frontrun + 0.2*trendStrength)

	switch {
	case haveLiquidity && haveVolume && haveHistory:
		meta.Quality = domain.QualityExcellent
	case haveLiquidity && (haveVolume || haveHistory):
		meta.Quality = domain.QualityGood
	case haveLiquidity || haveVolume || haveHistory:
		meta.Quality = domain.QualityFair
	}

	return domain.MEVReading{
		SignalMeta:          meta,
		ThreatLevel:         &threat,
		SandwichRisk:        &sandwich,
		FrontrunProbability: &frontrun,
		Category:            categorizeThreat(threat),
	}
}

func categorizeThreat(threat float64) domain.MEVCategory {
	switch {
	case threat < 25:
		return domain.MEVLow
	case threat < 50:
		return domain.MEVMedium
	case threat < 75:
		return domain.MEVHigh
	default:
		return domain.MEVCritical
	}
}
