package signal

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
)

// GasAnalyzer maps current gas conditions to a 0-100 congestion score and a
// cost category via four piecewise-linear bands keyed on configured
// thresholds low < medium < high < extreme.
type GasAnalyzer struct {
	thresholds config.AnalyzerThresholds
	l          *zap.Logger
}

// NewGasAnalyzer returns a configured gas analyzer.
func NewGasAnalyzer(thresholds config.AnalyzerThresholds, l *zap.Logger) *GasAnalyzer {
	return &GasAnalyzer{thresholds: thresholds, l: l}
}

// Analyze computes congestion and cost category from the supplied gas price
// and base fee. Missing upstream data degrades to NO_DATA (or zero-valued
// POOR when the policy accepts degraded data); a malformed reading is ERROR.
func (a *GasAnalyzer) Analyze(in Inputs) domain.GasReading {
	meta := domain.SignalMeta{
		Kind:       domain.SignalGas,
		DataSource: in.DataSource,
	}

	if in.GasPriceGwei == nil {
		if a.thresholds.SkipOnMissingData {
			meta.Quality = domain.QualityNoData
			meta.Err = "gas price unavailable from upstream node"
			return domain.GasReading{SignalMeta: meta}
		}

		// zero-valued low-confidence reading when the caller accepts degraded data
		meta.Quality = domain.QualityPoor
		zero := decimal.Zero
		congestion := 0.0
		return domain.GasReading{
			SignalMeta:      meta,
			GasPriceGwei:    &zero,
			PriorityFeeGwei: &zero,
			Congestion:      &congestion,
			Category:        domain.GasCostLow,
		}
	}

	gasPrice := *in.GasPriceGwei
	if gasPrice.IsNegative() {
		meta.Quality = domain.QualityError
		meta.Err = fmt.Sprintf("negative gas price %s gwei", gasPrice.String())
		a.l.Warn("gas analyzer received negative gas price", zap.String("gas_price_gwei", gasPrice.String()))
		return domain.GasReading{SignalMeta: meta}
	}

	priorityFee := decimal.Zero
	if in.BaseFeeGwei != nil {
		priorityFee = decimal.Max(decimal.Zero, gasPrice.Sub(*in.BaseFeeGwei))
		meta.Quality = domain.QualityExcellent
	} else {
		// gas price alone still yields a usable congestion score
		meta.Quality = domain.QualityGood
	}

	congestion := a.congestionScore(gasPrice)

	return domain.GasReading{
		SignalMeta:      meta,
		GasPriceGwei:    &gasPrice,
		BaseFeeGwei:     in.BaseFeeGwei,
		PriorityFeeGwei: &priorityFee,
		Congestion:      &congestion,
		Category:        a.categorize(gasPrice),
	}
}

// congestionScore piecewise-linear mapping of gas price to [0,100].
// Monotonically non-decreasing in the gas price.
func (a *GasAnalyzer) congestionScore(gasPrice decimal.Decimal) float64 {
	g, _ := gasPrice.Float64()
	low, _ := a.thresholds.GasLowGwei.Float64()
	medium, _ := a.thresholds.GasMediumGwei.Float64()
	high, _ := a.thresholds.GasHighGwei.Float64()
	extreme, _ := a.thresholds.GasExtremeGwei.Float64()

	var score float64
	switch {
	case g < low:
		score = g / low * 20
	case g < medium:
		score = 20 + (g-low)/(medium-low)*30
	case g < high:
		score = 50 + (g-medium)/(high-medium)*30
	default:
		score = 80 + (g-high)/(extreme-high)*20
	}

	return domain.ClampScore(score)
}

func (a *GasAnalyzer) categorize(gasPrice decimal.Decimal) domain.GasCostCategory {
	switch {
	case gasPrice.LessThan(a.thresholds.GasLowGwei):
		return domain.GasCostLow
	case gasPrice.LessThan(a.thresholds.GasMediumGwei):
		return domain.GasCostMedium
	case gasPrice.LessThan(a.thresholds.GasHighGwei):
		return domain.GasCostHigh
	default:
		return domain.GasCostExtreme
	}
}
