package signal

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
)

// LiquidityAnalyzer scores pool depth and estimates the slippage a trade of
// the given size would incur.
type LiquidityAnalyzer struct {
	thresholds config.AnalyzerThresholds
	l          *zap.Logger
}

// NewLiquidityAnalyzer returns a configured liquidity analyzer.
func NewLiquidityAnalyzer(thresholds config.AnalyzerThresholds, l *zap.Logger) *LiquidityAnalyzer {
	return &LiquidityAnalyzer{thresholds: thresholds, l: l}
}

// Analyze buckets pool liquidity into a 0-100 depth score and estimates
// expected slippage for the trade size. A token with no discoverable pool
// yields the NO_POOL verdict, distinct from generic missing data.
func (a *LiquidityAnalyzer) Analyze(in Inputs) domain.LiquidityReading {
	meta := domain.SignalMeta{
		Kind:       domain.SignalLiquidity,
		DataSource: in.DataSource,
	}

	if in.LiquidityUSD == nil || in.LiquidityUSD.LessThanOrEqual(decimal.Zero) {
		if a.thresholds.SkipOnMissingData {
			meta.Quality = domain.QualityNoPool
			meta.Err = "no pool liquidity discovered for token"
			return domain.LiquidityReading{SignalMeta: meta}
		}

		meta.Quality = domain.QualityPoor
		zero := decimal.Zero
		score := 0.0
		hundred := decimal.NewFromInt(100)
		return domain.LiquidityReading{
			SignalMeta:              meta,
			PoolLiquidityUSD:        &zero,
			ExpectedSlippagePercent: &hundred,
			DepthScore:              &score,
			Category:                domain.LiquidityDry,
		}
	}

	liquidity := *in.LiquidityUSD
	score := depthBucket(liquidity)

	slippage := decimal.NewFromInt(100)
	if in.TradeSizeUSD.GreaterThan(decimal.Zero) {
		slippage = decimal.Min(
			decimal.NewFromInt(100),
			in.TradeSizeUSD.Div(liquidity).Mul(decimal.NewFromInt(100)),
		)
	} else {
		slippage = decimal.Zero
	}

	meta.Quality = domain.QualityExcellent

	return domain.LiquidityReading{
		SignalMeta:              meta,
		PoolLiquidityUSD:        &liquidity,
		ExpectedSlippagePercent: &slippage,
		DepthScore:              &score,
		Category:                categorizeDepth(score),
	}
}

func categorizeDepth(score float64) domain.LiquidityCategory {
	switch {
	case score >= 80:
		return domain.LiquidityDeep
	case score >= 60:
		return domain.LiquidityModerate
	case score >= 40:
		return domain.LiquidityShallow
	default:
		return domain.LiquidityDry
	}
}
