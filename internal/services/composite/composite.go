// Package composite fuses the five signal analyzers into one risk /
// opportunity / confidence verdict per analysis cycle.
package composite

import (
	"context"
	"sync"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
	"github.com/dexsignal/dexsignal/internal/services/signal"
)

// Score weights. Risk and opportunity are independent folds; they do not sum
// to 100.
const (
	riskWeightCongestion  = 0.15
	riskWeightMEV         = 0.30
	riskWeightVolatility  = 0.25
	riskWeightIlliquidity = 0.30

	oppWeightDepth     = 0.40
	oppWeightStability = 0.20
	oppWeightMEVSafety = 0.20
	oppWeightCheapGas  = 0.20

	favorableOpportunityFloor = 60.0
	favorableRiskCeiling      = 40.0
)

// Analyzer fans the five signal analyzers out over one set of raw inputs and
// folds their readings into a CompositeScore. Gas runs first so its congestion
// value is on the log before the concurrent branches start; the remaining four
// analyzers depend only on raw inputs and run in parallel.
type Analyzer struct {
	gas         *signal.GasAnalyzer
	liquidity   *signal.LiquidityAnalyzer
	volatility  *signal.VolatilityAnalyzer
	mev         *signal.MEVAnalyzer
	marketState *signal.MarketStateAnalyzer
	l           *zap.Logger
}

// NewAnalyzer builds the composite analyzer with all five signal analyzers.
func NewAnalyzer(thresholds config.AnalyzerThresholds, l *zap.Logger) *Analyzer {
	return &Analyzer{
		gas:         signal.NewGasAnalyzer(thresholds, l),
		liquidity:   signal.NewLiquidityAnalyzer(thresholds, l),
		volatility:  signal.NewVolatilityAnalyzer(thresholds, l),
		mev:         signal.NewMEVAnalyzer(thresholds, l),
		marketState: signal.NewMarketStateAnalyzer(thresholds, l),
		l:           l,
	}
}

// AnalyzeComprehensive runs one full analysis cycle. It returns an error only
// for invalid caller input; any upstream failure degrades the readings and
// the composite data quality instead, so every request that reaches this
// method produces an auditable result.
func (a *Analyzer) AnalyzeComprehensive(ctx context.Context, tokenAddress string, chainID int64,
	tradeSizeUSD decimal.Decimal, in signal.Inputs) (*domain.CompositeResult, error) {

	if !common.IsHexAddress(tokenAddress) {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "malformed token address %q", tokenAddress)
	}
	if tradeSizeUSD.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "trade size %s must be positive", tradeSizeUSD.String())
	}

	started := time.Now()
	in.TradeSizeUSD = tradeSizeUSD

	result := &domain.CompositeResult{
		TokenAddress: tokenAddress,
		ChainID:      chainID,
		AnalyzedAt:   started,
	}

	// gas first: its congestion score goes on the log before the fan-out,
	// but it does not gate the other analyzers.
	result.Gas = a.gas.Analyze(in)
	a.logGas(tokenAddress, result.Gas)

	var wg sync.WaitGroup
	wg.Add(4)
	gopool.Go(func() {
		defer wg.Done()
		result.Liquidity = a.liquidity.Analyze(in)
	})
	gopool.Go(func() {
		defer wg.Done()
		result.Volatility = a.volatility.Analyze(in)
	})
	gopool.Go(func() {
		defer wg.Done()
		result.MEV = a.mev.Analyze(in)
	})
	gopool.Go(func() {
		defer wg.Done()
		result.MarketState = a.marketState.Analyze(in)
	})

	done := make(chan struct{})
	gopool.Go(func() {
		wg.Wait()
		close(done)
	})

	select {
	case <-done:
	case <-ctx.Done():
		// degraded but auditable: whatever readings landed before
		// cancellation keep their quality, the rest stay zero-valued.
		a.l.Warn("composite analysis cancelled",
			zap.String("token", tokenAddress),
			zap.Error(ctx.Err()))
		<-done
	}

	result.Context = a.buildContext(tokenAddress, chainID, in, result)
	result.Score = a.compose(result)
	result.Elapsed = time.Since(started)

	a.l.Info("composite analysis complete",
		zap.String("token", tokenAddress),
		zap.Int64("chain_id", chainID),
		zap.Float64("risk", result.Score.OverallRisk),
		zap.Float64("opportunity", result.Score.OverallOpportunity),
		zap.Float64("confidence", result.Score.OverallConfidence),
		zap.String("data_quality", result.Score.DataQuality.String()),
		zap.Duration("elapsed", result.Elapsed))

	return result, nil
}

func (a *Analyzer) logGas(token string, gas domain.GasReading) {
	if gas.Congestion == nil {
		a.l.Debug("gas reading unavailable", zap.String("token", token), zap.String("quality", gas.Quality.String()))
		return
	}
	a.l.Debug("gas reading",
		zap.String("token", token),
		zap.Float64("congestion", *gas.Congestion),
		zap.String("category", string(gas.Category)))
}

// buildContext assembles the per-cycle MarketContext. The default-on-missing
// rule lives here and in the context's OrZero accessors, not in the analyzers.
func (a *Analyzer) buildContext(token string, chainID int64, in signal.Inputs, r *domain.CompositeResult) *domain.MarketContext {
	mc := &domain.MarketContext{
		TokenAddress:            token,
		ChainID:                 chainID,
		GasPriceGwei:            r.Gas.GasPriceGwei,
		NetworkCongestion:       r.Gas.Congestion,
		MEVThreatLevel:          r.MEV.ThreatLevel,
		SandwichRisk:            r.MEV.SandwichRisk,
		FrontrunProbability:     r.MEV.FrontrunProbability,
		ExpectedSlippagePercent: r.Liquidity.ExpectedSlippagePercent,
		LiquidityDepthScore:     r.Liquidity.DepthScore,
		VolatilityIndex:         r.Volatility.Index,
		Volume24hChange:         r.MarketState.Volume24hChange,
	}

	// liquidity fallback chain: caller-supplied value, then whatever the
	// liquidity analyzer discovered, else absent (treated as 0 downstream).
	switch {
	case in.LiquidityUSD != nil:
		mc.PoolLiquidityUSD = in.LiquidityUSD
	case r.Liquidity.PoolLiquidityUSD != nil:
		mc.PoolLiquidityUSD = r.Liquidity.PoolLiquidityUSD
	}

	// the volatility analyzer owns trend; market state confirms it when
	// volatility had no data.
	mc.TrendDirection = r.Volatility.Trend
	if !r.Volatility.Quality.Usable() && r.MarketState.Quality.Usable() {
		mc.TrendDirection = r.MarketState.Trend
	}

	return mc
}

// compose folds the five readings into the composite score. Nil readings
// contribute 0; every input is clamped to [0,100] before weighting, so the
// outputs stay in [0,100] for any combination of analyzer results.
func (a *Analyzer) compose(r *domain.CompositeResult) domain.CompositeScore {
	mc := r.Context

	congestion := mc.CongestionOrZero()
	mevThreat := mc.MEVThreatOrZero()
	volatility := mc.VolatilityOrZero()
	depth := mc.LiquidityDepthOrZero()

	risk := domain.ClampScore(riskWeightCongestion*congestion +
		riskWeightMEV*mevThreat +
		riskWeightVolatility*volatility +
		riskWeightIlliquidity*(100-depth))

	opportunity := domain.ClampScore(oppWeightDepth*depth +
		oppWeightStability*(100-volatility) +
		oppWeightMEVSafety*(100-mevThreat) +
		oppWeightCheapGas*(100-congestion))

	confidence := domain.ClampScore((opportunity - risk + 100) / 2)

	score := domain.CompositeScore{
		OverallRisk:         risk,
		OverallOpportunity:  opportunity,
		OverallConfidence:   confidence,
		FavorableConditions: opportunity > favorableOpportunityFloor && risk < favorableRiskCeiling,
		DataQuality:         foldQuality(r.Signals()),
	}

	mc.ConfidenceInData = domain.Float64Ptr(confidence)

	return score
}

// foldQuality worst-case-weighted fold of the five data qualities. One broken
// signal degrades the composite verdict instead of being diluted by an
// average.
func foldQuality(signals []domain.Signal) domain.DataQuality {
	var excellent, goodOrBetter int
	for _, s := range signals {
		q := s.Meta().Quality
		switch q {
		case domain.QualityError:
			return domain.QualityError
		}
		if q == domain.QualityExcellent {
			excellent++
		}
		if q.AtLeast(domain.QualityGood) {
			goodOrBetter++
		}
	}

	for _, s := range signals {
		q := s.Meta().Quality
		if q == domain.QualityNoData || q == domain.QualityNoPool {
			return domain.QualityNoData
		}
	}

	switch {
	case excellent >= 3:
		return domain.QualityExcellent
	case goodOrBetter >= 3:
		return domain.QualityGood
	case goodOrBetter >= 2:
		return domain.QualityFair
	default:
		return domain.QualityPoor
	}
}
