// Package strategy selects an execution strategy for a proposed trade via a
// priority-ordered decision matrix.
package strategy

import (
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
)

// gate one candidate strategy and its entry conditions. Gates are evaluated
// in order; the first one whose conditions all hold wins.
type gate struct {
	strategy domain.StrategyType
	matches  func(decision domain.TradingDecision, mc *domain.MarketContext) bool
}

// Selector maps market regime and position size to one of five execution
// strategies. SPOT is the unconditional terminal default: an unselected
// strategy must never block trading outright.
type Selector struct {
	thresholds config.StrategyThresholds
	gates      []gate
	l          *zap.Logger
}

// NewSelector builds a selector with the given gate thresholds. Defaults are
// documented on config.Default.
func NewSelector(thresholds config.StrategyThresholds, l *zap.Logger) *Selector {
	s := &Selector{thresholds: thresholds, l: l}
	s.gates = []gate{
		{domain.StrategyTWAP, s.matchTWAP},
		{domain.StrategyVWAP, s.matchVWAP},
		{domain.StrategyGrid, s.matchGrid},
		{domain.StrategyDCA, s.matchDCA},
	}
	return s
}

// Select returns the first strategy whose gates pass, falling back to SPOT.
// Pure function of its inputs and thresholds: identical calls return the
// identical strategy. Any panic during gate evaluation is recovered and
// resolves to SPOT.
func (s *Selector) Select(tokenAddress string, decision domain.TradingDecision, mc *domain.MarketContext) (chosen domain.StrategyType) {
	chosen = domain.StrategySpot

	defer func() {
		if r := recover(); r != nil {
			chosen = domain.StrategySpot
			s.l.Error("strategy gate evaluation panicked, falling back to SPOT",
				zap.String("token", tokenAddress),
				zap.Any("panic", r))
		}
	}()

	for _, g := range s.gates {
		if g.matches(decision, mc) {
			chosen = g.strategy
			break
		}
	}

	s.l.Info("strategy selected",
		zap.String("token", tokenAddress),
		zap.String("strategy", chosen.String()),
		zap.Float64("confidence", decision.OverallConfidence),
		zap.String("position_usd", decision.PositionSizeUSD.String()))

	return chosen
}

// matchTWAP very large orders in illiquid markets need time-sliced execution
// to avoid moving the price.
func (s *Selector) matchTWAP(d domain.TradingDecision, mc *domain.MarketContext) bool {
	g := s.thresholds.TWAP
	if !g.Enabled {
		return false
	}

	vol := mc.VolatilityOrZero()
	return d.PositionSizeUSD.GreaterThanOrEqual(g.MinPositionUSD) &&
		mc.LiquidityUSDOrZero().LessThan(g.MaxLiquidityUSD) &&
		d.OverallConfidence >= g.MinConfidence &&
		vol >= g.MinVolatility && vol <= g.MaxVolatility
}

// matchVWAP large orders where liquidity is ample should use volume-weighted
// chunking instead of flat time-slicing.
func (s *Selector) matchVWAP(d domain.TradingDecision, mc *domain.MarketContext) bool {
	g := s.thresholds.VWAP
	if !g.Enabled {
		return false
	}

	vol := mc.VolatilityOrZero()
	return d.PositionSizeUSD.GreaterThanOrEqual(g.MinPositionUSD) &&
		mc.LiquidityUSDOrZero().GreaterThanOrEqual(g.MinLiquidityUSD) &&
		d.OverallConfidence >= g.MinConfidence &&
		vol >= g.MinVolatility && vol <= g.MaxVolatility
}

// matchGrid range-bound volatile markets profit from oscillation capture.
func (s *Selector) matchGrid(d domain.TradingDecision, mc *domain.MarketContext) bool {
	g := s.thresholds.Grid
	if !g.Enabled {
		return false
	}

	return mc.VolatilityOrZero() >= g.MinVolatility &&
		mc.Trend() == domain.TrendNeutral &&
		mc.LiquidityUSDOrZero().GreaterThanOrEqual(g.MinLiquidityUSD) &&
		d.OverallConfidence >= g.MinConfidence
}

// matchDCA trending markets reward spreading entries to average cost.
func (s *Selector) matchDCA(d domain.TradingDecision, mc *domain.MarketContext) bool {
	g := s.thresholds.DCA
	if !g.Enabled {
		return false
	}

	return mc.Trend() == domain.TrendBullish &&
		d.OverallConfidence >= g.MinConfidence &&
		d.PositionSizeUSD.GreaterThanOrEqual(g.MinPositionUSD)
}
