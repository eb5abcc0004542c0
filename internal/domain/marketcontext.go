package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// MarketContext per-token snapshot assembled by the composite analyzer for a
// single analysis cycle. Fields are nil until the owning analyzer populated
// them; absence is distinct from zero. The context is treated as immutable
// once handed to the strategy selector and discarded after the decision.
type MarketContext struct {
	TokenAddress string
	ChainID      int64

	GasPriceGwei      *decimal.Decimal
	NetworkCongestion *float64

	MEVThreatLevel      *float64
	SandwichRisk        *float64
	FrontrunProbability *float64

	PoolLiquidityUSD        *decimal.Decimal
	ExpectedSlippagePercent *decimal.Decimal
	LiquidityDepthScore     *float64

	VolatilityIndex *float64
	TrendDirection  TrendDirection
	Volume24hChange *decimal.Decimal

	ConfidenceInData *float64
}

// ClampScore bounds a 0-100 indicator. Every score field must pass through
// this before use. NaN collapses to 0 so a single undefined oscillator can
// never poison a composite fold.
func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// scoreOrZero is the single default-on-missing rule for score fields: a nil
// reading contributes 0, a present reading is clamped to [0,100].
func scoreOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return ClampScore(*v)
}

// CongestionOrZero returns network congestion, defaulting missing data to 0.
func (c *MarketContext) CongestionOrZero() float64 {
	return scoreOrZero(c.NetworkCongestion)
}

// MEVThreatOrZero returns the MEV threat level, defaulting missing data to 0.
func (c *MarketContext) MEVThreatOrZero() float64 {
	return scoreOrZero(c.MEVThreatLevel)
}

// VolatilityOrZero returns the volatility index, defaulting missing data to 0.
func (c *MarketContext) VolatilityOrZero() float64 {
	return scoreOrZero(c.VolatilityIndex)
}

// LiquidityDepthOrZero returns the liquidity depth score, defaulting missing data to 0.
func (c *MarketContext) LiquidityDepthOrZero() float64 {
	return scoreOrZero(c.LiquidityDepthScore)
}

// LiquidityUSDOrZero returns pool liquidity in USD, defaulting missing data to zero.
func (c *MarketContext) LiquidityUSDOrZero() decimal.Decimal {
	if c.PoolLiquidityUSD == nil {
		return decimal.Zero
	}
	return *c.PoolLiquidityUSD
}

// Trend returns the trend direction, defaulting to neutral when unset.
func (c *MarketContext) Trend() TrendDirection {
	if !c.TrendDirection.IsValid() {
		return TrendNeutral
	}
	return c.TrendDirection
}

// Float64Ptr returns a pointer to v. Helper for populating optional score fields.
func Float64Ptr(v float64) *float64 {
	return &v
}

// DecimalPtr returns a pointer to d. Helper for populating optional money fields.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
