// Package signal contains the five market signal analyzers: gas, liquidity,
// volatility, MEV and market state. Each analyzer is a pure computation over
// already-decoded chain readings; analyzers never call each other and never
// panic past their boundary, so the composite analyzer can always fold five
// structured readings.
package signal

import (
	"github.com/shopspring/decimal"
)

// Inputs already-decoded readings for one analysis cycle. All chain I/O is the
// caller's concern; a nil field means the upstream source had nothing.
type Inputs struct {
	GasPriceGwei *decimal.Decimal
	BaseFeeGwei  *decimal.Decimal

	// PriceHistory ordered oldest-first, typically hourly samples.
	PriceHistory []decimal.Decimal
	CurrentPrice *decimal.Decimal

	LiquidityUSD    *decimal.Decimal
	Volume24hChange *decimal.Decimal

	TradeSizeUSD decimal.Decimal

	// DataSource tag propagated into every reading for auditability.
	DataSource string
}

// lastPrice returns the explicit current price, falling back to the newest
// history point.
func (in Inputs) lastPrice() (decimal.Decimal, bool) {
	if in.CurrentPrice != nil {
		return *in.CurrentPrice, true
	}
	if n := len(in.PriceHistory); n > 0 {
		return in.PriceHistory[n-1], true
	}
	return decimal.Zero, false
}

// percentChange (to-from)/from*100, zero when from is zero.
func percentChange(from, to decimal.Decimal) decimal.Decimal {
	if from.IsZero() {
		return decimal.Zero
	}
	return to.Sub(from).Div(from).Mul(decimal.NewFromInt(100))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// depthBucket maps absolute USD liquidity into a 20/40/60/80/100 score at
// the 10k/25k/100k/1M breakpoints. Shared by the liquidity and MEV analyzers.
func depthBucket(liquidityUSD decimal.Decimal) float64 {
	switch {
	case liquidityUSD.LessThan(decimal.NewFromInt(10_000)):
		return 20
	case liquidityUSD.LessThan(decimal.NewFromInt(25_000)):
		return 40
	case liquidityUSD.LessThan(decimal.NewFromInt(100_000)):
		return 60
	case liquidityUSD.LessThan(decimal.NewFromInt(1_000_000)):
		return 80
	default:
		return 100
	}
}
