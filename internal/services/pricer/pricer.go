// Package pricer supplies the chain's native token price in USD for the
// arbitrage gas cost model.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"
)

// StaticPricer returns a fixed native token price. Used in simulation and
// tests where a live feed is unavailable.
type StaticPricer struct {
	price decimal.Decimal
}

// NewStaticPricer creates a pricer pinned to the given USD price.
func NewStaticPricer(priceUSD decimal.Decimal) *StaticPricer {
	return &StaticPricer{price: priceUSD}
}

// NativeTokenUSD returns the pinned price.
func (p *StaticPricer) NativeTokenUSD(context.Context) (decimal.Decimal, error) {
	return p.price, nil
}
