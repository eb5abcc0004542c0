package router

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/dexsignal/dexsignal/internal/domain"
)

// StaticVenue deterministic in-memory venue source for simulation and tests.
type StaticVenue struct {
	name      string
	price     decimal.Decimal
	liquidity decimal.Decimal
	err       error
	delay     time.Duration
}

// NewStaticVenue creates a venue that always quotes the given price and
// liquidity.
func NewStaticVenue(name string, price, liquidityUSD decimal.Decimal) *StaticVenue {
	return &StaticVenue{name: name, price: price, liquidity: liquidityUSD}
}

// NewFailingVenue creates a venue whose quotes always fail with the given
// message.
func NewFailingVenue(name, message string) *StaticVenue {
	return &StaticVenue{name: name, err: errors.New(message)}
}

// WithDelay makes every quote wait before answering, to exercise branch
// timeouts.
func (v *StaticVenue) WithDelay(d time.Duration) *StaticVenue {
	v.delay = d
	return v
}

// SetPrice updates the quoted price.
func (v *StaticVenue) SetPrice(price decimal.Decimal) {
	v.price = price
}

// Name implements VenueSource.
func (v *StaticVenue) Name() string {
	return v.name
}

// Quote implements VenueSource.
func (v *StaticVenue) Quote(ctx context.Context, tokenAddress, symbol string) (domain.DEXPrice, error) {
	if v.delay > 0 {
		select {
		case <-ctx.Done():
			return domain.DEXPrice{}, ctx.Err()
		case <-time.After(v.delay):
		}
	}

	if v.err != nil {
		return domain.DEXPrice{}, v.err
	}

	price := v.price
	liquidity := v.liquidity
	return domain.DEXPrice{PriceUSD: &price, LiquidityUSD: &liquidity}, nil
}
