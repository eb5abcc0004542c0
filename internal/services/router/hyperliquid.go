package router

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	hyperliquid "github.com/sonirico/go-hyperliquid"

	"github.com/dexsignal/dexsignal/internal/domain"
)

// HyperliquidVenue quotes tokens via the Hyperliquid public Info API.
type HyperliquidVenue struct {
	info *hyperliquid.Info
}

// NewHyperliquidVenue creates a Hyperliquid-backed venue source.
func NewHyperliquidVenue(info *hyperliquid.Info) *HyperliquidVenue {
	return &HyperliquidVenue{info: info}
}

// Name implements VenueSource.
func (v *HyperliquidVenue) Name() string {
	return "hyperliquid"
}

// Quote implements VenueSource. Hyperliquid mids are keyed by base coin
// symbol, e.g. "ETH".
func (v *HyperliquidVenue) Quote(ctx context.Context, tokenAddress, symbol string) (domain.DEXPrice, error) {
	if v.info == nil {
		return domain.DEXPrice{}, fmt.Errorf("hyperliquid info client is nil")
	}

	mids, err := v.info.AllMids(ctx)
	if err != nil {
		return domain.DEXPrice{}, err
	}

	mid, ok := mids[symbol]
	if !ok || mid == "" {
		return domain.DEXPrice{}, fmt.Errorf("hyperliquid API returned no mid price for %s", symbol)
	}

	price, err := decimal.NewFromString(mid)
	if err != nil {
		return domain.DEXPrice{}, fmt.Errorf("hyperliquid returned unparseable mid %q: %w", mid, err)
	}

	return domain.DEXPrice{PriceUSD: &price}, nil
}
