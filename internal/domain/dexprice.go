package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DEXPrice one venue's quote for a token. Created fresh per query; the router
// caches quotes per (venue, token) with a short TTL.
type DEXPrice struct {
	VenueName    string           `json:"venue_name"`
	TokenAddress string           `json:"token_address"`
	Symbol       string           `json:"symbol,omitempty"`
	PriceUSD     *decimal.Decimal `json:"price_usd,omitempty"`
	LiquidityUSD *decimal.Decimal `json:"liquidity_usd,omitempty"`
	Success      bool             `json:"success"`
	Error        string           `json:"error,omitempty"`
	PoolAddress  string           `json:"pool_address,omitempty"`
	QueryTimeMs  float64          `json:"query_time_ms"`
	QuotedAt     time.Time        `json:"quoted_at"`
}

// Price returns the quoted price or zero when unset.
func (p DEXPrice) Price() decimal.Decimal {
	if p.PriceUSD == nil {
		return decimal.Zero
	}
	return *p.PriceUSD
}

// Liquidity returns the quoted pool liquidity or zero when unset.
func (p DEXPrice) Liquidity() decimal.Decimal {
	if p.LiquidityUSD == nil {
		return decimal.Zero
	}
	return *p.LiquidityUSD
}
