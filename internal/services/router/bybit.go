package router

import (
	"context"
	"fmt"

	"github.com/hirokisan/bybit/v2"
	"github.com/shopspring/decimal"

	"github.com/dexsignal/dexsignal/internal/domain"
)

// BybitVenue quotes tokens via the Bybit V5 spot ticker API.
type BybitVenue struct {
	client *bybit.Client
	quote  string
}

// NewBybitVenue creates a Bybit-backed venue source.
func NewBybitVenue(client *bybit.Client, quoteCurrency string) *BybitVenue {
	return &BybitVenue{client: client, quote: quoteCurrency}
}

// Name implements VenueSource.
func (v *BybitVenue) Name() string {
	return "bybit"
}

// Quote implements VenueSource. The bybit client carries no context; the
// router's branch timeout still bounds the caller's wait.
func (v *BybitVenue) Quote(_ context.Context, tokenAddress, symbol string) (domain.DEXPrice, error) {
	pair := bybit.SymbolV5(symbol + v.quote)

	result, err := v.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: "spot",
		Symbol:   &pair,
	})
	if err != nil {
		return domain.DEXPrice{}, err
	}

	if len(result.Result.Spot.List) == 0 {
		return domain.DEXPrice{}, fmt.Errorf("bybit API returned empty tickers for %s%s", symbol, v.quote)
	}

	ticker := result.Result.Spot.List[0]
	price, err := decimal.NewFromString(ticker.LastPrice)
	if err != nil {
		return domain.DEXPrice{}, fmt.Errorf("bybit returned unparseable price %q: %w", ticker.LastPrice, err)
	}

	return domain.DEXPrice{PriceUSD: &price}, nil
}
