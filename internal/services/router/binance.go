package router

import (
	"context"
	"fmt"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"github.com/dexsignal/dexsignal/internal/domain"
)

// BinanceVenue quotes tokens via the Binance public list-prices API. No
// authentication required.
type BinanceVenue struct {
	client *binance.Client
	quote  string
}

// NewBinanceVenue creates a Binance-backed venue source. quoteCurrency is
// appended to the token symbol to form the exchange pair, e.g. "USDT".
func NewBinanceVenue(client *binance.Client, quoteCurrency string) *BinanceVenue {
	return &BinanceVenue{client: client, quote: quoteCurrency}
}

// Name implements VenueSource.
func (v *BinanceVenue) Name() string {
	return "binance"
}

// Quote implements VenueSource.
func (v *BinanceVenue) Quote(ctx context.Context, tokenAddress, symbol string) (domain.DEXPrice, error) {
	prices, err := v.client.NewListPricesService().Symbol(symbol + v.quote).Do(ctx)
	if err != nil {
		return domain.DEXPrice{}, err
	}
	if len(prices) == 0 {
		return domain.DEXPrice{}, fmt.Errorf("binance API returned empty prices for %s%s", symbol, v.quote)
	}

	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return domain.DEXPrice{}, fmt.Errorf("binance returned unparseable price %q: %w", prices[0].Price, err)
	}

	return domain.DEXPrice{PriceUSD: &price}, nil
}
