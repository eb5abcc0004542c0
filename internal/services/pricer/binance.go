package pricer

import (
	"context"
	"fmt"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

// BinancePricer fetches the native token price from the Binance public API
// without requiring authentication.
type BinancePricer struct {
	client *binance.Client
	symbol string
}

// NewBinancePricer creates a Binance-backed native token pricer. symbol is
// the exchange pair for the chain's native token, e.g. "ETHUSDT".
func NewBinancePricer(client *binance.Client, symbol string) *BinancePricer {
	return &BinancePricer{client: client, symbol: symbol}
}

// NativeTokenUSD fetches the current native token price.
func (p *BinancePricer) NativeTokenUSD(ctx context.Context) (decimal.Decimal, error) {
	prices, err := p.client.NewListPricesService().Symbol(p.symbol).Do(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(prices) == 0 {
		return decimal.Decimal{}, fmt.Errorf("binance API returned empty prices for %s", p.symbol)
	}

	return decimal.NewFromString(prices[0].Price)
}
