// Package clients constructs the exchange API clients used by the venue
// sources and the snapshot provider. Public market data endpoints need no
// credentials; empty keys are fine for quoting.
package clients

import (
	"github.com/adshao/go-binance/v2"
)

func NewBinanceClient(apiKey, apiSecret string) *binance.Client {
	return binance.NewClient(apiKey, apiSecret)
}
