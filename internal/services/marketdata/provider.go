// Package marketdata assembles already-decoded chain and exchange readings
// into per-cycle snapshots for the analyzers. All upstream I/O and retries
// live here, behind the advisor's SnapshotProvider boundary.
package marketdata

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/internal/domain"
	"github.com/dexsignal/dexsignal/internal/services/signal"
	"github.com/dexsignal/dexsignal/pkg/retrier"
)

// Kline one candlestick, oldest-first in every slice returned by a source.
type Kline struct {
	OpenTime  time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
	CloseTime time.Time
}

// KlineSource fetches historical candlestick data for a trading symbol.
type KlineSource interface {
	Name() string
	Klines(ctx context.Context, symbol, interval string, limit int) ([]Kline, error)
}

// GasSource reports the chain's current gas price and base fee in gwei.
type GasSource interface {
	GasPrice(ctx context.Context) (gasGwei, baseFeeGwei decimal.Decimal, err error)
}

const (
	snapshotInterval = "1h"
	snapshotDepth    = 168 // one week of hourly candles
	volumeWindow     = 24
)

// Provider builds analyzer inputs from a kline source and an optional gas
// source. Kline fetches are retried with backoff; a missing gas source only
// degrades the gas reading, never the snapshot.
type Provider struct {
	klines KlineSource
	gas    GasSource
	symbol string
	r      *retrier.Retrier
	l      *zap.Logger
}

// NewProvider creates a snapshot provider. gas may be nil when the deployment
// has no gas feed.
func NewProvider(klines KlineSource, gas GasSource, symbol string, l *zap.Logger) *Provider {
	return &Provider{
		klines: klines,
		gas:    gas,
		symbol: symbol,
		r:      retrier.New(retrier.WithMaxRetries(3), retrier.WithInitialInterval(500*time.Millisecond)),
		l:      l,
	}
}

// Snapshot fetches one cycle's readings.
func (p *Provider) Snapshot(ctx context.Context, tokenAddress string, chainID int64) (signal.Inputs, error) {
	klines, err := retrier.DoWithData(p.r, ctx, func(ctx context.Context) ([]Kline, error) {
		return p.klines.Klines(ctx, p.symbol, snapshotInterval, snapshotDepth)
	})
	if err != nil {
		return signal.Inputs{}, errors.Wrapf(err, "failed to fetch klines for %s", p.symbol)
	}
	if len(klines) == 0 {
		return signal.Inputs{}, errors.Wrapf(domain.ErrDataUnavailable,
			"kline source %s returned no candles for %s", p.klines.Name(), p.symbol)
	}

	history := make([]decimal.Decimal, len(klines))
	for i, k := range klines {
		history[i] = k.Close
	}
	current := history[len(history)-1]

	in := signal.Inputs{
		PriceHistory: history,
		CurrentPrice: &current,
		DataSource:   p.klines.Name(),
	}

	if change, ok := volumeChange(klines); ok {
		in.Volume24hChange = &change
	}

	if p.gas != nil {
		gas, base, err := p.gas.GasPrice(ctx)
		if err != nil {
			p.l.Warn("gas source unavailable, gas reading will degrade",
				zap.String("token", tokenAddress),
				zap.Error(err))
		} else {
			in.GasPriceGwei = &gas
			in.BaseFeeGwei = &base
		}
	}

	return in, nil
}

// volumeChange percent change of summed volume over the latest window versus
// the preceding one. Needs two full windows.
func volumeChange(klines []Kline) (decimal.Decimal, bool) {
	if len(klines) < 2*volumeWindow {
		return decimal.Zero, false
	}

	recent := decimal.Zero
	previous := decimal.Zero
	for _, k := range klines[len(klines)-volumeWindow:] {
		recent = recent.Add(k.Volume)
	}
	for _, k := range klines[len(klines)-2*volumeWindow : len(klines)-volumeWindow] {
		previous = previous.Add(k.Volume)
	}

	if previous.IsZero() {
		return decimal.Zero, false
	}
	return recent.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)), true
}
