package marketdata

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// SimulatedSource generates random-walk klines and a mildly noisy gas price,
// so the full pipeline can run without any exchange or node access. It
// implements both KlineSource and GasSource.
type SimulatedSource struct {
	rng       *rand.Rand
	basePrice decimal.Decimal
	stepPct   float64
}

// NewSimulatedSource creates a deterministic simulated source. Same seed,
// same series.
func NewSimulatedSource(seed int64, basePriceUSD decimal.Decimal) *SimulatedSource {
	return &SimulatedSource{
		rng:       rand.New(rand.NewSource(seed)),
		basePrice: basePriceUSD,
		stepPct:   0.4,
	}
}

// Name implements KlineSource.
func (s *SimulatedSource) Name() string {
	return "simulated"
}

// Klines implements KlineSource with a random walk around the base price.
func (s *SimulatedSource) Klines(_ context.Context, symbol, interval string, limit int) ([]Kline, error) {
	now := time.Now()
	price := s.basePrice

	klines := make([]Kline, limit)
	for i := range klines {
		step := decimal.NewFromFloat((s.rng.Float64()*2 - 1) * s.stepPct / 100)
		next := price.Add(price.Mul(step))

		openTime := now.Add(time.Duration(i-limit) * time.Hour)
		klines[i] = Kline{
			OpenTime:  openTime,
			Open:      price,
			High:      decimal.Max(price, next),
			Low:       decimal.Min(price, next),
			Close:     next,
			Volume:    decimal.NewFromFloat(1000 + s.rng.Float64()*9000),
			CloseTime: openTime.Add(time.Hour),
		}
		price = next
	}

	return klines, nil
}

// GasPrice implements GasSource with a gas price jittering around 1 gwei.
func (s *SimulatedSource) GasPrice(context.Context) (decimal.Decimal, decimal.Decimal, error) {
	base := decimal.NewFromFloat(0.7 + s.rng.Float64()*0.3)
	gas := base.Add(decimal.NewFromFloat(s.rng.Float64() * 0.5))
	return gas, base, nil
}
