// Package arbitrage detects cost-adjusted cross-venue price discrepancies.
package arbitrage

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
)

// NativeTokenPricer supplies the chain's native token price in USD for the
// gas cost model. Injected so the cost model never hardcodes an ETH price.
type NativeTokenPricer interface {
	NativeTokenUSD(ctx context.Context) (decimal.Decimal, error)
}

// Stats engine observability counters. Snapshot values.
type Stats struct {
	Evaluated uint64
	Found     uint64
}

// Engine evaluates per-venue quote sets for a profitable buy-low/sell-high
// round trip. A nil opportunity means nothing cleared the cost model, which
// is the normal outcome, not an error.
type Engine struct {
	cfg    config.ArbitrageConfig
	pricer NativeTokenPricer
	l      *zap.Logger

	evaluated atomic.Uint64
	found     atomic.Uint64
}

// NewEngine builds an arbitrage engine over the given cost-model config.
func NewEngine(cfg config.ArbitrageConfig, pricer NativeTokenPricer, l *zap.Logger) *Engine {
	return &Engine{cfg: cfg, pricer: pricer, l: l}
}

// FindOpportunity picks the cheapest and dearest valid quotes, applies the
// gas/slippage/MEV cost model and returns the opportunity if net profit
// clears the configured minimum. Fewer than 2 valid quotes always yields nil.
func (e *Engine) FindOpportunity(
	ctx context.Context,
	quotes []domain.DEXPrice,
	symbol, tokenAddress string,
	chainID int64,
	gasPriceGwei decimal.Decimal,
) (*domain.ArbitrageOpportunity, error) {
	e.evaluated.Add(1)

	valid := validQuotes(quotes)
	if len(valid) < 2 {
		return nil, nil
	}

	buy, sell := valid[0], valid[0]
	for _, q := range valid[1:] {
		if q.Price().LessThan(buy.Price()) {
			buy = q
		}
		if q.Price().GreaterThan(sell.Price()) {
			sell = q
		}
	}

	spread := sell.Price().Sub(buy.Price()).Div(buy.Price()).Mul(decimal.NewFromInt(100))
	if spread.LessThan(e.cfg.MinSpreadPercent) {
		return nil, nil
	}

	nativeUSD, err := e.pricer.NativeTokenUSD(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get native token price for gas cost model")
	}

	gasCost := e.gasCostUSD(chainID, gasPriceGwei, nativeUSD)
	avgPrice := buy.Price().Add(sell.Price()).Div(decimal.NewFromInt(2))
	// both legs pay slippage
	slippageCost := avgPrice.Mul(e.cfg.SlippageRate).Mul(decimal.NewFromInt(2))
	mevRisk := mevRiskForSpread(spread)

	thinnerLiquidity := decimal.Min(buy.Liquidity(), sell.Liquidity())
	maxTradeSize := thinnerLiquidity.Mul(e.cfg.MaxTradeLiquidityFraction).Div(avgPrice)
	recommendedSize := maxTradeSize.Mul(e.cfg.RecommendedSizeFraction)

	grossProfit := sell.Price().Sub(buy.Price()).Mul(recommendedSize)
	netProfit := grossProfit.Sub(gasCost).Sub(slippageCost)

	if netProfit.LessThan(e.cfg.MinProfitUSD) {
		e.l.Debug("opportunity rejected, net profit below minimum",
			zap.String("token", symbol),
			zap.String("net_profit_usd", netProfit.StringFixed(2)),
			zap.String("min_profit_usd", e.cfg.MinProfitUSD.String()))
		return nil, nil
	}
	// gas eating most of the edge means the nominal spread does not justify
	// the trade even when net profit is technically positive
	gasCeiling := grossProfit.Mul(e.cfg.MaxGasCostPercent).Div(decimal.NewFromInt(100))
	if gasCost.GreaterThan(gasCeiling) {
		e.l.Debug("opportunity rejected, gas cost exceeds allowed share of gross profit",
			zap.String("token", symbol),
			zap.String("gas_cost_usd", gasCost.StringFixed(2)),
			zap.String("gross_profit_usd", grossProfit.StringFixed(2)))
		return nil, nil
	}

	opp := &domain.ArbitrageOpportunity{
		TokenSymbol:  symbol,
		TokenAddress: tokenAddress,

		BuyVenue:     buy.VenueName,
		BuyPrice:     buy.Price(),
		BuyLiquidity: buy.Liquidity(),

		SellVenue:     sell.VenueName,
		SellPrice:     sell.Price(),
		SellLiquidity: sell.Liquidity(),

		GrossSpreadPercent: spread,
		GrossProfitUSD:     grossProfit,

		EstimatedGasCostUSD:  gasCost,
		EstimatedSlippageUSD: slippageCost,
		MEVRiskScore:         mevRisk,
		NetProfitUSD:         netProfit,

		ConfidenceScore: confidence(spread, mevRisk, thinnerLiquidity),

		MaxTradeSize:         maxTradeSize,
		RecommendedTradeSize: recommendedSize,

		DetectedAt: time.Now(),
	}

	e.found.Add(1)
	e.l.Info("arbitrage opportunity found",
		zap.String("token", symbol),
		zap.String("buy_venue", opp.BuyVenue),
		zap.String("sell_venue", opp.SellVenue),
		zap.String("spread_percent", spread.StringFixed(3)),
		zap.String("net_profit_usd", netProfit.StringFixed(2)))

	return opp, nil
}

func (e *Engine) gasCostUSD(chainID int64, gasPriceGwei, nativeUSD decimal.Decimal) decimal.Decimal {
	units, ok := e.cfg.GasUnitsByChain[chainID]
	if !ok {
		// unknown chain, assume mainnet-grade swap cost
		units = e.cfg.GasUnitsByChain[1]
	}
	gwei := decimal.NewFromFloat(1e-9)
	return decimal.NewFromInt(units).Mul(gasPriceGwei).Mul(gwei).Mul(nativeUSD)
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Evaluated: e.evaluated.Load(),
		Found:     e.found.Load(),
	}
}

func validQuotes(quotes []domain.DEXPrice) []domain.DEXPrice {
	valid := make([]domain.DEXPrice, 0, len(quotes))
	for _, q := range quotes {
		if q.Success && q.PriceUSD != nil && q.PriceUSD.IsPositive() {
			valid = append(valid, q)
		}
	}
	return valid
}

// mevRiskForSpread steps risk up with spread width; wide spreads attract
// copy-front-runners.
func mevRiskForSpread(spreadPercent decimal.Decimal) float64 {
	spread, _ := spreadPercent.Float64()
	switch {
	case spread < 0.5:
		return 10
	case spread < 1:
		return 30
	case spread < 2:
		return 50
	case spread < 5:
		return 70
	default:
		return 90
	}
}

// liquidityScore buckets absolute USD liquidity of the thinner side.
func liquidityScore(liquidityUSD decimal.Decimal) float64 {
	usd, _ := liquidityUSD.Float64()
	switch {
	case usd >= 1_000_000:
		return 100
	case usd >= 100_000:
		return 80
	case usd >= 25_000:
		return 60
	case usd >= 10_000:
		return 40
	default:
		return 20
	}
}

func confidence(spreadPercent decimal.Decimal, mevRisk float64, thinnerLiquidity decimal.Decimal) float64 {
	spread, _ := spreadPercent.Float64()
	spreadComponent := spread * 10
	if spreadComponent > 40 {
		spreadComponent = 40
	}
	return domain.ClampScore(0.3*spreadComponent + 0.3*(100-mevRisk) + 0.4*liquidityScore(thinnerLiquidity))
}
