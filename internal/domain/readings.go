package domain

import "github.com/shopspring/decimal"

// SignalKind identifies one of the five signal analyzers. The set is closed:
// the composite analyzer folds exactly these five readings per cycle.
type SignalKind string

const (
	SignalGas         SignalKind = "gas"
	SignalLiquidity   SignalKind = "liquidity"
	SignalVolatility  SignalKind = "volatility"
	SignalMEV         SignalKind = "mev"
	SignalMarketState SignalKind = "market_state"
)

// SignalMeta fields shared by every analyzer reading. Quality of NO_DATA,
// NO_POOL or ERROR means the numeric fields of the reading may be unset;
// callers must branch on Quality before trusting values.
type SignalMeta struct {
	Kind       SignalKind  `json:"kind"`
	Quality    DataQuality `json:"quality"`
	DataSource string      `json:"data_source,omitempty"`
	Err        string      `json:"error,omitempty"`
}

// Signal is implemented by every analyzer reading so the composite analyzer
// can fold data qualities uniformly.
type Signal interface {
	SignalKind() SignalKind
	Meta() SignalMeta
}

// Meta implements Signal.
func (m SignalMeta) Meta() SignalMeta { return m }

// SignalKind implements Signal.
func (m SignalMeta) SignalKind() SignalKind { return m.Kind }

// GasCostCategory bucketed gas cost level.
type GasCostCategory string

const (
	GasCostLow     GasCostCategory = "low"
	GasCostMedium  GasCostCategory = "medium"
	GasCostHigh    GasCostCategory = "high"
	GasCostExtreme GasCostCategory = "extreme"
)

// GasReading output of the gas analyzer.
type GasReading struct {
	SignalMeta

	GasPriceGwei    *decimal.Decimal `json:"gas_price_gwei,omitempty"`
	BaseFeeGwei     *decimal.Decimal `json:"base_fee_gwei,omitempty"`
	PriorityFeeGwei *decimal.Decimal `json:"priority_fee_gwei,omitempty"`
	// Congestion 0-100 network congestion score.
	Congestion *float64        `json:"congestion,omitempty"`
	Category   GasCostCategory `json:"category,omitempty"`
}

// LiquidityCategory bucketed pool depth level.
type LiquidityCategory string

const (
	LiquidityDeep     LiquidityCategory = "deep"
	LiquidityModerate LiquidityCategory = "moderate"
	LiquidityShallow  LiquidityCategory = "shallow"
	LiquidityDry      LiquidityCategory = "dry"
)

// LiquidityReading output of the liquidity analyzer.
type LiquidityReading struct {
	SignalMeta

	PoolLiquidityUSD        *decimal.Decimal  `json:"pool_liquidity_usd,omitempty"`
	ExpectedSlippagePercent *decimal.Decimal  `json:"expected_slippage_percent,omitempty"`
	DepthScore              *float64          `json:"depth_score,omitempty"`
	Category                LiquidityCategory `json:"category,omitempty"`
}

// VolatilityCategory bucketed annualized volatility level.
type VolatilityCategory string

const (
	VolatilityLow     VolatilityCategory = "low"
	VolatilityMedium  VolatilityCategory = "medium"
	VolatilityHigh    VolatilityCategory = "high"
	VolatilityExtreme VolatilityCategory = "extreme"
)

// VolatilityReading output of the volatility analyzer.
type VolatilityReading struct {
	SignalMeta

	// AnnualizedPercent population stddev of per-step returns, annualized
	// assuming hourly sampling, expressed as a percentage.
	AnnualizedPercent *decimal.Decimal `json:"annualized_percent,omitempty"`
	// Index 0-100 volatility index.
	Index *float64       `json:"index,omitempty"`
	Trend TrendDirection `json:"trend,omitempty"`
	// Momentum 2x percent change first->last, clamped to [-100,100].
	Momentum *float64           `json:"momentum,omitempty"`
	Category VolatilityCategory `json:"category,omitempty"`
}

// MEVCategory bucketed MEV threat level.
type MEVCategory string

const (
	MEVLow      MEVCategory = "low"
	MEVMedium   MEVCategory = "medium"
	MEVHigh     MEVCategory = "high"
	MEVCritical MEVCategory = "critical"
)

// MEVReading output of the MEV threat analyzer.
type MEVReading struct {
	SignalMeta

	ThreatLevel         *float64    `json:"threat_level,omitempty"`
	SandwichRisk        *float64    `json:"sandwich_risk,omitempty"`
	FrontrunProbability *float64    `json:"frontrun_probability,omitempty"`
	Category            MEVCategory `json:"category,omitempty"`
}

// MarketStateCategory bucketed overall market activity level.
type MarketStateCategory string

const (
	MarketStateCalm    MarketStateCategory = "calm"
	MarketStateActive  MarketStateCategory = "active"
	MarketStateHeated  MarketStateCategory = "heated"
	MarketStateExtreme MarketStateCategory = "extreme"
)

// MarketStateReading output of the market state analyzer.
type MarketStateReading struct {
	SignalMeta

	// StateScore 0-100 composite of trend strength and oscillator balance.
	StateScore      *float64            `json:"state_score,omitempty"`
	Trend           TrendDirection      `json:"trend,omitempty"`
	Volume24hChange *decimal.Decimal    `json:"volume_24h_change,omitempty"`
	Category        MarketStateCategory `json:"category,omitempty"`
}
