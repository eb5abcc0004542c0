// Package config holds every numeric threshold the decision engine consumes.
// All §-level tunables are fields here, never literals in the services; a
// Config value is read-only after Load and safe to share across concurrent
// analysis cycles.
package config

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// AnalyzerThresholds tunables for the five signal analyzers.
type AnalyzerThresholds struct {
	// Gas price band edges in gwei, strictly increasing.
	GasLowGwei     decimal.Decimal `yaml:"gas_low_gwei"`
	GasMediumGwei  decimal.Decimal `yaml:"gas_medium_gwei"`
	GasHighGwei    decimal.Decimal `yaml:"gas_high_gwei"`
	GasExtremeGwei decimal.Decimal `yaml:"gas_extreme_gwei"`

	// Volatility category bounds in annualized percent.
	VolatilityLowPct    float64 `yaml:"volatility_low_pct"`
	VolatilityMediumPct float64 `yaml:"volatility_medium_pct"`
	VolatilityHighPct   float64 `yaml:"volatility_high_pct"`
	// VolatilityIndexScale volatility percent mapping to index 100.
	VolatilityIndexScale float64 `yaml:"volatility_index_scale"`
	// TrendThresholdPct current-vs-mean percent move that flips the trend.
	TrendThresholdPct float64 `yaml:"trend_threshold_pct"`

	// SkipOnMissingData return NO_DATA instead of zero-valued readings when
	// an upstream source has nothing.
	SkipOnMissingData bool `yaml:"skip_on_missing_data"`
}

// StrategyGate thresholds for one execution strategy in the priority matrix.
type StrategyGate struct {
	Enabled         bool            `yaml:"enabled"`
	MinPositionUSD  decimal.Decimal `yaml:"min_position_usd"`
	MinLiquidityUSD decimal.Decimal `yaml:"min_liquidity_usd"`
	MaxLiquidityUSD decimal.Decimal `yaml:"max_liquidity_usd"`
	MinConfidence   float64         `yaml:"min_confidence"`
	MinVolatility   float64         `yaml:"min_volatility"`
	MaxVolatility   float64         `yaml:"max_volatility"`
}

// StrategyThresholds gates for the TWAP->VWAP->GRID->DCA->SPOT matrix.
// Zero-valued bounds mean "not gated on this dimension" for the strategies
// that do not use them.
type StrategyThresholds struct {
	TWAP StrategyGate `yaml:"twap"`
	VWAP StrategyGate `yaml:"vwap"`
	Grid StrategyGate `yaml:"grid"`
	DCA  StrategyGate `yaml:"dca"`
}

// RouterConfig tunables for the multi-venue price router.
type RouterConfig struct {
	// VenueTimeout deadline per venue quote branch.
	VenueTimeout time.Duration `yaml:"venue_timeout"`
	// CacheTTL lifetime of a cached (venue, token) quote.
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// DefaultVenue deterministic fallback when no venue returns a usable quote.
	DefaultVenue string `yaml:"default_venue"`
	// MinValidPrice/MaxValidPrice sanity band excluding zero/garbage quotes.
	MinValidPrice decimal.Decimal `yaml:"min_valid_price"`
	MaxValidPrice decimal.Decimal `yaml:"max_valid_price"`
}

// ArbitrageConfig tunables for the arbitrage engine cost model.
type ArbitrageConfig struct {
	MinSpreadPercent decimal.Decimal `yaml:"min_spread_percent"`
	MinProfitUSD     decimal.Decimal `yaml:"min_profit_usd"`
	// MaxGasCostPercent reject when gas exceeds this share of gross profit.
	MaxGasCostPercent decimal.Decimal `yaml:"max_gas_cost_percent"`
	// SlippageRate per-leg slippage fraction of average price.
	SlippageRate decimal.Decimal `yaml:"slippage_rate"`
	// GasUnitsByChain swap gas units per chain id.
	GasUnitsByChain map[int64]int64 `yaml:"gas_units_by_chain"`
	// MaxTradeLiquidityFraction share of the thinner side's liquidity that
	// bounds trade size. The 10%-then-50% sizing rule is preserved from the
	// source system as configurable defaults.
	MaxTradeLiquidityFraction decimal.Decimal `yaml:"max_trade_liquidity_fraction"`
	RecommendedSizeFraction   decimal.Decimal `yaml:"recommended_size_fraction"`
}

// Config root configuration for one engine instance.
type Config struct {
	TokenAddress string          `yaml:"token_address"`
	TokenSymbol  string          `yaml:"token_symbol"`
	ChainID      int64           `yaml:"chain_id"`
	TradeSizeUSD decimal.Decimal `yaml:"trade_size_usd"`
	PollInterval time.Duration   `yaml:"poll_interval"`
	AuditDir     string          `yaml:"audit_dir"`
	// Simulate run against generated market data and static venues instead
	// of live exchange APIs.
	Simulate bool `yaml:"simulate"`

	Analyzer  AnalyzerThresholds `yaml:"analyzer"`
	Strategy  StrategyThresholds `yaml:"strategy"`
	Router    RouterConfig       `yaml:"router"`
	Arbitrage ArbitrageConfig    `yaml:"arbitrage"`
}

// Default returns the documented default thresholds.
func Default() Config {
	return Config{
		TokenAddress: "0x6B175474E89094C44Da98b954EedeAC495271d0F",
		TokenSymbol:  "DAI",
		ChainID:      1,
		TradeSizeUSD: decimal.NewFromInt(10000),
		PollInterval: 1 * time.Minute,
		Simulate:     true,
		AuditDir:     "./wal/audit",
		Analyzer: AnalyzerThresholds{
			GasLowGwei:           decimal.NewFromFloat(0.5),
			GasMediumGwei:        decimal.NewFromInt(2),
			GasHighGwei:          decimal.NewFromInt(5),
			GasExtremeGwei:       decimal.NewFromInt(10),
			VolatilityLowPct:     5,
			VolatilityMediumPct:  15,
			VolatilityHighPct:    30,
			VolatilityIndexScale: 50,
			TrendThresholdPct:    5,
			SkipOnMissingData:    true,
		},
		Strategy: StrategyThresholds{
			TWAP: StrategyGate{
				Enabled:         true,
				MinPositionUSD:  decimal.NewFromInt(50000),
				MaxLiquidityUSD: decimal.NewFromInt(500000),
				MinConfidence:   60,
				MinVolatility:   20,
				MaxVolatility:   70,
			},
			VWAP: StrategyGate{
				Enabled:         true,
				MinPositionUSD:  decimal.NewFromInt(25000),
				MinLiquidityUSD: decimal.NewFromInt(1000000),
				MinConfidence:   60,
				MinVolatility:   10,
				MaxVolatility:   60,
			},
			Grid: StrategyGate{
				Enabled:         true,
				MinLiquidityUSD: decimal.NewFromInt(100000),
				MinConfidence:   50,
				MinVolatility:   40,
			},
			DCA: StrategyGate{
				Enabled:        true,
				MinPositionUSD: decimal.NewFromInt(1000),
				MinConfidence:  55,
			},
		},
		Router: RouterConfig{
			VenueTimeout:  10 * time.Second,
			CacheTTL:      60 * time.Second,
			DefaultVenue:  "binance",
			MinValidPrice: decimal.NewFromFloat(1e-6),
			MaxValidPrice: decimal.NewFromFloat(1e9),
		},
		Arbitrage: ArbitrageConfig{
			MinSpreadPercent:  decimal.NewFromFloat(0.5),
			MinProfitUSD:      decimal.NewFromInt(5),
			MaxGasCostPercent: decimal.NewFromInt(20),
			SlippageRate:      decimal.NewFromFloat(0.001),
			GasUnitsByChain: map[int64]int64{
				1:     150000, // mainnet
				10:    90000,  // optimism
				137:   120000, // polygon
				8453:  80000,  // base
				42161: 100000, // arbitrum
			},
			MaxTradeLiquidityFraction: decimal.NewFromFloat(0.1),
			RecommendedSizeFraction:   decimal.NewFromFloat(0.5),
		},
	}
}

// Get parses the -config flag and loads configuration, falling back to
// defaults when no file is given.
func Get() (Config, error) {
	path := flag.String("config", "", "path to yaml config")
	flag.Parse()

	if *path == "" {
		return Default(), nil
	}
	return Load(*path)
}

// Load reads a yaml file over the defaults, so omitted fields keep their
// documented values.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks threshold consistency.
func (c Config) Validate() error {
	a := c.Analyzer
	if !a.GasLowGwei.LessThan(a.GasMediumGwei) ||
		!a.GasMediumGwei.LessThan(a.GasHighGwei) ||
		!a.GasHighGwei.LessThan(a.GasExtremeGwei) {
		return errors.Errorf("gas thresholds must be strictly increasing, got %s/%s/%s/%s",
			a.GasLowGwei, a.GasMediumGwei, a.GasHighGwei, a.GasExtremeGwei)
	}
	if a.VolatilityIndexScale <= 0 {
		return errors.Errorf("volatility_index_scale must be positive, got %f", a.VolatilityIndexScale)
	}
	if c.Router.VenueTimeout <= 0 {
		return errors.New("router venue_timeout must be positive")
	}
	if c.Router.CacheTTL <= 0 {
		return errors.New("router cache_ttl must be positive")
	}
	if c.Arbitrage.MaxTradeLiquidityFraction.LessThanOrEqual(decimal.Zero) ||
		c.Arbitrage.MaxTradeLiquidityFraction.GreaterThan(decimal.NewFromInt(1)) {
		return errors.Errorf("max_trade_liquidity_fraction must be in (0,1], got %s",
			c.Arbitrage.MaxTradeLiquidityFraction)
	}
	if c.Arbitrage.RecommendedSizeFraction.LessThanOrEqual(decimal.Zero) ||
		c.Arbitrage.RecommendedSizeFraction.GreaterThan(decimal.NewFromInt(1)) {
		return errors.Errorf("recommended_size_fraction must be in (0,1], got %s",
			c.Arbitrage.RecommendedSizeFraction)
	}
	return nil
}
