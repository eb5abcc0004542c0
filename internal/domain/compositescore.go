package domain

import "time"

// CompositeScore fused risk/opportunity/confidence verdict for one analysis
// cycle. Risk and opportunity are computed independently and are not required
// to sum to 100. Immutable once created; consumed by the strategy selector
// and written to the audit journal.
type CompositeScore struct {
	OverallRisk        float64 `json:"overall_risk"`
	OverallOpportunity float64 `json:"overall_opportunity"`
	OverallConfidence  float64 `json:"overall_confidence"`
	// FavorableConditions true when opportunity > 60 and risk < 40.
	FavorableConditions bool        `json:"favorable_conditions"`
	DataQuality         DataQuality `json:"data_quality"`
}

// CompositeResult full output of one composite analysis cycle.
type CompositeResult struct {
	TokenAddress string         `json:"token_address"`
	ChainID      int64          `json:"chain_id"`
	Score        CompositeScore `json:"score"`
	Context      *MarketContext `json:"-"`

	Gas         GasReading         `json:"gas"`
	Liquidity   LiquidityReading   `json:"liquidity"`
	Volatility  VolatilityReading  `json:"volatility"`
	MEV         MEVReading         `json:"mev"`
	MarketState MarketStateReading `json:"market_state"`

	AnalyzedAt time.Time     `json:"analyzed_at"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Signals returns the five readings behind the uniform folding interface.
func (r *CompositeResult) Signals() []Signal {
	return []Signal{r.Gas, r.Liquidity, r.Volatility, r.MEV, r.MarketState}
}
