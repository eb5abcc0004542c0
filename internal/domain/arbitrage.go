package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArbitrageOpportunity a cost-adjusted cross-venue price discrepancy. The
// engine returns nil instead of a zero-valued opportunity when nothing clears
// the configured minimum profit; absence is a first-class outcome.
type ArbitrageOpportunity struct {
	TokenSymbol  string `json:"token_symbol"`
	TokenAddress string `json:"token_address"`

	BuyVenue     string          `json:"buy_venue"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	BuyLiquidity decimal.Decimal `json:"buy_liquidity"`

	SellVenue     string          `json:"sell_venue"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	SellLiquidity decimal.Decimal `json:"sell_liquidity"`

	GrossSpreadPercent decimal.Decimal `json:"gross_spread_percent"`
	GrossProfitUSD     decimal.Decimal `json:"gross_profit_usd"`

	EstimatedGasCostUSD  decimal.Decimal `json:"estimated_gas_cost_usd"`
	EstimatedSlippageUSD decimal.Decimal `json:"estimated_slippage_usd"`
	// MEVRiskScore 0-100. Wider spreads attract copy-front-runners.
	MEVRiskScore float64         `json:"mev_risk_score"`
	NetProfitUSD decimal.Decimal `json:"net_profit_usd"`

	// ConfidenceScore 0-100 blend of spread, MEV risk and liquidity depth.
	ConfidenceScore float64 `json:"confidence_score"`

	// MaxTradeSize in tokens, bounded by the thinner side's liquidity.
	MaxTradeSize decimal.Decimal `json:"max_trade_size"`
	// RecommendedTradeSize in tokens, a conservative fraction of MaxTradeSize.
	RecommendedTradeSize decimal.Decimal `json:"recommended_trade_size"`

	DetectedAt time.Time `json:"detected_at"`
}
