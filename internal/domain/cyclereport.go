package domain

import "time"

// CycleReport the auditable outcome of one full analysis cycle. Written to
// the audit journal after every cycle, including degraded ones.
type CycleReport struct {
	ID           string `json:"id"`
	TokenAddress string `json:"token_address"`
	TokenSymbol  string `json:"token_symbol"`
	ChainID      int64  `json:"chain_id"`

	Score    CompositeScore  `json:"score"`
	Strategy StrategyType    `json:"strategy"`
	Decision TradingDecision `json:"decision"`

	Quotes      []DEXPrice            `json:"quotes,omitempty"`
	Opportunity *ArbitrageOpportunity `json:"opportunity,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
