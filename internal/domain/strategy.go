package domain

// StrategyType execution strategy chosen for a trade.
type StrategyType string

const (
	// StrategyTWAP time-weighted slicing for large orders in thin markets.
	StrategyTWAP StrategyType = "TWAP"
	// StrategyVWAP volume-weighted chunking for large orders in deep markets.
	StrategyVWAP StrategyType = "VWAP"
	// StrategyGrid oscillation capture in range-bound volatile markets.
	StrategyGrid StrategyType = "GRID"
	// StrategyDCA spread entries across a trending market.
	StrategyDCA StrategyType = "DCA"
	// StrategySpot immediate single-shot execution. Terminal default.
	StrategySpot StrategyType = "SPOT"
)

// String returns the string representation.
func (s StrategyType) String() string {
	return string(s)
}

// IsValid checks if the StrategyType value is valid.
func (s StrategyType) IsValid() bool {
	switch s {
	case StrategyTWAP, StrategyVWAP, StrategyGrid, StrategyDCA, StrategySpot:
		return true
	}
	return false
}
