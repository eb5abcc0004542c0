package domain

// TrendDirection direction of the recent price trend.
type TrendDirection string

const (
	TrendBullish TrendDirection = "bullish"
	TrendBearish TrendDirection = "bearish"
	TrendNeutral TrendDirection = "neutral"
)

// String returns the string representation.
func (t TrendDirection) String() string {
	return string(t)
}

// IsValid checks if the TrendDirection value is valid.
func (t TrendDirection) IsValid() bool {
	return t == TrendBullish || t == TrendBearish || t == TrendNeutral
}
