package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TradingDecision proposed trade handed to the strategy selector. The engine
// reads confidence and position size, it never mutates them.
type TradingDecision struct {
	OverallConfidence float64         `json:"overall_confidence"`
	PositionSizeUSD   decimal.Decimal `json:"position_size_usd"`
}

// Validate checks decision fields. A failure here indicates a caller bug and
// is surfaced immediately as ErrInvalidInput.
func (d TradingDecision) Validate() error {
	if d.OverallConfidence < 0 || d.OverallConfidence > 100 {
		return errors.Wrapf(ErrInvalidInput, "confidence %.2f out of [0,100]", d.OverallConfidence)
	}
	if d.PositionSizeUSD.LessThanOrEqual(decimal.Zero) {
		return errors.Wrapf(ErrInvalidInput, "position size %s must be positive", d.PositionSizeUSD.String())
	}
	return nil
}
