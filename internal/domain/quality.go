// Package domain defines core data structures used throughout the decision engine.
package domain

// DataQuality self-reported confidence tag attached to every analyzer result.
// It distinguishes "no signal" from "computed but weak" from "failed".
type DataQuality string

const (
	QualityExcellent DataQuality = "EXCELLENT"
	QualityGood      DataQuality = "GOOD"
	QualityFair      DataQuality = "FAIR"
	QualityPoor      DataQuality = "POOR"
	// QualityNoData upstream had nothing to report. Expected, not exceptional.
	QualityNoData DataQuality = "NO_DATA"
	// QualityNoPool liquidity-specific variant of NO_DATA: no pool found for the token.
	QualityNoPool DataQuality = "NO_POOL"
	QualityError  DataQuality = "ERROR"
)

// String returns the string representation.
func (q DataQuality) String() string {
	return string(q)
}

// IsValid checks if the DataQuality value is valid.
func (q DataQuality) IsValid() bool {
	switch q {
	case QualityExcellent, QualityGood, QualityFair, QualityPoor,
		QualityNoData, QualityNoPool, QualityError:
		return true
	}
	return false
}

// Rank orders qualities from worst (0) to best. NO_DATA and NO_POOL rank
// above ERROR but below any computed verdict.
func (q DataQuality) Rank() int {
	switch q {
	case QualityError:
		return 0
	case QualityNoData, QualityNoPool:
		return 1
	case QualityPoor:
		return 2
	case QualityFair:
		return 3
	case QualityGood:
		return 4
	case QualityExcellent:
		return 5
	default:
		return 0
	}
}

// AtLeast reports whether q is as good as or better than other.
func (q DataQuality) AtLeast(other DataQuality) bool {
	return q.Rank() >= other.Rank()
}

// Usable reports whether the attached value may be trusted at all.
// Callers must branch on this before reading analyzer values.
func (q DataQuality) Usable() bool {
	return q.Rank() >= QualityPoor.Rank()
}
