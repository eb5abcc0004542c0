package domain

import "github.com/pkg/errors"

// Error taxonomy for the decision engine. Analyzers and the router recover
// DataUnavailable and Timeout locally and surface them through quality/success
// fields; InvalidInput indicates a caller bug and fails loudly at entry points.
var (
	// ErrDataUnavailable upstream had nothing to report.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrTimeout a branch exceeded its deadline.
	ErrTimeout = errors.New("branch timed out")
	// ErrInvalidInput malformed address or non-positive trade size.
	ErrInvalidInput = errors.New("invalid input")
	// ErrComputation unexpected arithmetic failure inside guarded numeric code.
	ErrComputation = errors.New("computation error")
	// ErrRoutingFailed no venue produced a usable quote.
	ErrRoutingFailed = errors.New("routing failed")
)
