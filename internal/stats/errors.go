package stats

import "errors"

// ErrInvariantViolation is returned when a caller supplies temporally
// inconsistent data: a stop time before the start time, or a negative
// moving time.
var ErrInvariantViolation = errors.New("invariant violation")
