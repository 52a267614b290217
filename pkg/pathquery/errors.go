package pathquery

import "errors"

// Sentinel errors returned by Decompose and FromSegments. Callers match
// with errors.Is; the wrapped message carries the offending tokens.
var (
	// ErrMissingToken reports a path too short to contain the mandatory
	// domain/varname/freq segments, or one whose fixed literals are wrong.
	ErrMissingToken = errors.New("path is missing required tokens")

	// ErrInvalidFrequency reports a frequency outside d/w/m/q/a.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrAmbiguousSuffix reports more than one token matching a single
	// vocabulary (finaliser, rate or aggregator).
	ErrAmbiguousSuffix = errors.New("ambiguous suffix")

	// ErrConflictingSuffix reports a path naming both a rate and an
	// aggregation suffix.
	ErrConflictingSuffix = errors.New("rate and aggregation are mutually exclusive")

	// ErrTooManyYears reports more than two bare integer tokens.
	ErrTooManyYears = errors.New("too many year tokens")

	// ErrTrailingTokens reports inner-path tokens left unclaimed after
	// the unit slot is taken.
	ErrTrailingTokens = errors.New("unrecognized trailing tokens")
)
