package interfaces

import "errors"

// Error taxonomy for resolution and broadcast flows. Transport and parse
// failures are absorbed at the lowest layer that can still produce a
// meaningful not-found outcome; only these sentinels cross layer boundaries.
var (
	// ErrInvalidSymbol is returned for malformed symbol input before any
	// network call is made.
	ErrInvalidSymbol = errors.New("invalid ticker symbol")

	// ErrSymbolNotFound is returned when a symbol is absent from either
	// source table, or a source was unavailable. The two cases are
	// deliberately indistinguishable to callers.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrComputation is returned when a derived metric has a degenerate
	// divisor (a zero 52-week bound). Infinite or NaN values are never
	// propagated.
	ErrComputation = errors.New("derived metric computation failed")

	// ErrTableNotFound is returned when the expected data table is missing
	// from a fetched document.
	ErrTableNotFound = errors.New("data table not found in document")

	// ErrSnapshotUnavailable is returned when the index summary could not
	// be fetched or parsed.
	ErrSnapshotUnavailable = errors.New("index snapshot unavailable")
)
