package klpol

import "errors"

var (
	// ErrDegreeOverflow indicates a polynomial's degree exceeds the hard
	// cap configured for the store (spec.md §4.4's deg_limit, default 32).
	ErrDegreeOverflow = errors.New("klpol: polynomial degree exceeds cap")

	// ErrValuationOverflow indicates a polynomial's valuation exceeds the
	// soft cap configured for the store (spec.md §4.4's val_limit, default 8).
	ErrValuationOverflow = errors.New("klpol: polynomial valuation exceeds cap")

	// ErrStorageExhausted indicates the store's configured fixed capacity
	// was exceeded during Insert.
	ErrStorageExhausted = errors.New("klpol: storage capacity exhausted")

	// ErrIndexOutOfRange indicates Get was called with an Index that has
	// never been assigned.
	ErrIndexOutOfRange = errors.New("klpol: index out of range")
)
