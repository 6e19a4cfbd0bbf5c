package kl

import "errors"

var (
	// ErrNilSupport indicates New was called with a nil klsupport.Support.
	ErrNilSupport = errors.New("kl: support is nil")

	// ErrNilStore indicates New was called with a nil klpol.Store.
	ErrNilStore = errors.New("kl: store is nil")

	// ErrNotFilled indicates KLPol, Mu, PrimitiveRow, or MuRow was called
	// for a row that Fill has not yet written.
	ErrNotFilled = errors.New("kl: engine has not been filled")

	// ErrAlreadyFilled indicates Fill was called more than once.
	ErrAlreadyFilled = errors.New("kl: engine already filled")

	// ErrIndexOutOfRange indicates a query index fell outside [0, Size()).
	ErrIndexOutOfRange = errors.New("kl: index out of range")

	// ErrNegativeCoefficient is the fatal invariant violation of spec.md
	// §7: a computed polynomial has a negative coefficient after the
	// mu-correction pass. The fundamental KLV non-negativity conjecture is
	// made concrete at this rank, so this is never recovered from.
	ErrNegativeCoefficient = errors.New("kl: negative coefficient after mu-correction")
)
