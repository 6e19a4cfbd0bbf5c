package hkl

import "errors"

var (
	// ErrNilBlock indicates New was called with a nil hkl.Block.
	ErrNilBlock = errors.New("hkl: block is nil")

	// ErrNotFilled indicates an accessor was called before Fill completed.
	ErrNotFilled = errors.New("hkl: support has not been filled")

	// ErrAlreadyFilled indicates Fill was called more than once.
	ErrAlreadyFilled = errors.New("hkl: already filled")

	// ErrNilSupport indicates NewEngine was called with a nil Support.
	ErrNilSupport = errors.New("hkl: support is nil")

	// ErrNilStore indicates NewEngine was called with a nil klpol.Store.
	ErrNilStore = errors.New("hkl: store is nil")

	// ErrIndexOutOfRange indicates a query index fell outside [0, Size()).
	ErrIndexOutOfRange = errors.New("hkl: index out of range")
)
