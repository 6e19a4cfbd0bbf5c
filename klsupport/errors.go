package klsupport

import "errors"

var (
	// ErrNilBlock indicates New was called with a nil block.Block.
	ErrNilBlock = errors.New("klsupport: block is nil")

	// ErrNotFilled indicates an accessor was called before Fill completed.
	ErrNotFilled = errors.New("klsupport: support has not been filled")

	// ErrAlreadyFilled indicates Fill was called more than once on the
	// same Support.
	ErrAlreadyFilled = errors.New("klsupport: support already filled")
)
