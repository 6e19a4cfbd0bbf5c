package persist

import "errors"

var (
	// ErrBadMagic indicates a matrix file's leading bytes were not
	// recognisable as either format. ReadMatrixFile does not return it:
	// every leading word other than the magic code is taken as a legacy
	// row count.
	ErrBadMagic = errors.New("persist: unrecognised matrix file magic")

	// ErrTruncated indicates a file ended before the expected data was read.
	ErrTruncated = errors.New("persist: truncated file")

	// ErrIndexOutOfRange indicates a query index fell outside the
	// decoded file's bounds.
	ErrIndexOutOfRange = errors.New("persist: index out of range")

	// ErrNilArgument indicates a required argument was nil.
	ErrNilArgument = errors.New("persist: nil argument")
)
