package block

import "errors"

// Sentinel errors for the block package. Callers branch with errors.Is;
// these are never wrapped with formatted text at the point of definition
// (matching builder/errors.go and core/types.go in the teacher).
var (
	// ErrEmptyBlock indicates a Graph with zero elements was built where
	// at least one (the identity, length 0) is required.
	ErrEmptyBlock = errors.New("block: block has no elements")

	// ErrIndexOutOfRange indicates a BlockIndex or Generator fell outside
	// the bounds configured for the Graph.
	ErrIndexOutOfRange = errors.New("block: index out of range")

	// ErrLengthOrder indicates length(x) > length(y) for some x < y,
	// violating the topological-sort invariant of spec.md §3.
	ErrLengthOrder = errors.New("block: elements are not sorted by length")

	// ErrCayleyUndefined indicates Cayley or InverseCayley was requested
	// for a (generator, element) pair whose descent status does not admit it.
	ErrCayleyUndefined = errors.New("block: cayley transform undefined for this pair")

	// ErrAlreadyBuilt indicates Build() was called again on a Builder that
	// has already built (mutators called after Build panic instead).
	ErrAlreadyBuilt = errors.New("block: builder already built")

	// ErrInconsistentStatus indicates a descent status is inconsistent with
	// the cross/Cayley data recorded for the same (generator, element) pair.
	ErrInconsistentStatus = errors.New("block: descent status inconsistent with cross/cayley data")
)
