// Package block defines the read-only Block interface consumed by the KLV
// engine — the boundary described in spec.md §4.1 — together with the
// eight-valued DescentStatus classification of §3/§4.2 and a concrete,
// immutable Graph implementation (assembled through a Builder) used to build block fixtures in tests and
// by the CLI's "block" command.
//
// Block itself is intentionally thin: constructing root data, Weyl groups
// and KGB sets is out of scope (spec.md §1); Graph exists only so this
// module can exercise the KL engine without a full real-form/root-datum
// layer.
//
// Errors:
//
//	ErrEmptyBlock       - a Graph has zero elements where at least one is required.
//	ErrIndexOutOfRange  - a BlockIndex or Generator falls outside the configured bounds.
//	ErrLengthOrder      - an element would violate length(x) <= length(y) for x < y.
//	ErrCayleyUndefined  - Cayley was requested for a generator/element pair that is not non-compact imaginary.
//	ErrAlreadyBuilt     - Build() was called again on a Builder that has already built.
package block
