// Package klpol implements the hash-consed polynomial store of spec.md
// §3/§4.4: an append-only, de-duplicated sequence of small-coefficient
// polynomials in one indeterminate q, indexed by a compact Index, with
// indices 0 and 1 pre-populated as the zero and one polynomials.
//
// Two storage strategies are offered behind the same Store type, selected
// with WithCompression: a flat per-polynomial coefficient slice (the
// default, easiest to reason about) and a pool-backed layout that packs
// every polynomial's coefficients into one shared growable pool plus a
// small (degree, valuation) header — the strategy spec.md §4.4 recommends
// when memory becomes the bottleneck, grounded on the matrix package's
// fixed-capacity, pool-backed Dense storage (matrix/dense.go).
//
// Errors:
//
//	ErrDegreeOverflow    - a polynomial's degree exceeds the configured hard cap.
//	ErrValuationOverflow - a polynomial's valuation exceeds the configured cap.
//	ErrStorageExhausted  - the store's configured capacity was exceeded.
//	ErrIndexOutOfRange   - Get was called with an Index >= the store's length.
package klpol
