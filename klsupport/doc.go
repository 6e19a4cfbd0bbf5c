// Package klsupport precomputes, once per block, the per-element descent
// and good-ascent bitsets, the per-generator down-sets, the length-less
// prefix table, and the extremal/primitive row constructions of spec.md
// §4.3. It borrows the block.Block for its whole lifetime and is filled
// exactly once before any kl.Engine or hkl.Engine consumes it — the same
// "precompute, then fill once" discipline dfs.DFS applies to its
// DFSOptions/DFSResult pair, just ahead of the KL row loop instead of a
// single traversal.
//
// Errors:
//
//	ErrNilBlock   - a nil block.Block was supplied to New.
//	ErrNotFilled  - a row/bitset accessor was called before Fill.
//	ErrAlreadyFilled - Fill was called more than once.
package klsupport
