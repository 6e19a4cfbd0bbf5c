// Package klv is the root of the Kazhdan–Lusztig–Vogan polynomial
// engine: a small, dependency-light module for computing KL and
// twisted-KL (δ-fixed) polynomials over a block of representations,
// deriving mu-coefficients, and building the resulting W-graph and its
// Kazhdan-Lusztig cell decomposition.
//
// Packages:
//
//	block       - the block interface (size, rank, length, cross/Cayley) + a builder
//	bitset      - fixed-width descent/ascent set bitmaps
//	klsupport   - precomputed per-block state (length table, descent sets, rows)
//	klpol       - the deduplicating polynomial store
//	kl          - the untwisted KL engine
//	hkl         - the twisted (δ-fixed) KL engine
//	wgraph      - W-graph construction and strongly-connected-component cells
//	persist     - binary block/matrix/coefficient file formats
//	cmd/atlaskl - a thin line-oriented CLI over the above
//
// Every long-running entry point (kl.Engine.Fill, hkl.Engine.Fill)
// accepts a context.Context and honors cancellation between rows.
// Shared mutable state (klpol.Store) is guarded by a sync.RWMutex with
// a single-writer insert path. Errors are package-level sentinels
// (errors.New), wrapped with %w at call sites and distinguished by
// callers with errors.Is.
package klv
