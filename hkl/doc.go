// Package hkl implements the twisted ("h", for the outer involution delta)
// Kazhdan-Lusztig-Vogan engine of spec.md §4.6: row-by-row computation of
// the signed polynomials P_{x,y} on a delta-fixed sub-block, their two
// parity-split mu-tables, and hash-consed storage in a klpol.Store shared
// with no other engine.
//
// hkl.Block deliberately only requires Size/Rank/Length/Cross — the
// delta-twisted cross action already encodes everything the row-fill
// algorithm needs (no separate descent-status enum, no Cayley transform),
// unlike the richer block.Block the untwisted kl engine consumes.
package hkl
