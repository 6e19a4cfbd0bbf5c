// Package bitset implements two fixed-word-backed bit sets used throughout
// the KLV engine: Small, a single-word set over generators (the semisimple
// rank is never large enough to need more than one machine word), and Set,
// a growable multi-word set over block indices.
//
// Both types expose value semantics for the small set (cheap to copy, pass
// by value) and pointer semantics for the large set (too big to copy on
// every call). Population counts and bit scans use math/bits rather than a
// manual loop, the same technique the retrieval pack's
// other_examples/gaissmai-bart__bitset256.go reference file uses for its
// fixed-size set.
package bitset
