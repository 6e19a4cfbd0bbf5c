// Package wgraph builds the W-graph of spec.md §4.7 from a filled KL
// engine's mu-tables and descent sets, and decomposes it into Kazhdan-
// Lusztig cells (the strong components of the W-graph) exposed as an
// induced DAG of cells.
//
// Errors:
//
//	ErrNilSource - a nil support or engine was supplied to Build, or a
//	               nil Graph to Decompose.
package wgraph
