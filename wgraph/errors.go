package wgraph

import "errors"

var (
	// ErrNilSource indicates Build was called with a nil support or
	// engine, or Decompose with a nil Graph.
	ErrNilSource = errors.New("wgraph: source is nil")

	// ErrIndexOutOfRange indicates a query index fell outside [0, Size()).
	ErrIndexOutOfRange = errors.New("wgraph: index out of range")
)
