package block

import "sync"

// Graph is a concrete, in-memory Block implementation. It is built
// incrementally via Builder and is immutable (safe for concurrent reads)
// once Build returns it — mirroring core.Graph's split-lock discipline,
// except that Graph has no public mutators: all construction happens
// through Builder so the length-sorted invariant can be checked once, at
// the end, rather than defended on every call.
type Graph struct {
	mu sync.RWMutex // guards nothing today but kept for future read/write symmetry with core.Graph

	size   int
	rank   int
	length []Length

	// cross[s][x] is the cross action of generator s at element x.
	cross [][]Index
	// descent[s][x] is the descent status of generator s at element x.
	descent [][]DescentStatus
	// cayley[s][x] is the Cayley transform image(s), defined only for
	// ImaginaryTypeI/ImaginaryTypeII statuses.
	cayley [][]CayleyPair
	// inverseCayley[s][x] is the Cayley preimage(s), defined only for
	// RealTypeI/RealTypeII statuses.
	inverseCayley [][]CayleyPair
}

var _ Block = (*Graph)(nil)

// Size returns N.
func (g *Graph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.size
}

// Rank returns r.
func (g *Graph) Rank() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rank
}

// Length returns the length of element x.
func (g *Graph) Length(x Index) Length {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.length[x]
}

// Cross returns cross(s, x).
func (g *Graph) Cross(s Generator, x Index) Index {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cross[s][x]
}

// Cayley returns the Cayley transform image(s) of (s, x).
func (g *Graph) Cayley(s Generator, x Index) CayleyPair {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cayley[s][x]
}

// InverseCayley returns the Cayley preimage(s) of (s, x).
func (g *Graph) InverseCayley(s Generator, x Index) CayleyPair {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inverseCayley[s][x]
}

// DescentValue returns the descent status of (s, x).
func (g *Graph) DescentValue(s Generator, x Index) DescentStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.descent[s][x]
}
