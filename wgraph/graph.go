package wgraph

import (
	"sort"

	"github.com/atlas-klv/klv/bitset"
	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/kl"
	"github.com/atlas-klv/klv/klsupport"
)

// edge is one directed, coefficient-labelled arc of the W-graph.
type edge struct {
	to   block.Index
	coef int32
}

// Graph is the W-graph of spec.md §4.7: a directed, mu-coefficient
// labelled graph on the elements of a filled block, together with each
// element's descent set. It is immutable once built.
type Graph struct {
	size    int
	adj     [][]edge
	descent []bitset.Small
}

// MuEdge is one mu-row entry, decoupled from kl.MuDatum so that
// BuildGeneric can be driven by either a live kl.Engine or a
// persist.MatrixFile reconstruction (spec.md §8's round-trip law: "the
// same edge multiset" from in-memory data and from disk).
type MuEdge struct {
	X    block.Index
	Coef int32
}

// Build derives the W-graph from a filled support and a filled untwisted
// KL engine over it — the live-engine instantiation of BuildGeneric.
func Build(support *klsupport.Support, engine *kl.Engine) (*Graph, error) {
	if support == nil || engine == nil {
		return nil, ErrNilSource
	}
	return BuildGeneric(support.Size(), support.DescentSet, func(y block.Index) ([]MuEdge, error) {
		murow, err := engine.MuRow(y)
		if err != nil {
			return nil, err
		}
		out := make([]MuEdge, len(murow))
		for i, m := range murow {
			out[i] = MuEdge{X: m.X, Coef: m.Coef}
		}
		return out, nil
	})
}

// BuildGeneric implements spec.md §4.7's "standard W-graph rule" against
// any source of descent sets and mu-rows: for every y and every (x, mu)
// in muRowOf(y), an edge x -> y is added when descent(x) is not a
// subset of descent(y), and an edge y -> x when descent(y) is not a
// subset of descent(x). Both, one, or (in practice never, since
// mu(x,y) != 0 always breaks at least one direction) neither edge may
// result from a single mu-row entry.
func BuildGeneric(size int, descentOf func(block.Index) (bitset.Small, error), muRowOf func(block.Index) ([]MuEdge, error)) (*Graph, error) {
	g := &Graph{
		adj:     make([][]edge, size),
		descent: make([]bitset.Small, size),
	}

	for y := 0; y < size; y++ {
		d, err := descentOf(block.Index(y))
		if err != nil {
			return nil, err
		}
		g.descent[y] = d
	}

	for y := 0; y < size; y++ {
		murow, err := muRowOf(block.Index(y))
		if err != nil {
			return nil, err
		}
		dy := g.descent[y]
		for _, m := range murow {
			dx := g.descent[m.X]
			if !dx.SubsetOf(dy) {
				g.addEdge(m.X, block.Index(y), m.Coef)
			}
			if !dy.SubsetOf(dx) {
				g.addEdge(block.Index(y), m.X, m.Coef)
			}
		}
	}

	for x := 0; x < size; x++ {
		sort.Slice(g.adj[x], func(i, j int) bool { return g.adj[x][i].to < g.adj[x][j].to })
	}
	g.size = size
	return g, nil
}

func (g *Graph) addEdge(from, to block.Index, coef int32) {
	g.adj[from] = append(g.adj[from], edge{to: to, coef: coef})
}

// Size returns the number of vertices.
func (g *Graph) Size() int { return g.size }

func (g *Graph) checkIndex(x block.Index) error {
	if int(x) < 0 || int(x) >= g.size {
		return ErrIndexOutOfRange
	}
	return nil
}

// EdgeList returns, ascending, the targets of every edge out of x.
func (g *Graph) EdgeList(x block.Index) ([]block.Index, error) {
	if err := g.checkIndex(x); err != nil {
		return nil, err
	}
	out := make([]block.Index, len(g.adj[x]))
	for i, e := range g.adj[x] {
		out[i] = e.to
	}
	return out, nil
}

// CoeffList returns the mu-coefficient labelling each edge out of x, in
// the same order as EdgeList(x).
func (g *Graph) CoeffList(x block.Index) ([]int32, error) {
	if err := g.checkIndex(x); err != nil {
		return nil, err
	}
	out := make([]int32, len(g.adj[x]))
	for i, e := range g.adj[x] {
		out[i] = e.coef
	}
	return out, nil
}

// Descent returns the descent set of x.
func (g *Graph) Descent(x block.Index) (bitset.Small, error) {
	if err := g.checkIndex(x); err != nil {
		return 0, err
	}
	return g.descent[x], nil
}
