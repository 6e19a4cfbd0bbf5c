package wgraph

import "github.com/atlas-klv/klv/block"

// Cells is the strong-component decomposition of a Graph into Kazhdan-
// Lusztig cells, together with the induced DAG of cells (spec.md §4.7's
// "cell decomposition").
type Cells struct {
	g     *Graph
	comp  []int // comp[x] is the cell index containing x
	cells [][]block.Index
	dag   [][]int // dag[i], ascending, distinct cell indices j != i reachable by one cross-cell edge
}

// tarjan holds the recursive strong-component search's state, one per
// Decompose call — grounded on dfs's White/Gray/Black visitor-struct
// idiom (dfs.topoSorter), generalised from three colors to the
// index/lowlink pair Tarjan's algorithm needs.
type tarjan struct {
	g       *Graph
	index   []int // -1 until visited
	lowlink []int
	onStack []bool
	stack   []block.Index
	counter int
	comp    []int
	ncomp   int
}

// Decompose computes the strong components of g via Tarjan's algorithm
// and the DAG they induce. Components are numbered in reverse
// topological order (cross-cell edges only run from a higher-numbered
// component to a lower-numbered one, so component 0 has no outgoing
// cross-cell edge), matching the order Tarjan's algorithm
// discovers them.
func Decompose(g *Graph) (*Cells, error) {
	if g == nil {
		return nil, ErrNilSource
	}

	t := &tarjan{
		g:       g,
		index:   make([]int, g.size),
		lowlink: make([]int, g.size),
		onStack: make([]bool, g.size),
		comp:    make([]int, g.size),
	}
	for i := range t.index {
		t.index[i] = -1
	}

	for x := 0; x < g.size; x++ {
		if t.index[x] == -1 {
			t.visit(block.Index(x))
		}
	}

	cells := make([][]block.Index, t.ncomp)
	for x := 0; x < g.size; x++ {
		cells[t.comp[x]] = append(cells[t.comp[x]], block.Index(x))
	}

	dagSet := make([]map[int]bool, t.ncomp)
	for i := range dagSet {
		dagSet[i] = make(map[int]bool)
	}
	for x := 0; x < g.size; x++ {
		cx := t.comp[x]
		for _, e := range g.adj[x] {
			cy := t.comp[e.to]
			if cy != cx {
				dagSet[cx][cy] = true
			}
		}
	}
	dag := make([][]int, t.ncomp)
	for i, set := range dagSet {
		for j := range set {
			dag[i] = append(dag[i], j)
		}
		sortInts(dag[i])
	}

	return &Cells{g: g, comp: t.comp, cells: cells, dag: dag}, nil
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// visit runs Tarjan's DFS from x, recording x's component once its
// strong component's root has been fully explored.
func (t *tarjan) visit(x block.Index) {
	t.index[x] = t.counter
	t.lowlink[x] = t.counter
	t.counter++
	t.stack = append(t.stack, x)
	t.onStack[x] = true

	for _, e := range t.g.adj[x] {
		w := e.to
		if t.index[w] == -1 {
			t.visit(w)
			if t.lowlink[w] < t.lowlink[x] {
				t.lowlink[x] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[x] {
				t.lowlink[x] = t.index[w]
			}
		}
	}

	if t.lowlink[x] != t.index[x] {
		return
	}
	// x is a component root: pop the stack down to and including x.
	id := t.ncomp
	t.ncomp++
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		t.comp[w] = id
		if w == x {
			break
		}
	}
}

// NumCells returns the number of strong components.
func (c *Cells) NumCells() int { return len(c.cells) }

// Cell returns the (ascending) elements of cell i.
func (c *Cells) Cell(i int) ([]block.Index, error) {
	if i < 0 || i >= len(c.cells) {
		return nil, ErrIndexOutOfRange
	}
	out := make([]block.Index, len(c.cells[i]))
	copy(out, c.cells[i])
	return out, nil
}

// CellOf returns the cell index containing x.
func (c *Cells) CellOf(x block.Index) (int, error) {
	if err := c.g.checkIndex(x); err != nil {
		return 0, err
	}
	return c.comp[x], nil
}

// DAGEdges returns, ascending, the distinct cell indices reachable from
// cell i by a single cross-cell W-graph edge — the induced DAG of
// spec.md §4.7.
func (c *Cells) DAGEdges(i int) ([]int, error) {
	if i < 0 || i >= len(c.cells) {
		return nil, ErrIndexOutOfRange
	}
	out := make([]int, len(c.dag[i]))
	copy(out, c.dag[i])
	return out, nil
}

// CellEdgeList returns the restriction of the W-graph to x's own cell:
// EdgeList(x) and CoeffList(x) filtered to targets in the same strong
// component as x.
func (c *Cells) CellEdgeList(x block.Index) ([]block.Index, []int32, error) {
	if err := c.g.checkIndex(x); err != nil {
		return nil, nil, err
	}
	cx := c.comp[x]
	var targets []block.Index
	var coeffs []int32
	for _, e := range c.g.adj[x] {
		if c.comp[e.to] == cx {
			targets = append(targets, e.to)
			coeffs = append(coeffs, e.coef)
		}
	}
	return targets, coeffs, nil
}
