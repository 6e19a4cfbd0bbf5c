package wgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/wgraph"
)

func TestDecompose_NilGraph(t *testing.T) {
	_, err := wgraph.Decompose(nil)
	assert.ErrorIs(t, err, wgraph.ErrNilSource)
}

func TestDecompose_A1Split(t *testing.T) {
	// spec.md §8 scenario 6: a rank-1 split real form has exactly two
	// cells of sizes 1 and 1 (discrete series and principal series).
	sup, e := newFilledEngine(t, buildA1Split())
	g, err := wgraph.Build(sup, e)
	require.NoError(t, err)

	cells, err := wgraph.Decompose(g)
	require.NoError(t, err)
	require.Equal(t, 2, cells.NumCells())

	for i := 0; i < 2; i++ {
		members, err := cells.Cell(i)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	}

	c0, err := cells.CellOf(0)
	require.NoError(t, err)
	c1, err := cells.CellOf(1)
	require.NoError(t, err)
	assert.NotEqual(t, c0, c1)

	// element 1 has the mu(0,1)=1 edge down to 0, so 1's cell precedes
	// 0's cell in the induced DAG.
	dagFrom1, err := cells.DAGEdges(c1)
	require.NoError(t, err)
	assert.Equal(t, []int{c0}, dagFrom1)

	dagFrom0, err := cells.DAGEdges(c0)
	require.NoError(t, err)
	assert.Empty(t, dagFrom0)
}

func TestDecompose_A2Split_Invariants(t *testing.T) {
	sup, e := newFilledEngine(t, buildA2Split())
	g, err := wgraph.Build(sup, e)
	require.NoError(t, err)

	cells, err := wgraph.Decompose(g)
	require.NoError(t, err)
	require.True(t, cells.NumCells() >= 1)
	require.True(t, cells.NumCells() <= g.Size())

	seen := make(map[block.Index]bool)
	for i := 0; i < cells.NumCells(); i++ {
		members, err := cells.Cell(i)
		require.NoError(t, err)
		for _, x := range members {
			assert.False(t, seen[x], "element %d assigned to more than one cell", x)
			seen[x] = true
			cx, err := cells.CellOf(x)
			require.NoError(t, err)
			assert.Equal(t, i, cx)
		}
		for _, j := range mustDAGEdges(t, cells, i) {
			assert.NotEqual(t, i, j, "induced DAG has no self-loops")
		}
	}
	assert.Len(t, seen, g.Size())
}

func mustDAGEdges(t *testing.T, cells *wgraph.Cells, i int) []int {
	t.Helper()
	edges, err := cells.DAGEdges(i)
	require.NoError(t, err)
	return edges
}
