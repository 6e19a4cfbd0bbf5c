package persist_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/kl"
	"github.com/atlas-klv/klv/klpol"
	"github.com/atlas-klv/klv/klsupport"
	"github.com/atlas-klv/klv/persist"
)

// buildA2Split duplicates block_test.buildA2Split: the 6-element split
// real form of SL(3,R) isomorphic to the A2 Weyl group.
func buildA2Split() *block.Graph {
	b := block.NewBuilder(2)
	e := b.AddElement(0)
	s0 := b.AddElement(1)
	s1 := b.AddElement(1)
	s0s1 := b.AddElement(2)
	s1s0 := b.AddElement(2)
	w0 := b.AddElement(3)

	set := func(s block.Generator, lo, hi block.Index) {
		b.SetDescent(s, lo, block.ImaginaryTypeI)
		b.SetCayley(s, lo, hi, block.Undef)
		b.SetDescent(s, hi, block.RealTypeI)
		b.SetCross(s, hi, lo)
		b.SetInverseCayley(s, hi, lo, block.Undef)
	}

	set(0, e, s0)
	set(1, e, s1)
	set(1, s0, s0s1)
	set(0, s1, s1s0)
	set(0, s0s1, w0)
	set(1, s1s0, w0)

	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

// buildA1Split duplicates block_test.buildA1Split: spec.md §8 scenario 2.
func buildA1Split() *block.Graph {
	b := block.NewBuilder(1)
	x0 := b.AddElement(0)
	x1 := b.AddElement(1)

	b.SetDescent(0, x0, block.ImaginaryTypeI)
	b.SetCayley(0, x0, x1, block.Undef)

	b.SetDescent(0, x1, block.RealTypeI)
	b.SetCross(0, x1, x0)
	b.SetInverseCayley(0, x1, x0, block.Undef)

	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

// TestMatrixFile_MuRow_A1Split checks that the mu-row of y = 1 rebuilt
// from the persisted block and matrix files of the A1 split block matches
// the live engine's mu(0,1) = 1. That entry is not in the primitive row
// of y = 1 (which is [1]); the engine derives it in its cross-action pass.
func TestMatrixFile_MuRow_A1Split(t *testing.T) {
	g := buildA1Split()
	sup, err := klsupport.New(g)
	require.NoError(t, err)
	require.NoError(t, sup.Fill())
	store := klpol.NewStore()
	e, err := kl.New(sup, store)
	require.NoError(t, err)
	require.NoError(t, e.Fill(context.Background()))

	bf, err := persist.NewBlockFile(g, sup)
	require.NoError(t, err)

	prow := make([][]block.Index, g.Size())
	krow := make([][]klpol.Index, g.Size())
	for y := 0; y < g.Size(); y++ {
		p, err := e.PrimitiveRow(block.Index(y))
		require.NoError(t, err)
		prow[y] = p
		k := make([]klpol.Index, len(p))
		for i, x := range p {
			poly, err := e.KLPol(x, block.Index(y))
			require.NoError(t, err)
			idx, err := store.Insert(poly)
			require.NoError(t, err)
			k[i] = idx
		}
		krow[y] = k
	}
	mf := &persist.MatrixFile{Prow: prow, Krow: krow}

	got, err := mf.MuRow(bf, store, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, block.Index(0), got[0].X)
	assert.Equal(t, int32(1), got[0].Coef)

	want, err := e.Mu(0, 1)
	require.NoError(t, err)
	assert.Equal(t, want, got[0].Coef)
}

// TestRoundTrip_A2Split exercises spec.md §8 scenario 4: fill the A2
// block, serialise all three files, reload into fresh structures, and
// assert klPol(x,y) agrees for every pair.
func TestRoundTrip_A2Split(t *testing.T) {
	g := buildA2Split()
	sup, err := klsupport.New(g)
	require.NoError(t, err)
	require.NoError(t, sup.Fill())
	store := klpol.NewStore()
	e, err := kl.New(sup, store)
	require.NoError(t, err)
	require.NoError(t, e.Fill(context.Background()))

	bf, err := persist.NewBlockFile(g, sup)
	require.NoError(t, err)
	var blockBuf bytes.Buffer
	require.NoError(t, persist.WriteBlockFile(&blockBuf, bf))

	prow := make([][]block.Index, g.Size())
	krow := make([][]klpol.Index, g.Size())
	for y := 0; y < g.Size(); y++ {
		p, err := e.PrimitiveRow(block.Index(y))
		require.NoError(t, err)
		prow[y] = p
		k := make([]klpol.Index, len(p))
		for i, x := range p {
			poly, err := e.KLPol(x, block.Index(y))
			require.NoError(t, err)
			idx, err := store.Insert(poly)
			require.NoError(t, err)
			k[i] = idx
		}
		krow[y] = k
	}
	var matrixBuf bytes.Buffer
	require.NoError(t, persist.WriteMatrixFile(&matrixBuf, prow, krow))

	var coeffBuf bytes.Buffer
	require.NoError(t, persist.WriteCoeffFile(&coeffBuf, store))

	bf2, err := persist.ReadBlockFile(&blockBuf)
	require.NoError(t, err)
	mf2, err := persist.ReadMatrixFile(&matrixBuf)
	require.NoError(t, err)
	store2, err := persist.ReadCoeffFile(&coeffBuf)
	require.NoError(t, err)

	assert.Equal(t, g.Size(), bf2.Size)
	assert.Equal(t, g.Rank(), bf2.Rank)

	for y := 0; y < g.Size(); y++ {
		for x := 0; x <= y; x++ {
			want, err := e.KLPol(block.Index(x), block.Index(y))
			require.NoError(t, err)
			got, err := mf2.KLPol(bf2, store2, block.Index(x), block.Index(y))
			require.NoError(t, err)
			assert.Equal(t, want, got, "klPol(%d,%d)", x, y)
		}
	}
}

func TestBlockFile_NilArgs(t *testing.T) {
	_, err := persist.NewBlockFile(nil, nil)
	assert.ErrorIs(t, err, persist.ErrNilArgument)
}

func TestMatrixFile_RoundTrip(t *testing.T) {
	prow := [][]block.Index{{0}, {0, 1}}
	krow := [][]klpol.Index{{klpol.OneIndex}, {klpol.ZeroIndex, klpol.OneIndex}}

	var buf bytes.Buffer
	require.NoError(t, persist.WriteMatrixFile(&buf, prow, krow))

	mf, err := persist.ReadMatrixFile(&buf)
	require.NoError(t, err)
	assert.Equal(t, prow, mf.Prow)
	assert.Equal(t, krow, mf.Krow)
}
