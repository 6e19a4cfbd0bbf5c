package hkl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/hkl"
)

// testBlock is a hand-built hkl.Block: the package's narrower interface
// (Size/Rank/Length/Cross only) means tests need not go through
// block.Builder, whose invariants assume an untwisted block's Cayley/
// descent-status structure rather than a delta-twisted cross action whose
// length can drop by one or two.
type testBlock struct {
	length []block.Length
	cross  [][]block.Index // cross[generator][x]
}

func (b *testBlock) Size() int                                    { return len(b.length) }
func (b *testBlock) Rank() int                                    { return len(b.cross) }
func (b *testBlock) Length(x block.Index) block.Length            { return b.length[x] }
func (b *testBlock) Cross(s block.Generator, x block.Index) block.Index { return b.cross[s][x] }

// buildTypeIIFixture is the 3-element, rank-1 fixture traced in DESIGN.md's
// hkl entry's "Hand-trace" paragraph: element 2 has a type II descent
// (length drop 2) to element 0 via generator 0, and element 1 is its type
// I primitive companion.
func buildTypeIIFixture() *testBlock {
	return &testBlock{
		length: []block.Length{0, 1, 2},
		cross: [][]block.Index{
			{2, 0, 0}, // generator 0: cross(0,0)=2, cross(0,1)=0, cross(0,2)=0
		},
	}
}

func buildSingletonBlock() *testBlock {
	return &testBlock{length: []block.Length{0}, cross: nil}
}

func TestSupport_NilBlock(t *testing.T) {
	_, err := hkl.New(nil)
	assert.ErrorIs(t, err, hkl.ErrNilBlock)
}

func TestSupport_TypeIIFixture(t *testing.T) {
	s, err := hkl.New(buildTypeIIFixture())
	require.NoError(t, err)
	require.NoError(t, s.Fill())

	require.ErrorIs(t, s.Fill(), hkl.ErrAlreadyFilled)

	d2, err := s.DescentSet(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, d2.Generators())

	row, err := s.PrimitiveRow(2)
	require.NoError(t, err)
	assert.Equal(t, []block.Index{1, 2}, row)

	px, err := s.Primitivize(0, d2)
	require.NoError(t, err)
	assert.Equal(t, block.Index(2), px, "0 ascends via generator 0 all the way up to 2")
}
