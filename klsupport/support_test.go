package klsupport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/klsupport"
)

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

func TestSupport_NilBlock(t *testing.T) {
	_, err := klsupport.New(nil)
	assert.ErrorIs(t, err, klsupport.ErrNilBlock)
}

func TestSupport_NotFilledBeforeFill(t *testing.T) {
	s, err := klsupport.New(buildA1Split())
	require.NoError(t, err)
	_, err = s.DescentSet(0)
	assert.ErrorIs(t, err, klsupport.ErrNotFilled)
}

func TestSupport_A1Split(t *testing.T) {
	g := buildA1Split()
	s, err := klsupport.New(g)
	require.NoError(t, err)
	require.NoError(t, s.Fill())

	err = s.Fill()
	assert.ErrorIs(t, err, klsupport.ErrAlreadyFilled)

	d0, err := s.DescentSet(0)
	require.NoError(t, err)
	assert.True(t, d0.IsEmpty())

	d1, err := s.DescentSet(1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, d1.Generators())

	ll0, err := s.LengthLess(0)
	require.NoError(t, err)
	assert.Equal(t, block.Index(0), ll0)

	ll1, err := s.LengthLess(1)
	require.NoError(t, err)
	assert.Equal(t, block.Index(1), ll1)

	row, err := s.PrimitiveRow(1)
	require.NoError(t, err)
	assert.Equal(t, []block.Index{1}, row, "0 is an ImaginaryTypeI ascent at generator 0, neither a descent nor ImaginaryTypeII, so it is not primitive for y=1")

	erow, err := s.ExtremalRow(1)
	require.NoError(t, err)
	assert.Equal(t, []block.Index{1}, erow, "0 has no descents so it is not extremal for y=1")
}

func TestSupport_Primitivize(t *testing.T) {
	g := buildA1Split()
	s, err := klsupport.New(g)
	require.NoError(t, err)
	require.NoError(t, s.Fill())

	d1, err := s.DescentSet(1)
	require.NoError(t, err)

	// x=0 has a good ascent at generator 0 (ImaginaryTypeI), so
	// primitivising against descent(1) should move it to 1.
	px, err := s.Primitivize(0, d1)
	require.NoError(t, err)
	assert.Equal(t, block.Index(1), px)

	// Fixed point: primitivising the result again changes nothing.
	px2, err := s.Primitivize(px, d1)
	require.NoError(t, err)
	assert.Equal(t, px, px2)
}
