package block_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-klv/klv/block"
)

func TestBuilder_A1Split(t *testing.T) {
	g := buildA1Split()
	assert.Equal(t, 2, g.Size())
	assert.Equal(t, 1, g.Rank())
	assert.Equal(t, block.Length(0), g.Length(0))
	assert.Equal(t, block.Length(1), g.Length(1))
	assert.Equal(t, block.ImaginaryTypeI, g.DescentValue(0, 0))
	assert.Equal(t, block.RealTypeI, g.DescentValue(0, 1))
	assert.Equal(t, block.Index(0), g.Cross(0, 1))
	assert.True(t, g.DescentValue(0, 1).IsDescent())
	assert.True(t, g.DescentValue(0, 1).IsDirectRecursion())
}

func TestBuilder_EmptyBlockRejected(t *testing.T) {
	b := block.NewBuilder(1)
	_, err := b.Build()
	assert.ErrorIs(t, err, block.ErrEmptyBlock)
}

func TestBuilder_LengthOrderRejected(t *testing.T) {
	b := block.NewBuilder(0)
	b.AddElement(1)
	b.AddElement(0) // violates ascending length
	_, err := b.Build()
	assert.ErrorIs(t, err, block.ErrLengthOrder)
}

func TestBuilder_InconsistentImaginaryTypeIRejected(t *testing.T) {
	b := block.NewBuilder(1)
	x0 := b.AddElement(0)
	b.AddElement(1)
	b.SetDescent(0, x0, block.ImaginaryTypeI)
	// Cayley left undefined: inconsistent.
	_, err := b.Build()
	assert.ErrorIs(t, err, block.ErrInconsistentStatus)
}

func TestBuilder_DoubleBuildRejected(t *testing.T) {
	b := block.NewBuilder(1)
	b.AddElement(0)
	_, err := b.Build()
	require.NoError(t, err)
	_, err = b.Build()
	assert.True(t, errors.Is(err, block.ErrAlreadyBuilt))
}

func TestDescentStatus_Predicates(t *testing.T) {
	assert.True(t, block.ComplexDescent.IsDescent())
	assert.True(t, block.ComplexDescent.IsDirectRecursion())
	assert.True(t, block.RealTypeI.IsDescent())
	assert.True(t, block.RealTypeI.IsDirectRecursion())
	assert.True(t, block.RealTypeII.IsDescent())
	assert.False(t, block.RealTypeII.IsDirectRecursion())
	assert.True(t, block.ImaginaryCompact.IsDescent())
	assert.False(t, block.ImaginaryCompact.IsDirectRecursion())
	assert.False(t, block.ComplexAscent.IsDescent())
	assert.True(t, block.ComplexAscent.IsGoodAscent())
	assert.True(t, block.ImaginaryTypeI.IsGoodAscent())
	assert.False(t, block.ImaginaryTypeII.IsGoodAscent())
	assert.Equal(t, "RealTypeI", block.RealTypeI.String())
}
