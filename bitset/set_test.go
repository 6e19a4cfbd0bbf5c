package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atlas-klv/klv/bitset"
)

func TestSet_Basic(t *testing.T) {
	s := bitset.NewSet(130) // spans more than two words
	s.Set(0)
	s.Set(64)
	s.Set(129)
	assert.True(t, s.Test(0))
	assert.True(t, s.Test(64))
	assert.True(t, s.Test(129))
	assert.False(t, s.Test(63))
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, []int{0, 64, 129}, s.Elements())
}

func TestSet_AndOrInPlace(t *testing.T) {
	a := bitset.NewSet(8)
	b := bitset.NewSet(8)
	a.Set(1)
	a.Set(2)
	b.Set(2)
	b.Set(3)

	c := a.Clone()
	c.AndInPlace(b)
	assert.Equal(t, []int{2}, c.Elements())

	d := a.Clone()
	d.OrInPlace(b)
	assert.Equal(t, []int{1, 2, 3}, d.Elements())
}

func TestSet_FillRange(t *testing.T) {
	s := bitset.NewSet(10)
	s.FillRange(4)
	assert.Equal(t, []int{0, 1, 2, 3}, s.Elements())
}

func TestSet_OutOfRangePanics(t *testing.T) {
	s := bitset.NewSet(4)
	assert.Panics(t, func() { s.Set(4) })
	assert.Panics(t, func() { s.Test(-1) })
}
