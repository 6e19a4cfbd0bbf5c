package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atlas-klv/klv/bitset"
)

func TestSmall_SetClearTest(t *testing.T) {
	var s bitset.Small
	s = s.Set(0).Set(3).Set(5)
	assert.True(t, s.Test(0))
	assert.True(t, s.Test(3))
	assert.True(t, s.Test(5))
	assert.False(t, s.Test(1))
	assert.Equal(t, 3, s.Count())

	s = s.Clear(3)
	assert.False(t, s.Test(3))
	assert.Equal(t, 2, s.Count())
}

func TestSmall_AndOrSubset(t *testing.T) {
	var a, b bitset.Small
	a = a.Set(0).Set(1).Set(2)
	b = b.Set(1).Set(2).Set(3)

	assert.Equal(t, []int{1, 2}, a.And(b).Generators())
	assert.Equal(t, []int{0, 1, 2, 3}, a.Or(b).Generators())
	assert.True(t, a.And(b).SubsetOf(a))
	assert.False(t, a.SubsetOf(b))
}

func TestSmall_IsEmpty(t *testing.T) {
	var s bitset.Small
	assert.True(t, s.IsEmpty())
	s = s.Set(10)
	assert.False(t, s.IsEmpty())
}
