package set_test

import (
	"testing"

	"github.com/on-the-ground/ternary_index/shared/set"
	"github.com/stretchr/testify/assert"
)

func TestSet_Difference(t *testing.T) {
	a := set.Of(1, 2, 3, 4)
	b := set.Of(3, 4, 5)

	assert.Equal(t, []int{1, 2}, set.Sorted(a.Difference(b)))
	assert.Equal(t, []int{5}, set.Sorted(b.Difference(a)))

	same := a.Difference(a.Clone())
	assert.NotNil(t, same)
	assert.Equal(t, 0, same.Len())
}

func TestSet_AddRemove(t *testing.T) {
	s := set.Of[string]()
	s.Add("x")
	s.Add("x")

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Remove("x"))
	assert.False(t, s.Remove("x"))
	assert.False(t, s.Has("x"))
}

func TestSet_Equal(t *testing.T) {
	assert.True(t, set.Of(1, 2).Equal(set.Of(2, 1)))
	assert.False(t, set.Of(1, 2).Equal(set.Of(1)))
	assert.False(t, set.Of(1, 2).Equal(set.Of(1, 3)))
	assert.True(t, set.Of[int]().Equal(nil))
}

func TestCounted_TracksMultiplicity(t *testing.T) {
	c := set.Counted[int]{}

	assert.True(t, c.Add(7))
	assert.False(t, c.Add(7))
	assert.Equal(t, 2, c.Count(7))

	assert.False(t, c.Remove(7))
	assert.True(t, c.Has(7))
	assert.True(t, c.Remove(7))
	assert.False(t, c.Has(7))
	assert.False(t, c.Remove(7), "absent member is a no-op")
	assert.Equal(t, 0, c.Len())
}

func TestCounted_DifferenceIgnoresCounts(t *testing.T) {
	a := set.Counted[int]{1: 3, 2: 1}
	b := set.Counted[int]{2: 5, 9: 1}

	assert.Equal(t, []int{1}, set.Sorted(a.Difference(b)))
	assert.Equal(t, []int{9}, set.Sorted(b.Difference(a)))
	assert.True(t, a.Members().Equal(set.Of(1, 2)))
}

func TestCounted_CloneIsIndependent(t *testing.T) {
	a := set.Counted[int]{1: 2}
	b := a.Clone()
	b.Remove(1)
	b.Remove(1)

	assert.Equal(t, 2, a.Count(1))
	assert.False(t, b.Has(1))
}
