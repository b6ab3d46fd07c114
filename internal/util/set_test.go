package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Set_addAndHas(t *testing.T) {
	s := NewSet[int]()
	assert.False(t, s.Has(1))
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(1), "adding an existing element should report no growth")
	assert.True(t, s.Has(1))
	assert.Equal(t, 1, s.Len())
}

func Test_Set_addAllReportsGrowth(t *testing.T) {
	a := NewSet(1, 2)
	b := NewSet(2, 3)
	assert.True(t, a.AddAll(b))
	assert.Equal(t, 3, a.Len())
	assert.False(t, a.AddAll(b), "re-adding the same elements should report no growth")
}

func Test_Set_equal(t *testing.T) {
	a := NewSet(1, 2, 3)
	b := NewSet(3, 2, 1)
	c := NewSet(1, 2)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
