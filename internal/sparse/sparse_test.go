package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseSetBasic(t *testing.T) {
	s := NewSparseSet(100)

	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains(0))

	s.Insert(5)
	assert.True(t, s.Contains(5))
	assert.Equal(t, 1, s.Size())

	// Re-inserting is a no-op.
	s.Insert(5)
	assert.Equal(t, 1, s.Size())

	s.Insert(10)
	s.Insert(3)
	assert.Equal(t, 3, s.Size())
}

func TestSparseSetClearResetsMembership(t *testing.T) {
	s := NewSparseSet(8)
	s.Insert(1)
	s.Insert(2)
	s.Clear()

	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains(1))
	assert.False(t, s.Contains(2))

	// Values beyond capacity never report as members.
	assert.False(t, s.Contains(1000))
}
