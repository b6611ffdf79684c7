package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nf(v byte) Nullifier {
	var n Nullifier
	n[Size-1] = v
	return n
}

func TestSetSortsAndDedups(t *testing.T) {
	xs := []Nullifier{nf(3), nf(1), nf(2), nf(1)}
	s := New(xs, ByteOrder)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, nf(1), s.At(0))
	assert.Equal(t, nf(2), s.At(1))
	assert.Equal(t, nf(3), s.At(2))
}

func TestSetIdempotent(t *testing.T) {
	xs := []Nullifier{nf(3), nf(1), nf(2)}
	once := New(xs, ByteOrder)
	twice := New(once.Items(), ByteOrder)

	require.Equal(t, once.Len(), twice.Len())
	for i := 0; i < once.Len(); i++ {
		assert.Equal(t, once.At(i), twice.At(i))
	}
}

func TestSetEmpty(t *testing.T) {
	s := New(nil, ByteOrder)
	assert.Equal(t, 0, s.Len())
	idx, found := s.BinarySearch(nf(1))
	assert.False(t, found)
	assert.Equal(t, 0, idx)
}

func TestBinarySearchFindsAndInserts(t *testing.T) {
	s := New([]Nullifier{nf(1), nf(2), nf(3)}, ByteOrder)

	idx, found := s.BinarySearch(nf(2))
	assert.True(t, found)
	assert.Equal(t, 1, idx)

	idx, found = s.BinarySearch(nf(0))
	assert.False(t, found)
	assert.Equal(t, 0, idx)

	idx, found = s.BinarySearch(nf(255))
	assert.False(t, found)
	assert.Equal(t, 3, idx)
}
