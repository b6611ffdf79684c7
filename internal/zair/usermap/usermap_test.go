package usermap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/zair/internal/zair/base"
)

func nf(v byte) base.Nullifier {
	var n base.Nullifier
	n[base.Size-1] = v
	return n
}

func TestBuildMapsEachUserNullifierToItsGap(t *testing.T) {
	chain := base.New([]base.Nullifier{nf(2), nf(4), nf(6)}, base.ByteOrder)
	user := base.New([]base.Nullifier{nf(1), nf(3), nf(5), nf(7)}, base.ByteOrder)

	positions := Build(base.Sapling, chain, user)
	require.Len(t, positions, 4)

	assert.Equal(t, uint64(0), positions[0].LeafIndex)
	assert.Equal(t, base.MinNullifier, positions[0].LeftBound)
	assert.Equal(t, nf(2), positions[0].RightBound)

	assert.Equal(t, uint64(3), positions[3].LeafIndex)
	assert.Equal(t, nf(6), positions[3].LeftBound)
	assert.Equal(t, base.MaxNullifier, positions[3].RightBound)
}

func TestBuildDropsAlreadySpent(t *testing.T) {
	chain := base.New([]base.Nullifier{nf(2), nf(4)}, base.ByteOrder)
	user := base.New([]base.Nullifier{nf(4), nf(3)}, base.ByteOrder)

	positions := Build(base.Sapling, chain, user)
	require.Len(t, positions, 1)
	assert.Equal(t, nf(3), positions[0].Nullifier)
}

func TestMarkedLeavesDedups(t *testing.T) {
	positions := []Position{{LeafIndex: 2}, {LeafIndex: 2}, {LeafIndex: 0}}
	marks := MarkedLeaves(positions)
	assert.ElementsMatch(t, []uint64{2, 0}, marks)
}
