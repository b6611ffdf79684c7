package gaptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/pool"
)

func nf(v byte) base.Nullifier {
	var n base.Nullifier
	n[base.Size-1] = v
	return n
}

func TestGapsSingleElementChain(t *testing.T) {
	set := base.New([]base.Nullifier{nf(5)}, base.ByteOrder)
	gaps := Gaps(base.Sapling, set)

	require.Len(t, gaps, 2)
	assert.Equal(t, base.MinNullifier, gaps[0].Left)
	assert.Equal(t, nf(5), gaps[0].Right)
	assert.Equal(t, nf(5), gaps[1].Left)
	assert.Equal(t, base.MaxNullifier, gaps[1].Right)
}

func TestGapsEmptyChainYieldsOneGap(t *testing.T) {
	set := base.New(nil, base.ByteOrder)
	gaps := Gaps(base.Sapling, set)

	require.Len(t, gaps, 1)
	assert.Equal(t, base.MinNullifier, gaps[0].Left)
	assert.Equal(t, base.MaxNullifier, gaps[0].Right)
}

func TestDenseRootStableAcrossRebuild(t *testing.T) {
	hasher := pool.HasherFor(base.Sapling)
	set := base.New([]base.Nullifier{nf(1), nf(2), nf(3)}, base.ByteOrder)
	leaves := Leaves(Gaps(base.Sapling, set), hasher)

	t1, err := BuildDense(leaves, hasher)
	require.NoError(t, err)
	t2, err := BuildDense(leaves, hasher)
	require.NoError(t, err)

	assert.Equal(t, t1.Root(), t2.Root())
}

func TestDenseWitnessVerifies(t *testing.T) {
	hasher := pool.HasherFor(base.Sapling)
	set := base.New([]base.Nullifier{nf(1), nf(2), nf(3), nf(4), nf(5)}, base.ByteOrder)
	gaps := Gaps(base.Sapling, set)
	leaves := Leaves(gaps, hasher)

	tree, err := BuildDense(leaves, hasher)
	require.NoError(t, err)

	for pos := 0; pos < len(leaves); pos++ {
		witness, err := tree.Witness(uint64(pos), hasher)
		require.NoError(t, err)
		require.Len(t, witness, Depth)

		ok := Verify(leaves[pos], uint64(pos), witness, hasher, tree.Root())
		assert.True(t, ok, "witness for position %d should verify", pos)
	}
}

func TestDenseWitnessRejectsOutOfRange(t *testing.T) {
	hasher := pool.HasherFor(base.Orchard)
	set := base.New([]base.Nullifier{nf(1)}, base.ByteOrder)
	leaves := Leaves(Gaps(base.Orchard, set), hasher)

	tree, err := BuildDense(leaves, hasher)
	require.NoError(t, err)

	_, err = tree.Witness(99, hasher)
	require.Error(t, err)
	var nme *NotMarkedError
	require.ErrorAs(t, err, &nme)
}

func TestDenseRoundTripsBytes(t *testing.T) {
	hasher := pool.HasherFor(base.Sapling)
	set := base.New([]base.Nullifier{nf(1), nf(2), nf(3), nf(4)}, base.ByteOrder)
	leaves := Leaves(Gaps(base.Sapling, set), hasher)

	tree, err := BuildDense(leaves, hasher)
	require.NoError(t, err)

	data := tree.ToBytes()
	restored, err := DenseFromBytes(data)
	require.NoError(t, err)

	assert.Equal(t, tree.Root(), restored.Root())
	assert.Equal(t, tree.LeafCount(), restored.LeafCount())
}

func TestDenseFromBytesRejectsLengthMismatch(t *testing.T) {
	_, err := DenseFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestLeavesOverflow(t *testing.T) {
	err := validateLeafCount(1 << Depth)
	require.Error(t, err)
	var loe *LeavesOverflowError
	require.ErrorAs(t, err, &loe)
}

func TestSparseWitnessOnlyForMarked(t *testing.T) {
	hasher := pool.HasherFor(base.Orchard)
	set := base.New([]base.Nullifier{nf(1), nf(2), nf(3)}, base.ByteOrder)
	gaps := Gaps(base.Orchard, set)
	leaves := Leaves(gaps, hasher)

	dense, err := BuildDense(leaves, hasher)
	require.NoError(t, err)

	sparse, err := BuildSparse(leaves, hasher, []uint64{1})
	require.NoError(t, err)
	assert.Equal(t, dense.Root(), sparse.Root())

	w, err := sparse.Witness(1)
	require.NoError(t, err)
	assert.True(t, Verify(leaves[1], 1, w, hasher, sparse.Root()))

	_, err = sparse.Witness(0)
	require.Error(t, err)
}
