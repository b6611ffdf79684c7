package zkbackend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/claim"
	"github.com/eigerco/zair/internal/zair/commitment"
)

func TestMockProveVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := Mock{SaplingScheme: commitment.Native}

	public := claim.PublicInputs{HidingNullifier: "aabb"}
	private := claim.PrivateInputs{Pool: base.Sapling, Nullifier: "1122", MerkleProof: "33", LeafPosition: 7}

	proof, err := m.Prove(ctx, base.Sapling, public, private)
	require.NoError(t, err)

	ok, err := m.Verify(ctx, base.Sapling, public, proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMockVerifyRejectsMismatchedPublicInputs(t *testing.T) {
	ctx := context.Background()
	m := Mock{}

	proof, err := m.Prove(ctx, base.Sapling, claim.PublicInputs{HidingNullifier: "aabb"}, claim.PrivateInputs{Nullifier: "11"})
	require.NoError(t, err)

	ok, err := m.Verify(ctx, base.Sapling, claim.PublicInputs{HidingNullifier: "ccdd"}, proof)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMockDefaultsToNativeScheme(t *testing.T) {
	ctx := context.Background()
	m := Mock{}
	public := claim.PublicInputs{HidingNullifier: "aabb"}

	a, err := m.Prove(ctx, base.Orchard, public, claim.PrivateInputs{Nullifier: "11", LeafPosition: 1})
	require.NoError(t, err)
	ok, err := m.Verify(ctx, base.Orchard, public, a)
	require.NoError(t, err)
	assert.True(t, ok)
}
