package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/zair/internal/zair/base"
)

func TestSaplingCanonicaliseSortsAndDedups(t *testing.T) {
	xs := []base.Nullifier{nfAt(3), nfAt(1), nfAt(2), nfAt(1)}

	set, err := Canonicalise(base.Sapling, xs, "chain")
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())
	assert.Equal(t, nfAt(1), set.At(0))
}

func TestSaplingMinMax(t *testing.T) {
	assert.Equal(t, base.MinNullifier, Min(base.Sapling))
	assert.Equal(t, base.MaxNullifier, Max(base.Sapling))
}

func TestOrchardRejectsNonCanonical(t *testing.T) {
	over := orchardMax()
	// orchardMax is p-1, canonical; p itself (p-1 + 1) is not.
	nonCanonical := addOne(over)

	_, err := Canonicalise(base.Orchard, []base.Nullifier{nonCanonical}, "user")
	require.Error(t, err)

	var nce *NonCanonicalOrchardNullifierError
	require.ErrorAs(t, err, &nce)
	assert.Equal(t, "user", nce.Set)
	assert.Equal(t, 0, nce.Index)
}

func TestOrchardOrderMatchesFieldRepresentative(t *testing.T) {
	small := leFromUint64(1)
	large := leFromUint64(2)

	assert.Less(t, OrchardOrder(small, large), 0)
	assert.Greater(t, OrchardOrder(large, small), 0)
	assert.Equal(t, 0, OrchardOrder(small, small))
}

func TestOrchardMaxIsModulusMinusOne(t *testing.T) {
	max := orchardMax()
	assert.True(t, orchardCanonical(max))

	got := repr(max)
	want := new(big.Int).Sub(pallasBaseModulus, big.NewInt(1))
	assert.Equal(t, 0, got.Cmp(want))
}

func TestHasherLeafAndCombineDiffer(t *testing.T) {
	for _, tag := range []base.PoolTag{base.Sapling, base.Orchard} {
		h := HasherFor(tag)
		leaf := h.LeafHash(base.MinNullifier, base.MaxNullifier)
		combined := h.Combine(0, Digest(leaf), Digest(leaf))
		assert.NotEqual(t, leaf, combined)
	}
}

func TestEmptyRootDeterministic(t *testing.T) {
	h := HasherFor(base.Orchard)
	a := h.EmptyRoot(5)
	b := h.EmptyRoot(5)
	assert.Equal(t, a, b)
	assert.NotEqual(t, h.EmptyRoot(4), h.EmptyRoot(5))
}

func nfAt(v byte) base.Nullifier {
	var n base.Nullifier
	n[base.Size-1] = v
	return n
}

func addOne(nf base.Nullifier) base.Nullifier {
	v := repr(nf)
	v.Add(v, big.NewInt(1))
	be := v.FillBytes(make([]byte, base.Size))
	var out base.Nullifier
	for i, b := range be {
		out[base.Size-1-i] = b
	}
	return out
}

func leFromUint64(v uint64) base.Nullifier {
	var out base.Nullifier
	out[0] = byte(v)
	out[1] = byte(v >> 8)
	return out
}
