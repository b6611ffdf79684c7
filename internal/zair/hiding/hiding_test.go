package hiding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/zair/internal/zair/base"
)

func TestDeriveSaplingDeterministic(t *testing.T) {
	in := SaplingInput{
		Personalization: [8]byte{'Z', 'A', 'I', 'R', '_', 'n', 'f', '1'},
		NK:              []byte("nullifier-deriving-key"),
		Rho:             base.FromBytes(make([]byte, 32)),
		Position:        7,
	}

	h1, err := DeriveSapling(in)
	require.NoError(t, err)
	h2, err := DeriveSapling(in)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, base.Nullifier{}, h1)
}

func TestDeriveSaplingVariesWithPosition(t *testing.T) {
	base0 := SaplingInput{
		Personalization: [8]byte{'Z', 'A', 'I', 'R', '_', 'n', 'f', '1'},
		NK:              []byte("key"),
		Rho:             base.FromBytes(make([]byte, 32)),
		Position:        0,
	}
	base1 := base0
	base1.Position = 1

	h0, err := DeriveSapling(base0)
	require.NoError(t, err)
	h1, err := DeriveSapling(base1)
	require.NoError(t, err)
	assert.NotEqual(t, h0, h1)
}

func TestDeriveSaplingRejectsEmptyKey(t *testing.T) {
	_, err := DeriveSapling(SaplingInput{})
	require.Error(t, err)
}

func TestDeriveOrchardDeterministic(t *testing.T) {
	in := OrchardInput{
		Domain:         "zair-airdrop-orchard",
		Tag:            1,
		FVKComponents:  []byte("fvk"),
		NoteComponents: []byte("note"),
	}
	h1, err := DeriveOrchard(in)
	require.NoError(t, err)
	h2, err := DeriveOrchard(in)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestDeriveOrchardRejectsOversizedDomain(t *testing.T) {
	in := OrchardInput{Domain: string(make([]byte, OrchardDomainMaxSize+1)), Tag: 1}
	_, err := DeriveOrchard(in)
	require.Error(t, err)
}
