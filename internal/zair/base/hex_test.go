package base

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaplingHexReversesBytes(t *testing.T) {
	n := FromBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	s := EncodeNullifierHex(Sapling, n)
	want := strings.Repeat("00", 24) + "0807060504030201"
	assert.Equal(t, want, s)
}

func TestOrchardHexIsForward(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	n := FromBytes(raw)

	s := EncodeNullifierHex(Orchard, n)
	assert.Equal(t, hex.EncodeToString(raw), s)
}

func TestHexRoundTrips(t *testing.T) {
	for _, tag := range []PoolTag{Sapling, Orchard} {
		n := FromBytes([]byte{
			9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 1, 2, 3, 4, 5, 6,
			7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2,
		})
		s := EncodeNullifierHex(tag, n)
		back, err := DecodeNullifierHex(tag, s)
		require.NoError(t, err)
		assert.Equal(t, n, back)
	}
}

func TestDecodeNullifierHexRejectsBadLength(t *testing.T) {
	_, err := DecodeNullifierHex(Orchard, "aabb")
	require.Error(t, err)
}
