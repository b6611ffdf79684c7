package signer

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBaseKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	baseKey := randomBaseKey(t)
	message := BindingMessage([]byte("proof"), []byte("hiding-nf"), []byte("target-1"), []byte("msg-hash"))

	sig, pub, err := Default{}.Sign(baseKey, 0, message)
	require.NoError(t, err)

	ok, err := Verify(pub, message, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDifferentClaimIndexProducesDifferentKey(t *testing.T) {
	baseKey := randomBaseKey(t)
	message := []byte("fixed message")

	_, pub0, err := Default{}.Sign(baseKey, 0, message)
	require.NoError(t, err)
	_, pub1, err := Default{}.Sign(baseKey, 1, message)
	require.NoError(t, err)

	assert.NotEqual(t, pub0, pub1)
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	baseKey := randomBaseKey(t)
	message := []byte("original")

	sig, pub, err := Default{}.Sign(baseKey, 0, message)
	require.NoError(t, err)

	ok, err := Verify(pub, []byte("tampered"), sig)
	require.NoError(t, err)
	assert.False(t, ok)
}
