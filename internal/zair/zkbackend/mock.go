package zkbackend

import (
	"bytes"
	"crypto/sha256"

	"context"

	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/claim"
	"github.com/eigerco/zair/internal/zair/commitment"
)

// Mock is an in-memory Prover/Verifier pair for tests. A "proof" binds the
// public inputs into its first 4 bytes and the private inputs into the
// rest, so Verify — which only ever sees the public inputs, matching a
// real verifying key's contract — can check the public-input binding
// without needing the private witness back.
//
// SaplingScheme and OrchardScheme select the value-commitment scheme each
// pool's circuit would use; a zero value defaults to commitment.Native,
// matching a pool with no scheme configured.
type Mock struct {
	SaplingScheme commitment.Scheme
	OrchardScheme commitment.Scheme
}

func (m Mock) schemeFor(tag base.PoolTag) commitment.Scheme {
	s := m.SaplingScheme
	if tag == base.Orchard {
		s = m.OrchardScheme
	}
	if s == "" {
		return commitment.Native
	}
	return s
}

func publicDigest(tag base.PoolTag, public claim.PublicInputs) []byte {
	h := sha256.New()
	h.Write([]byte(tag.String()))
	h.Write([]byte(public.HidingNullifier))
	return h.Sum(nil)
}

func (m Mock) Prove(_ context.Context, tag base.PoolTag, public claim.PublicInputs, private claim.PrivateInputs) ([]byte, error) {
	pub := publicDigest(tag, public)

	blinder, err := commitment.RandomBlinder()
	if err != nil {
		return nil, err
	}
	valueCommitment, err := commitment.Commit(m.schemeFor(tag), private.LeafPosition, blinder)
	if err != nil {
		return nil, err
	}

	h := sha256.New()
	h.Write([]byte(private.Nullifier))
	h.Write([]byte(private.MerkleProof))
	h.Write(valueCommitment)
	priv := h.Sum(nil)

	return append(pub[:4], priv...), nil
}

func (m Mock) Verify(_ context.Context, tag base.PoolTag, public claim.PublicInputs, proofBytes []byte) (bool, error) {
	if len(proofBytes) < 4 {
		return false, nil
	}
	want := publicDigest(tag, public)
	return bytes.Equal(proofBytes[:4], want[:4]), nil
}
