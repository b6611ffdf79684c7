package pipeline

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/eigerco/zair/internal/zair/airdropconfig"
	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/claim"
	"github.com/eigerco/zair/internal/zair/gaptree"
	"github.com/eigerco/zair/internal/zair/pool"
	"github.com/eigerco/zair/internal/zair/signer"
	"github.com/eigerco/zair/internal/zair/zkbackend"
)

// flattenProofs lists every proof in the fixed sapling-then-orchard,
// within-pool order ClaimProve/ClaimSign assign claim indices in, so a
// claim index recovered from a Submission can be matched back to its proof.
func flattenProofs(proofs *claim.UnspentNotesProofs) []claim.Proof {
	var out []claim.Proof
	for _, tag := range []base.PoolTag{base.Sapling, base.Orchard} {
		out = append(out, proofs.Pools[tag.String()]...)
	}
	return out
}

// VerifyProofsParams is the input to VerifyProofs.
type VerifyProofsParams struct {
	Config   *airdropconfig.Configuration
	Proofs   *claim.UnspentNotesProofs
	Verifier zkbackend.Verifier
}

// configRoot returns the pool's sealed root from cfg, or nil if the pool
// carries none.
func configRoot(cfg *airdropconfig.Configuration, tag base.PoolTag) *pool.Digest {
	switch tag {
	case base.Sapling:
		if cfg.SaplingMerkleRoot == nil {
			return nil
		}
		var d pool.Digest
		copy(d[:], *cfg.SaplingMerkleRoot)
		return &d
	case base.Orchard:
		if cfg.OrchardMerkleRoot == nil {
			return nil
		}
		var d pool.Digest
		copy(d[:], *cfg.OrchardMerkleRoot)
		return &d
	default:
		return nil
	}
}

// witnessFromHex decodes the 32×32-byte concatenated sibling path
// claim.MerkleProofBytes produced back into a []pool.Digest.
func witnessFromHex(s string) ([]pool.Digest, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode merkle proof: %w", err)
	}
	if len(raw) != gaptree.Depth*32 {
		return nil, fmt.Errorf("merkle proof has %d bytes, want %d", len(raw), gaptree.Depth*32)
	}
	witness := make([]pool.Digest, gaptree.Depth)
	for i := range witness {
		copy(witness[i][:], raw[i*32:(i+1)*32])
	}
	return witness, nil
}

// checkProofRoot recomputes proof's gap leaf and authentication path and
// checks it roots to cfg's sealed root for its pool — the check
// prepareOnePool already performs at prepare time (see
// gaptree.RootMismatchError), repeated here at verify time so a proof built
// against a stale or different configuration's tree is rejected even though
// the backend Verifier's public-input check alone would accept it. A pool
// sealed to the empty-chain sentinel root carries no real root to check a
// witness against, so the check is skipped for it.
func checkProofRoot(cfg *airdropconfig.Configuration, proof claim.Proof) error {
	tag := proof.PrivateInputs.Pool

	root := configRoot(cfg, tag)
	if root == nil {
		return fmt.Errorf("pipeline: configuration has no root for pool %s", tag)
	}
	if *root == (pool.Digest{}) {
		return nil
	}

	left, err := base.DecodeNullifierHex(tag, proof.PrivateInputs.Left)
	if err != nil {
		return fmt.Errorf("decode left bound: %w", err)
	}
	right, err := base.DecodeNullifierHex(tag, proof.PrivateInputs.Right)
	if err != nil {
		return fmt.Errorf("decode right bound: %w", err)
	}
	witness, err := witnessFromHex(proof.PrivateInputs.MerkleProof)
	if err != nil {
		return err
	}

	hasher := pool.HasherFor(tag)
	leaf := hasher.LeafHash(left, right)

	if !gaptree.Verify(leaf, proof.PrivateInputs.LeafPosition, witness, hasher, *root) {
		return &gaptree.RootMismatchError{Pool: tag.String(), Expected: *root, Actual: leaf}
	}
	return nil
}

// VerifyProofs checks every proof in proofs against verifier and against
// the configuration's sealed roots, failing on the first claim that does
// not verify.
func VerifyProofs(ctx context.Context, p VerifyProofsParams) error {
	flat := flattenProofs(p.Proofs)
	for claimIndex, proof := range flat {
		tag := proof.PrivateInputs.Pool

		if err := checkProofRoot(p.Config, proof); err != nil {
			return fmt.Errorf("pipeline: claim %d: %w", claimIndex, err)
		}

		proofBytes, err := hex.DecodeString(proof.ProofBytes)
		if err != nil {
			return fmt.Errorf("pipeline: decode proof bytes for claim %d: %w", claimIndex, err)
		}

		ok, err := p.Verifier.Verify(ctx, tag, proof.PublicInputs, proofBytes)
		if err != nil {
			return fmt.Errorf("pipeline: verify claim %d: %w", claimIndex, err)
		}
		if !ok {
			return &zkbackend.ProofFailureError{ClaimIndex: claimIndex}
		}
	}
	return nil
}

// VerifySignaturesParams is the input to VerifySignatures.
type VerifySignaturesParams struct {
	Config     *airdropconfig.Configuration
	Submission *claim.Submission
	MsgHash    []byte
}

// VerifySignatures checks every signature in submission against the same
// binding message ClaimSign produced, re-deriving each claim's target-id
// from Config by its pool rather than trusting Submission.TargetIDs,
// failing on the first mismatch.
func VerifySignatures(p VerifySignaturesParams) error {
	flat := flattenProofs(&p.Submission.Proofs)

	for _, sig := range p.Submission.Signatures {
		if sig.ClaimIndex < 0 || sig.ClaimIndex >= len(flat) {
			return fmt.Errorf("pipeline: signature references unknown claim %d", sig.ClaimIndex)
		}
		proof := flat[sig.ClaimIndex]

		proofBytes, err := hex.DecodeString(proof.ProofBytes)
		if err != nil {
			return fmt.Errorf("pipeline: decode proof bytes for claim %d: %w", sig.ClaimIndex, err)
		}
		hidingNF, err := hex.DecodeString(proof.PublicInputs.HidingNullifier)
		if err != nil {
			return fmt.Errorf("pipeline: decode hiding nullifier for claim %d: %w", sig.ClaimIndex, err)
		}
		sigBytes, err := hex.DecodeString(sig.SigBytes)
		if err != nil {
			return fmt.Errorf("pipeline: decode signature for claim %d: %w", sig.ClaimIndex, err)
		}
		pubKey, err := hex.DecodeString(sig.SpendAuthKey)
		if err != nil {
			return fmt.Errorf("pipeline: decode spend-auth key for claim %d: %w", sig.ClaimIndex, err)
		}

		targetID := p.Config.TargetID(proof.PrivateInputs.Pool)
		message := signer.BindingMessage(proofBytes, hidingNF, targetID, p.MsgHash)
		ok, err := signer.Verify(pubKey, message, sigBytes)
		if err != nil {
			return fmt.Errorf("pipeline: verify signature for claim %d: %w", sig.ClaimIndex, err)
		}
		if !ok {
			return &signer.SignatureFailureError{ClaimIndex: sig.ClaimIndex}
		}
	}
	return nil
}
