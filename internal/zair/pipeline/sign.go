package pipeline

import (
	"encoding/hex"
	"fmt"

	"github.com/eigerco/zair/internal/zair/airdropconfig"
	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/claim"
	"github.com/eigerco/zair/internal/zair/signer"
)

// ClaimSignParams is the input to ClaimSign.
type ClaimSignParams struct {
	Config  *airdropconfig.Configuration
	Proofs  *claim.UnspentNotesProofs
	Secrets *claim.Secrets
	BaseKey []byte
	MsgHash []byte
	Signer  signer.Signer
}

// ClaimSign derives one randomised spend-auth signature per claim, binding
// its proof bytes, hiding nullifier, its pool's target-id (from Config, see
// GLOSSARY: target-id), and the caller's message hash, in the same
// claim-index order ClaimProve assigned.
func ClaimSign(p ClaimSignParams) (*claim.Submission, error) {
	if len(p.Secrets.Secrets) == 0 {
		return nil, fmt.Errorf("pipeline: no secrets to sign")
	}

	signatures := make([]claim.Signature, 0, len(p.Secrets.Secrets))
	targetIDs := map[string]string{}
	claimIndex := 0

	for _, tag := range []base.PoolTag{base.Sapling, base.Orchard} {
		inputs, ok := p.Proofs.Pools[tag.String()]
		if !ok {
			continue
		}

		targetID := p.Config.TargetID(tag)
		if targetID != nil {
			targetIDs[tag.String()] = hex.EncodeToString(targetID)
		}

		for _, proof := range inputs {
			if claimIndex >= len(p.Secrets.Secrets) || p.Secrets.Secrets[claimIndex].ClaimIndex != claimIndex {
				return nil, fmt.Errorf("pipeline: secrets missing for claim %d", claimIndex)
			}

			proofBytes, err := hex.DecodeString(proof.ProofBytes)
			if err != nil {
				return nil, fmt.Errorf("pipeline: decode proof bytes for claim %d: %w", claimIndex, err)
			}
			hidingNF, err := hex.DecodeString(proof.PublicInputs.HidingNullifier)
			if err != nil {
				return nil, fmt.Errorf("pipeline: decode hiding nullifier for claim %d: %w", claimIndex, err)
			}

			message := signer.BindingMessage(proofBytes, hidingNF, targetID, p.MsgHash)
			sigBytes, randomizedPubKey, err := p.Signer.Sign(p.BaseKey, claimIndex, message)
			if err != nil {
				return nil, fmt.Errorf("pipeline: sign claim %d: %w", claimIndex, err)
			}

			signatures = append(signatures, claim.Signature{
				ClaimIndex:   claimIndex,
				SigBytes:     hex.EncodeToString(sigBytes),
				SpendAuthKey: hex.EncodeToString(randomizedPubKey),
			})
			claimIndex++
		}
	}

	return &claim.Submission{
		Proofs:     *p.Proofs,
		Signatures: signatures,
		TargetIDs:  targetIDs,
	}, nil
}
