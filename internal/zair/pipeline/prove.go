package pipeline

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/eigerco/zair/internal/zair/airdropconfig"
	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/claim"
	"github.com/eigerco/zair/internal/zair/signer"
	"github.com/eigerco/zair/internal/zair/zkbackend"
)

// ClaimProveParams is the input to ClaimProve.
type ClaimProveParams struct {
	Config   *airdropconfig.Configuration
	Prepared *claim.PreparedClaim
	Prover   zkbackend.Prover
	BaseKey  []byte // spend-auth base key derived from the user's seed
}

// ClaimProve calls Prover once per prepared claim, in the fixed order
// pools.Sapling then pools.Orchard then claim index within each, and
// records the per-claim spend-auth rerandomisation scalar alongside each
// proof. Proving is serial: the external circuit backend is free to
// parallelise internally, but the core does not run concurrent proof
// requests against it (§4.8/§5).
func ClaimProve(ctx context.Context, p ClaimProveParams) (*claim.UnspentNotesProofs, *claim.Secrets, error) {
	proofs := &claim.UnspentNotesProofs{Pools: map[string][]claim.Proof{}}
	if p.Config.SaplingEnabled() {
		proofs.SaplingMerkleRoot = hex.EncodeToString(*p.Config.SaplingMerkleRoot)
	}
	if p.Config.OrchardEnabled() {
		proofs.OrchardMerkleRoot = hex.EncodeToString(*p.Config.OrchardMerkleRoot)
	}

	secrets := &claim.Secrets{}
	claimIndex := 0

	for _, tag := range []base.PoolTag{base.Sapling, base.Orchard} {
		inputs, ok := p.Prepared.Pools[tag.String()]
		if !ok {
			continue
		}

		poolProofs := make([]claim.Proof, 0, len(inputs))
		for _, ci := range inputs {
			proofBytes, err := p.Prover.Prove(ctx, tag, ci.PublicInputs, ci.PrivateInputs)
			if err != nil {
				return nil, nil, fmt.Errorf("pipeline: prove claim %d (%s): %w", claimIndex, tag, err)
			}

			poolProofs = append(poolProofs, claim.Proof{
				ClaimInput: ci,
				ProofBytes: hex.EncodeToString(proofBytes),
			})

			secrets.Secrets = append(secrets.Secrets, claim.Secret{
				ClaimIndex:          claimIndex,
				SpendAuthRandomizer: hex.EncodeToString(signer.Randomizer(p.BaseKey, claimIndex)),
				NotePosition:        ci.PrivateInputs.NotePosition,
			})

			claimIndex++
		}
		proofs.Pools[tag.String()] = poolProofs
	}

	return proofs, secrets, nil
}
