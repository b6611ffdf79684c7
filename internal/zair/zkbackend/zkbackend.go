// Package zkbackend declares the capability interfaces the claim pipeline
// uses to reach an external zk-SNARK backend (Groth16 for Sapling, Halo2
// for Orchard). The core never imports a specific proving system: it only
// calls Prove/Verify and treats the result as an opaque byte string.
package zkbackend

import (
	"context"

	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/claim"
)

// Prover produces a serialised proof for one claim's public/private inputs.
type Prover interface {
	Prove(ctx context.Context, tag base.PoolTag, public claim.PublicInputs, private claim.PrivateInputs) ([]byte, error)
}

// Verifier checks a serialised proof against its public inputs.
type Verifier interface {
	Verify(ctx context.Context, tag base.PoolTag, public claim.PublicInputs, proofBytes []byte) (bool, error)
}

// ProofFailureError reports a proof that failed verification.
type ProofFailureError struct {
	ClaimIndex int
}

func (e *ProofFailureError) Error() string {
	return "zkbackend: proof verification failed"
}
