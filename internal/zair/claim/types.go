// Package claim defines the serialisable records that carry a claim through
// prepare → prove → sign → verify: PreparedClaim, UnspentNotesProofs,
// Secrets, and Submission, with the stable hex/JSON conventions from the
// claim bundle schema.
package claim

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/eigerco/zair/internal/zair/base"
)

// PublicInputs is the ZK circuit's public input: the hiding nullifier.
type PublicInputs struct {
	HidingNullifier string `json:"hiding_nullifier"`
}

// PrivateInputs is the tagged union of per-pool private witness data. It is
// marshalled with a "pool" discriminator field; Sapling carries an extra
// note_position the Orchard variant omits.
type PrivateInputs struct {
	Pool           base.PoolTag `json:"-"`
	Nullifier      string       `json:"nullifier"`
	NoteCommitment string       `json:"note_commitment"`
	NotePosition   *uint64      `json:"note_position,omitempty"`
	Left           string       `json:"left"`
	Right          string       `json:"right"`
	LeafPosition   uint64       `json:"leaf_position"`
	MerkleProof    string       `json:"merkle_proof"`
}

// MarshalJSON emits the pool discriminator alongside the shared fields.
func (p PrivateInputs) MarshalJSON() ([]byte, error) {
	type alias PrivateInputs
	return json.Marshal(struct {
		Pool string `json:"pool"`
		alias
	}{Pool: p.Pool.String(), alias: alias(p)})
}

// UnmarshalJSON reads the pool discriminator back into Pool and validates
// that Sapling entries carry a note_position while Orchard entries do not.
func (p *PrivateInputs) UnmarshalJSON(data []byte) error {
	type alias PrivateInputs
	var aux struct {
		Pool string `json:"pool"`
		alias
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	tag, ok := base.ParsePoolTag(aux.Pool)
	if !ok {
		return fmt.Errorf("claim: unknown pool discriminator %q", aux.Pool)
	}
	*p = PrivateInputs(aux.alias)
	p.Pool = tag

	if tag == base.Sapling && p.NotePosition == nil {
		return fmt.Errorf("claim: sapling private_inputs missing note_position")
	}
	if tag == base.Orchard && p.NotePosition != nil {
		return fmt.Errorf("claim: orchard private_inputs must not carry note_position")
	}
	return nil
}

// MerkleProofBytes is the fixed 1024-byte concatenation of 32 sibling
// hashes (32 levels × 32 bytes) carried as a hex string in JSON.
func MerkleProofBytes(witness [][32]byte) string {
	out := make([]byte, 0, len(witness)*32)
	for _, sibling := range witness {
		out = append(out, sibling[:]...)
	}
	return hex.EncodeToString(out)
}

// ClaimInput is one note's proof inputs, before an external prover has
// attached an actual proof.
type ClaimInput struct {
	BlockHeight   uint64        `json:"block_height"`
	PublicInputs  PublicInputs  `json:"public_inputs"`
	PrivateInputs PrivateInputs `json:"private_inputs"`
}

// PreparedClaim is the output of the prepare stage: per-pool lists of claim
// inputs awaiting an external proof.
type PreparedClaim struct {
	Pools map[string][]ClaimInput `json:"pools"`
}

// Proof is a ClaimInput with the external backend's serialised proof bytes
// attached.
type Proof struct {
	ClaimInput
	ProofBytes string `json:"proof_bytes"`
}

// UnspentNotesProofs is the output of the prove stage.
type UnspentNotesProofs struct {
	SaplingMerkleRoot string             `json:"sapling_merkle_root,omitempty"`
	OrchardMerkleRoot string             `json:"orchard_merkle_root,omitempty"`
	Pools             map[string][]Proof `json:"pools"`
}

// Secret is the local-only signing material for one claim; it never leaves
// the user's machine unencrypted.
type Secret struct {
	ClaimIndex          int     `json:"claim_index"`
	SpendAuthRandomizer string  `json:"spend_auth_randomizer"`
	NotePosition        *uint64 `json:"note_position,omitempty"`
}

// Secrets is the sibling artefact to UnspentNotesProofs produced by the
// prove stage.
type Secrets struct {
	Secrets []Secret `json:"secrets"`
}

// Signature binds one claim's proof bytes, hiding nullifier, target id, and
// message hash under the user's randomised spend-auth key.
type Signature struct {
	ClaimIndex   int    `json:"claim_index"`
	SigBytes     string `json:"sig_bytes"`
	SpendAuthKey string `json:"spend_auth_key"`
}

// Submission is the final bundle handed to the recipient chain. TargetIDs
// records, per pool, the hex-encoded target-id each of that pool's
// signatures was bound to — informational only: a verifier always
// re-derives the binding target-id from its own copy of the sealed
// configuration rather than trusting this field.
type Submission struct {
	Proofs     UnspentNotesProofs `json:"proofs"`
	Signatures []Signature        `json:"signatures"`
	TargetIDs  map[string]string  `json:"target_ids,omitempty"`
}
