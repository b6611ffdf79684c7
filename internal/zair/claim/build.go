package claim

import (
	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/pool"
	"github.com/eigerco/zair/internal/zair/usermap"
)

// NoteWitness bundles a user-mapped position with the concrete witness path
// a gap-tree produced for it, plus the note fields an external circuit
// needs that the core does not otherwise track (commitment, position).
type NoteWitness struct {
	Position       usermap.Position
	Witness        []pool.Digest
	NoteCommitment base.Nullifier
	NotePosition   uint64 // Sapling only
	HidingNF       base.Nullifier
	BlockHeight    uint64
}

// BuildClaimInput assembles one ClaimInput from a note's witness, rendering
// every byte field under tag's hex convention.
func BuildClaimInput(tag base.PoolTag, w NoteWitness) ClaimInput {
	witnessBytes := make([][32]byte, len(w.Witness))
	for i, d := range w.Witness {
		witnessBytes[i] = [32]byte(d)
	}

	priv := PrivateInputs{
		Pool:           tag,
		Nullifier:      base.EncodeNullifierHex(tag, w.Position.Nullifier),
		NoteCommitment: base.EncodeNullifierHex(tag, w.NoteCommitment),
		Left:           base.EncodeNullifierHex(tag, w.Position.LeftBound),
		Right:          base.EncodeNullifierHex(tag, w.Position.RightBound),
		LeafPosition:   w.Position.LeafIndex,
		MerkleProof:    MerkleProofBytes(witnessBytes),
	}
	if tag == base.Sapling {
		pos := w.NotePosition
		priv.NotePosition = &pos
	}

	return ClaimInput{
		BlockHeight: w.BlockHeight,
		PublicInputs: PublicInputs{
			HidingNullifier: base.EncodeNullifierHex(tag, w.HidingNF),
		},
		PrivateInputs: priv,
	}
}
