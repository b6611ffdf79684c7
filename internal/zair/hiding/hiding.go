// Package hiding derives the hiding nullifier published as the ZK circuit's
// public input: a one-way function of a note that carries no byte overlap
// with the on-chain nullifier it stands in for, so publishing it cannot be
// linked back to a specific spent note.
package hiding

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/eigerco/zair/internal/zair/base"
)

// SaplingPersonalizationSize is the exact width of the Sapling PRF's
// personalization parameter. The spec allows up to 8 bytes in places but
// the underlying PRF's personalisation block is fixed at 8, so this package
// enforces exactly 8.
const SaplingPersonalizationSize = 8

// OrchardDomainMaxSize is the maximum length of the Orchard PRF's UTF-8
// domain string.
const OrchardDomainMaxSize = 32

// InvalidParameterError reports a hiding-factor parameter that does not
// meet its pool's size constraint.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("hiding: invalid %s: %s", e.Field, e.Reason)
}

// SaplingInput bundles the components the Sapling hiding PRF consumes.
type SaplingInput struct {
	// Personalization is the configuration's 8-byte domain separator.
	Personalization [SaplingPersonalizationSize]byte
	// NK is the scope-specific nullifier-deriving viewing-key component.
	NK []byte
	// Rho is derived from the note's commitment randomness and position.
	Rho base.Nullifier
	// Position is the Sapling note commitment-tree position.
	Position uint64
}

// DeriveSapling computes hnf = NullifierHash(personalization, nk, rho,
// position): a BLAKE2b-256 hash keyed by nk, with the personalization bytes
// used as domain-separating prefix of the message (the x/crypto/blake2b
// API exposes a key parameter but not a raw personalization block, so the
// personalization is folded into the message instead of a dedicated BLAKE2
// parameter slot).
func DeriveSapling(in SaplingInput) (base.Nullifier, error) {
	if len(in.NK) == 0 {
		return base.Nullifier{}, &InvalidParameterError{Field: "nk", Reason: "must not be empty"}
	}
	if in.Personalization == ([SaplingPersonalizationSize]byte{}) {
		return base.Nullifier{}, &InvalidParameterError{Field: "personalization", Reason: "must not be all zero"}
	}

	h, err := blake2b.New256(in.NK)
	if err != nil {
		return base.Nullifier{}, fmt.Errorf("hiding: blake2b init: %w", err)
	}

	h.Write(in.Personalization[:])
	h.Write(in.Rho.Bytes())

	var posBytes [8]byte
	binary.LittleEndian.PutUint64(posBytes[:], in.Position)
	h.Write(posBytes[:])

	return base.FromBytes(h.Sum(nil)), nil
}

// OrchardInput bundles the components the Orchard hiding PRF consumes.
type OrchardInput struct {
	// Domain is a UTF-8 string of at most OrchardDomainMaxSize bytes.
	Domain string
	// Tag is a small configuration-supplied byte tag.
	Tag byte
	// FVKComponents are the full-viewing-key-derived bytes feeding the PRF.
	FVKComponents []byte
	// NoteComponents are the note-derived bytes feeding the PRF.
	NoteComponents []byte
}

// DeriveOrchard computes hnf = PoseidonHash(domain, tag, fvk_components,
// note_components). gnark-crypto has no Pallas/Vesta support, so the
// Poseidon permutation is approximated with a domain-separated BLAKE2b-256
// hash, consistent with the stand-in used for Orchard's internal gap-tree
// hash.
func DeriveOrchard(in OrchardInput) (base.Nullifier, error) {
	if len(in.Domain) == 0 || len(in.Domain) > OrchardDomainMaxSize {
		return base.Nullifier{}, &InvalidParameterError{
			Field:  "domain",
			Reason: fmt.Sprintf("must be 1..=%d bytes, got %d", OrchardDomainMaxSize, len(in.Domain)),
		}
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return base.Nullifier{}, fmt.Errorf("hiding: blake2b init: %w", err)
	}

	h.Write([]byte(in.Domain))
	h.Write([]byte{in.Tag})
	h.Write(in.FVKComponents)
	h.Write(in.NoteComponents)

	return base.FromBytes(h.Sum(nil)), nil
}
