// Package pool implements the per-pool canonicalisation, ordering, and
// hashing rules described in section 4.3 of the non-membership design: a
// byte-lexicographic variant for Sapling and a little-endian field-ordered
// variant for Orchard, hashed with a BLAKE2b-based stand-in for Sinsemilla.
package pool

import (
	"crypto/sha256"
	"fmt"

	"github.com/eigerco/zair/internal/zair/base"
)

// Canonicalise sorts and deduplicates xs under the pool's order, rejecting
// any nullifier the pool cannot canonically represent. For Sapling this is
// a no-op over the raw bytes; for Orchard it enforces the canonical
// little-endian pallas::Base encoding.
//
// setName identifies the input set ("chain" or "user") for error reporting.
func Canonicalise(tag base.PoolTag, xs []base.Nullifier, setName string) (*base.Set, error) {
	switch tag {
	case base.Sapling:
		return base.New(xs, base.ByteOrder), nil
	case base.Orchard:
		for i, nf := range xs {
			if !orchardCanonical(nf) {
				return nil, &NonCanonicalOrchardNullifierError{Set: setName, Index: i}
			}
		}
		return base.New(xs, OrchardOrder), nil
	default:
		return nil, fmt.Errorf("pool: unknown pool tag %d", tag)
	}
}

// Max returns the sentinel nullifier that bounds the last gap for the pool:
// all-ones for Sapling, p-1 in canonical little-endian form for Orchard.
func Max(tag base.PoolTag) base.Nullifier {
	switch tag {
	case base.Sapling:
		return base.MaxNullifier
	case base.Orchard:
		return orchardMax()
	default:
		return base.MaxNullifier
	}
}

// Min returns the sentinel nullifier that bounds the first gap. It is the
// all-zero value for both pools.
func Min(base.PoolTag) base.Nullifier {
	return base.MinNullifier
}

// NonCanonicalOrchardNullifierError reports an Orchard nullifier that is not
// a canonical pallas::Base encoding.
type NonCanonicalOrchardNullifierError struct {
	Set   string
	Index int
}

func (e *NonCanonicalOrchardNullifierError) Error() string {
	return fmt.Sprintf("non-canonical orchard nullifier at index %d in %q set", e.Index, e.Set)
}

// saplingLeafHash hashes a gap's (left, right) bound pair into a leaf: the
// Sapling leaf level uses plain SHA-256, matching the internal hash.
func saplingLeafHash(left, right base.Nullifier) [32]byte {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// saplingCombine is the Sapling internal node hash: SHA-256 of the two
// children, with no level-dependent domain separation (the original design
// relies on leaf/internal separation being structural, not tag-based).
func saplingCombine(left, right [32]byte) [32]byte {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
