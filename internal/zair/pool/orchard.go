package pool

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/eigerco/zair/internal/zair/base"
)

// pallasBaseModulus is the order of the Pallas base field that backs Orchard
// note commitments and nullifiers. gnark-crypto has no Pallas/Vesta curve, so
// canonicality and ordering are implemented directly against this modulus
// rather than through the field-arithmetic library used elsewhere.
var pallasBaseModulus, _ = new(big.Int).SetString(
	"28948022309329048855892746252171976963363056481941560715954676764349967630337", 10,
)

// orchardLeafHashLevel is the domain-separation level used when hashing a
// gap's (left, right) bounds into a leaf, distinct from the internal levels
// 0..31 used when combining two nodes one level up. It mirrors the level
// reserved for non-membership leaves in the reference circuit.
const orchardLeafHashLevel = 62

// repr decodes a nullifier's bytes as a little-endian field representative.
func repr(nf base.Nullifier) *big.Int {
	be := make([]byte, base.Size)
	for i, b := range nf {
		be[base.Size-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

// orchardCanonical reports whether nf is the canonical little-endian
// encoding of some element of the Pallas base field, i.e. its representative
// is strictly less than the field modulus.
func orchardCanonical(nf base.Nullifier) bool {
	return repr(nf).Cmp(pallasBaseModulus) < 0
}

// OrchardOrder compares two nullifiers by their field representative, which
// is equivalent to comparing their little-endian byte encodings from the
// most significant byte down. Both inputs must already be canonical.
func OrchardOrder(a, b base.Nullifier) int {
	return repr(a).Cmp(repr(b))
}

// orchardMax returns p-1 (the field's largest representative) encoded as a
// canonical little-endian nullifier: the sentinel that bounds the last gap
// under OrchardOrder.
func orchardMax() base.Nullifier {
	pMinus1 := new(big.Int).Sub(pallasBaseModulus, big.NewInt(1))
	be := pMinus1.FillBytes(make([]byte, base.Size))

	var nf base.Nullifier
	for i, b := range be {
		nf[base.Size-1-i] = b
	}
	return nf
}

// orchardDomainHash hashes left and right under a level-tagged domain,
// standing in for the circuit's Sinsemilla-based MerkleCRH^Orchard: the
// field arithmetic behind the real hash needs Pallas/Vesta group operations
// that gnark-crypto does not provide, so level separation is carried by a
// 4-byte little-endian level tag hashed with BLAKE2b-256 instead — the same
// stand-in primitive the hiding-nullifier derivation uses (see
// hiding.DeriveOrchard), so both of Orchard's domain-separated hashes come
// from one grounded library rather than two different ones.
func orchardDomainHash(level uint32, left, right [32]byte) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic("pool: blake2b init: " + err.Error())
	}
	var lvl [4]byte
	binary.LittleEndian.PutUint32(lvl[:], level)
	h.Write(lvl[:])
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// orchardLeafHash hashes a gap's (left, right) bound pair at the dedicated
// leaf level, keeping leaves undistinguishable from internal nodes at the
// same level impossible to produce by combining two siblings.
func orchardLeafHash(left, right base.Nullifier) [32]byte {
	return orchardDomainHash(orchardLeafHashLevel, [32]byte(left), [32]byte(right))
}

// orchardCombine is the Orchard internal node hash at a given level, 0 being
// the level just above the leaves.
func orchardCombine(level uint32, left, right [32]byte) [32]byte {
	return orchardDomainHash(level, left, right)
}
