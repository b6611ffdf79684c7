// Package commitment implements the two value-commitment schemes a claim's
// pool can select in its configuration: a Pedersen commitment over BN254
// for "native", and a plain hash commitment for "sha256". The external
// circuit backend is the real consumer of whichever scheme a pool picks;
// this package lets the mock backend (and any test harness standing in for
// the real one) bind a commitment the way the chosen scheme would, instead
// of ignoring the choice entirely.
package commitment

import (
	"crypto/sha256"
	"errors"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Scheme names the value-commitment scheme a pool's configuration selects.
type Scheme string

const (
	Native Scheme = "native"
	SHA256 Scheme = "sha256"
)

// ErrUnknownScheme reports a scheme value that is neither Native nor SHA256.
var ErrUnknownScheme = errors.New("commitment: unknown scheme")

var (
	initOnce   sync.Once
	generatorG bn254.G1Affine
	generatorH bn254.G1Affine
)

// initGenerators derives the second Pedersen generator H from the curve's
// standard base point G, via a fixed domain-separated scalar rather than a
// real hash-to-curve (no such primitive is in the example pack's
// dependency set). H = s·G for a public scalar s, so the discrete log of H
// relative to G is known to anyone reading this code and the commitment is
// not binding against them. This is test/reference-grade, not a production
// trusted setup.
func initGenerators() {
	initOnce.Do(func() {
		_, _, g1Gen, _ := bn254.Generators()
		generatorG = g1Gen

		h := sha256.Sum256([]byte("zair/commitment/generator-h"))
		var scalar big.Int
		scalar.SetBytes(h[:])
		generatorH.ScalarMultiplication(&generatorG, &scalar)
	})
}

// RandomBlinder draws a random scalar in BN254's scalar field, suitable as
// a Pedersen commitment's blinding factor.
func RandomBlinder() (*big.Int, error) {
	var scalar fr.Element
	if _, err := scalar.SetRandom(); err != nil {
		return nil, err
	}
	return scalar.BigInt(new(big.Int)), nil
}

// Commit binds value and blinder under scheme, returning the commitment's
// canonical byte encoding: a compressed BN254 point for Native, or a
// SHA-256 digest for SHA256.
func Commit(scheme Scheme, value uint64, blinder *big.Int) ([]byte, error) {
	switch scheme {
	case Native:
		return commitNative(value, blinder), nil
	case SHA256:
		return commitSHA256(value, blinder), nil
	default:
		return nil, ErrUnknownScheme
	}
}

func commitNative(value uint64, blinder *big.Int) []byte {
	initGenerators()

	var valueG bn254.G1Affine
	valueG.ScalarMultiplication(&generatorG, new(big.Int).SetUint64(value))

	var blinderH bn254.G1Affine
	blinderH.ScalarMultiplication(&generatorH, blinder)

	var out bn254.G1Affine
	out.Add(&valueG, &blinderH)

	return out.Marshal()
}

func commitSHA256(value uint64, blinder *big.Int) []byte {
	h := sha256.New()
	var valueBytes [8]byte
	for i := range valueBytes {
		valueBytes[i] = byte(value >> (8 * i))
	}
	h.Write(valueBytes[:])
	h.Write(blinder.Bytes())
	return h.Sum(nil)
}
