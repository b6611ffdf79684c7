package base

import (
	"encoding/hex"
	"fmt"
)

// HexEncoding selects how a pool's byte fields are rendered to hex in the
// claim bundle schema: Sapling displays bytes reversed (little-endian
// display of the underlying value), Orchard displays them forward.
type HexEncoding int

const (
	// ForwardHex encodes bytes in their natural order. Used by Orchard.
	ForwardHex HexEncoding = iota
	// ReversedHex encodes bytes reversed. Used by Sapling.
	ReversedHex
)

// EncodingFor returns the hex display convention for tag.
func EncodingFor(tag PoolTag) HexEncoding {
	if tag == Sapling {
		return ReversedHex
	}
	return ForwardHex
}

// EncodeHex renders b as lower-case hex under enc's byte ordering.
func EncodeHex(b []byte, enc HexEncoding) string {
	if enc == ForwardHex {
		return hex.EncodeToString(b)
	}
	return hex.EncodeToString(reversed(b))
}

// DecodeHex parses a lower-case hex string produced by EncodeHex back into
// raw bytes under enc's byte ordering.
func DecodeHex(s string, enc HexEncoding) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if enc == ReversedHex {
		b = reversed(b)
	}
	return b, nil
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// EncodeNullifierHex renders nf using the hex convention of tag.
func EncodeNullifierHex(tag PoolTag, nf Nullifier) string {
	return EncodeHex(nf.Bytes(), EncodingFor(tag))
}

// DecodeNullifierHex parses a nullifier previously rendered by
// EncodeNullifierHex.
func DecodeNullifierHex(tag PoolTag, s string) (Nullifier, error) {
	b, err := DecodeHex(s, EncodingFor(tag))
	if err != nil {
		return Nullifier{}, err
	}
	if len(b) != Size {
		return Nullifier{}, &InvalidLengthError{Got: len(b), Want: Size}
	}
	return FromBytes(b), nil
}

// InvalidLengthError reports a byte field that does not match its expected
// fixed width.
type InvalidLengthError struct {
	Got, Want int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("base: invalid length: got %d bytes, want %d", e.Got, e.Want)
}
