// Package base defines the byte-level primitives shared by every pool:
// the fixed-size nullifier type and the sorted, deduplicated set built on
// top of it.
package base

import (
	"bytes"
	"sort"
)

// Size is the fixed length of a nullifier, in bytes.
const Size = 32

// Nullifier is an opaque 32-byte tag revealed when a shielded note is spent.
// Two nullifiers are equal iff their bytes are equal; the type carries no
// pool information of its own.
type Nullifier [Size]byte

// MinNullifier is the all-zero sentinel used as the left bound of the first
// gap in byte order.
var MinNullifier = Nullifier{}

// MaxNullifier is the all-ones sentinel used as the right bound of the last
// gap under byte order (Sapling). Orchard uses a different sentinel; see
// pool.Max.
var MaxNullifier = func() Nullifier {
	var n Nullifier
	for i := range n {
		n[i] = 0xFF
	}
	return n
}()

// FromBytes copies b into a Nullifier. Panics if len(b) != Size; callers at
// I/O boundaries must validate length first (see nullifiersrc.InvalidLengthError).
func FromBytes(b []byte) Nullifier {
	if len(b) != Size {
		panic("base: nullifier must be exactly 32 bytes")
	}
	var n Nullifier
	copy(n[:], b)
	return n
}

// Bytes returns the nullifier's bytes as a slice.
func (n Nullifier) Bytes() []byte {
	return n[:]
}

// Less compares two nullifiers lexicographically (byte order). This is the
// Sapling ordering; Orchard uses pool.OrchardOrder instead.
func (n Nullifier) Less(other Nullifier) bool {
	return bytes.Compare(n[:], other[:]) < 0
}

// Order is a pool-parameterised total order over nullifiers, injected at the
// canonicalisation boundary so the tree internals never branch on pool.
type Order func(a, b Nullifier) int

// ByteOrder is the Sapling total order: plain lexicographic byte comparison.
func ByteOrder(a, b Nullifier) int {
	return bytes.Compare(a[:], b[:])
}

// Set is an ordered, deduplicated sequence of nullifiers under a given
// Order. It is immutable after construction; there is no in-place mutation,
// only rebuilding via New.
type Set struct {
	order Order
	items []Nullifier
}

// New sorts (unstable) and deduplicates xs under order, returning an
// immutable Set. An empty input yields a valid, empty set.
func New(xs []Nullifier, order Order) *Set {
	items := make([]Nullifier, len(xs))
	copy(items, xs)

	sort.Slice(items, func(i, j int) bool {
		return order(items[i], items[j]) < 0
	})

	items = dedupAdjacent(items, order)

	return &Set{order: order, items: items}
}

func dedupAdjacent(items []Nullifier, order Order) []Nullifier {
	if len(items) < 2 {
		return items
	}
	out := items[:1]
	for _, item := range items[1:] {
		if order(out[len(out)-1], item) != 0 {
			out = append(out, item)
		}
	}
	return out
}

// Len returns the number of unique nullifiers in the set.
func (s *Set) Len() int {
	return len(s.items)
}

// At returns the nullifier at position i, in sorted order.
func (s *Set) At(i int) Nullifier {
	return s.items[i]
}

// Items returns the backing slice. Callers must not mutate it.
func (s *Set) Items() []Nullifier {
	return s.items
}

// Order returns the total order the set is sorted under, so callers that
// need to walk it jointly with another sorted sequence (see
// usermap.Build's fused gap walk) can compare without re-deriving the
// pool's order from the tag.
func (s *Set) Order() Order {
	return s.order
}

// BinarySearch returns (index, true) if needle is present, or (insertion
// index, false) if not — the insertion index doubles as the gap index that
// would contain needle.
func (s *Set) BinarySearch(needle Nullifier) (int, bool) {
	lo, hi := 0, len(s.items)
	for lo < hi {
		mid := (lo + hi) / 2
		switch c := s.order(s.items[mid], needle); {
		case c == 0:
			return mid, true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false
}
