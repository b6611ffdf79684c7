// Package usermap maps a user's own nullifiers onto the gap positions of a
// chain-wide gap tree, producing the (position, bounds) triples a claim
// needs to later request a witness for each of its own notes.
package usermap

import (
	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/pool"
)

// Position records where a single user nullifier falls in the chain's gap
// sequence: which leaf (gap) it falls inside, and that gap's bounds.
type Position struct {
	Nullifier  base.Nullifier
	LeafIndex  uint64
	LeftBound  base.Nullifier
	RightBound base.Nullifier
}

// Build maps every nullifier in user onto its containing gap in chain,
// returning one Position per user nullifier that is not itself already
// present on chain. A user nullifier found in chain has already been
// revealed by a spend and is silently dropped: it has no gap of its own.
// chain must already be canonicalised for tag (see pool.Canonicalise).
//
// This is the "fused build" of spec section 4.5: chain's |chain|+1 gaps
// and user's sorted nullifiers are walked jointly in a single pass, each
// user nullifier examined exactly once, instead of binary-searching the
// chain once per user nullifier.
func Build(tag base.PoolTag, chain *base.Set, user *base.Set) []Position {
	order := chain.Order()
	positions := make([]Position, 0, user.Len())

	left := pool.Min(tag)
	max := pool.Max(tag)
	j := 0

	for i := 0; i <= chain.Len(); i++ {
		right := max
		if i < chain.Len() {
			right = chain.At(i)
		}

		// user nullifiers at or before left either fell in an earlier gap
		// already recorded, or are themselves equal to left (already spent
		// on chain) — either way they are done advancing past.
		for j < user.Len() && order(user.At(j), left) <= 0 {
			j++
		}

		for j < user.Len() && order(user.At(j), right) < 0 {
			nullifier := user.At(j)
			positions = append(positions, Position{
				Nullifier:  nullifier,
				LeafIndex:  uint64(i),
				LeftBound:  left,
				RightBound: right,
			})
			j++
		}

		left = right
	}

	return positions
}

// MarkedLeaves extracts the distinct leaf positions referenced by
// positions, suitable for passing to gaptree.BuildSparse as the set of
// positions to retain witnesses for.
func MarkedLeaves(positions []Position) []uint64 {
	seen := make(map[uint64]struct{}, len(positions))
	out := make([]uint64, 0, len(positions))
	for _, p := range positions {
		if _, ok := seen[p.LeafIndex]; ok {
			continue
		}
		seen[p.LeafIndex] = struct{}{}
		out = append(out, p.LeafIndex)
	}
	return out
}
