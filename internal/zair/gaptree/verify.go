package gaptree

import "github.com/eigerco/zair/internal/zair/pool"

// Verify recomputes the root from leaf, its position, and a witness, and
// reports whether it equals root. It is the non-membership verification
// counterpart to Witness: a gap leaf, an authentication path, and a claimed
// root is all a verifier ever needs.
func Verify(leaf pool.Digest, position uint64, witness []pool.Digest, hasher pool.Hasher, root pool.Digest) bool {
	if len(witness) != Depth {
		return false
	}

	node := leaf
	idx := position
	for level := 0; level < Depth; level++ {
		sibling := witness[level]
		if idx%2 == 0 {
			node = hasher.Combine(uint32(level), node, sibling)
		} else {
			node = hasher.Combine(uint32(level), sibling, node)
		}
		idx /= 2
	}
	return node == root
}
