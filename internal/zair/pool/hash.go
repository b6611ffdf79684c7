package pool

import "github.com/eigerco/zair/internal/zair/base"

// Digest is an internal gap-tree node value: 32 bytes regardless of pool.
type Digest [32]byte

// Hasher supplies the pool-specific leaf and internal hash functions a
// gap-tree needs. Tree construction and path verification are pool-agnostic;
// everything pool-specific is reached through this interface.
type Hasher interface {
	// LeafHash hashes a gap's (left, right) nullifier bounds into a leaf
	// digest.
	LeafHash(left, right base.Nullifier) Digest

	// Combine hashes two child digests one level up. level counts up from 0
	// at the layer directly above the leaves.
	Combine(level uint32, left, right Digest) Digest

	// EmptyRoot returns the root of a tree of all-empty leaves at the given
	// depth, counting depth 0 as a single empty leaf.
	EmptyRoot(depth uint32) Digest
}

// HasherFor returns the Hasher for tag, precomputing nothing: EmptyRoot
// recomputes the empty-subtree root on every call.
func HasherFor(tag base.PoolTag) Hasher {
	switch tag {
	case base.Orchard:
		return orchardHasher{}
	default:
		return saplingHasher{}
	}
}

type saplingHasher struct{}

func (saplingHasher) LeafHash(left, right base.Nullifier) Digest {
	return Digest(saplingLeafHash(left, right))
}

func (saplingHasher) Combine(_ uint32, left, right Digest) Digest {
	return Digest(saplingCombine([32]byte(left), [32]byte(right)))
}

func (h saplingHasher) EmptyRoot(depth uint32) Digest {
	return computeEmptyRoot(h, depth)
}

type orchardHasher struct{}

func (orchardHasher) LeafHash(left, right base.Nullifier) Digest {
	return Digest(orchardLeafHash(left, right))
}

func (orchardHasher) Combine(level uint32, left, right Digest) Digest {
	return Digest(orchardCombine(level, [32]byte(left), [32]byte(right)))
}

func (h orchardHasher) EmptyRoot(depth uint32) Digest {
	return computeEmptyRoot(h, depth)
}

// computeEmptyRoot derives the all-empty root at depth by hashing the
// all-zero leaf (MIN, MIN) up through depth levels of Combine. The result is
// not cached, here or in gaptree, which calls EmptyRoot for each level it
// pads or witnesses.
func computeEmptyRoot(h Hasher, depth uint32) Digest {
	node := h.LeafHash(base.MinNullifier, base.MinNullifier)
	for level := uint32(0); level < depth; level++ {
		node = h.Combine(level, node, node)
	}
	return node
}
