package gaptree

import (
	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/pool"
)

// Gap is one adjacent pair in a canonicalised nullifier set, bounded by the
// pool's sentinels at the two ends of the sequence.
type Gap struct {
	Left, Right base.Nullifier
}

// Gaps returns the sorted-set adjacent pairs, sentinel-bounded at both
// ends: len(chain)+1 gaps for a chain of len(chain) canonicalised
// nullifiers, mirroring the Gap definition in section 3 of the spec.
func Gaps(tag base.PoolTag, chain *base.Set) []Gap {
	n := chain.Len()
	gaps := make([]Gap, n+1)

	min, max := pool.Min(tag), pool.Max(tag)
	prev := min
	for i := 0; i < n; i++ {
		cur := chain.At(i)
		gaps[i] = Gap{Left: prev, Right: cur}
		prev = cur
	}
	gaps[n] = Gap{Left: prev, Right: max}

	return gaps
}

// Leaves hashes each gap into a leaf digest using hasher's pool-specific
// leaf hash.
func Leaves(gaps []Gap, hasher pool.Hasher) []pool.Digest {
	leaves := make([]pool.Digest, len(gaps))
	for i, g := range gaps {
		leaves[i] = hasher.LeafHash(g.Left, g.Right)
	}
	return leaves
}
