package gaptree

import "github.com/eigerco/zair/internal/zair/pool"

// Sparse is an in-memory-only gap tree: it retains the root and the
// witnesses for a chosen set of marked positions, but never serialises its
// full node array to disk. It is built the same way as Dense and is exact
// for the positions it marks; positions that were never marked simply
// cannot be witnessed later, by design (see NotMarkedError).
//
// This trades Dense's full persistence for a smaller resident footprint
// when the caller only ever needs witnesses for a known, small set of
// user-owned gaps — the common case for claim preparation.
type Sparse struct {
	root      pool.Digest
	leafCount int
	marked    map[uint64][]pool.Digest
}

// BuildSparse builds the tree from leaves exactly as BuildDense does, but
// only retains witnesses for the leaf positions listed in marks; everything
// else is discarded once the root is known.
func BuildSparse(leaves []pool.Digest, hasher pool.Hasher, marks []uint64) (*Sparse, error) {
	dense, err := BuildDense(leaves, hasher)
	if err != nil {
		return nil, err
	}

	marked := make(map[uint64][]pool.Digest, len(marks))
	for _, pos := range marks {
		witness, err := dense.Witness(pos, hasher)
		if err != nil {
			return nil, err
		}
		marked[pos] = witness
	}

	return &Sparse{
		root:      dense.Root(),
		leafCount: dense.LeafCount(),
		marked:    marked,
	}, nil
}

// Root returns the tree's root digest.
func (s *Sparse) Root() pool.Digest {
	return s.root
}

// LeafCount returns the number of gaps the tree was built over.
func (s *Sparse) LeafCount() int {
	return s.leafCount
}

// Witness returns the previously-retained witness for leafPosition, or
// NotMarkedError if that position was not in the marks passed to
// BuildSparse.
func (s *Sparse) Witness(leafPosition uint64) ([]pool.Digest, error) {
	w, ok := s.marked[leafPosition]
	if !ok {
		return nil, &NotMarkedError{Position: leafPosition}
	}
	return w, nil
}
