package gaptree

import (
	"encoding/binary"

	"github.com/eigerco/zair/internal/zair/pool"
)

const (
	leafCountBytes = 8
	nodeBytes      = 32
)

// Dense is a fully-persisted gap tree: every node at every level is stored,
// so any leaf position can be witnessed without replaying the whole build.
type Dense struct {
	leafCount    int
	levelWidths  [levelCount]int
	levelOffsets [levelCount]int
	nodes        []pool.Digest
}

func levelLayout(leafCount int) (widths, offsets [levelCount]int, total int) {
	width := leafCount
	offset := 0
	for level := 0; level < levelCount; level++ {
		widths[level] = width
		offsets[level] = offset
		offset += width
		width = (width + 1) / 2
	}
	return widths, offsets, offset
}

func validateLeafCount(n int) error {
	if n == 0 {
		return errEmptyLeaves
	}
	if n >= (1 << Depth) {
		return &LeavesOverflowError{Count: n}
	}
	return nil
}

// BuildDense constructs a dense tree from leaves, combining pairs level by
// level up to the root using hasher. An odd node at any level is paired
// with that level's empty root rather than duplicated, matching the
// reference tree's padding rule.
func BuildDense(leaves []pool.Digest, hasher pool.Hasher) (*Dense, error) {
	leafCount := len(leaves)
	if err := validateLeafCount(leafCount); err != nil {
		return nil, err
	}

	widths, offsets, total := levelLayout(leafCount)

	nodes := make([]pool.Digest, 0, total)
	nodes = append(nodes, leaves...)

	current := leaves
	for level := uint32(0); level < Depth; level++ {
		width := widths[level+1]
		next := make([]pool.Digest, 0, width)
		empty := hasher.EmptyRoot(level)

		for i := 0; i < len(current); i += 2 {
			left := current[i]
			right := empty
			if i+1 < len(current) {
				right = current[i+1]
			}
			next = append(next, hasher.Combine(level, left, right))
		}
		nodes = append(nodes, next...)
		current = next
	}

	return fromNodes(leafCount, widths, offsets, total, nodes)
}

func fromNodes(leafCount int, widths, offsets [levelCount]int, total int, nodes []pool.Digest) (*Dense, error) {
	if len(nodes) != total {
		return nil, &invalidTreeError{reason: "gap-tree node count mismatch"}
	}
	if len(nodes) == 0 {
		return nil, &invalidTreeError{reason: "gap-tree must contain at least one node"}
	}
	return &Dense{
		leafCount:    leafCount,
		levelWidths:  widths,
		levelOffsets: offsets,
		nodes:        nodes,
	}, nil
}

type invalidTreeError struct{ reason string }

func (e *invalidTreeError) Error() string { return "gap-tree: " + e.reason }

// Root returns the tree's root digest.
func (d *Dense) Root() pool.Digest {
	return d.nodes[len(d.nodes)-1]
}

// LeafCount returns the number of gaps (leaves) in the tree.
func (d *Dense) LeafCount() int {
	return d.leafCount
}

func (d *Dense) nodeAt(level, index int) pool.Digest {
	return d.nodes[d.levelOffsets[level]+index]
}

// Witness returns the sibling digest at each of the Depth levels on the
// path from leafPosition up to the root.
func (d *Dense) Witness(leafPosition uint64, hasher pool.Hasher) ([]pool.Digest, error) {
	index := int(leafPosition)
	if index < 0 || index >= d.leafCount {
		return nil, &NotMarkedError{Position: leafPosition}
	}

	witness := make([]pool.Digest, 0, Depth)
	for level := 0; level < Depth; level++ {
		width := d.levelWidths[level]
		var sibling int
		if index%2 == 0 {
			sibling = index + 1
		} else {
			sibling = index - 1
		}

		var siblingNode pool.Digest
		if sibling < width {
			siblingNode = d.nodeAt(level, sibling)
		} else {
			siblingNode = hasher.EmptyRoot(uint32(level))
		}
		witness = append(witness, siblingNode)
		index /= 2
	}
	return witness, nil
}

// ToBytes serialises the tree as an 8-byte little-endian leaf count
// followed by every node in level order (leaves first, root last).
func (d *Dense) ToBytes() []byte {
	out := make([]byte, leafCountBytes+len(d.nodes)*nodeBytes)
	binary.LittleEndian.PutUint64(out[:leafCountBytes], uint64(d.leafCount))
	for i, n := range d.nodes {
		copy(out[leafCountBytes+i*nodeBytes:], n[:])
	}
	return out
}

// DenseFromBytes parses the serialisation produced by ToBytes.
func DenseFromBytes(data []byte) (*Dense, error) {
	if len(data) < leafCountBytes {
		return nil, &invalidTreeError{reason: "gap-tree file is too short"}
	}

	leafCount64 := binary.LittleEndian.Uint64(data[:leafCountBytes])
	leafCount := int(leafCount64)
	if uint64(leafCount) != leafCount64 {
		return nil, &invalidTreeError{reason: "leaf count does not fit into int"}
	}
	if err := validateLeafCount(leafCount); err != nil {
		return nil, err
	}

	widths, offsets, total := levelLayout(leafCount)
	expectedLen := leafCountBytes + total*nodeBytes
	if len(data) != expectedLen {
		return nil, &invalidTreeError{reason: "gap-tree file length mismatch"}
	}

	payload := data[leafCountBytes:]
	nodes := make([]pool.Digest, total)
	for i := 0; i < total; i++ {
		copy(nodes[i][:], payload[i*nodeBytes:(i+1)*nodeBytes])
	}

	return fromNodes(leafCount, widths, offsets, total, nodes)
}
