package pipeline

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/eigerco/zair/internal/zair/airdropconfig"
	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/claim"
	"github.com/eigerco/zair/internal/zair/gaptree"
	"github.com/eigerco/zair/internal/zair/nullifiersrc"
	"github.com/eigerco/zair/internal/zair/pool"
	"github.com/eigerco/zair/internal/zair/usermap"
)

// ScannedNote is one of the caller's own notes, as found by an external
// wallet scan keyed on a unified full-viewing key. The hiding nullifier is
// computed by the scanner (it alone holds the nk/fvk components the hiding
// package's derivation needs) and carried here already derived.
type ScannedNote struct {
	Pool            base.PoolTag
	Nullifier       base.Nullifier
	NoteCommitment  base.Nullifier
	NotePosition    uint64 // Sapling note-commitment-tree position; unused for Orchard
	HidingNullifier base.Nullifier
	BlockHeight     uint64
}

// NoteScanner scans the chain for notes owned by a unified full-viewing
// key. It is an external collaborator: the core never parses keys or note
// plaintexts itself.
type NoteScanner interface {
	ScanNotes(ctx context.Context, rng nullifiersrc.Range) ([]ScannedNote, error)
}

// ClaimPrepareParams is the input to ClaimPrepare.
type ClaimPrepareParams struct {
	Config  *airdropconfig.Configuration
	Source  nullifiersrc.Source
	Scanner NoteScanner
	Range   nullifiersrc.Range
}

// ClaimPrepare re-streams the chain for the snapshot range and scans it for
// the caller's own notes concurrently, maps each found note onto a gap in
// the appropriate pool's gap tree, verifies the reconstructed roots against
// the sealed configuration, and returns the resulting PreparedClaim.
func ClaimPrepare(ctx context.Context, p ClaimPrepareParams) (*claim.PreparedClaim, error) {
	var (
		byPool    map[base.PoolTag][]base.Nullifier
		byPoolErr error
		notes     []ScannedNote
		notesErr  error
		wg        sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		byPool, byPoolErr = nullifiersrc.PartitionByPool(ctx, p.Source, p.Range)
	}()
	go func() {
		defer wg.Done()
		notes, notesErr = p.Scanner.ScanNotes(ctx, p.Range)
	}()
	wg.Wait()

	if byPoolErr != nil {
		return nil, byPoolErr
	}
	if notesErr != nil {
		return nil, notesErr
	}

	prepared := &claim.PreparedClaim{Pools: map[string][]claim.ClaimInput{}}

	if p.Config.SaplingEnabled() {
		inputs, err := prepareOnePool(base.Sapling, byPool[base.Sapling], notes, *p.Config.SaplingMerkleRoot)
		if err != nil {
			return nil, err
		}
		prepared.Pools[base.Sapling.String()] = inputs
	}
	if p.Config.OrchardEnabled() {
		inputs, err := prepareOnePool(base.Orchard, byPool[base.Orchard], notes, *p.Config.OrchardMerkleRoot)
		if err != nil {
			return nil, err
		}
		prepared.Pools[base.Orchard.String()] = inputs
	}

	return prepared, nil
}

func prepareOnePool(tag base.PoolTag, chainRaw []base.Nullifier, allNotes []ScannedNote, expectedRootHex []byte) ([]claim.ClaimInput, error) {
	chain, err := pool.Canonicalise(tag, chainRaw, "chain")
	if err != nil {
		return nil, err
	}

	byNullifier := make(map[base.Nullifier]ScannedNote)
	userRaw := make([]base.Nullifier, 0, len(allNotes))
	for _, n := range allNotes {
		if n.Pool != tag {
			continue
		}
		byNullifier[n.Nullifier] = n
		userRaw = append(userRaw, n.Nullifier)
	}

	userSet, err := pool.Canonicalise(tag, userRaw, "user")
	if err != nil {
		return nil, err
	}

	positions := usermap.Build(tag, chain, userSet)
	marks := usermap.MarkedLeaves(positions)

	hasher := pool.HasherFor(tag)
	gaps := gaptree.Gaps(tag, chain)
	leaves := gaptree.Leaves(gaps, hasher)

	sparse, err := gaptree.BuildSparse(leaves, hasher, marks)
	if err != nil {
		return nil, fmt.Errorf("pipeline: build %s sparse tree: %w", tag, err)
	}

	actual := sealedRoot(chain.Len(), sparse)

	var expected pool.Digest
	copy(expected[:], expectedRootHex)
	if actual != expected {
		return nil, &gaptree.RootMismatchError{Pool: tag.String(), Expected: expected, Actual: actual}
	}

	inputs := make([]claim.ClaimInput, 0, len(positions))
	for _, pos := range positions {
		note, ok := byNullifier[pos.Nullifier]
		if !ok {
			return nil, fmt.Errorf("pipeline: %s: no scanned note for mapped nullifier %s", tag, hex.EncodeToString(pos.Nullifier.Bytes()))
		}

		witness, err := sparse.Witness(pos.LeafIndex)
		if err != nil {
			return nil, err
		}

		w := claim.NoteWitness{
			Position:       pos,
			Witness:        witness,
			NoteCommitment: note.NoteCommitment,
			NotePosition:   note.NotePosition,
			HidingNF:       note.HidingNullifier,
			BlockHeight:    note.BlockHeight,
		}
		inputs = append(inputs, claim.BuildClaimInput(tag, w))
	}

	return inputs, nil
}
