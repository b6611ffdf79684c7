// Package pipeline wires the core components — nullifiersrc, pool,
// gaptree, usermap, hiding, claim, zkbackend, and signer — into the five
// orchestrator stages: config build, claim prepare, claim prove, claim
// sign, and verify. It owns no cryptography of its own; it only sequences
// calls into the packages that do.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/eigerco/zair/internal/zair/airdropconfig"
	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/gaptree"
	"github.com/eigerco/zair/internal/zair/nullifiersrc"
	"github.com/eigerco/zair/internal/zair/pool"
)

// builtTree bundles a pool's canonicalised chain with the dense gap-tree
// built over it, so later stages don't recompute either.
type builtTree struct {
	tag   base.PoolTag
	chain *base.Set
	tree  *gaptree.Dense
}

// rooter is satisfied by both Dense and Sparse gap trees.
type rooter interface {
	Root() pool.Digest
}

// sealedRoot is the root recorded in a sealed configuration for a pool: the
// tree's real root when the chain is non-empty, or the all-zero sentinel
// when it is empty. An enabled pool with zero nullifiers on chain still
// seals a root (so the pool stays enabled end to end) but that root is a
// fixed convention rather than a hash of a single (MIN, MAX) gap, which
// would otherwise be indistinguishable from a chain that legitimately
// contains no spends yet.
func sealedRoot(chainLen int, tree rooter) pool.Digest {
	if chainLen == 0 {
		return pool.Digest{}
	}
	return tree.Root()
}

// buildPoolTree canonicalises xs under tag's order and builds its gap
// tree. Building still proceeds over the single (MIN, MAX) gap when xs is
// empty: the tree is usable for witnessing even though its sealed root is
// overridden by sealedRoot.
func buildPoolTree(tag base.PoolTag, xs []base.Nullifier) (*builtTree, error) {
	chain, err := pool.Canonicalise(tag, xs, "chain")
	if err != nil {
		return nil, err
	}

	hasher := pool.HasherFor(tag)
	gaps := gaptree.Gaps(tag, chain)
	leaves := gaptree.Leaves(gaps, hasher)

	tree, err := gaptree.BuildDense(leaves, hasher)
	if err != nil {
		return nil, fmt.Errorf("pipeline: build %s tree: %w", tag, err)
	}

	return &builtTree{tag: tag, chain: chain, tree: tree}, nil
}

// buildEnabledTrees canonicalises and builds the gap tree for every pool
// key present in byPool — including a pool whose slice is nil because the
// source yielded zero nullifiers for it, which must still build a real
// single-gap tree (see sealedRoot) — running the two pools' builds
// concurrently as §4.8/§5 require: the tree-build stage is CPU-bound and
// the two pools' builds are independent of each other. The caller controls
// which pools are enabled by which keys it puts in byPool, not by whether
// the slice is nil or empty.
func buildEnabledTrees(byPool map[base.PoolTag][]base.Nullifier) (map[base.PoolTag]*builtTree, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		results  = make(map[base.PoolTag]*builtTree, len(byPool))
		firstErr error
	)

	for tag, xs := range byPool {
		tag, xs := tag, xs
		wg.Add(1)
		go func() {
			defer wg.Done()
			built, err := buildPoolTree(tag, xs)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[tag] = built
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// ConfigBuildParams is the input to ConfigBuild.
type ConfigBuildParams struct {
	Source          nullifiersrc.Source
	Range           nullifiersrc.Range
	SaplingOut      io.Writer // nil skips writing the Sapling snapshot
	OrchardOut      io.Writer // nil skips writing the Orchard snapshot
	HidingFactor    airdropconfig.HidingFactor
	SaplingScheme   airdropconfig.Scheme
	OrchardScheme   airdropconfig.Scheme
	SaplingTargetID []byte // binds Sapling claims to this airdrop instance, see GLOSSARY: target-id
	OrchardTargetID []byte // binds Orchard claims to this airdrop instance, see GLOSSARY: target-id
}

// ConfigBuildResult is ConfigBuild's output: the sealed configuration plus
// the built trees, so callers that also need to persist the dense tree
// files (not part of the sealed JSON) can reach them without rebuilding.
type ConfigBuildResult struct {
	Configuration *airdropconfig.Configuration
	Trees         map[base.PoolTag]*gaptree.Dense
}

// ConfigBuild streams params.Source for params.Range, partitions by pool,
// canonicalises and writes each enabled pool's snapshot, builds both gap
// trees concurrently, and seals an airdropconfig.Configuration recording
// each enabled pool's root.
func ConfigBuild(ctx context.Context, params ConfigBuildParams) (*ConfigBuildResult, error) {
	byPool, err := nullifiersrc.PartitionByPool(ctx, params.Source, params.Range)
	if err != nil {
		return nil, err
	}

	enabled := map[base.PoolTag][]base.Nullifier{}
	if params.SaplingOut != nil {
		enabled[base.Sapling] = byPool[base.Sapling]
	}
	if params.OrchardOut != nil {
		enabled[base.Orchard] = byPool[base.Orchard]
	}

	built, err := buildEnabledTrees(enabled)
	if err != nil {
		return nil, err
	}

	buildParams := airdropconfig.BuildParams{
		SnapshotRange:   airdropconfig.SnapshotRange{Start: params.Range.Start, End: params.Range.End},
		HidingFactor:    params.HidingFactor,
		SaplingScheme:   params.SaplingScheme,
		OrchardScheme:   params.OrchardScheme,
		SaplingTargetID: params.SaplingTargetID,
		OrchardTargetID: params.OrchardTargetID,
	}

	trees := make(map[base.PoolTag]*gaptree.Dense, len(built))
	for tag, b := range built {
		root := sealedRoot(b.chain.Len(), b.tree)
		rootBytes := append([]byte(nil), root[:]...)
		switch tag {
		case base.Sapling:
			buildParams.SaplingRoot = rootBytes
			if err := nullifiersrc.WriteNullifiers(params.SaplingOut, b.chain); err != nil {
				return nil, fmt.Errorf("pipeline: write sapling snapshot: %w", err)
			}
		case base.Orchard:
			buildParams.OrchardRoot = rootBytes
			if err := nullifiersrc.WriteNullifiers(params.OrchardOut, b.chain); err != nil {
				return nil, fmt.Errorf("pipeline: write orchard snapshot: %w", err)
			}
		}
		trees[tag] = b.tree
	}

	cfg, err := airdropconfig.Build(buildParams)
	if err != nil {
		return nil, err
	}

	return &ConfigBuildResult{Configuration: cfg, Trees: trees}, nil
}
