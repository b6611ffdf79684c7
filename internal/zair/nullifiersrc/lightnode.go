package nullifiersrc

import (
	"context"

	"github.com/eigerco/zair/internal/zair/base"
)

// Block is one decoded chain block's shielded activity: every Sapling spend
// and every Orchard action present in it.
type Block struct {
	Height         uint64
	SaplingSpends  []base.Nullifier
	OrchardActions []base.Nullifier
}

// BlockFetcher is the external collaborator that actually talks to the
// light-node (gRPC client plumbing, connection management, retries): none
// of that belongs to the non-membership core, so only the translation from
// decoded blocks to tagged nullifier items is implemented here.
type BlockFetcher interface {
	FetchBlocks(ctx context.Context, rng Range) (<-chan Block, <-chan error)
}

// LightNodeSource adapts a BlockFetcher into a Source: for every block,
// every spend becomes a (Sapling, nf) item and every action becomes an
// (Orchard, nf) item, in block order.
type LightNodeSource struct {
	Fetcher BlockFetcher
}

func (s *LightNodeSource) Stream(ctx context.Context, rng Range) (<-chan Item, <-chan error) {
	items := make(chan Item)
	errs := make(chan error, 1)

	blocks, fetchErrs := s.Fetcher.FetchBlocks(ctx, rng)

	go func() {
		defer close(items)
		for {
			select {
			case block, ok := <-blocks:
				if !ok {
					select {
					case err := <-fetchErrs:
						if err != nil {
							errs <- err
						}
					default:
					}
					return
				}
				if err := emitBlock(ctx, block, items); err != nil {
					errs <- err
					return
				}
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return items, errs
}

func emitBlock(ctx context.Context, block Block, items chan<- Item) error {
	for _, nf := range block.SaplingSpends {
		select {
		case items <- Item{Pool: base.Sapling, Nullifier: nf}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for _, nf := range block.OrchardActions {
		select {
		case items <- Item{Pool: base.Orchard, Nullifier: nf}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
