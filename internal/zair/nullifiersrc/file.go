package nullifiersrc

import (
	"context"
	"os"

	"github.com/eigerco/zair/internal/zair/base"
)

// FileSource reads nullifiers from zero, one, or two flat binary files, each
// a headerless concatenation of 32-byte values. A pool whose path is empty
// yields an empty subsequence. The snapshot range is not consulted: flat
// files carry no block-height information, so the whole file is always
// streamed.
type FileSource struct {
	SaplingPath string
	OrchardPath string
}

func (s *FileSource) Stream(ctx context.Context, _ Range) (<-chan Item, <-chan error) {
	items := make(chan Item)
	errs := make(chan error, 1)

	go func() {
		defer close(items)
		if err := s.streamPool(ctx, base.Sapling, s.SaplingPath, items); err != nil {
			errs <- err
			return
		}
		if err := s.streamPool(ctx, base.Orchard, s.OrchardPath, items); err != nil {
			errs <- err
			return
		}
	}()

	return items, errs
}

func (s *FileSource) streamPool(ctx context.Context, tag base.PoolTag, path string, items chan<- Item) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	nullifiers, err := ReadNullifiers(f)
	if err != nil {
		return err
	}

	for _, nf := range nullifiers {
		select {
		case items <- Item{Pool: tag, Nullifier: nf}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
