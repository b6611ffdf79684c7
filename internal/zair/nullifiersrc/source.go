// Package nullifiersrc streams tagged nullifiers from a chain source and
// persists the partitioned, sorted result as raw byte snapshots.
package nullifiersrc

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/eigerco/zair/internal/zair/base"
)

// Range is an inclusive snapshot block-height range.
type Range struct {
	Start, End uint64
}

// Item is one tagged nullifier observed in the chain stream.
type Item struct {
	Pool      base.PoolTag
	Nullifier base.Nullifier
}

// Source streams tagged nullifiers for a snapshot range. Implementations
// must close the item channel when the stream ends and send at most one
// error; a sent error means no further items follow. Cancelling ctx is the
// documented way to stop consuming early.
type Source interface {
	Stream(ctx context.Context, rng Range) (<-chan Item, <-chan error)
}

// InvalidLengthError reports a stream item whose nullifier value was not
// exactly 32 bytes.
type InvalidLengthError struct {
	Got int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("nullifiersrc: invalid nullifier length: got %d bytes, want %d", e.Got, base.Size)
}

// InvalidSnapshotLengthError reports a persisted snapshot whose total byte
// length is not a multiple of 32.
type InvalidSnapshotLengthError struct {
	TotalLen int
}

func (e *InvalidSnapshotLengthError) Error() string {
	return fmt.Sprintf("nullifiersrc: snapshot length %d is not a multiple of %d", e.TotalLen, base.Size)
}

// PartitionByPool drains src for rng into per-pool in-memory buffers. The
// first stream error aborts the drain and is returned; no partial result is
// returned alongside it.
func PartitionByPool(ctx context.Context, src Source, rng Range) (map[base.PoolTag][]base.Nullifier, error) {
	items, errs := src.Stream(ctx, rng)
	buffers := map[base.PoolTag][]base.Nullifier{
		base.Sapling: nil,
		base.Orchard: nil,
	}

	for {
		select {
		case item, ok := <-items:
			if !ok {
				select {
				case err := <-errs:
					if err != nil {
						return nil, err
					}
				default:
				}
				return buffers, nil
			}
			buffers[item.Pool] = append(buffers[item.Pool], item.Nullifier)
		case err := <-errs:
			if err != nil {
				return nil, err
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// WriteNullifiers writes the raw 32-byte encoding of every nullifier in set,
// in set's iteration order (already sorted and deduplicated by
// construction).
func WriteNullifiers(w io.Writer, set *base.Set) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < set.Len(); i++ {
		nf := set.At(i)
		if _, err := bw.Write(nf.Bytes()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadNullifiers reads a snapshot written by WriteNullifiers. It rejects any
// length that is not a multiple of 32 bytes and performs no per-element
// validation; callers that cannot trust the producer should re-canonicalise
// (see pool.Canonicalise) before use.
func ReadNullifiers(r io.Reader) ([]base.Nullifier, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%base.Size != 0 {
		return nil, &InvalidSnapshotLengthError{TotalLen: len(data)}
	}

	out := make([]base.Nullifier, len(data)/base.Size)
	for i := range out {
		out[i] = base.FromBytes(data[i*base.Size : (i+1)*base.Size])
	}
	return out, nil
}
