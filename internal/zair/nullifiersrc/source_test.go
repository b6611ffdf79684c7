package nullifiersrc

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/zair/internal/zair/base"
)

func nf(v byte) base.Nullifier {
	var n base.Nullifier
	n[base.Size-1] = v
	return n
}

func TestWriteReadNullifiersRoundTrip(t *testing.T) {
	set := base.New([]base.Nullifier{nf(3), nf(1), nf(2)}, base.ByteOrder)

	var buf bytes.Buffer
	require.NoError(t, WriteNullifiers(&buf, set))

	got, err := ReadNullifiers(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, nf(1), got[0])
	assert.Equal(t, nf(3), got[2])
}

func TestReadNullifiersRejectsBadLength(t *testing.T) {
	_, err := ReadNullifiers(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
	var isle *InvalidSnapshotLengthError
	require.ErrorAs(t, err, &isle)
}

func TestFileSourceStreamsBothPools(t *testing.T) {
	dir := t.TempDir()
	saplingPath := filepath.Join(dir, "sapling.bin")
	orchardPath := filepath.Join(dir, "orchard.bin")

	require.NoError(t, os.WriteFile(saplingPath, append(nf(1).Bytes(), nf(2).Bytes()...), 0o600))
	require.NoError(t, os.WriteFile(orchardPath, nf(9).Bytes(), 0o600))

	src := &FileSource{SaplingPath: saplingPath, OrchardPath: orchardPath}
	buffers, err := PartitionByPool(context.Background(), src, Range{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []base.Nullifier{nf(1), nf(2)}, buffers[base.Sapling])
	assert.ElementsMatch(t, []base.Nullifier{nf(9)}, buffers[base.Orchard])
}

func TestFileSourceOmittedPoolIsEmpty(t *testing.T) {
	dir := t.TempDir()
	saplingPath := filepath.Join(dir, "sapling.bin")
	require.NoError(t, os.WriteFile(saplingPath, nf(1).Bytes(), 0o600))

	src := &FileSource{SaplingPath: saplingPath}
	buffers, err := PartitionByPool(context.Background(), src, Range{})
	require.NoError(t, err)

	assert.Len(t, buffers[base.Sapling], 1)
	assert.Empty(t, buffers[base.Orchard])
}

type stubFetcher struct {
	blocks []Block
}

func (s *stubFetcher) FetchBlocks(ctx context.Context, rng Range) (<-chan Block, <-chan error) {
	out := make(chan Block)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		for _, b := range s.blocks {
			out <- b
		}
	}()
	return out, errs
}

func TestLightNodeSourceTranslatesBlocks(t *testing.T) {
	fetcher := &stubFetcher{blocks: []Block{
		{Height: 1, SaplingSpends: []base.Nullifier{nf(1)}, OrchardActions: []base.Nullifier{nf(2)}},
	}}
	src := &LightNodeSource{Fetcher: fetcher}

	buffers, err := PartitionByPool(context.Background(), src, Range{Start: 1, End: 1})
	require.NoError(t, err)

	assert.Equal(t, []base.Nullifier{nf(1)}, buffers[base.Sapling])
	assert.Equal(t, []base.Nullifier{nf(2)}, buffers[base.Orchard])
}
