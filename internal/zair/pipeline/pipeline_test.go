package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/zair/internal/zair/airdropconfig"
	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/nullifiersrc"
	"github.com/eigerco/zair/internal/zair/signer"
	"github.com/eigerco/zair/internal/zair/zkbackend"
)

func nf(v byte) base.Nullifier {
	var n base.Nullifier
	n[base.Size-1] = v
	return n
}

// memSource is a fixed in-memory nullifiersrc.Source for tests: it streams
// the same items regardless of rng.
type memSource struct {
	items []nullifiersrc.Item
}

func (m memSource) Stream(ctx context.Context, rng nullifiersrc.Range) (<-chan nullifiersrc.Item, <-chan error) {
	items := make(chan nullifiersrc.Item, len(m.items))
	errs := make(chan error, 1)
	for _, it := range m.items {
		items <- it
	}
	close(items)
	close(errs)
	return items, errs
}

type fixedScanner struct {
	notes []ScannedNote
}

func (f fixedScanner) ScanNotes(ctx context.Context, rng nullifiersrc.Range) ([]ScannedNote, error) {
	return f.notes, nil
}

func TestEndToEndClaimPipelineSapling(t *testing.T) {
	ctx := context.Background()
	src := memSource{items: []nullifiersrc.Item{
		{Pool: base.Sapling, Nullifier: nf(1)},
		{Pool: base.Sapling, Nullifier: nf(2)},
		{Pool: base.Sapling, Nullifier: nf(3)},
	}}
	rng := nullifiersrc.Range{Start: 0, End: 100}

	var saplingSnapshot bytes.Buffer
	buildResult, err := ConfigBuild(ctx, ConfigBuildParams{
		Source:        src,
		Range:         rng,
		SaplingOut:    &saplingSnapshot,
		HidingFactor:  airdropconfig.HidingFactor{},
		SaplingScheme: airdropconfig.SchemeNative,
	})
	require.NoError(t, err)
	require.True(t, buildResult.Configuration.SaplingEnabled())
	require.False(t, buildResult.Configuration.OrchardEnabled())
	require.NotEmpty(t, saplingSnapshot.Bytes())

	scanner := fixedScanner{notes: []ScannedNote{
		{
			Pool:            base.Sapling,
			Nullifier:       nf(5),
			NoteCommitment:  nf(9),
			NotePosition:    7,
			HidingNullifier: nf(2),
			BlockHeight:     100,
		},
	}}

	prepared, err := ClaimPrepare(ctx, ClaimPrepareParams{
		Config:  buildResult.Configuration,
		Source:  src,
		Scanner: scanner,
		Range:   rng,
	})
	require.NoError(t, err)
	require.Len(t, prepared.Pools[base.Sapling.String()], 1)

	baseKey := make([]byte, 32)
	baseKey[0] = 0x42

	proofs, secrets, err := ClaimProve(ctx, ClaimProveParams{
		Config:   buildResult.Configuration,
		Prepared: prepared,
		Prover:   zkbackend.Mock{},
		BaseKey:  baseKey,
	})
	require.NoError(t, err)
	require.Len(t, secrets.Secrets, 1)

	submission, err := ClaimSign(ClaimSignParams{
		Config:  buildResult.Configuration,
		Proofs:  proofs,
		Secrets: secrets,
		BaseKey: baseKey,
		MsgHash: []byte("message hash"),
		Signer:  signer.Default{},
	})
	require.NoError(t, err)
	require.Len(t, submission.Signatures, 1)

	require.NoError(t, VerifyProofs(ctx, VerifyProofsParams{
		Config:   buildResult.Configuration,
		Proofs:   proofs,
		Verifier: zkbackend.Mock{},
	}))
	require.NoError(t, VerifySignatures(VerifySignaturesParams{
		Config:     buildResult.Configuration,
		Submission: submission,
		MsgHash:    []byte("message hash"),
	}))
}

func TestVerifySignaturesRejectsTamperedMessage(t *testing.T) {
	ctx := context.Background()
	src := memSource{items: []nullifiersrc.Item{
		{Pool: base.Sapling, Nullifier: nf(1)},
	}}
	rng := nullifiersrc.Range{Start: 0, End: 10}

	var saplingSnapshot bytes.Buffer
	buildResult, err := ConfigBuild(ctx, ConfigBuildParams{
		Source:        src,
		Range:         rng,
		SaplingOut:    &saplingSnapshot,
		SaplingScheme: airdropconfig.SchemeNative,
	})
	require.NoError(t, err)

	scanner := fixedScanner{notes: []ScannedNote{
		{Pool: base.Sapling, Nullifier: nf(5), NoteCommitment: nf(9), NotePosition: 1, HidingNullifier: nf(2)},
	}}
	prepared, err := ClaimPrepare(ctx, ClaimPrepareParams{Config: buildResult.Configuration, Source: src, Scanner: scanner, Range: rng})
	require.NoError(t, err)

	baseKey := make([]byte, 32)
	baseKey[0] = 0x07

	proofs, secrets, err := ClaimProve(ctx, ClaimProveParams{Config: buildResult.Configuration, Prepared: prepared, Prover: zkbackend.Mock{}, BaseKey: baseKey})
	require.NoError(t, err)

	submission, err := ClaimSign(ClaimSignParams{Config: buildResult.Configuration, Proofs: proofs, Secrets: secrets, BaseKey: baseKey, MsgHash: []byte("original"), Signer: signer.Default{}})
	require.NoError(t, err)

	err = VerifySignatures(VerifySignaturesParams{Config: buildResult.Configuration, Submission: submission, MsgHash: []byte("tampered")})
	require.Error(t, err)
}
