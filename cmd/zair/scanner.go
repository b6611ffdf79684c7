package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/eigerco/zair/internal/zair/base"
	"github.com/eigerco/zair/internal/zair/nullifiersrc"
	"github.com/eigerco/zair/internal/zair/pipeline"
)

// scannedNoteRecord is the on-disk JSON shape for a pre-scanned note: trial
// decryption against a unified full-viewing key is an external wallet
// capability (it needs the real Sapling/Orchard note-plaintext formats),
// so the CLI consumes its output rather than performing the scan itself.
type scannedNoteRecord struct {
	Pool            string `json:"pool"`
	Nullifier       string `json:"nullifier"`
	NoteCommitment  string `json:"note_commitment"`
	NotePosition    uint64 `json:"note_position"`
	HidingNullifier string `json:"hiding_nullifier"`
	BlockHeight     uint64 `json:"block_height"`
}

// fileNoteScanner implements pipeline.NoteScanner by reading notes a prior
// UFVK-driven wallet scan already found, from a flat JSON array file.
type fileNoteScanner struct {
	Path string
}

func (f fileNoteScanner) ScanNotes(ctx context.Context, rng nullifiersrc.Range) ([]pipeline.ScannedNote, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read notes file: %w", err)
	}

	var records []scannedNoteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse notes file: %w", err)
	}

	notes := make([]pipeline.ScannedNote, 0, len(records))
	for i, r := range records {
		tag, ok := base.ParsePoolTag(r.Pool)
		if !ok {
			return nil, fmt.Errorf("notes file entry %d: unknown pool %q", i, r.Pool)
		}
		nullifier, err := base.DecodeNullifierHex(tag, r.Nullifier)
		if err != nil {
			return nil, fmt.Errorf("notes file entry %d: nullifier: %w", i, err)
		}
		commitment, err := base.DecodeNullifierHex(tag, r.NoteCommitment)
		if err != nil {
			return nil, fmt.Errorf("notes file entry %d: note_commitment: %w", i, err)
		}
		hidingNF, err := base.DecodeNullifierHex(tag, r.HidingNullifier)
		if err != nil {
			return nil, fmt.Errorf("notes file entry %d: hiding_nullifier: %w", i, err)
		}

		notes = append(notes, pipeline.ScannedNote{
			Pool:            tag,
			Nullifier:       nullifier,
			NoteCommitment:  commitment,
			NotePosition:    r.NotePosition,
			HidingNullifier: hidingNF,
			BlockHeight:     r.BlockHeight,
		})
	}

	return notes, nil
}
