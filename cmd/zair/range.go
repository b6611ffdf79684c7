package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eigerco/zair/internal/zair/nullifiersrc"
)

// parseSnapshotRange parses the "START..=END" snapshot range format: both
// bounds inclusive, unsigned 64-bit, start <= end.
func parseSnapshotRange(s string) (nullifiersrc.Range, error) {
	parts := strings.SplitN(s, "..=", 2)
	if len(parts) != 2 {
		return nullifiersrc.Range{}, fmt.Errorf("snapshot range %q: want START..=END", s)
	}

	start, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return nullifiersrc.Range{}, fmt.Errorf("snapshot range %q: invalid start: %w", s, err)
	}
	end, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nullifiersrc.Range{}, fmt.Errorf("snapshot range %q: invalid end: %w", s, err)
	}
	if start > end {
		return nullifiersrc.Range{}, fmt.Errorf("snapshot range %q: start must be <= end", s)
	}

	return nullifiersrc.Range{Start: start, End: end}, nil
}
