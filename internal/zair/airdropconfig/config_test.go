package airdropconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequiresAtLeastOneRoot(t *testing.T) {
	_, err := Build(BuildParams{SnapshotRange: SnapshotRange{Start: 0, End: 10}})
	require.Error(t, err)
	var cpe *ConfigParseError
	require.ErrorAs(t, err, &cpe)
}

func TestBuildRejectsInvertedRange(t *testing.T) {
	_, err := Build(BuildParams{
		SnapshotRange: SnapshotRange{Start: 10, End: 1},
		SaplingRoot:   make([]byte, 32),
		SaplingScheme: SchemeNative,
	})
	require.Error(t, err)
	var rie *RangeInvalidError
	require.ErrorAs(t, err, &rie)
}

func TestConfigRoundTripsThroughJSON(t *testing.T) {
	cfg, err := Build(BuildParams{
		SnapshotRange: SnapshotRange{Start: 0, End: 100},
		SaplingRoot:   make([]byte, 32),
		OrchardRoot:   make([]byte, 32),
		SaplingScheme: SchemeNative,
		OrchardScheme: SchemeSHA256,
	})
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	restored, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, cfg.SnapshotRange, restored.SnapshotRange)
	assert.True(t, restored.SaplingEnabled())
	assert.True(t, restored.OrchardEnabled())
	assert.Equal(t, SchemeSHA256, restored.OrchardScheme)
}

func TestParseRejectsMissingRoots(t *testing.T) {
	_, err := Parse([]byte(`{"snapshot_range":{"start":0,"end":1}}`))
	require.Error(t, err)
}

func TestSchemaIsWellFormed(t *testing.T) {
	s := Schema()
	assert.Equal(t, "AirdropConfiguration", s["title"])
}
