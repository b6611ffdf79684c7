package airdropconfig

// Schema returns the canonical JSON Schema for Configuration, printed
// verbatim by the `config schema` subcommand.
func Schema() map[string]any {
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title":   "AirdropConfiguration",
		"type":    "object",
		"required": []string{
			"snapshot_range", "hiding_factor", "sapling_scheme", "orchard_scheme",
		},
		"properties": map[string]any{
			"snapshot_range": map[string]any{
				"type":     "object",
				"required": []string{"start", "end"},
				"properties": map[string]any{
					"start": map[string]any{"type": "integer", "minimum": 0},
					"end":   map[string]any{"type": "integer", "minimum": 0},
				},
			},
			"sapling_merkle_root": map[string]any{"type": "string", "pattern": "^[0-9a-f]{64}$"},
			"orchard_merkle_root": map[string]any{"type": "string", "pattern": "^[0-9a-f]{64}$"},
			"sapling_target_id":   map[string]any{"type": "string", "pattern": "^[0-9a-f]*$"},
			"orchard_target_id":   map[string]any{"type": "string", "pattern": "^[0-9a-f]*$"},
			"hiding_factor": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sapling": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"personalization": map[string]any{"type": "string", "pattern": "^[0-9a-f]{16}$"},
						},
					},
					"orchard": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"domain": map[string]any{"type": "string", "maxLength": 32},
							"tag":    map[string]any{"type": "integer", "minimum": 0, "maximum": 255},
						},
					},
				},
			},
			"sapling_scheme": map[string]any{"type": "string", "enum": []string{"native", "sha256"}},
			"orchard_scheme": map[string]any{"type": "string", "enum": []string{"native", "sha256"}},
		},
		"anyOf": []map[string]any{
			{"required": []string{"sapling_merkle_root"}},
			{"required": []string{"orchard_merkle_root"}},
		},
	}
}
