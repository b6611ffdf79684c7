// Package airdropconfig defines the sealed, write-once configuration that
// commits a snapshot's per-pool Merkle roots, hiding-PRF parameters, and
// value-commitment scheme choice.
package airdropconfig

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/eigerco/zair/internal/zair/base"
)

// Scheme selects the value-commitment scheme a pool's ZK circuit expects.
type Scheme string

const (
	SchemeNative Scheme = "native"
	SchemeSHA256 Scheme = "sha256"
)

func (s Scheme) valid() bool {
	return s == SchemeNative || s == SchemeSHA256
}

// SnapshotRange is the inclusive block-height range a configuration covers.
type SnapshotRange struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

func (r SnapshotRange) validate() error {
	if r.Start > r.End {
		return &RangeInvalidError{Start: r.Start, End: r.End}
	}
	return nil
}

// SaplingHidingFactor carries the Sapling hiding PRF's personalisation.
type SaplingHidingFactor struct {
	// Personalization is exactly 8 bytes, hex-encoded.
	Personalization hexBytes `json:"personalization"`
}

// OrchardHidingFactor carries the Orchard hiding PRF's domain and tag.
type OrchardHidingFactor struct {
	Domain string `json:"domain"`
	Tag    byte   `json:"tag"`
}

// HidingFactor bundles both pools' PRF parameters. Either side defaults to
// its zero value when omitted from JSON; downstream derivation rejects a
// zero personalisation/domain for an enabled pool rather than silently
// deriving with it.
type HidingFactor struct {
	Sapling SaplingHidingFactor `json:"sapling"`
	Orchard OrchardHidingFactor `json:"orchard"`
}

// hexBytes (de)serialises as a lower-case hex JSON string.
type hexBytes []byte

func (h hexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(h))
}

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*h = b
	return nil
}

// Configuration is the sealed airdrop configuration. It is built once via
// Build and is read-only afterward; there is no setter, only reconstruction
// via Build or UnmarshalJSON into a fresh value.
type Configuration struct {
	SnapshotRange     SnapshotRange `json:"snapshot_range"`
	SaplingMerkleRoot *hexBytes     `json:"sapling_merkle_root,omitempty"`
	OrchardMerkleRoot *hexBytes     `json:"orchard_merkle_root,omitempty"`
	HidingFactor      HidingFactor  `json:"hiding_factor"`
	SaplingScheme     Scheme        `json:"sapling_scheme"`
	OrchardScheme     Scheme        `json:"orchard_scheme"`
	// SaplingTargetID and OrchardTargetID are the short byte strings (see
	// GLOSSARY: target-id) that bind this configuration, and therefore
	// every claim sealed against it, to a specific airdrop instance — one
	// per pool since each pool's circuit/binding message is independent.
	// A signature's binding message commits to the target-id of the pool
	// the signed claim belongs to, so a claim prepared against one
	// instance's configuration cannot be replayed against another's.
	SaplingTargetID *hexBytes `json:"sapling_target_id,omitempty"`
	OrchardTargetID *hexBytes `json:"orchard_target_id,omitempty"`
}

// RangeInvalidError reports a snapshot range with start > end.
type RangeInvalidError struct {
	Start, End uint64
}

func (e *RangeInvalidError) Error() string {
	return fmt.Sprintf("airdropconfig: invalid snapshot range [%d, %d]: start must be <= end", e.Start, e.End)
}

// ConfigParseError wraps a configuration that failed required-field or
// schema validation.
type ConfigParseError struct {
	Reason string
}

func (e *ConfigParseError) Error() string {
	return "airdropconfig: " + e.Reason
}

// BuildParams is the input to Build: the raw roots and hiding/scheme
// parameters computed by the pipeline's config-build stage.
type BuildParams struct {
	SnapshotRange   SnapshotRange
	SaplingRoot     []byte // nil if Sapling is not enabled
	OrchardRoot     []byte // nil if Orchard is not enabled
	HidingFactor    HidingFactor
	SaplingScheme   Scheme
	OrchardScheme   Scheme
	SaplingTargetID []byte // nil if Sapling is not enabled or has no target-id
	OrchardTargetID []byte // nil if Orchard is not enabled or has no target-id
}

// Build seals a new Configuration, validating the required-field rules: the
// snapshot range must be well-formed and at least one pool root must be
// present.
func Build(p BuildParams) (*Configuration, error) {
	if err := p.SnapshotRange.validate(); err != nil {
		return nil, err
	}
	if p.SaplingRoot == nil && p.OrchardRoot == nil {
		return nil, &ConfigParseError{Reason: "at least one of sapling_merkle_root/orchard_merkle_root is required"}
	}
	if p.SaplingRoot != nil && !p.SaplingScheme.valid() {
		return nil, &ConfigParseError{Reason: "sapling_scheme must be native or sha256"}
	}
	if p.OrchardRoot != nil && !p.OrchardScheme.valid() {
		return nil, &ConfigParseError{Reason: "orchard_scheme must be native or sha256"}
	}

	cfg := &Configuration{
		SnapshotRange: p.SnapshotRange,
		HidingFactor:  p.HidingFactor,
		SaplingScheme: p.SaplingScheme,
		OrchardScheme: p.OrchardScheme,
	}
	if p.SaplingRoot != nil {
		hb := hexBytes(p.SaplingRoot)
		cfg.SaplingMerkleRoot = &hb
	}
	if p.OrchardRoot != nil {
		hb := hexBytes(p.OrchardRoot)
		cfg.OrchardMerkleRoot = &hb
	}
	if len(p.SaplingTargetID) > 0 {
		hb := hexBytes(p.SaplingTargetID)
		cfg.SaplingTargetID = &hb
	}
	if len(p.OrchardTargetID) > 0 {
		hb := hexBytes(p.OrchardTargetID)
		cfg.OrchardTargetID = &hb
	}
	return cfg, nil
}

// TargetID returns the target-id bound to tag's pool, or nil if the
// configuration carries none for that pool.
func (c *Configuration) TargetID(tag base.PoolTag) []byte {
	switch tag {
	case base.Sapling:
		if c.SaplingTargetID == nil {
			return nil
		}
		return []byte(*c.SaplingTargetID)
	case base.Orchard:
		if c.OrchardTargetID == nil {
			return nil
		}
		return []byte(*c.OrchardTargetID)
	default:
		return nil
	}
}

// MarshalJSON seals the configuration to its stable JSON encoding.
func (c *Configuration) MarshalJSON() ([]byte, error) {
	type alias Configuration
	return json.Marshal((*alias)(c))
}

// Parse loads and validates a configuration from its JSON encoding.
func Parse(data []byte) (*Configuration, error) {
	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigParseError{Reason: err.Error()}
	}
	if err := cfg.SnapshotRange.validate(); err != nil {
		return nil, err
	}
	if cfg.SaplingMerkleRoot == nil && cfg.OrchardMerkleRoot == nil {
		return nil, &ConfigParseError{Reason: "at least one of sapling_merkle_root/orchard_merkle_root is required"}
	}
	if n := len(cfg.HidingFactor.Sapling.Personalization); n != 0 && n != 8 {
		return nil, &ConfigParseError{Reason: fmt.Sprintf("hiding_factor.sapling.personalization must be exactly 8 bytes, got %d", n)}
	}
	return &cfg, nil
}

// SaplingEnabled reports whether the configuration carries a Sapling root.
func (c *Configuration) SaplingEnabled() bool { return c.SaplingMerkleRoot != nil }

// OrchardEnabled reports whether the configuration carries an Orchard root.
func (c *Configuration) OrchardEnabled() bool { return c.OrchardMerkleRoot != nil }
