package recipe

import "github.com/luxweave/luxweave/engine/core"

// ProvenanceKind distinguishes curated builtins from mined promotions.
type ProvenanceKind string

const (
	ProvenanceBuiltin ProvenanceKind = "builtin"
	ProvenanceMined   ProvenanceKind = "mined"
)

// Provenance records where a recipe came from. Mined provenance carries the
// quality stats observed during mining for observability; builtin provenance
// carries only the source config key.
type Provenance struct {
	Kind      ProvenanceKind `json:"kind"                yaml:"kind"`
	SourceID  string         `json:"source_id"           yaml:"source_id"`
	Support   int            `json:"support,omitempty"   yaml:"support,omitempty"`
	Stability float64        `json:"stability,omitempty" yaml:"stability,omitempty"`
}

// BuiltinProvenance marks a recipe converted from a curated legacy template.
func BuiltinProvenance(sourceID string) Provenance {
	return Provenance{Kind: ProvenanceBuiltin, SourceID: sourceID}
}

// MinedProvenance marks a recipe promoted from a mined template.
func MinedProvenance(sourceID string, support int, stability float64) Provenance {
	return Provenance{
		Kind:      ProvenanceMined,
		SourceID:  sourceID,
		Support:   support,
		Stability: stability,
	}
}

func (p Provenance) validate() error {
	if p.Kind != ProvenanceBuiltin && p.Kind != ProvenanceMined {
		return core.NewError(nil, core.CodeValidation, map[string]any{
			"kind":   string(p.Kind),
			"reason": "unknown provenance kind",
		})
	}
	if p.SourceID == "" {
		return core.NewError(nil, core.CodeValidation, map[string]any{
			"reason": "provenance requires a source id",
		})
	}
	return nil
}
