// Package builtin converts hand-authored legacy flat templates into effect
// recipes. Legacy templates predate layering: each carries a single flat
// parameter set and an optional color list, nothing else.
package builtin

import (
	"context"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/schema"
)

// Template is one legacy flat template record.
type Template struct {
	ID            string             `json:"id"                       yaml:"id"                       validate:"required"`
	Lane          string             `json:"lane,omitempty"           yaml:"lane,omitempty"`
	EffectType    string             `json:"effect_type"              yaml:"effect_type"              validate:"required"`
	Params        map[string]any     `json:"params"                   yaml:"params"`
	Colors        []string           `json:"colors,omitempty"         yaml:"colors,omitempty"`
	ModelAffinity map[string]float64 `json:"model_affinity,omitempty" yaml:"model_affinity,omitempty"`
	Description   string             `json:"description,omitempty"    yaml:"description,omitempty"`
}

// Validate checks the template's field-level invariants.
func (t *Template) Validate(ctx context.Context) error {
	if err := schema.NewStructValidator(t).Validate(ctx); err != nil {
		return err
	}
	if len(t.Params) == 0 {
		return core.NewError(nil, core.CodeValidation, map[string]any{
			"template": t.ID,
			"reason":   "legacy template requires at least one parameter",
		})
	}
	return nil
}
