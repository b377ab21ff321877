// Package mined holds the validated input shapes produced by the upstream
// feature-extraction stage: mined behavioral templates and style
// fingerprints. This package never creates them from raw analysis data; it
// only decodes and validates what the extractor emits.
package mined

import (
	"context"

	"github.com/luxweave/luxweave/engine/schema"
)

// Template is one mined behavioral pattern with categorical attributes and
// the quality stats observed during mining.
type Template struct {
	ID               string  `json:"id"                yaml:"id"                validate:"required"`
	Lane             string  `json:"lane,omitempty"    yaml:"lane,omitempty"`
	EffectFamily     string  `json:"effect_family"     yaml:"effect_family"     validate:"required"`
	MotionClass      string  `json:"motion_class"      yaml:"motion_class"      validate:"required"`
	EnergyClass      string  `json:"energy_class"      yaml:"energy_class"      validate:"required"`
	ColorClass       string  `json:"color_class"       yaml:"color_class"       validate:"required"`
	Support          int     `json:"support"           yaml:"support"           validate:"gte=0"`
	Stability        float64 `json:"stability"         yaml:"stability"         validate:"gte=0,lte=1"`
	Amplitude        float64 `json:"amplitude"         yaml:"amplitude"         validate:"gte=0"`
	EnergySensitive  bool    `json:"energy_sensitive"  yaml:"energy_sensitive"`
	DensitySensitive bool    `json:"density_sensitive" yaml:"density_sensitive"`
}

// Validate checks the template's field-level invariants.
func (t *Template) Validate(ctx context.Context) error {
	return schema.NewStructValidator(t).Validate(ctx)
}
