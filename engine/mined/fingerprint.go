package mined

import (
	"context"
	"maps"

	"github.com/luxweave/luxweave/engine/core"
)

// StyleFingerprint is a four-dimension numeric profile of stylistic
// tendencies. Every leaf score is a scalar in [0,1]. Fingerprints are
// read-only inputs to retrieval and blending.
type StyleFingerprint struct {
	Transition map[string]float64 `json:"transition,omitempty" yaml:"transition,omitempty"`
	Color      map[string]float64 `json:"color,omitempty"      yaml:"color,omitempty"`
	Timing     map[string]float64 `json:"timing,omitempty"     yaml:"timing,omitempty"`
	Layering   map[string]float64 `json:"layering,omitempty"   yaml:"layering,omitempty"`
}

// Dimension names, in canonical order.
const (
	DimTransition = "transition"
	DimColor      = "color"
	DimTiming     = "timing"
	DimLayering   = "layering"
)

// Dimensions returns the profile maps keyed by dimension name. The returned
// maps are the fingerprint's own; callers must not mutate them.
func (f *StyleFingerprint) Dimensions() map[string]map[string]float64 {
	return map[string]map[string]float64{
		DimTransition: f.Transition,
		DimColor:      f.Color,
		DimTiming:     f.Timing,
		DimLayering:   f.Layering,
	}
}

// Clone returns a deep copy.
func (f *StyleFingerprint) Clone() *StyleFingerprint {
	return &StyleFingerprint{
		Transition: maps.Clone(f.Transition),
		Color:      maps.Clone(f.Color),
		Timing:     maps.Clone(f.Timing),
		Layering:   maps.Clone(f.Layering),
	}
}

// Validate checks that every leaf score is within [0,1].
func (f *StyleFingerprint) Validate(_ context.Context) error {
	for dim, profile := range f.Dimensions() {
		for feature, score := range profile {
			if score < 0 || score > 1 {
				return core.NewError(nil, core.CodeValidation, map[string]any{
					"dimension": dim,
					"feature":   feature,
					"score":     score,
					"reason":    "fingerprint leaf out of [0,1]",
				})
			}
		}
	}
	return nil
}
