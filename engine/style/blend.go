package style

import (
	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/mined"
)

// Blend linearly interpolates every numeric leaf of two fingerprints:
// result = base*(1-t) + accent*t, with t clamped to [0,1]. The endpoints
// return exact clones so blend(base, accent, 0) == base and
// blend(base, accent, 1) == accent hold structurally.
func Blend(base, accent *mined.StyleFingerprint, t float64) *mined.StyleFingerprint {
	if t <= 0 {
		return base.Clone()
	}
	if t >= 1 {
		return accent.Clone()
	}
	return &mined.StyleFingerprint{
		Transition: lerpProfile(base.Transition, accent.Transition, t),
		Color:      lerpProfile(base.Color, accent.Color, t),
		Timing:     lerpProfile(base.Timing, accent.Timing, t),
		Layering:   lerpProfile(base.Layering, accent.Layering, t),
	}
}

// lerpProfile interpolates over the key union; a feature missing on one
// side contributes 0 from that side.
func lerpProfile(base, accent map[string]float64, t float64) map[string]float64 {
	if base == nil && accent == nil {
		return nil
	}
	out := make(map[string]float64, max(len(base), len(accent)))
	for key, b := range base {
		out[key] = clamp01(b * (1 - t))
	}
	for key, a := range accent {
		out[key] = clamp01(out[key] + a*t)
	}
	return out
}

// Direction names a fixed stylistic shift.
type Direction string

const (
	DirectionMoreComplex  Direction = "more_complex"
	DirectionSimpler      Direction = "simpler"
	DirectionWarmer       Direction = "warmer"
	DirectionCooler       Direction = "cooler"
	DirectionHigherEnergy Direction = "higher_energy"
	DirectionCalmer       Direction = "calmer"
)

// directionDeltas maps each direction to the per-dimension feature shifts
// it applies. Dimensions not listed stay untouched.
var directionDeltas = map[Direction]map[string]map[string]float64{
	DirectionMoreComplex: {
		mined.DimLayering: {FeatureComplexity: 0.15, FeaturePreferredDepth: 0.1},
	},
	DirectionSimpler: {
		mined.DimLayering: {FeatureComplexity: -0.15, FeaturePreferredDepth: -0.1},
	},
	DirectionWarmer: {
		mined.DimColor: {"warmth": 0.2},
	},
	DirectionCooler: {
		mined.DimColor: {"warmth": -0.2},
	},
	DirectionHigherEnergy: {
		mined.DimTiming: {FeatureDensity: 0.15, "tempo_bias": 0.1},
	},
	DirectionCalmer: {
		mined.DimTiming: {FeatureDensity: -0.15, "tempo_bias": -0.1},
	},
}

// Evolve applies a named delta to the relevant dimensions of a fingerprint
// and re-clamps every shifted leaf to [0,1]. Features the fingerprint does
// not carry yet start from the neutral midpoint before the shift.
func Evolve(fp *mined.StyleFingerprint, direction Direction) (*mined.StyleFingerprint, error) {
	deltas, ok := directionDeltas[direction]
	if !ok {
		return nil, core.NewError(nil, core.CodeValidation, map[string]any{
			"direction": string(direction),
			"reason":    "unknown evolution direction",
		})
	}
	out := fp.Clone()
	dims := map[string]*map[string]float64{
		mined.DimTransition: &out.Transition,
		mined.DimColor:      &out.Color,
		mined.DimTiming:     &out.Timing,
		mined.DimLayering:   &out.Layering,
	}
	for dim, features := range deltas {
		profile := dims[dim]
		if *profile == nil {
			*profile = make(map[string]float64, len(features))
		}
		for feature, delta := range features {
			current, present := (*profile)[feature]
			if !present {
				current = neutralScore
			}
			(*profile)[feature] = clamp01(current + delta)
		}
	}
	return out, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
