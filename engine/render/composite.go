package render

import (
	"math"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/recipe"
)

// Composite combines a layer's output value with the accumulated base value
// underneath it, over normalized [0,1] channels. mix weights how strongly
// the layer asserts itself: mix 0 is always identity.
//
//	replace:  base + (value-base)*mix
//	add:      min(1, base + value*mix)
//	multiply: base*(1-mix) + base*value*mix
//	screen:   base*(1-mix) + (1-(1-base)*(1-value))*mix
//
// Every mode is closed over [0,1] for in-range inputs.
func Composite(mode recipe.BlendMode, base, value, mix float64) (float64, error) {
	mix = clamp(mix, 0, 1)
	switch mode {
	case recipe.BlendReplace:
		return base + (value-base)*mix, nil
	case recipe.BlendAdd:
		return math.Min(1, base+value*mix), nil
	case recipe.BlendMultiply:
		return base*(1-mix) + base*value*mix, nil
	case recipe.BlendScreen:
		screened := 1 - (1-base)*(1-value)
		return base*(1-mix) + screened*mix, nil
	default:
		return 0, core.NewError(nil, core.CodeValidation, map[string]any{
			"blend_mode": string(mode),
			"reason":     "unknown blend mode",
		})
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
