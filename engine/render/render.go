// Package render evaluates a recipe against a concrete runtime environment
// into fully resolved per-layer output. Rendering is a pure function of
// (recipe, environment): identical inputs always produce identical results,
// which golden-file show tests rely on.
package render

import (
	"fmt"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/recipe"
)

// Environment is the concrete runtime context a recipe renders against.
type Environment struct {
	Energy  float64                `json:"energy"  yaml:"energy"`
	Density float64                `json:"density" yaml:"density"`
	Palette map[recipe.Role]string `json:"palette" yaml:"palette"`
}

// RenderedLayer is one fully resolved layer: blend mode and mix carried
// over, every parameter evaluated to a concrete value.
type RenderedLayer struct {
	EffectType  string           `json:"effect_type"  yaml:"effect_type"`
	BlendMode   recipe.BlendMode `json:"blend_mode"   yaml:"blend_mode"`
	Mix         float64          `json:"mix"          yaml:"mix"`
	Density     float64          `json:"density"      yaml:"density"`
	VisualDepth int              `json:"visual_depth" yaml:"visual_depth"`
	Params      map[string]any   `json:"params"       yaml:"params"`
}

// Result is the handoff artifact for the lighting-control compiler: every
// layer in original recipe order plus the palette colors actually used.
type Result struct {
	RecipeID core.ID         `json:"recipe_id" yaml:"recipe_id"`
	Layers   []RenderedLayer `json:"layers"    yaml:"layers"`
	Palette  []string        `json:"palette"   yaml:"palette"`
}

// Render resolves every layer of the recipe in layer order. Any evaluation
// or color-resolution failure aborts the whole call; partial output is
// never returned.
func Render(r *recipe.EffectRecipe, env Environment) (*Result, error) {
	layers := make([]RenderedLayer, 0, len(r.Layers))
	for i, layer := range r.Layers {
		rendered, err := renderLayer(r.ID, i, layer, env)
		if err != nil {
			return nil, err
		}
		layers = append(layers, rendered)
	}
	palette, err := resolvePalette(r, env)
	if err != nil {
		return nil, err
	}
	return &Result{RecipeID: r.ID, Layers: layers, Palette: palette}, nil
}

func renderLayer(recipeID core.ID, index int, layer *recipe.RecipeLayer, env Environment) (RenderedLayer, error) {
	params := make(map[string]any, len(layer.Params))
	for name, param := range layer.Params {
		value, err := evaluateParam(param, env)
		if err != nil {
			return RenderedLayer{}, core.NewError(err, core.CodeEvaluation, map[string]any{
				"recipe":     recipeID.String(),
				"layer":      index,
				"param":      name,
				"expression": param.Expression,
			})
		}
		params[name] = value
	}
	return RenderedLayer{
		EffectType:  layer.EffectType,
		BlendMode:   layer.BlendMode,
		Mix:         layer.Mix,
		Density:     layer.Density,
		VisualDepth: layer.VisualDepth,
		Params:      params,
	}, nil
}

// evaluateParam resolves one parameter: literals pass through untouched,
// dynamic expressions run against the environment, and numeric results are
// silently clamped into declared bounds. Mined expressions can overshoot at
// extreme energy/density, so out-of-bounds is a tolerated condition here,
// not an error.
func evaluateParam(param *recipe.ParamValue, env Environment) (any, error) {
	var value any
	if param.IsDynamic() {
		prg, err := param.Program()
		if err != nil {
			return nil, err
		}
		value, err = prg.Eval(env.Energy, env.Density)
		if err != nil {
			return nil, err
		}
	} else {
		value = param.Literal
	}
	if num, ok := value.(float64); ok {
		if param.Min != nil && num < *param.Min {
			num = *param.Min
		}
		if param.Max != nil && num > *param.Max {
			num = *param.Max
		}
		return num, nil
	}
	return value, nil
}

// resolvePalette turns every color source into a concrete color. Literal
// colors bypass resolution; an unresolvable role fails the render.
func resolvePalette(r *recipe.EffectRecipe, env Environment) ([]string, error) {
	palette := make([]string, 0, len(r.Palette))
	for i, src := range r.Palette {
		if src.IsLiteral() {
			palette = append(palette, src.Literal)
			continue
		}
		color, ok := env.Palette[src.Role]
		if !ok {
			return nil, core.NewError(nil, core.CodeColorResolution, map[string]any{
				"recipe": r.ID.String(),
				"role":   string(src.Role),
				"index":  i,
			})
		}
		palette = append(palette, color)
	}
	return palette, nil
}

// Describe returns a short human-readable summary, used by the CLI.
func (r *Result) Describe() string {
	return fmt.Sprintf("recipe %s: %d layers, %d palette entries", r.RecipeID, len(r.Layers), len(r.Palette))
}
