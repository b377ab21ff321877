package builtin

import (
	"fmt"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/recipe"
)

// ConvertTemplate maps a legacy flat template onto exactly one replace layer
// at full mix. The conversion is deterministic: converting the same template
// twice yields structurally identical recipes.
func ConvertTemplate(tpl *Template) (*recipe.EffectRecipe, error) {
	params := make(map[string]*recipe.ParamValue, len(tpl.Params))
	for name, value := range tpl.Params {
		params[name] = recipe.NewLiteralParam(normalizeLiteral(value))
	}
	layer := &recipe.RecipeLayer{
		EffectType:  tpl.EffectType,
		Params:      params,
		BlendMode:   recipe.BlendReplace,
		Mix:         1.0,
		Density:     1.0,
		VisualDepth: 0,
	}
	palette := make(recipe.PaletteSpec, 0, len(tpl.Colors))
	for _, raw := range tpl.Colors {
		src, err := recipe.ParseColorSource(raw)
		if err != nil {
			return nil, core.NewError(err, core.CodeValidation, map[string]any{
				"template": tpl.ID,
				"color":    raw,
			})
		}
		palette = append(palette, src)
	}
	opts := []recipe.Option{}
	if len(tpl.ModelAffinity) > 0 {
		opts = append(opts, recipe.WithModelAffinity(tpl.ModelAffinity))
	}
	r, err := recipe.NewEffectRecipe(
		core.ID(tpl.ID),
		tpl.Lane,
		[]*recipe.RecipeLayer{layer},
		palette,
		recipe.BuiltinProvenance(tpl.ID),
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("builtin: convert template %q: %w", tpl.ID, err)
	}
	return r, nil
}

// normalizeLiteral collapses YAML's integer decode onto float64 so converted
// recipes compare structurally regardless of how the number was written.
func normalizeLiteral(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return value
	}
}
