package recipe

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/schema"
)

// RecipeLayer is one compositional unit of an effect recipe. Layer order
// within a recipe is the rendering order and is fixed at construction.
type RecipeLayer struct {
	EffectType  string                 `json:"effect_type"  yaml:"effect_type"  validate:"required"`
	Params      map[string]*ParamValue `json:"params"       yaml:"params"`
	BlendMode   BlendMode              `json:"blend_mode"   yaml:"blend_mode"`
	Mix         float64                `json:"mix"          yaml:"mix"          validate:"gte=0,lte=1"`
	Density     float64                `json:"density"      yaml:"density"      validate:"gte=0,lte=1"`
	VisualDepth int                    `json:"visual_depth" yaml:"visual_depth" validate:"gte=0"`
}

func (l *RecipeLayer) validate(ctx context.Context, index int) error {
	fail := func(reason string, cause error) error {
		return core.NewError(cause, core.CodeValidation, map[string]any{
			"layer":  index,
			"reason": reason,
		})
	}
	if err := schema.NewStructValidator(l).Validate(ctx); err != nil {
		return fail("layer fields out of range", err)
	}
	if _, err := ParseBlendMode(string(l.BlendMode)); err != nil {
		return fail(fmt.Sprintf("blend mode %q", l.BlendMode), err)
	}
	if len(l.Params) == 0 {
		return fail("layer requires at least one parameter", nil)
	}
	for name, param := range l.Params {
		if param == nil {
			return fail(fmt.Sprintf("parameter %q is nil", name), nil)
		}
		if err := param.validate(name); err != nil {
			return fail(fmt.Sprintf("parameter %q", name), err)
		}
	}
	return nil
}

// StyleMarkers are optional per-recipe stylistic annotations with the same
// four-dimension shape as an extractor style fingerprint.
type StyleMarkers struct {
	Transition map[string]float64 `json:"transition,omitempty" yaml:"transition,omitempty"`
	Color      map[string]float64 `json:"color,omitempty"      yaml:"color,omitempty"`
	Timing     map[string]float64 `json:"timing,omitempty"     yaml:"timing,omitempty"`
	Layering   map[string]float64 `json:"layering,omitempty"   yaml:"layering,omitempty"`
}

// EffectRecipe is the canonical multi-layer effect unit. Recipes are created
// by conversion or synthesis, validated on construction, and never mutated
// afterwards.
type EffectRecipe struct {
	ID                 core.ID            `json:"id"                            yaml:"id"`
	Lane               string             `json:"lane,omitempty"                yaml:"lane,omitempty"`
	Layers             []*RecipeLayer     `json:"layers"                        yaml:"layers"`
	Palette            PaletteSpec        `json:"palette,omitempty"             yaml:"palette,omitempty"`
	Style              *StyleMarkers      `json:"style,omitempty"               yaml:"style,omitempty"`
	Provenance         Provenance         `json:"provenance"                    yaml:"provenance"`
	ModelAffinity      map[string]float64 `json:"model_affinity,omitempty"      yaml:"model_affinity,omitempty"`
	MotifCompatibility map[string]float64 `json:"motif_compatibility,omitempty" yaml:"motif_compatibility,omitempty"`
}

// Option customizes optional recipe fields at construction.
type Option func(*EffectRecipe)

func WithStyleMarkers(markers *StyleMarkers) Option {
	return func(r *EffectRecipe) { r.Style = markers }
}

func WithModelAffinity(affinity map[string]float64) Option {
	return func(r *EffectRecipe) { r.ModelAffinity = maps.Clone(affinity) }
}

func WithMotifCompatibility(compat map[string]float64) Option {
	return func(r *EffectRecipe) { r.MotifCompatibility = maps.Clone(compat) }
}

// NewEffectRecipe validates every invariant and fails fast; a recipe that
// constructs successfully needs no further checking downstream.
func NewEffectRecipe(
	id core.ID,
	lane string,
	layers []*RecipeLayer,
	palette PaletteSpec,
	provenance Provenance,
	opts ...Option,
) (*EffectRecipe, error) {
	r := &EffectRecipe{
		ID:         id,
		Lane:       lane,
		Layers:     slices.Clone(layers),
		Palette:    slices.Clone(palette),
		Provenance: provenance,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *EffectRecipe) validate(ctx context.Context) error {
	fail := func(reason string, cause error) error {
		return core.NewError(cause, core.CodeValidation, map[string]any{
			"recipe": r.ID.String(),
			"reason": reason,
		})
	}
	if r.ID.IsZero() {
		return fail("recipe requires an id", nil)
	}
	if len(r.Layers) == 0 {
		return fail("recipe requires at least one layer", nil)
	}
	for i, layer := range r.Layers {
		if layer == nil {
			return fail(fmt.Sprintf("layer %d is nil", i), nil)
		}
		if err := layer.validate(ctx, i); err != nil {
			return fail(fmt.Sprintf("layer %d", i), err)
		}
	}
	if err := r.Palette.validate(); err != nil {
		return fail("palette", err)
	}
	if err := r.Provenance.validate(); err != nil {
		return fail("provenance", err)
	}
	for model, score := range r.ModelAffinity {
		if score < 0 || score > 1 {
			return fail(fmt.Sprintf("model affinity %q = %v out of [0,1]", model, score), nil)
		}
	}
	for motif, score := range r.MotifCompatibility {
		if score < 0 || score > 1 {
			return fail(fmt.Sprintf("motif compatibility %q = %v out of [0,1]", motif, score), nil)
		}
	}
	return nil
}

// LayerCount returns the number of layers.
func (r *EffectRecipe) LayerCount() int {
	return len(r.Layers)
}

// EffectTypes returns the effect-type tags in layer order.
func (r *EffectRecipe) EffectTypes() []string {
	out := make([]string, len(r.Layers))
	for i, layer := range r.Layers {
		out[i] = layer.EffectType
	}
	return out
}

// MaxVisualDepth returns the deepest stacking position across layers.
func (r *EffectRecipe) MaxVisualDepth() int {
	depth := 0
	for _, layer := range r.Layers {
		if layer.VisualDepth > depth {
			depth = layer.VisualDepth
		}
	}
	return depth
}

// MeanDensity returns the average layer density, 0 for no layers.
func (r *EffectRecipe) MeanDensity() float64 {
	if len(r.Layers) == 0 {
		return 0
	}
	sum := 0.0
	for _, layer := range r.Layers {
		sum += layer.Density
	}
	return sum / float64(len(r.Layers))
}
