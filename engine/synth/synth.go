// Package synth translates mined template attributes into multi-layer
// effect recipes through fixed lookup tables. Synthesis is a pure mapping:
// unmapped categorical values fail loudly instead of being defaulted, since
// a silent default would corrupt downstream affinity scoring.
package synth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/mined"
	"github.com/luxweave/luxweave/engine/recipe"
)

// Per-template-type rendering defaults for synthesized layers.
var baseDensityByTemplateType = map[string]float64{
	"ambient": 0.3,
	"groove":  0.5,
	"impact":  0.8,
	"peak":    1.0,
}

var accentMixByTemplateType = map[string]float64{
	"ambient": 0.4,
	"groove":  0.5,
	"impact":  0.6,
	"peak":    0.7,
}

// paletteByColorMode fixes the palette roles each color mode draws on.
var paletteByColorMode = map[string][]recipe.Role{
	"warm_blend":     {recipe.RolePrimary, recipe.RoleAccent},
	"cool_blend":     {recipe.RolePrimary, recipe.RoleAccent},
	"complementary":  {recipe.RolePrimary, recipe.RoleAccent, recipe.RoleNeutral},
	"single_hue":     {recipe.RolePrimary},
	"spectrum_cycle": {recipe.RolePrimary, recipe.RoleSecondary, recipe.RoleAccent},
}

// Synthesizer holds the verified mapping tables. Construct once, share
// freely; it is immutable.
type Synthesizer struct{}

// NewSynthesizer verifies table exhaustiveness against the extractor
// vocabulary so a missing mapping is a startup failure, not a runtime
// surprise.
func NewSynthesizer() (*Synthesizer, error) {
	checks := []struct {
		category string
		known    []string
		table    map[string]string
	}{
		{"effect_family", KnownEffectFamilies, effectFamilyToType},
		{"motion_class", KnownMotionClasses, motionClassToVerb},
		{"energy_class", KnownEnergyClasses, energyClassToTemplateType},
		{"color_class", KnownColorClasses, colorClassToMode},
	}
	var missing []string
	for _, check := range checks {
		for _, value := range check.known {
			if _, ok := check.table[value]; !ok {
				missing = append(missing, check.category+":"+value)
			}
		}
	}
	if len(missing) > 0 {
		return nil, core.NewError(nil, core.CodeValidation, map[string]any{
			"missing": strings.Join(missing, ", "),
			"reason":  "mapping tables do not cover the extractor vocabulary",
		})
	}
	for _, templateType := range energyClassToTemplateType {
		if _, ok := baseDensityByTemplateType[templateType]; !ok {
			return nil, core.NewError(nil, core.CodeValidation, map[string]any{
				"missing": "base_density:" + templateType,
			})
		}
		if _, ok := accentMixByTemplateType[templateType]; !ok {
			return nil, core.NewError(nil, core.CodeValidation, map[string]any{
				"missing": "accent_mix:" + templateType,
			})
		}
	}
	for _, colorMode := range colorClassToMode {
		if _, ok := paletteByColorMode[colorMode]; !ok {
			return nil, core.NewError(nil, core.CodeValidation, map[string]any{
				"missing": "palette:" + colorMode,
			})
		}
	}
	return &Synthesizer{}, nil
}

// Synthesize builds a two-layer recipe from a mined template: a base layer
// carrying the effect family and motion, and an accent color overlay shaped
// by the energy and color classes.
func (s *Synthesizer) Synthesize(tpl *mined.Template) (*recipe.EffectRecipe, error) {
	effectType, err := lookup("effect_family", tpl.EffectFamily, effectFamilyToType, tpl.ID)
	if err != nil {
		return nil, err
	}
	motionVerb, err := lookup("motion_class", tpl.MotionClass, motionClassToVerb, tpl.ID)
	if err != nil {
		return nil, err
	}
	templateType, err := lookup("energy_class", tpl.EnergyClass, energyClassToTemplateType, tpl.ID)
	if err != nil {
		return nil, err
	}
	colorMode, err := lookup("color_class", tpl.ColorClass, colorClassToMode, tpl.ID)
	if err != nil {
		return nil, err
	}

	baseDensity := baseDensityByTemplateType[templateType]
	base := &recipe.RecipeLayer{
		EffectType: effectType,
		Params: map[string]*recipe.ParamValue{
			"motion":    recipe.NewLiteralParam(motionVerb),
			"amplitude": amplitudeParam(tpl),
		},
		BlendMode:   recipe.BlendReplace,
		Mix:         1.0,
		Density:     baseDensity,
		VisualDepth: 0,
	}

	accentBlend := recipe.BlendMultiply
	if templateType == "impact" || templateType == "peak" {
		accentBlend = recipe.BlendAdd
	}
	accent := &recipe.RecipeLayer{
		EffectType: "color_overlay",
		Params: map[string]*recipe.ParamValue{
			"color_mode": recipe.NewLiteralParam(colorMode),
			"intensity":  intensityParam(tpl),
		},
		BlendMode:   accentBlend,
		Mix:         accentMixByTemplateType[templateType],
		Density:     baseDensity,
		VisualDepth: 1,
	}

	roles := paletteByColorMode[colorMode]
	palette := make(recipe.PaletteSpec, 0, len(roles))
	for _, role := range roles {
		palette = append(palette, recipe.RoleColor(role))
	}

	lane := tpl.Lane
	if lane == "" {
		lane = templateType
	}
	r, err := recipe.NewEffectRecipe(
		core.ID("mined:"+tpl.ID),
		lane,
		[]*recipe.RecipeLayer{base, accent},
		palette,
		recipe.MinedProvenance(tpl.ID, tpl.Support, tpl.Stability),
	)
	if err != nil {
		return nil, fmt.Errorf("synth: template %q: %w", tpl.ID, err)
	}
	return r, nil
}

// amplitudeParam scales the measured amplitude by the runtime signals the
// template is sensitive to; insensitive templates get a static literal.
func amplitudeParam(tpl *mined.Template) *recipe.ParamValue {
	ampl := formatFloat(tpl.Amplitude)
	switch {
	case tpl.EnergySensitive && tpl.DensitySensitive:
		return recipe.NewDynamicParam("energy * density * " + ampl).WithBounds(0, 1)
	case tpl.EnergySensitive:
		return recipe.NewDynamicParam("energy * " + ampl).WithBounds(0, 1)
	case tpl.DensitySensitive:
		return recipe.NewDynamicParam("density * " + ampl).WithBounds(0, 1)
	default:
		return recipe.NewLiteralParam(tpl.Amplitude)
	}
}

func intensityParam(tpl *mined.Template) *recipe.ParamValue {
	if tpl.EnergySensitive {
		return recipe.NewDynamicParam("energy * 0.6").WithBounds(0, 1)
	}
	return recipe.NewLiteralParam(0.6)
}

func lookup(category, value string, table map[string]string, templateID string) (string, error) {
	mapped, ok := table[value]
	if !ok {
		return "", core.NewError(nil, core.CodeMapping, map[string]any{
			"category": category,
			"value":    value,
			"template": templateID,
		})
	}
	return mapped, nil
}

// formatFloat renders a float with an explicit decimal point so the
// expression type-checks as a double.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
