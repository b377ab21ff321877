package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/mined"
	"github.com/luxweave/luxweave/engine/recipe"
	"github.com/luxweave/luxweave/pkg/config"
)

func scoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		FamilyWeight:     0.4,
		LayeringWeight:   0.2,
		DensityWeight:    0.2,
		ComplexityWeight: 0.2,
	}
}

func fingerprint() *mined.StyleFingerprint {
	return &mined.StyleFingerprint{
		Transition: map[string]float64{"pulse_wave": 0.9, "strobe_burst": 0.1},
		Color:      map[string]float64{"warmth": 0.7},
		Timing:     map[string]float64{FeatureDensity: 0.5},
		Layering:   map[string]float64{FeaturePreferredDepth: 0.25, FeatureComplexity: 0.5},
	}
}

func makeRecipe(t *testing.T, id, effectType string, layers int, density float64) *recipe.EffectRecipe {
	t.Helper()
	recipeLayers := make([]*recipe.RecipeLayer, 0, layers)
	for i := 0; i < layers; i++ {
		recipeLayers = append(recipeLayers, &recipe.RecipeLayer{
			EffectType:  effectType,
			Params:      map[string]*recipe.ParamValue{"speed": recipe.NewLiteralParam(0.5)},
			BlendMode:   recipe.BlendReplace,
			Mix:         1.0,
			Density:     density,
			VisualDepth: i,
		})
	}
	r, err := recipe.NewEffectRecipe(core.ID(id), "", recipeLayers, nil, recipe.BuiltinProvenance(id))
	require.NoError(t, err)
	return r
}

func TestNewScorer(t *testing.T) {
	t.Run("Should accept weights summing to one", func(t *testing.T) {
		_, err := NewScorer(scoringConfig())
		assert.NoError(t, err)
	})

	t.Run("Should reject weights not summing to one", func(t *testing.T) {
		cfg := scoringConfig()
		cfg.FamilyWeight = 0.7
		_, err := NewScorer(cfg)
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject negative weights", func(t *testing.T) {
		cfg := scoringConfig()
		cfg.FamilyWeight = -0.2
		cfg.LayeringWeight = 0.8
		_, err := NewScorer(cfg)
		assert.Error(t, err)
	})
}

func TestScore(t *testing.T) {
	scorer, err := NewScorer(scoringConfig())
	require.NoError(t, err)
	fp := fingerprint()

	t.Run("Should prefer recipes matching the fingerprint", func(t *testing.T) {
		preferred := makeRecipe(t, "pulse", "pulse_wave", 2, 0.5)
		disliked := makeRecipe(t, "strobe", "strobe_burst", 2, 0.5)
		assert.Greater(t, scorer.Score(preferred, fp), scorer.Score(disliked, fp))
	})

	t.Run("Should stay within [0,1]", func(t *testing.T) {
		for _, r := range []*recipe.EffectRecipe{
			makeRecipe(t, "a", "pulse_wave", 1, 0.0),
			makeRecipe(t, "b", "strobe_burst", 4, 1.0),
		} {
			score := scorer.Score(r, fp)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})

	t.Run("Should fall back to neutral for unknown effect types", func(t *testing.T) {
		unknown := makeRecipe(t, "u", "mystery_effect", 2, 0.5)
		score := scorer.Score(unknown, fp)
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 1.0)
	})
}

func TestRank(t *testing.T) {
	scorer, err := NewScorer(scoringConfig())
	require.NoError(t, err)
	fp := fingerprint()

	t.Run("Should sort descending by score", func(t *testing.T) {
		recipes := []*recipe.EffectRecipe{
			makeRecipe(t, "strobe", "strobe_burst", 2, 0.5),
			makeRecipe(t, "pulse", "pulse_wave", 2, 0.5),
		}
		ranked := scorer.Rank(recipes, fp)
		require.Len(t, ranked, 2)
		assert.Equal(t, core.ID("pulse"), ranked[0].Recipe.ID)
		assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
	})

	t.Run("Should break score ties by recipe id", func(t *testing.T) {
		recipes := []*recipe.EffectRecipe{
			makeRecipe(t, "zeta", "pulse_wave", 2, 0.5),
			makeRecipe(t, "alpha", "pulse_wave", 2, 0.5),
		}
		ranked := scorer.Rank(recipes, fp)
		require.Len(t, ranked, 2)
		assert.Equal(t, core.ID("alpha"), ranked[0].Recipe.ID)
		assert.Equal(t, ranked[0].Score, ranked[1].Score)
	})
}

func TestBlend(t *testing.T) {
	base := fingerprint()
	accent := &mined.StyleFingerprint{
		Transition: map[string]float64{"pulse_wave": 0.2, "color_wash": 0.8},
		Color:      map[string]float64{"warmth": 0.1},
		Timing:     map[string]float64{FeatureDensity: 0.9},
		Layering:   map[string]float64{FeaturePreferredDepth: 0.75},
	}

	t.Run("Should return base at t=0 and accent at t=1", func(t *testing.T) {
		assert.Empty(t, cmp.Diff(base, Blend(base, accent, 0.0)))
		assert.Empty(t, cmp.Diff(accent, Blend(base, accent, 1.0)))
	})

	t.Run("Should clamp t outside [0,1]", func(t *testing.T) {
		assert.Empty(t, cmp.Diff(base, Blend(base, accent, -0.5)))
		assert.Empty(t, cmp.Diff(accent, Blend(base, accent, 2.0)))
	})

	t.Run("Should interpolate leaves linearly", func(t *testing.T) {
		blended := Blend(base, accent, 0.5)
		assert.InDelta(t, 0.55, blended.Transition["pulse_wave"], 1e-12)
		assert.InDelta(t, 0.4, blended.Color["warmth"], 1e-12)
		assert.InDelta(t, 0.7, blended.Timing[FeatureDensity], 1e-12)
	})

	t.Run("Should keep every interpolated leaf within [0,1]", func(t *testing.T) {
		parameters := gopter.DefaultTestParameters()
		parameters.MinSuccessfulTests = 200
		properties := gopter.NewProperties(parameters)
		properties.Property("blend leaves stay in range", prop.ForAll(
			func(t0, b, a float64) bool {
				baseFP := &mined.StyleFingerprint{Color: map[string]float64{"warmth": b}}
				accentFP := &mined.StyleFingerprint{Color: map[string]float64{"warmth": a}}
				blended := Blend(baseFP, accentFP, t0)
				w := blended.Color["warmth"]
				return w >= 0 && w <= 1
			},
			gen.Float64Range(-1, 2),
			gen.Float64Range(0, 1),
			gen.Float64Range(0, 1),
		))
		properties.TestingRun(t)
	})
}

func TestEvolve(t *testing.T) {
	t.Run("Should shift only the relevant dimensions", func(t *testing.T) {
		fp := fingerprint()
		evolved, err := Evolve(fp, DirectionMoreComplex)
		require.NoError(t, err)
		assert.InDelta(t, 0.65, evolved.Layering[FeatureComplexity], 1e-12)
		assert.InDelta(t, 0.35, evolved.Layering[FeaturePreferredDepth], 1e-12)
		assert.Empty(t, cmp.Diff(fp.Transition, evolved.Transition))
		assert.Empty(t, cmp.Diff(fp.Color, evolved.Color))
		assert.Empty(t, cmp.Diff(fp.Timing, evolved.Timing))
	})

	t.Run("Should not mutate the input fingerprint", func(t *testing.T) {
		fp := fingerprint()
		_, err := Evolve(fp, DirectionWarmer)
		require.NoError(t, err)
		assert.Equal(t, 0.7, fp.Color["warmth"])
	})

	t.Run("Should re-clamp shifted leaves", func(t *testing.T) {
		fp := &mined.StyleFingerprint{Color: map[string]float64{"warmth": 0.95}}
		evolved, err := Evolve(fp, DirectionWarmer)
		require.NoError(t, err)
		assert.Equal(t, 1.0, evolved.Color["warmth"])

		fp2 := &mined.StyleFingerprint{Color: map[string]float64{"warmth": 0.05}}
		evolved2, err := Evolve(fp2, DirectionCooler)
		require.NoError(t, err)
		assert.Equal(t, 0.0, evolved2.Color["warmth"])
	})

	t.Run("Should start missing features from the neutral midpoint", func(t *testing.T) {
		fp := &mined.StyleFingerprint{}
		evolved, err := Evolve(fp, DirectionHigherEnergy)
		require.NoError(t, err)
		assert.InDelta(t, 0.65, evolved.Timing[FeatureDensity], 1e-12)
	})

	t.Run("Should reject unknown directions", func(t *testing.T) {
		_, err := Evolve(fingerprint(), "sideways")
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})
}
