// Package style re-ranks catalog recipes against a style fingerprint and
// derives new fingerprints by interpolation and directed evolution.
package style

import (
	"math"
	"sort"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/mined"
	"github.com/luxweave/luxweave/engine/recipe"
	"github.com/luxweave/luxweave/pkg/config"
)

const weightSumTolerance = 1e-9

// Fingerprint feature keys the scorer reads. The transition dimension is
// keyed by effect type; the other dimensions use these fixed features.
const (
	FeaturePreferredDepth = "preferred_depth"
	FeatureComplexity     = "complexity"
	FeatureDensity        = "density"
)

// depthScale and layerScale normalize recipe structure onto [0,1] for
// comparison against fingerprint leaves.
const (
	depthScale = 4.0
	layerScale = 4.0
)

// neutralScore is used when a fingerprint carries no opinion about a
// feature: indifferent, neither match nor mismatch.
const neutralScore = 0.5

// Scorer combines four sub-scores by fixed weights.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer validates the weights (non-negative, summing to 1.0).
func NewScorer(cfg config.ScoringConfig) (*Scorer, error) {
	weights := []float64{cfg.FamilyWeight, cfg.LayeringWeight, cfg.DensityWeight, cfg.ComplexityWeight}
	sum := 0.0
	for _, w := range weights {
		if w < 0 || w > 1 {
			return nil, core.NewError(nil, core.CodeValidation, map[string]any{
				"weight": w,
				"reason": "scoring weight out of [0,1]",
			})
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return nil, core.NewError(nil, core.CodeValidation, map[string]any{
			"sum":    sum,
			"reason": "scoring weights must sum to 1.0",
		})
	}
	return &Scorer{cfg: cfg}, nil
}

// Score rates how well a recipe fits a fingerprint, in [0,1].
func (s *Scorer) Score(r *recipe.EffectRecipe, fp *mined.StyleFingerprint) float64 {
	return s.cfg.FamilyWeight*familyScore(r, fp) +
		s.cfg.LayeringWeight*layeringScore(r, fp) +
		s.cfg.DensityWeight*densityScore(r, fp) +
		s.cfg.ComplexityWeight*complexityScore(r, fp)
}

// Ranked pairs a recipe with its score.
type Ranked struct {
	Recipe *recipe.EffectRecipe
	Score  float64
}

// Rank sorts recipes by descending score; ties break by ascending recipe id
// so the order is total and reproducible.
func (s *Scorer) Rank(recipes []*recipe.EffectRecipe, fp *mined.StyleFingerprint) []Ranked {
	ranked := make([]Ranked, 0, len(recipes))
	for _, r := range recipes {
		ranked = append(ranked, Ranked{Recipe: r, Score: s.Score(r, fp)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Recipe.ID < ranked[j].Recipe.ID
	})
	return ranked
}

// familyScore averages the fingerprint's transition preference over the
// recipe's effect types.
func familyScore(r *recipe.EffectRecipe, fp *mined.StyleFingerprint) float64 {
	types := r.EffectTypes()
	if len(types) == 0 {
		return neutralScore
	}
	sum := 0.0
	for _, effectType := range types {
		if pref, ok := fp.Transition[effectType]; ok {
			sum += pref
		} else {
			sum += neutralScore
		}
	}
	return sum / float64(len(types))
}

func layeringScore(r *recipe.EffectRecipe, fp *mined.StyleFingerprint) float64 {
	preferred, ok := fp.Layering[FeaturePreferredDepth]
	if !ok {
		return neutralScore
	}
	depth := math.Min(float64(r.MaxVisualDepth())/depthScale, 1)
	return 1 - math.Abs(depth-preferred)
}

func densityScore(r *recipe.EffectRecipe, fp *mined.StyleFingerprint) float64 {
	preferred, ok := fp.Timing[FeatureDensity]
	if !ok {
		return neutralScore
	}
	return 1 - math.Abs(r.MeanDensity()-preferred)
}

func complexityScore(r *recipe.EffectRecipe, fp *mined.StyleFingerprint) float64 {
	preferred, ok := fp.Layering[FeatureComplexity]
	if !ok {
		return neutralScore
	}
	count := math.Min(float64(r.LayerCount())/layerScale, 1)
	return 1 - math.Abs(count-preferred)
}
