package catalog

import (
	"maps"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/recipe"
)

// RecipeMetadata is the read-only per-recipe view handed to the planning
// collaborator: enough to display and choose, never enough to mutate.
type RecipeMetadata struct {
	ID            core.ID               `json:"id"`
	Lane          string                `json:"lane,omitempty"`
	LayerCount    int                   `json:"layer_count"`
	EffectTypes   []string              `json:"effect_types"`
	Provenance    recipe.ProvenanceKind `json:"provenance"`
	ModelAffinity map[string]float64    `json:"model_affinity,omitempty"`
}

// Metadata returns planner-facing metadata for every recipe in insertion
// order. Maps are cloned so the planner cannot reach back into the catalog.
func (c *Catalog) Metadata() []RecipeMetadata {
	out := make([]RecipeMetadata, 0, len(c.order))
	for _, id := range c.order {
		r := c.recipes[id]
		out = append(out, RecipeMetadata{
			ID:            r.ID,
			Lane:          r.Lane,
			LayerCount:    r.LayerCount(),
			EffectTypes:   r.EffectTypes(),
			Provenance:    r.Provenance.Kind,
			ModelAffinity: maps.Clone(r.ModelAffinity),
		})
	}
	return out
}
