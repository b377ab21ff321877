// Package catalog merges builtin and promoted recipes into one addressable
// collection. A catalog is built once per pipeline run by Merge and is
// read-only afterwards, so concurrent readers need no coordination.
package catalog

import (
	"context"
	"fmt"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/recipe"
	"github.com/luxweave/luxweave/pkg/logger"
)

// Conflict records a promoted recipe dropped because a builtin already owns
// its id.
type Conflict struct {
	ID       core.ID `json:"id"`
	SourceID string  `json:"source_id"`
}

// MergeReport summarizes a merge: how many entries landed and which
// promoted entries were dropped.
type MergeReport struct {
	Builtins  int        `json:"builtins"`
	Promoted  int        `json:"promoted"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// Catalog is the merged recipe collection with a secondary lane index.
type Catalog struct {
	recipes map[core.ID]*recipe.EffectRecipe
	byLane  map[string][]core.ID
	order   []core.ID
	report  MergeReport
}

// Merge builds a catalog: builtins are inserted first, promoted second. On
// an id collision the promoted entry is rejected and recorded as a conflict;
// builtins are the curated fallback and are never displaced.
func Merge(ctx context.Context, builtins, promoted []*recipe.EffectRecipe) (*Catalog, error) {
	log := logger.FromContext(ctx)
	c := &Catalog{
		recipes: make(map[core.ID]*recipe.EffectRecipe, len(builtins)+len(promoted)),
		byLane:  make(map[string][]core.ID),
	}
	for i, r := range builtins {
		if r == nil {
			return nil, core.NewError(nil, core.CodeValidation, map[string]any{
				"reason": fmt.Sprintf("builtin entry %d is nil", i),
			})
		}
		if _, exists := c.recipes[r.ID]; exists {
			return nil, core.NewError(nil, core.CodeConflict, map[string]any{
				"id":     r.ID.String(),
				"reason": "duplicate id within builtins",
			})
		}
		c.insert(r)
		c.report.Builtins++
	}
	for i, r := range promoted {
		if r == nil {
			return nil, core.NewError(nil, core.CodeValidation, map[string]any{
				"reason": fmt.Sprintf("promoted entry %d is nil", i),
			})
		}
		if existing, exists := c.recipes[r.ID]; exists {
			c.report.Conflicts = append(c.report.Conflicts, Conflict{
				ID:       r.ID,
				SourceID: r.Provenance.SourceID,
			})
			log.Warn("catalog merge conflict, builtin wins",
				"id", r.ID.String(),
				"existing_kind", string(existing.Provenance.Kind),
				"dropped_source", r.Provenance.SourceID,
			)
			continue
		}
		c.insert(r)
		c.report.Promoted++
	}
	log.Info("catalog merged",
		"builtins", c.report.Builtins,
		"promoted", c.report.Promoted,
		"conflicts", len(c.report.Conflicts),
	)
	return c, nil
}

func (c *Catalog) insert(r *recipe.EffectRecipe) {
	c.recipes[r.ID] = r
	c.order = append(c.order, r.ID)
	if r.Lane != "" {
		c.byLane[r.Lane] = append(c.byLane[r.Lane], r.ID)
	}
}

// Report returns the merge report.
func (c *Catalog) Report() MergeReport {
	return c.report
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// HasRecipe reports whether id is present.
func (c *Catalog) HasRecipe(id core.ID) bool {
	_, ok := c.recipes[id]
	return ok
}

// GetRecipe returns the recipe for id or a NOT_FOUND error.
func (c *Catalog) GetRecipe(id core.ID) (*recipe.EffectRecipe, error) {
	r, ok := c.recipes[id]
	if !ok {
		return nil, core.NewError(nil, core.CodeNotFound, map[string]any{
			"id":         id.String(),
			"suggestion": "verify the recipe id against the merged catalog",
		})
	}
	return r, nil
}

// ListByLane returns the recipes of a lane in catalog insertion order,
// builtins first. Unknown lanes return an empty list, not an error.
func (c *Catalog) ListByLane(lane string) []*recipe.EffectRecipe {
	ids := c.byLane[lane]
	out := make([]*recipe.EffectRecipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.recipes[id])
	}
	return out
}

// List returns every recipe in insertion order.
func (c *Catalog) List() []*recipe.EffectRecipe {
	out := make([]*recipe.EffectRecipe, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.recipes[id])
	}
	return out
}

// Lanes returns the lane tags present in the catalog, in first-seen order.
func (c *Catalog) Lanes() []string {
	seen := make(map[string]bool, len(c.byLane))
	lanes := make([]string, 0, len(c.byLane))
	for _, id := range c.order {
		lane := c.recipes[id].Lane
		if lane == "" || seen[lane] {
			continue
		}
		seen[lane] = true
		lanes = append(lanes, lane)
	}
	return lanes
}
