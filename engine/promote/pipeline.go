// Package promote turns a batch of mined templates into promoted recipes
// through three full-batch stages: quality gating, cluster deduplication,
// and synthesis. The pipeline is deterministic and idempotent for a given
// input snapshot; a single bad template never aborts the batch.
package promote

import (
	"context"
	"fmt"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/mined"
	"github.com/luxweave/luxweave/engine/recipe"
	"github.com/luxweave/luxweave/engine/synth"
	"github.com/luxweave/luxweave/pkg/config"
	"github.com/luxweave/luxweave/pkg/logger"
)

// Status is the per-template pipeline outcome.
type Status string

const (
	StatusPromoted        Status = "promoted"
	StatusRejectedQuality Status = "rejected_quality"
	StatusRejectedDedup   Status = "rejected_dedup"
	StatusRejectedMapping Status = "rejected_mapping"
)

// Outcome records what happened to one template and why.
type Outcome struct {
	TemplateID string `json:"template_id"`
	Status     Status `json:"status"`
	Reason     string `json:"reason,omitempty"`
}

// Report aggregates the batch result: one outcome per input template in
// input order, plus the promoted recipes in deterministic order.
type Report struct {
	RunID    core.ID                `json:"run_id"`
	Outcomes []Outcome              `json:"outcomes"`
	Promoted []*recipe.EffectRecipe `json:"promoted"`
}

// CountByStatus tallies outcomes per status.
func (r *Report) CountByStatus() map[Status]int {
	counts := make(map[Status]int, 4)
	for _, o := range r.Outcomes {
		counts[o.Status]++
	}
	return counts
}

// clusterKey is the similarity key for dedup: templates sharing effect
// family, motion class, and color class describe the same visual idea.
type clusterKey struct {
	family string
	motion string
	color  string
}

// Pipeline runs promotion with fixed thresholds and a verified synthesizer.
type Pipeline struct {
	cfg   config.PromotionConfig
	synth *synth.Synthesizer
}

func NewPipeline(cfg config.PromotionConfig, synthesizer *synth.Synthesizer) (*Pipeline, error) {
	if cfg.MinSupport < 0 || cfg.MinStability < 0 || cfg.MinStability > 1 {
		return nil, core.NewError(nil, core.CodeValidation, map[string]any{
			"min_support":   cfg.MinSupport,
			"min_stability": cfg.MinStability,
			"reason":        "promotion thresholds out of range",
		})
	}
	if synthesizer == nil {
		return nil, core.NewError(nil, core.CodeValidation, map[string]any{
			"reason": "pipeline requires a synthesizer",
		})
	}
	return &Pipeline{cfg: cfg, synth: synthesizer}, nil
}

// Run executes the three stages over the batch. Stage boundaries are
// full-batch barriers; within a stage, templates are independent.
func (p *Pipeline) Run(ctx context.Context, batch []*mined.Template) (*Report, error) {
	runID := core.MustNewID()
	log := logger.FromContext(ctx).With("run_id", runID.String())
	log.Info("promotion started", "batch_size", len(batch))

	outcomes := make([]Outcome, len(batch))
	position := make(map[*mined.Template]int, len(batch))
	for i, tpl := range batch {
		if tpl == nil {
			return nil, core.NewError(nil, core.CodeValidation, map[string]any{
				"reason": fmt.Sprintf("batch entry %d is nil", i),
			})
		}
		position[tpl] = i
		outcomes[i] = Outcome{TemplateID: tpl.ID}
	}

	// Stage 1: quality gate.
	candidates := make([]*mined.Template, 0, len(batch))
	for _, tpl := range batch {
		if tpl.Support < p.cfg.MinSupport {
			outcomes[position[tpl]].Status = StatusRejectedQuality
			outcomes[position[tpl]].Reason = fmt.Sprintf("support %d below minimum %d", tpl.Support, p.cfg.MinSupport)
			log.Debug("rejected by quality gate", "template", tpl.ID, "support", tpl.Support)
			continue
		}
		if tpl.Stability < p.cfg.MinStability {
			outcomes[position[tpl]].Status = StatusRejectedQuality
			outcomes[position[tpl]].Reason = fmt.Sprintf("stability %v below minimum %v", tpl.Stability, p.cfg.MinStability)
			log.Debug("rejected by quality gate", "template", tpl.ID, "stability", tpl.Stability)
			continue
		}
		candidates = append(candidates, tpl)
	}

	// Stage 2: cluster dedup. Cluster order follows first appearance in the
	// batch; the representative choice is independent of input order.
	clusters := make(map[clusterKey][]*mined.Template)
	clusterOrder := make([]clusterKey, 0, len(candidates))
	for _, tpl := range candidates {
		key := clusterKey{family: tpl.EffectFamily, motion: tpl.MotionClass, color: tpl.ColorClass}
		if _, seen := clusters[key]; !seen {
			clusterOrder = append(clusterOrder, key)
		}
		clusters[key] = append(clusters[key], tpl)
	}
	representatives := make([]*mined.Template, 0, len(clusterOrder))
	for _, key := range clusterOrder {
		group := clusters[key]
		rep := group[0]
		for _, tpl := range group[1:] {
			if preferRepresentative(tpl, rep) {
				rep = tpl
			}
		}
		for _, tpl := range group {
			if tpl != rep {
				outcomes[position[tpl]].Status = StatusRejectedDedup
				outcomes[position[tpl]].Reason = fmt.Sprintf("duplicate of %s", rep.ID)
				log.Debug("rejected by dedup", "template", tpl.ID, "representative", rep.ID)
			}
		}
		representatives = append(representatives, rep)
	}

	// Stage 3: synthesis. Mapping failures remove the template but never
	// abort the batch.
	promoted := make([]*recipe.EffectRecipe, 0, len(representatives))
	for _, tpl := range representatives {
		r, err := p.synth.Synthesize(tpl)
		if err != nil {
			outcomes[position[tpl]].Status = StatusRejectedMapping
			outcomes[position[tpl]].Reason = err.Error()
			log.Warn("rejected by mapping", "template", tpl.ID, "error", err)
			continue
		}
		outcomes[position[tpl]].Status = StatusPromoted
		promoted = append(promoted, r)
	}

	report := &Report{RunID: runID, Outcomes: outcomes, Promoted: promoted}
	counts := report.CountByStatus()
	log.Info("promotion finished",
		"promoted", counts[StatusPromoted],
		"rejected_quality", counts[StatusRejectedQuality],
		"rejected_dedup", counts[StatusRejectedDedup],
		"rejected_mapping", counts[StatusRejectedMapping],
	)
	return report, nil
}

// preferRepresentative reports whether a should replace b as the cluster
// representative: highest stability, then highest support, then
// lexicographically first id. The order is total, so the choice is
// reproducible regardless of input order.
func preferRepresentative(a, b *mined.Template) bool {
	if a.Stability != b.Stability {
		return a.Stability > b.Stability
	}
	if a.Support != b.Support {
		return a.Support > b.Support
	}
	return a.ID < b.ID
}
