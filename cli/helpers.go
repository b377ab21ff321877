package cli

import (
	"context"
	"fmt"

	"github.com/luxweave/luxweave/engine/builtin"
	"github.com/luxweave/luxweave/engine/catalog"
	"github.com/luxweave/luxweave/engine/mined"
	"github.com/luxweave/luxweave/engine/promote"
	"github.com/luxweave/luxweave/engine/synth"
	"github.com/luxweave/luxweave/pkg/config"
)

// buildCatalog runs the full build: load builtins, load and promote mined
// templates, merge. It returns the catalog and the promotion report.
func buildCatalog(ctx context.Context, cfg *config.Config, builtinDir, minedDir string) (*catalog.Catalog, *promote.Report, error) {
	builtinTemplates, err := builtin.LoadTemplates(ctx, builtinDir)
	if err != nil {
		return nil, nil, err
	}
	builtins, err := builtin.ConvertAll(builtinTemplates)
	if err != nil {
		return nil, nil, err
	}

	minedTemplates, err := mined.LoadTemplates(ctx, minedDir)
	if err != nil {
		return nil, nil, err
	}
	synthesizer, err := synth.NewSynthesizer()
	if err != nil {
		return nil, nil, err
	}
	pipeline, err := promote.NewPipeline(cfg.Promotion, synthesizer)
	if err != nil {
		return nil, nil, err
	}
	report, err := pipeline.Run(ctx, minedTemplates)
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Merge(ctx, builtins, report.Promoted)
	if err != nil {
		return nil, nil, fmt.Errorf("merge catalog: %w", err)
	}
	return cat, report, nil
}
