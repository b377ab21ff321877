package cli

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/luxweave/luxweave/pkg/config"
)

// PromoteCmd runs the promotion pipeline and prints the per-template report.
func PromoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Promote mined templates and merge the recipe catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := commandContext(cmd)
			if err != nil {
				return err
			}
			builtinDir, err := cmd.Flags().GetString("builtin")
			if err != nil {
				return err
			}
			minedDir, err := cmd.Flags().GetString("mined")
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cat, report, err := buildCatalog(ctx, cfg, builtinDir, minedDir)
			if err != nil {
				return err
			}
			out := map[string]any{
				"report": report,
				"merge":  cat.Report(),
			}
			encoded, err := yaml.Marshal(out)
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
	cmd.Flags().String("builtin", "templates/builtin", "Directory of builtin template YAML files")
	cmd.Flags().String("mined", "templates/mined", "Directory of mined template YAML files")
	return cmd
}
