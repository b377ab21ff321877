package cli

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/luxweave/luxweave/pkg/config"
)

// CatalogCmd lists the merged catalog's planner-facing metadata.
func CatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build the catalog and list recipe metadata",
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
			lane, err := cmd.Flags().GetString("lane")
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cat, _, err := buildCatalog(ctx, cfg, builtinDir, minedDir)
			if err != nil {
				return err
			}
			meta := cat.Metadata()
			if lane != "" {
				recipes := cat.ListByLane(lane)
				filtered := meta[:0]
				for _, m := range meta {
					for _, r := range recipes {
						if r.ID == m.ID {
							filtered = append(filtered, m)
							break
						}
					}
				}
				meta = filtered
			}
			encoded, err := yaml.Marshal(meta)
			if err != nil {
				return fmt.Errorf("encode metadata: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
	cmd.Flags().String("builtin", "templates/builtin", "Directory of builtin template YAML files")
	cmd.Flags().String("mined", "templates/mined", "Directory of mined template YAML files")
	cmd.Flags().String("lane", "", "Only list recipes in this lane")
	return cmd
}
