package cli

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/recipe"
	"github.com/luxweave/luxweave/engine/render"
	"github.com/luxweave/luxweave/pkg/config"
)

// RenderCmd renders one catalog recipe against a concrete environment and
// prints the resolved layers as YAML.
func RenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <recipe-id>",
		Short: "Render a recipe against an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			energy, err := cmd.Flags().GetFloat64("energy")
			if err != nil {
				return err
			}
			density, err := cmd.Flags().GetFloat64("density")
			if err != nil {
				return err
			}
			paletteFlags, err := cmd.Flags().GetStringSlice("palette")
			if err != nil {
				return err
			}
			palette, err := parsePaletteFlags(paletteFlags)
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
			r, err := cat.GetRecipe(core.ID(args[0]))
			if err != nil {
				return err
			}
			result, err := render.Render(r, render.Environment{
				Energy:  energy,
				Density: density,
				Palette: palette,
			})
			if err != nil {
				return err
			}
			encoded, err := yaml.Marshal(result)
			if err != nil {
				return fmt.Errorf("encode render result: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
	cmd.Flags().String("builtin", "templates/builtin", "Directory of builtin template YAML files")
	cmd.Flags().String("mined", "templates/mined", "Directory of mined template YAML files")
	cmd.Flags().Float64("energy", 0.5, "Runtime energy signal")
	cmd.Flags().Float64("density", 0.5, "Runtime density signal")
	cmd.Flags().StringSlice("palette", nil, "Palette entries as ROLE=#RRGGBB")
	return cmd
}

func parsePaletteFlags(entries []string) (map[recipe.Role]string, error) {
	palette := make(map[recipe.Role]string, len(entries))
	for _, entry := range entries {
		role, color, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("palette entry %q must be ROLE=#RRGGBB", entry)
		}
		palette[recipe.Role(strings.ToUpper(strings.TrimSpace(role)))] = strings.TrimSpace(color)
	}
	return palette, nil
}
