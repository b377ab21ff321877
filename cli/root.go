// Package cli wires the luxweave pipeline into a cobra command tree:
// promote mined templates, inspect the merged catalog, and render a recipe
// against a concrete environment.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/luxweave/luxweave/pkg/logger"
)

// RootCmd builds the luxweave root command.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "luxweave",
		Short:         "luxweave - effect recipe pipeline",
		Long:          "Converts builtin templates and mined behavioral patterns into a unified effect recipe catalog and renders recipes against runtime environments.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	cmd.AddCommand(PromoteCmd())
	cmd.AddCommand(CatalogCmd())
	cmd.AddCommand(RenderCmd())
	return cmd
}

// commandContext attaches a configured logger to the command's context.
func commandContext(cmd *cobra.Command) (context.Context, error) {
	logLevel, logJSON, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := logger.SetupLogger(logLevel, logJSON)
	return logger.ContextWithLogger(cmd.Context(), log), nil
}
