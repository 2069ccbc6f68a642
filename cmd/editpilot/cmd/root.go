// Package cmd implements editpilot's Cobra command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chainlaunch/editcore/pkg/config"
	"github.com/chainlaunch/editcore/pkg/logger"
)

var configPath string

// NewRootCmd builds editpilot's root command and attaches its subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "editpilot",
		Short: "Apply model-emitted SEARCH/REPLACE blocks and render streaming markdown",
		Long: `editpilot drives the edit-block engine and incremental markdown
renderer from the command line: parse a model response into file edits,
apply them to a project directory with per-file rollback, or render a
markdown document incrementally and watch the reconcile operations it
produces.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an optional YAML config file")

	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel), nil
}
