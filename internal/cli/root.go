// Package cli builds the repopulse command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raysh454/repopulse/internal/app"
	"github.com/raysh454/repopulse/internal/logging"
)

// EnvVersion overrides the version printed by `repopulse version`.
const EnvVersion = "REPOPULSE_VERSION"

// NewRootCmd constructs the repopulse root command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv(EnvVersion)
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "repopulse",
		Short:         "Repository health analysis",
		Long:          "repopulse asks an analysis service for a repository health report and renders it as a summary and chart series.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().String("config", "", "path to a YAML config file")
	cmd.PersistentFlags().String("server", "", "analysis service base URL (overrides config and "+app.EnvAPIURL+")")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log at debug level to stderr")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of repopulse",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "repopulse version %s\n", version)
		},
	})
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadConfig reads --config and applies --server on top.
func loadConfig(cmd *cobra.Command) (*app.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := app.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("server") {
		cfg.WebClient.BaseURL, _ = cmd.Flags().GetString("server")
	}
	return cfg, nil
}

// newLogger writes JSON logs to stderr. Commands that print results default
// to warn so logs never interleave with normal output.
func newLogger(cmd *cobra.Command, level string) logging.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return logging.NewLogger(cmd.ErrOrStderr(), level, "cli")
}
