package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/unte2002/NL2PL/internal/config"
	"github.com/unte2002/NL2PL/internal/version"
)

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "nl2pl",
	Short: "nl2pl - natural language spec toolkit",
	Long: `nl2pl parses bilingual (Korean/English) natural language specs into a
structured module/function tree, assigns stable identifiers, resolves
bracket references into a dependency graph, and compares spec versions
to flag functions whose generated code needs review.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("nl2pl version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"Log level: debug, info, warn, or error")
}

// resolveFormat determines the effective output format from CLI flag, env var, and config.
// Precedence: --format flag > NL2PL_FORMAT env var > config output.format > human
func resolveFormat(flagValue string, cfg *config.Config) OutputFormat {
	if flagValue != "" {
		return OutputFormat(flagValue)
	}

	if env := os.Getenv("NL2PL_FORMAT"); env != "" {
		return OutputFormat(env)
	}

	if cfg != nil && cfg.Output.Format != "" {
		return OutputFormat(cfg.Output.Format)
	}

	return FormatHuman
}
