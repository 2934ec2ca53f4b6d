package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	parseFormat string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a spec file into its module/function tree",
	Long: `Parse a natural language spec file and print the resulting tree.

Keywords are recognized in Korean and English. Lines that match no
rule are dropped silently; parsing never fails on content.

Examples:
  nl2pl parse project.spec
  nl2pl parse project.spec --format json
  nl2pl parse project.spec --format yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "", "Output format: json, yaml or human (default from config)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger, cfg := setup()

	snap := mustLoadSnapshot(args[0], cfg)

	output, err := FormatResponse(snap, resolveFormat(parseFormat, cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("Parse completed", map[string]interface{}{
		"path":      args[0],
		"modules":   len(snap.Spec.Modules),
		"functions": snap.Spec.FunctionCount(),
		"duration":  time.Since(start).Milliseconds(),
	})
}
