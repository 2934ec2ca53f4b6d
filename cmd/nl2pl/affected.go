package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/unte2002/NL2PL/internal/graph"
)

var (
	affectedFormat string
)

var affectedCmd = &cobra.Command{
	Use:   "affected <file> <id>",
	Short: "List the functions that depend on one identifier",
	Long: `Print the direct dependents of one function identifier, in document
order. An identifier nothing depends on yields an empty list; that is
a normal result, not an error.

Examples:
  nl2pl affected project.spec 로그인_3
  nl2pl affected project.spec signup_2 --format json`,
	Args: cobra.ExactArgs(2),
	Run:  runAffected,
}

func init() {
	affectedCmd.Flags().StringVar(&affectedFormat, "format", "", "Output format: json, yaml or human (default from config)")

	rootCmd.AddCommand(affectedCmd)
}

// AffectedResponse contains the dependent list for CLI output
type AffectedResponse struct {
	Path     string   `json:"path" yaml:"path"`
	ID       string   `json:"id" yaml:"id"`
	Affected []string `json:"affected" yaml:"affected"`
}

func runAffected(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger, cfg := setup()

	snap := mustLoadSnapshot(args[0], cfg)
	m := graph.BuildReverseDependencyMap(snap.Spec)

	resp := &AffectedResponse{
		Path:     args[0],
		ID:       args[1],
		Affected: graph.AffectedFunctions(m, args[1]),
	}

	output, err := FormatResponse(resp, resolveFormat(affectedFormat, cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("Affected lookup completed", map[string]interface{}{
		"id":       args[1],
		"count":    len(resp.Affected),
		"duration": time.Since(start).Milliseconds(),
	})
}
