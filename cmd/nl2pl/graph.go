package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/unte2002/NL2PL/internal/graph"
)

var (
	graphFormat string
)

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Build the reverse dependency map of a spec file",
	Long: `Resolve the bracket references in a spec file and print the reverse
dependency map: for each referenced function, the functions whose
behavior mentions it.

References that match no function are dropped silently.

Examples:
  nl2pl graph project.spec
  nl2pl graph project.spec --format json`,
	Args: cobra.ExactArgs(1),
	Run:  runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphFormat, "format", "", "Output format: json, yaml or human (default from config)")

	rootCmd.AddCommand(graphCmd)
}

// GraphResponse contains the reverse dependency map for CLI output
type GraphResponse struct {
	Path          string                     `json:"path" yaml:"path"`
	ModuleCount   int                        `json:"moduleCount" yaml:"moduleCount"`
	FunctionCount int                        `json:"functionCount" yaml:"functionCount"`
	Graph         graph.ReverseDependencyMap `json:"graph" yaml:"graph"`
}

func runGraph(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger, cfg := setup()

	snap := mustLoadSnapshot(args[0], cfg)
	m := graph.BuildReverseDependencyMap(snap.Spec)

	resp := &GraphResponse{
		Path:          args[0],
		ModuleCount:   len(snap.Spec.Modules),
		FunctionCount: snap.Spec.FunctionCount(),
		Graph:         m,
	}

	output, err := FormatResponse(resp, resolveFormat(graphFormat, cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("Graph built", map[string]interface{}{
		"path":       args[0],
		"referenced": len(m),
		"duration":   time.Since(start).Milliseconds(),
	})
}
