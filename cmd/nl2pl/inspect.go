package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/unte2002/NL2PL/internal/errors"
	"github.com/unte2002/NL2PL/internal/export"
)

var (
	inspectFormat string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <bundle>",
	Short: "Read an exported bundle and show its metadata",
	Long: `Read a bundle written by export, decompressing zstd input
transparently, validate its format version, and print what it
contains.

Examples:
  nl2pl inspect project.bundle.json
  nl2pl inspect project.bundle.zst --format json`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "", "Output format: json, yaml or human (default from config)")

	rootCmd.AddCommand(inspectCmd)
}

// InspectResponse summarizes a bundle read back from disk
type InspectResponse struct {
	Path          string          `json:"path" yaml:"path"`
	FormatVersion int             `json:"formatVersion" yaml:"formatVersion"`
	Metadata      export.Metadata `json:"metadata" yaml:"metadata"`
	ChangeCount   int             `json:"changeCount" yaml:"changeCount"`
	FlaggedCount  int             `json:"flaggedCount" yaml:"flaggedCount"`
}

func runInspect(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger, cfg := setup()
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		rerr := errors.New(errors.FileNotFound, fmt.Sprintf("cannot open bundle %s", path), err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", rerr)
		os.Exit(1)
	}
	defer f.Close()

	bundle, err := export.Read(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resp := &InspectResponse{
		Path:          path,
		FormatVersion: bundle.FormatVersion,
		Metadata:      bundle.Metadata,
		ChangeCount:   len(bundle.Changes),
	}
	if bundle.Review != nil {
		resp.FlaggedCount = len(bundle.Review.Flagged)
	}

	output, err := FormatResponse(resp, resolveFormat(inspectFormat, cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("Inspect completed", map[string]interface{}{
		"path":     path,
		"modules":  bundle.Metadata.ModuleCount,
		"duration": time.Since(start).Milliseconds(),
	})
}
