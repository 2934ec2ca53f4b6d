package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unte2002/NL2PL/internal/diff"
	"github.com/unte2002/NL2PL/internal/spec"
)

var (
	diffFormat string
)

var diffCmd = &cobra.Command{
	Use:   "diff <old> <new>",
	Short: "Classify changes between two spec versions",
	Long: `Parse two versions of a spec file and classify every function present
in both: an inputs/outputs edit is an interface change, a behavior-only
edit is a behavior change. Whitespace-only edits count as no change,
and unchanged functions are not reported.

Both files are parsed with fresh identifier numbering, so functions
match by position and name.

Examples:
  nl2pl diff v1.spec v2.spec
  nl2pl diff v1.spec v2.spec --format markdown   # PR comment style`,
	Args: cobra.ExactArgs(2),
	Run:  runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffFormat, "format", "", "Output format: json, yaml, human or markdown (default from config)")

	rootCmd.AddCommand(diffCmd)
}

// DiffResponse contains classified changes for CLI output
type DiffResponse struct {
	OldPath string        `json:"oldPath" yaml:"oldPath"`
	NewPath string        `json:"newPath" yaml:"newPath"`
	Changes []spec.Change `json:"changes" yaml:"changes"`
}

func runDiff(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger, cfg := setup()

	oldSnap := mustLoadSnapshot(args[0], cfg)
	newSnap := mustLoadSnapshot(args[1], cfg)

	resp := &DiffResponse{
		OldPath: args[0],
		NewPath: args[1],
		Changes: diff.DiffSpecs(oldSnap.Spec, newSnap.Spec),
	}

	var output string
	var err error
	format := resolveFormat(diffFormat, cfg)
	if format == FormatMarkdown {
		output = formatDiffMarkdown(resp)
	} else {
		output, err = FormatResponse(resp, format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println(output)

	logger.Debug("Diff completed", map[string]interface{}{
		"old":      args[0],
		"new":      args[1],
		"changes":  len(resp.Changes),
		"duration": time.Since(start).Milliseconds(),
	})
}

// formatDiffMarkdown generates a markdown report for PR comments
func formatDiffMarkdown(resp *DiffResponse) string {
	var b strings.Builder

	b.WriteString("## Spec Changes\n\n")
	b.WriteString(fmt.Sprintf("`%s` -> `%s`\n\n", resp.OldPath, resp.NewPath))

	if len(resp.Changes) == 0 {
		b.WriteString("No changes.\n")
		return b.String()
	}

	b.WriteString("| Function | Name | Change |\n")
	b.WriteString("|:---------|:-----|:-------|\n")
	for _, c := range resp.Changes {
		b.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", c.ID, c.Name, c.ChangeType))
	}

	return b.String()
}
