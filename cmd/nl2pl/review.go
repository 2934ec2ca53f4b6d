package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unte2002/NL2PL/internal/diff"
	"github.com/unte2002/NL2PL/internal/graph"
	"github.com/unte2002/NL2PL/internal/review"
)

var (
	reviewFormat string
)

var reviewCmd = &cobra.Command{
	Use:   "review <old> <new>",
	Short: "Flag functions whose generated code needs review",
	Long: `Compare two spec versions and flag every function that directly
depends on a changed one. Flagged functions are marked stale in the
new tree's status tags, and the report counts changes by kind.

Examples:
  nl2pl review v1.spec v2.spec
  nl2pl review v1.spec v2.spec --format markdown   # PR comment style`,
	Args: cobra.ExactArgs(2),
	Run:  runReview,
}

func init() {
	reviewCmd.Flags().StringVar(&reviewFormat, "format", "", "Output format: json, yaml, human or markdown (default from config)")

	rootCmd.AddCommand(reviewCmd)
}

// ReviewResponse contains a review report for CLI output
type ReviewResponse struct {
	OldPath     string         `json:"oldPath" yaml:"oldPath"`
	NewPath     string         `json:"newPath" yaml:"newPath"`
	StaleMarked int            `json:"staleMarked" yaml:"staleMarked"`
	Report      *review.Report `json:"report" yaml:"report"`
}

func runReview(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger, cfg := setup()

	oldSnap := mustLoadSnapshot(args[0], cfg)
	newSnap := mustLoadSnapshot(args[1], cfg)

	changes := diff.DiffSpecs(oldSnap.Spec, newSnap.Spec)
	m := graph.BuildReverseDependencyMap(newSnap.Spec)
	report := review.Review(changes, m, newSnap.Spec)
	marked := review.MarkStale(newSnap.Spec, report)

	resp := &ReviewResponse{
		OldPath:     args[0],
		NewPath:     args[1],
		StaleMarked: marked,
		Report:      report,
	}

	var output string
	var err error
	format := resolveFormat(reviewFormat, cfg)
	if format == FormatMarkdown {
		output = formatReviewMarkdown(resp)
	} else {
		output, err = FormatResponse(resp, format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println(output)

	logger.Debug("Review completed", map[string]interface{}{
		"old":      args[0],
		"new":      args[1],
		"changes":  len(report.Changes),
		"flagged":  report.Summary.FlaggedTotal,
		"duration": time.Since(start).Milliseconds(),
	})
}

// formatReviewMarkdown generates a markdown report for PR comments
func formatReviewMarkdown(resp *ReviewResponse) string {
	var b strings.Builder

	b.WriteString("## Spec Review\n\n")
	b.WriteString(fmt.Sprintf("`%s` -> `%s`\n\n", resp.OldPath, resp.NewPath))

	s := resp.Report.Summary
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|:-------|------:|\n")
	b.WriteString(fmt.Sprintf("| Interface changes | %d |\n", s.InterfaceChanges))
	b.WriteString(fmt.Sprintf("| Behavior changes | %d |\n", s.BehaviorChanges))
	b.WriteString(fmt.Sprintf("| Flagged for review | %d |\n", s.FlaggedFunctions))
	b.WriteString(fmt.Sprintf("| Marked stale | %d |\n", resp.StaleMarked))
	b.WriteString("\n")

	if len(resp.Report.Changes) > 0 {
		b.WriteString("### Changed\n\n")
		b.WriteString("| Function | Name | Change |\n")
		b.WriteString("|:---------|:-----|:-------|\n")
		for _, c := range resp.Report.Changes {
			b.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", c.ID, c.Name, c.ChangeType))
		}
		b.WriteString("\n")
	}

	if len(resp.Report.Flagged) > 0 {
		b.WriteString("### Needs review\n\n")
		b.WriteString("| Function | Name | Reason | Triggered by |\n")
		b.WriteString("|:---------|:-----|:-------|:------------|\n")
		for _, f := range resp.Report.Flagged {
			b.WriteString(fmt.Sprintf("| `%s` | %s | %s | `%s` |\n", f.ID, f.Name, f.Reason, f.Trigger.ID))
		}
	}

	return b.String()
}
