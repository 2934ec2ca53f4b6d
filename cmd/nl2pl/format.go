package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unte2002/NL2PL/internal/snapshot"
	"github.com/unte2002/NL2PL/internal/spec"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
	// FormatMarkdown is only offered by diff and review, which render
	// it themselves before reaching FormatResponse.
	FormatMarkdown OutputFormat = "markdown"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatYAML formats the response as YAML
func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *snapshot.Snapshot:
		return formatParseHuman(v)
	case *GraphResponse:
		return formatGraphHuman(v)
	case *AffectedResponse:
		return formatAffectedHuman(v)
	case *DiffResponse:
		return formatDiffHuman(v)
	case *ReviewResponse:
		return formatReviewHuman(v)
	case *ExportResponse:
		return formatExportHuman(v)
	case *InspectResponse:
		return formatInspectHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

// formatParseHuman renders a parsed snapshot as an indented summary
func formatParseHuman(snap *snapshot.Snapshot) (string, error) {
	var b strings.Builder

	source := snap.Path
	if source == "" {
		source = "(stdin)"
	}
	b.WriteString(fmt.Sprintf("Spec: %s\n", source))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Snapshot:  %s\n", snap.SnapshotID))
	b.WriteString(fmt.Sprintf("Hash:      %s\n", truncateHash(snap.ContentHash)))
	b.WriteString(fmt.Sprintf("Size:      %d lines, %d bytes\n\n", snap.Lines, snap.Bytes))

	writeHeaderHuman(&b, snap.Spec)

	b.WriteString(fmt.Sprintf("Modules (%d):\n", len(snap.Spec.Modules)))
	for _, m := range snap.Spec.Modules {
		line := fmt.Sprintf("  [%s] %s", m.ID, m.Name)
		if m.Description != "" {
			line += " - " + m.Description
		}
		b.WriteString(line + "\n")

		for _, fn := range m.Functions {
			var fields []string
			if fn.Inputs != "" {
				fields = append(fields, "inputs")
			}
			if fn.Outputs != "" {
				fields = append(fields, "outputs")
			}
			if fn.Behavior != "" {
				fields = append(fields, "behavior")
			}

			detail := ""
			if len(fields) > 0 {
				detail = " (" + strings.Join(fields, ", ") + ")"
			}
			b.WriteString(fmt.Sprintf("    %s%s\n", fn.ID, detail))

			if len(fn.Dependencies) > 0 {
				b.WriteString(fmt.Sprintf("      depends on: %s\n", strings.Join(fn.Dependencies, ", ")))
			}
		}
	}

	return b.String(), nil
}

// writeHeaderHuman prints the non-empty project header fields
func writeHeaderHuman(b *strings.Builder, s *spec.ProjectSpec) {
	fields := []struct {
		label string
		value string
	}{
		{"Language", s.Language},
		{"Framework", s.Framework},
		{"Database", s.Database},
		{"Conventions", s.Conventions},
		{"Purpose", s.Purpose},
		{"Environment", s.Environment},
		{"Global state", s.GlobalState},
		{"External deps", s.ExternalDeps},
	}

	any := false
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if !any {
			b.WriteString("Header:\n")
			any = true
		}
		b.WriteString(fmt.Sprintf("  %-14s %s\n", f.label+":", f.value))
	}
	if any {
		b.WriteString("\n")
	}
}

// formatGraphHuman renders the reverse dependency map
func formatGraphHuman(resp *GraphResponse) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Reverse dependencies: %s\n", resp.Path))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Functions: %d, referenced: %d\n", resp.FunctionCount, len(resp.Graph)))

	if len(resp.Graph) == 0 {
		b.WriteString("\nNo resolved references.\n")
		return b.String(), nil
	}

	keys := make([]string, 0, len(resp.Graph))
	for k := range resp.Graph {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %s <- %s\n", k, strings.Join(resp.Graph[k], ", ")))
	}

	return b.String(), nil
}

// formatAffectedHuman renders the dependent list for one identifier
func formatAffectedHuman(resp *AffectedResponse) (string, error) {
	var b strings.Builder

	if len(resp.Affected) == 0 {
		b.WriteString(fmt.Sprintf("No functions depend on %s\n", resp.ID))
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("Functions depending on %s (%d):\n", resp.ID, len(resp.Affected)))
	for _, id := range resp.Affected {
		b.WriteString(fmt.Sprintf("  - %s\n", id))
	}

	return b.String(), nil
}

// formatDiffHuman renders a change classification
func formatDiffHuman(resp *DiffResponse) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Diff: %s -> %s\n", resp.OldPath, resp.NewPath))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(resp.Changes) == 0 {
		b.WriteString("No changes.\n")
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("Changed functions (%d):\n", len(resp.Changes)))
	for _, c := range resp.Changes {
		b.WriteString(fmt.Sprintf("  %s %s (%s)\n", changeGlyph(c.ChangeType), c.ID, c.ChangeType))
	}

	return b.String(), nil
}

// formatReviewHuman renders a review report
func formatReviewHuman(resp *ReviewResponse) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Review: %s -> %s\n", resp.OldPath, resp.NewPath))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	s := resp.Report.Summary
	b.WriteString(fmt.Sprintf("Interface changes: %d\n", s.InterfaceChanges))
	b.WriteString(fmt.Sprintf("Behavior changes:  %d\n", s.BehaviorChanges))
	b.WriteString(fmt.Sprintf("Flagged:           %d (%d distinct functions)\n",
		s.FlaggedTotal, s.FlaggedFunctions))
	b.WriteString(fmt.Sprintf("Marked stale:      %d\n", resp.StaleMarked))

	if len(resp.Report.Changes) > 0 {
		b.WriteString("\nChanges:\n")
		for _, c := range resp.Report.Changes {
			b.WriteString(fmt.Sprintf("  %s %s (%s)\n", changeGlyph(c.ChangeType), c.ID, c.ChangeType))
		}
	}

	if len(resp.Report.Flagged) > 0 {
		b.WriteString("\nNeeds review:\n")
		for _, f := range resp.Report.Flagged {
			b.WriteString(fmt.Sprintf("  - %s (%s of %s)\n", f.ID, f.Reason, f.Trigger.ID))
		}
	}

	return b.String(), nil
}

// formatExportHuman summarizes a written bundle
func formatExportHuman(resp *ExportResponse) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Bundle written: %s\n", resp.OutputPath))
	b.WriteString(fmt.Sprintf("  Snapshot:   %s\n", resp.SnapshotID))
	b.WriteString(fmt.Sprintf("  Size:       %d bytes (compressed: %v)\n", resp.Bytes, resp.Compressed))
	b.WriteString(fmt.Sprintf("  Contents:   %d modules, %d functions\n", resp.ModuleCount, resp.FunctionCount))
	if resp.WithReview {
		b.WriteString("  Review:     embedded\n")
	}

	return b.String(), nil
}

// formatInspectHuman summarizes a bundle that was read back
func formatInspectHuman(resp *InspectResponse) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Bundle: %s\n", resp.Path))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	m := resp.Metadata
	b.WriteString(fmt.Sprintf("Format version: %d\n", resp.FormatVersion))
	b.WriteString(fmt.Sprintf("Tool version:   %s\n", m.ToolVersion))
	b.WriteString(fmt.Sprintf("Generated:      %s\n", m.Generated))
	b.WriteString(fmt.Sprintf("Snapshot:       %s\n", m.SnapshotID))
	if m.SourcePath != "" {
		b.WriteString(fmt.Sprintf("Source:         %s (%s)\n", m.SourcePath, truncateHash(m.ContentHash)))
	}
	b.WriteString(fmt.Sprintf("Contents:       %d modules, %d functions\n", m.ModuleCount, m.FunctionCount))
	if resp.ChangeCount > 0 || resp.FlaggedCount > 0 {
		b.WriteString(fmt.Sprintf("Review:         %d changes, %d flagged\n", resp.ChangeCount, resp.FlaggedCount))
	}

	return b.String(), nil
}

// changeGlyph picks the marker for a change type
func changeGlyph(t spec.ChangeType) string {
	if t == spec.ChangeInterface {
		return "!"
	}
	return "~"
}

// truncateHash shortens a content hash for display
func truncateHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12] + "..."
	}
	return hash
}
