package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/unte2002/NL2PL/internal/diff"
	"github.com/unte2002/NL2PL/internal/errors"
	"github.com/unte2002/NL2PL/internal/export"
	"github.com/unte2002/NL2PL/internal/graph"
	"github.com/unte2002/NL2PL/internal/review"
)

var (
	exportOutput     string
	exportCompress   bool
	exportWithReview bool
	exportBasePath   string
	exportFormat     string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a self-contained bundle of a parsed spec",
	Long: `Parse a spec file and write a bundle: the tree, its reverse
dependency graph and provenance metadata in one JSON document,
optionally zstd-compressed.

With --with-review, the bundle also embeds the change classification
and review report against an older version given by --base.

Examples:
  nl2pl export project.spec                       # bundle JSON to stdout
  nl2pl export project.spec -o project.bundle.json
  nl2pl export project.spec -o project.bundle.zst --compress
  nl2pl export v2.spec -o out.json --with-review --base v1.spec`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (default: stdout)")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "Compress the bundle with zstd (requires -o)")
	exportCmd.Flags().BoolVar(&exportWithReview, "with-review", false, "Embed changes and review report against --base")
	exportCmd.Flags().StringVar(&exportBasePath, "base", "", "Older spec version to review against")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Summary format when writing to a file: json, yaml or human")

	rootCmd.AddCommand(exportCmd)
}

// ExportResponse summarizes a written bundle for CLI output
type ExportResponse struct {
	OutputPath    string `json:"outputPath" yaml:"outputPath"`
	SnapshotID    string `json:"snapshotId" yaml:"snapshotId"`
	Compressed    bool   `json:"compressed" yaml:"compressed"`
	Bytes         int64  `json:"bytes" yaml:"bytes"`
	ModuleCount   int    `json:"moduleCount" yaml:"moduleCount"`
	FunctionCount int    `json:"functionCount" yaml:"functionCount"`
	WithReview    bool   `json:"withReview" yaml:"withReview"`
}

func runExport(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger, cfg := setup()

	compress := exportCompress || cfg.Export.Compress
	if compress && exportOutput == "" {
		err := errors.New(errors.InvalidArgument, "--compress requires -o; refusing to write zstd to stdout", nil)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if exportWithReview && exportBasePath == "" {
		err := errors.New(errors.InvalidArgument, "--with-review requires --base", nil)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap := mustLoadSnapshot(args[0], cfg)

	var report *review.Report
	if exportWithReview {
		baseSnap := mustLoadSnapshot(exportBasePath, cfg)
		changes := diff.DiffSpecs(baseSnap.Spec, snap.Spec)
		m := graph.BuildReverseDependencyMap(snap.Spec)
		report = review.Review(changes, m, snap.Spec)
	}

	bundle := export.Build(snap, report)
	opts := export.Options{Compress: compress}

	if exportOutput == "" {
		if err := export.Write(os.Stdout, bundle, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		werr := errors.New(errors.WriteFailed, fmt.Sprintf("cannot create %s", exportOutput), err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", werr)
		os.Exit(1)
	}
	if err := export.Write(f, bundle, opts); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		werr := errors.New(errors.WriteFailed, fmt.Sprintf("cannot finish %s", exportOutput), err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", werr)
		os.Exit(1)
	}

	info, err := os.Stat(exportOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resp := &ExportResponse{
		OutputPath:    exportOutput,
		SnapshotID:    snap.SnapshotID,
		Compressed:    compress,
		Bytes:         info.Size(),
		ModuleCount:   bundle.Metadata.ModuleCount,
		FunctionCount: bundle.Metadata.FunctionCount,
		WithReview:    report != nil,
	}

	output, err := FormatResponse(resp, resolveFormat(exportFormat, cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("Export completed", map[string]interface{}{
		"path":       exportOutput,
		"bytes":      info.Size(),
		"compressed": compress,
		"duration":   time.Since(start).Milliseconds(),
	})
}
