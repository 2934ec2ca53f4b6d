package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/unte2002/NL2PL/internal/errors"
	"github.com/unte2002/NL2PL/internal/parser"
)

var (
	fmtWrite bool
	fmtCheck bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Reformat a spec file into canonical form",
	Long: `Serialize a spec file back to the canonical textual form: Korean
keywords, fixed indentation, one blank line before each module.

Reformatting is lossy for anything the parser drops (comments,
unrecognized lines), but stable: formatting an already canonical
file changes nothing.

Examples:
  nl2pl fmt project.spec            # print canonical form to stdout
  nl2pl fmt project.spec --write    # rewrite the file in place
  nl2pl fmt project.spec --check    # exit 1 if not canonical`,
	Args: cobra.ExactArgs(1),
	Run:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtWrite, "write", false, "Rewrite the file in place")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Exit non-zero if the file is not canonical")

	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger, cfg := setup()
	path := args[0]

	if fmtWrite && fmtCheck {
		err := errors.New(errors.InvalidArgument, "--write and --check cannot be combined", nil)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		rerr := errors.New(errors.FileNotFound, fmt.Sprintf("cannot read spec file %s", path), err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", rerr)
		os.Exit(1)
	}

	text := string(data)
	canonical := parser.Serialize(newParser(cfg).Parse(text))

	switch {
	case fmtCheck:
		if text != canonical {
			fmt.Fprintf(os.Stderr, "%s is not canonical\n", path)
			os.Exit(1)
		}

	case fmtWrite:
		if err := os.WriteFile(path, []byte(canonical), 0644); err != nil {
			werr := errors.New(errors.WriteFailed, fmt.Sprintf("cannot rewrite %s", path), err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", werr)
			os.Exit(1)
		}
		logger.Debug("File rewritten", map[string]interface{}{
			"path":     path,
			"size":     len(canonical),
			"duration": time.Since(start).Milliseconds(),
		})

	default:
		fmt.Print(canonical)
	}
}
