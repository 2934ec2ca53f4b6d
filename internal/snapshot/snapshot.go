// Package snapshot records the provenance of a parse result: which
// file the text came from, a content hash for change detection, and
// the parsed tree itself. Snapshots are what export bundles and diff
// inputs are built from.
package snapshot

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unte2002/NL2PL/internal/errors"
	"github.com/unte2002/NL2PL/internal/parser"
	"github.com/unte2002/NL2PL/internal/spec"
)

const (
	// EmptyHash is the SHA256 of the empty string
	EmptyHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

// Snapshot ties a parsed spec to the text it was produced from.
type Snapshot struct {
	SnapshotID  string            `json:"snapshotId" yaml:"snapshotId"`
	Path        string            `json:"path,omitempty" yaml:"path,omitempty"`
	ContentHash string            `json:"contentHash" yaml:"contentHash"`
	Bytes       int               `json:"bytes" yaml:"bytes"`
	Lines       int               `json:"lines" yaml:"lines"`
	ParsedAt    string            `json:"parsedAt" yaml:"parsedAt"`
	Spec        *spec.ProjectSpec `json:"spec" yaml:"spec"`
}

// Take builds a snapshot for text that has already been parsed into s.
// path may be empty when the text did not come from a file.
func Take(path, text string, s *spec.ProjectSpec) *Snapshot {
	return &Snapshot{
		SnapshotID:  uuid.NewString(),
		Path:        path,
		ContentHash: HashText(text),
		Bytes:       len(text),
		Lines:       countLines(text),
		ParsedAt:    time.Now().UTC().Format(time.RFC3339),
		Spec:        s,
	}
}

// Load reads the spec file at path, parses it with p and returns the
// resulting snapshot. A nil p means a fresh parser with default
// numbering.
func Load(path string, p *parser.Parser) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(
			errors.FileNotFound,
			fmt.Sprintf("cannot read spec file %s", path),
			err,
			errors.FixAction{
				Type:        errors.RunCommand,
				Command:     "ls -l " + path,
				Safe:        true,
				Description: "Check that the file exists and is readable",
			},
		)
	}

	if p == nil {
		p = parser.New()
	}

	text := string(data)
	return Take(path, text, p.Parse(text)), nil
}

// HashText computes the SHA256 hash of a string as lowercase hex.
func HashText(s string) string {
	if s == "" {
		return EmptyHash
	}
	h := sha256.New()
	h.Write([]byte(s))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// countLines counts lines the way the parser sees them: one more than
// the number of newlines, so a trailing newline yields a final empty
// line.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
