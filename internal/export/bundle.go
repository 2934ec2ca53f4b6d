// Package export assembles self-contained bundles of a parse result
// for downstream tools. A bundle carries the parsed tree, its reverse
// dependency graph and optionally a review against an earlier version,
// encoded as JSON and optionally zstd-compressed.
package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/unte2002/NL2PL/internal/errors"
	"github.com/unte2002/NL2PL/internal/graph"
	"github.com/unte2002/NL2PL/internal/review"
	"github.com/unte2002/NL2PL/internal/snapshot"
	"github.com/unte2002/NL2PL/internal/spec"
	"github.com/unte2002/NL2PL/internal/version"
)

// FormatVersion is the bundle schema version written by this build.
const FormatVersion = 1

// zstdMagic is the zstd frame magic number. Bundles starting with it
// are decompressed transparently on read.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Metadata describes where a bundle came from.
type Metadata struct {
	ToolVersion   string `json:"toolVersion" yaml:"toolVersion"`
	Generated     string `json:"generated" yaml:"generated"`
	SnapshotID    string `json:"snapshotId" yaml:"snapshotId"`
	SourcePath    string `json:"sourcePath,omitempty" yaml:"sourcePath,omitempty"`
	ContentHash   string `json:"contentHash" yaml:"contentHash"`
	ModuleCount   int    `json:"moduleCount" yaml:"moduleCount"`
	FunctionCount int    `json:"functionCount" yaml:"functionCount"`
}

// Bundle is the exported artifact.
type Bundle struct {
	FormatVersion int                        `json:"formatVersion" yaml:"formatVersion"`
	Metadata      Metadata                   `json:"metadata" yaml:"metadata"`
	Spec          *spec.ProjectSpec          `json:"spec" yaml:"spec"`
	Graph         graph.ReverseDependencyMap `json:"graph" yaml:"graph"`
	Changes       []spec.Change              `json:"changes,omitempty" yaml:"changes,omitempty"`
	Review        *review.Report             `json:"review,omitempty" yaml:"review,omitempty"`
}

// Options control bundle encoding.
type Options struct {
	// Compress wraps the JSON payload in a zstd frame
	Compress bool
}

// Build assembles a bundle from a snapshot. rep may be nil; when
// present its changes are also lifted to the top level so consumers
// that only care about the diff need not understand review reports.
func Build(snap *snapshot.Snapshot, rep *review.Report) *Bundle {
	b := &Bundle{
		FormatVersion: FormatVersion,
		Metadata: Metadata{
			ToolVersion:   version.Version,
			Generated:     time.Now().UTC().Format(time.RFC3339),
			SnapshotID:    snap.SnapshotID,
			SourcePath:    snap.Path,
			ContentHash:   snap.ContentHash,
			ModuleCount:   len(snap.Spec.Modules),
			FunctionCount: snap.Spec.FunctionCount(),
		},
		Spec:  snap.Spec,
		Graph: graph.BuildReverseDependencyMap(snap.Spec),
	}

	if rep != nil {
		b.Changes = rep.Changes
		b.Review = rep
	}

	return b
}

// Write encodes b to w as indented JSON, compressed when opts.Compress
// is set.
func Write(w io.Writer, b *Bundle, opts Options) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return errors.New(errors.InternalError, "cannot encode bundle", err)
	}
	data = append(data, '\n')

	if opts.Compress {
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return errors.New(errors.InternalError, "cannot start zstd writer", err)
		}
		if _, err := zw.Write(data); err != nil {
			zw.Close()
			return errors.New(errors.WriteFailed, "cannot write compressed bundle", err)
		}
		if err := zw.Close(); err != nil {
			return errors.New(errors.WriteFailed, "cannot finish compressed bundle", err)
		}
		return nil
	}

	if _, err := w.Write(data); err != nil {
		return errors.New(errors.WriteFailed, "cannot write bundle", err)
	}
	return nil
}

// Read decodes a bundle from r, transparently decompressing zstd
// input. Anything that is not a well-formed bundle of a supported
// format version is reported as an InvalidBundle error.
func Read(r io.Reader) (*Bundle, error) {
	br := bufio.NewReader(r)

	// Peek falls short on tiny inputs; those fail JSON decoding below.
	head, _ := br.Peek(len(zstdMagic))

	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, errors.New(errors.InvalidBundle, "cannot open compressed bundle", err)
		}
		defer zr.Close()
		src = zr
	}

	var b Bundle
	if err := json.NewDecoder(src).Decode(&b); err != nil {
		return nil, errors.New(errors.InvalidBundle, "bundle is not valid JSON", err)
	}

	if b.FormatVersion != FormatVersion {
		return nil, errors.New(
			errors.InvalidBundle,
			fmt.Sprintf("unsupported bundle format version %d", b.FormatVersion),
			nil,
		)
	}

	return &b, nil
}
