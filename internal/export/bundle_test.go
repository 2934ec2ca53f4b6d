package export

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/unte2002/NL2PL/internal/diff"
	"github.com/unte2002/NL2PL/internal/errors"
	"github.com/unte2002/NL2PL/internal/graph"
	"github.com/unte2002/NL2PL/internal/parser"
	"github.com/unte2002/NL2PL/internal/review"
	"github.com/unte2002/NL2PL/internal/snapshot"
)

const bundleSpecText = `언어: Go
목적: 도서 관리

[모듈] 회원
  함수 가입
    입력: 이름, 이메일
    출력: 회원 ID
  함수 로그인
    동작: 1. [가입]된 회원인지 확인한다
`

func buildTestBundle(t *testing.T) *Bundle {
	t.Helper()
	s := parser.Parse(bundleSpecText)
	snap := snapshot.Take("library.spec", bundleSpecText, s)
	return Build(snap, nil)
}

func TestBuildMetadata(t *testing.T) {
	b := buildTestBundle(t)

	if b.FormatVersion != FormatVersion {
		t.Errorf("FormatVersion = %d, want %d", b.FormatVersion, FormatVersion)
	}
	if b.Metadata.ToolVersion == "" {
		t.Error("ToolVersion should be set")
	}
	if b.Metadata.SourcePath != "library.spec" {
		t.Errorf("SourcePath = %q, want %q", b.Metadata.SourcePath, "library.spec")
	}
	if b.Metadata.ModuleCount != 1 {
		t.Errorf("ModuleCount = %d, want 1", b.Metadata.ModuleCount)
	}
	if b.Metadata.FunctionCount != 2 {
		t.Errorf("FunctionCount = %d, want 2", b.Metadata.FunctionCount)
	}
	if b.Review != nil || b.Changes != nil {
		t.Error("bundle without a review should carry neither review nor changes")
	}

	// 로그인 references 가입, so the graph has one edge
	if got := b.Graph["가입_2"]; len(got) != 1 || got[0] != "로그인_3" {
		t.Errorf("Graph[가입_2] = %v, want [로그인_3]", got)
	}
}

func TestBuildWithReview(t *testing.T) {
	oldText := bundleSpecText
	newText := strings.Replace(oldText, "이름, 이메일", "이름, 이메일, 비밀번호", 1)

	oldSpec := parser.Parse(oldText)
	newSpec := parser.Parse(newText)
	changes := diff.DiffSpecs(oldSpec, newSpec)
	m := graph.BuildReverseDependencyMap(newSpec)
	rep := review.Review(changes, m, newSpec)

	snap := snapshot.Take("library.spec", newText, newSpec)
	b := Build(snap, rep)

	if b.Review == nil {
		t.Fatal("bundle should carry the review report")
	}
	if len(b.Changes) != 1 {
		t.Fatalf("len(Changes) = %d, want 1", len(b.Changes))
	}
	if b.Changes[0].ID != "가입_2" {
		t.Errorf("Changes[0].ID = %q, want %q", b.Changes[0].ID, "가입_2")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"plain", Options{}},
		{"compressed", Options{Compress: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buildTestBundle(t)

			var buf bytes.Buffer
			if err := Write(&buf, b, tt.opts); err != nil {
				t.Fatalf("Write() error = %v", err)
			}

			got, err := Read(&buf)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}

			if got.FormatVersion != b.FormatVersion {
				t.Errorf("FormatVersion = %d, want %d", got.FormatVersion, b.FormatVersion)
			}
			if got.Metadata != b.Metadata {
				t.Errorf("Metadata = %+v, want %+v", got.Metadata, b.Metadata)
			}
			if !reflect.DeepEqual(got.Spec, b.Spec) {
				t.Errorf("Spec did not survive the round trip:\ngot  %+v\nwant %+v", got.Spec, b.Spec)
			}
			if !reflect.DeepEqual(got.Graph, b.Graph) {
				t.Errorf("Graph = %v, want %v", got.Graph, b.Graph)
			}
		})
	}
}

func TestCompressedBundleStartsWithMagic(t *testing.T) {
	b := buildTestBundle(t)

	var buf bytes.Buffer
	if err := Write(&buf, b, Options{Compress: true}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), zstdMagic) {
		t.Errorf("compressed bundle should start with the zstd magic, got % x", buf.Bytes()[:4])
	}

	var plain bytes.Buffer
	if err := Write(&plain, b, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if bytes.HasPrefix(plain.Bytes(), zstdMagic) {
		t.Error("plain bundle should not start with the zstd magic")
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not json", "this is not a bundle"},
		{"truncated json", `{"formatVersion": 1, "metadata"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Read() should fail")
			}
			if code := errors.CodeOf(err); code != errors.InvalidBundle {
				t.Errorf("CodeOf(err) = %q, want %q", code, errors.InvalidBundle)
			}
		})
	}
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	_, err := Read(strings.NewReader(`{"formatVersion": 99}`))
	if err == nil {
		t.Fatal("Read() should fail for an unsupported format version")
	}
	if code := errors.CodeOf(err); code != errors.InvalidBundle {
		t.Errorf("CodeOf(err) = %q, want %q", code, errors.InvalidBundle)
	}
	if !strings.Contains(err.Error(), "99") {
		t.Errorf("error should name the rejected version, got: %v", err)
	}
}

func TestReadRejectsTruncatedCompressedBundle(t *testing.T) {
	b := buildTestBundle(t)

	var buf bytes.Buffer
	if err := Write(&buf, b, Options{Compress: true}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	truncated := buf.Bytes()[:buf.Len()/2]
	_, err := Read(bytes.NewReader(truncated))
	if err == nil {
		t.Fatal("Read() should fail for a truncated compressed bundle")
	}
	if code := errors.CodeOf(err); code != errors.InvalidBundle {
		t.Errorf("CodeOf(err) = %q, want %q", code, errors.InvalidBundle)
	}
}
