package parser

import (
	"strings"

	"github.com/unte2002/NL2PL/internal/spec"
)

// Canonical output uses the Korean keyword forms with two-space
// indentation levels: module lines at column 0, function lines one level
// in, field keywords two levels, field continuations three.
const (
	indentFunction = "  "
	indentField    = "    "
	indentBody     = "      "
)

// Serialize renders a tree back to specification text in canonical form:
// header fields in fixed order (non-empty only), then per module a blank
// separator line, the module start line, and each function with its
// non-empty field blocks. The first line of a field value sits on the
// keyword line; remaining lines become indented continuations, with
// interior blank lines kept blank.
//
// Serialize is deterministic, and re-parsing its output reproduces the
// tree the text was rendered from.
func Serialize(s *spec.ProjectSpec) string {
	var b strings.Builder

	writeHeaderLine(&b, "언어:", s.Language)
	writeHeaderLine(&b, "프레임워크:", s.Framework)
	writeHeaderLine(&b, "데이터베이스:", s.Database)
	writeHeaderLine(&b, "컨벤션:", s.Conventions)
	writeHeaderLine(&b, "목적:", s.Purpose)
	writeHeaderLine(&b, "환경:", s.Environment)
	writeHeaderLine(&b, "전역상태:", s.GlobalState)
	writeHeaderLine(&b, "외부의존성:", s.ExternalDeps)

	for _, m := range s.Modules {
		b.WriteString("\n")
		line := "[모듈] " + m.Name
		if m.Description != "" {
			line += " - " + m.Description
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")

		for _, fn := range m.Functions {
			b.WriteString(indentFunction + "함수 " + fn.Name + "\n")
			writeField(&b, "입력:", fn.Inputs)
			writeField(&b, "출력:", fn.Outputs)
			writeField(&b, "동작:", fn.Behavior)
		}
	}

	return b.String()
}

func writeHeaderLine(b *strings.Builder, keyword, value string) {
	if value == "" {
		return
	}
	b.WriteString(keyword + " " + value + "\n")
}

func writeField(b *strings.Builder, keyword, value string) {
	if value == "" {
		return
	}
	lines := strings.Split(value, "\n")
	b.WriteString(indentField + keyword + " " + lines[0] + "\n")
	for _, l := range lines[1:] {
		if l == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(indentBody + l + "\n")
	}
}
