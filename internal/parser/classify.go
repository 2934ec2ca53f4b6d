package parser

import "strings"

// LineKind is the stateless classification of one input line. Whether a
// classified line actually takes effect depends on parser state: a
// header line after the first module, or a function line outside a
// module, falls through to continuation handling or is dropped.
type LineKind string

const (
	// LineBlank is a line containing only whitespace
	LineBlank LineKind = "blank"
	// LineComment is a line starting with # or // after indentation
	LineComment LineKind = "comment"
	// LineHeader is a project header field line
	LineHeader LineKind = "header"
	// LineModule is a module block start line
	LineModule LineKind = "module"
	// LineFunction is a function block start line
	LineFunction LineKind = "function"
	// LineField is a function field start line (inputs/outputs/behavior)
	LineField LineKind = "field"
	// LineText is any other line; continuation or droppable
	LineText LineKind = "text"
)

// Field tags used in Line.Key for LineField lines and in parser state.
const (
	FieldInputs   = "inputs"
	FieldOutputs  = "outputs"
	FieldBehavior = "behavior"
)

// Header attribute keys used in Line.Key for LineHeader lines.
const (
	HeaderLanguage     = "language"
	HeaderFramework    = "framework"
	HeaderDatabase     = "database"
	HeaderConventions  = "conventions"
	HeaderPurpose      = "purpose"
	HeaderEnvironment  = "environment"
	HeaderGlobalState  = "global-state"
	HeaderExternalDeps = "external-dependencies"
)

// Line is one classified input line.
type Line struct {
	Kind   LineKind
	Key    string // header attribute or field tag, for LineHeader/LineField
	Rest   string // trimmed remainder after the keyword; trimmed line for LineText
	Indent int    // leading whitespace columns (space and tab count one each)
	Raw    string // the line as read, without the trailing \r of CRLF input
}

// Keyword tables. Korean first, English second, per concept; matching is
// exact and case-sensitive on the trimmed line's prefix.
var (
	moduleKeywords   = []string{"[모듈]", "[module]", "모듈:", "module:"}
	functionBrackets = []string{"[함수]", "[function]"}
	functionBare     = []string{"함수", "function"}

	fieldKeywords = []struct{ prefix, key string }{
		{"입력:", FieldInputs},
		{"inputs:", FieldInputs},
		{"출력:", FieldOutputs},
		{"outputs:", FieldOutputs},
		{"동작:", FieldBehavior},
		{"behavior:", FieldBehavior},
	}

	headerKeywords = []struct{ prefix, key string }{
		{"언어:", HeaderLanguage},
		{"language:", HeaderLanguage},
		{"프레임워크:", HeaderFramework},
		{"framework:", HeaderFramework},
		{"데이터베이스:", HeaderDatabase},
		{"database:", HeaderDatabase},
		{"컨벤션:", HeaderConventions},
		{"conventions:", HeaderConventions},
		{"목적:", HeaderPurpose},
		{"purpose:", HeaderPurpose},
		{"환경:", HeaderEnvironment},
		{"environment:", HeaderEnvironment},
		{"전역상태:", HeaderGlobalState},
		{"global-state:", HeaderGlobalState},
		{"외부의존성:", HeaderExternalDeps},
		{"external-dependencies:", HeaderExternalDeps},
	}
)

// Classify decides what one line could be, independent of parser state.
func Classify(raw string) Line {
	raw = strings.TrimSuffix(raw, "\r")
	trimmed := strings.TrimSpace(raw)

	ln := Line{
		Kind:   LineText,
		Rest:   trimmed,
		Indent: indentOf(raw),
		Raw:    raw,
	}

	if trimmed == "" {
		ln.Kind = LineBlank
		return ln
	}
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
		ln.Kind = LineComment
		return ln
	}

	for _, kw := range moduleKeywords {
		if strings.HasPrefix(trimmed, kw) {
			ln.Kind = LineModule
			ln.Rest = strings.TrimSpace(trimmed[len(kw):])
			return ln
		}
	}

	for _, kw := range functionBrackets {
		if strings.HasPrefix(trimmed, kw) {
			ln.Kind = LineFunction
			ln.Rest = strings.TrimSpace(trimmed[len(kw):])
			return ln
		}
	}
	for _, kw := range functionBare {
		if rest, ok := afterBareKeyword(trimmed, kw); ok {
			ln.Kind = LineFunction
			ln.Rest = rest
			return ln
		}
	}

	for _, f := range fieldKeywords {
		if strings.HasPrefix(trimmed, f.prefix) {
			ln.Kind = LineField
			ln.Key = f.key
			ln.Rest = strings.TrimSpace(trimmed[len(f.prefix):])
			return ln
		}
	}

	for _, h := range headerKeywords {
		if strings.HasPrefix(trimmed, h.prefix) {
			ln.Kind = LineHeader
			ln.Key = h.key
			ln.Rest = strings.TrimSpace(trimmed[len(h.prefix):])
			return ln
		}
	}

	return ln
}

// afterBareKeyword matches a keyword that must be followed by whitespace,
// so that "함수 검색" starts a function while "함수형" does not.
func afterBareKeyword(trimmed, kw string) (string, bool) {
	if !strings.HasPrefix(trimmed, kw) {
		return "", false
	}
	rest := trimmed[len(kw):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func indentOf(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}
