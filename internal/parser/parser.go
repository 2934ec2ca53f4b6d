package parser

import (
	"regexp"
	"strings"

	"github.com/unte2002/NL2PL/internal/ident"
	"github.com/unte2002/NL2PL/internal/spec"
)

// Parser turns specification text into a spec.ProjectSpec. Each Parser
// owns its identifier sequence; reusing one Parser for several parses
// keeps numbering across them, while fresh parsers started from the same
// value assign identical identifiers to identical text.
//
// A Parser is single-writer: concurrent parses must use separate
// instances.
type Parser struct {
	seq *ident.Sequence
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDStart sets the identifier sequence's starting value. The first
// identifier issued is numbered start+1.
func WithIDStart(start int) Option {
	return func(p *Parser) {
		p.seq = ident.NewSequence(start)
	}
}

// New returns a Parser with its own identifier sequence starting at 0.
func New(opts ...Option) *Parser {
	p := &Parser{seq: ident.NewSequence(0)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses text with a fresh Parser. Two calls over identical text
// yield identical trees, identifiers included.
func Parse(text string) *spec.ProjectSpec {
	return New().Parse(text)
}

// Parse processes text line by line and returns the resulting tree. It
// never fails: unrecognizable lines close any open field and are
// otherwise dropped, and empty input yields an empty ProjectSpec.
func (p *Parser) Parse(text string) *spec.ProjectSpec {
	st := newState(p.seq)
	for _, raw := range strings.Split(text, "\n") {
		st.apply(Classify(raw))
	}
	return st.finish()
}

// state is the explicit machine state threaded through line processing:
// the document built so far, whether the header phase is still open, the
// open module and function, and the open field with its baseline indent.
type state struct {
	seq *ident.Sequence
	doc *spec.ProjectSpec

	headerOpen bool
	module     *spec.Module
	fn         *spec.Function

	field       string // FieldInputs, FieldOutputs, FieldBehavior, or ""
	fieldIndent int
	fieldLines  []string
}

func newState(seq *ident.Sequence) *state {
	return &state{
		seq:        seq,
		doc:        &spec.ProjectSpec{Modules: []*spec.Module{}},
		headerOpen: true,
	}
}

// apply advances the state by one classified line.
//
// Recognition order, first match wins: blank/comment, then the
// structural forms (header, module start, function start, field start)
// under their state conditions, then continuation of an open field, then
// closing the field and re-evaluating the line as structural. A line
// matching nothing is dropped.
func (st *state) apply(ln Line) {
	switch ln.Kind {
	case LineBlank:
		// Blank lines are preserved inside an open behavior field and
		// ignored everywhere else; they never close a field.
		if st.field == FieldBehavior {
			st.fieldLines = append(st.fieldLines, "")
		}
		return
	case LineComment:
		return
	}

	if st.structural(ln) {
		return
	}

	if st.field != "" {
		if ln.Indent > st.fieldIndent {
			st.fieldLines = append(st.fieldLines, strings.TrimSpace(ln.Raw))
			return
		}
		st.closeField()
		st.structural(ln)
	}
}

// structural applies a header, module-start, function-start or
// field-start line under the current state conditions. It reports false
// when the line matches none of them, leaving the state untouched.
func (st *state) structural(ln Line) bool {
	switch ln.Kind {
	case LineHeader:
		if !st.headerOpen {
			return false
		}
		st.setHeader(ln.Key, ln.Rest)
		return true

	case LineModule:
		st.flushModule()
		name, desc := splitDescription(ln.Rest)
		st.module = &spec.Module{
			ID:          st.seq.Next(name),
			Name:        name,
			Description: desc,
			Functions:   []*spec.Function{},
		}
		st.headerOpen = false
		return true

	case LineFunction:
		if st.module == nil {
			return false
		}
		st.flushFunction()
		st.fn = &spec.Function{
			ID:           st.seq.Next(ln.Rest),
			Name:         ln.Rest,
			Dependencies: []string{},
			Status:       spec.StatusEmpty,
		}
		return true

	case LineField:
		if st.fn == nil {
			return false
		}
		st.closeField()
		st.field = ln.Key
		st.fieldIndent = ln.Indent
		st.fieldLines = []string{ln.Rest}
		return true
	}
	return false
}

func (st *state) setHeader(key, value string) {
	switch key {
	case HeaderLanguage:
		st.doc.Language = value
	case HeaderFramework:
		st.doc.Framework = value
	case HeaderDatabase:
		st.doc.Database = value
	case HeaderConventions:
		st.doc.Conventions = value
	case HeaderPurpose:
		st.doc.Purpose = value
	case HeaderEnvironment:
		st.doc.Environment = value
	case HeaderGlobalState:
		st.doc.GlobalState = value
	case HeaderExternalDeps:
		st.doc.ExternalDeps = value
	}
}

// closeField writes the accumulated value into the open field, if any.
// The value keeps its interior lines as-is; trimming happens when the
// function is flushed.
func (st *state) closeField() {
	if st.field == "" {
		return
	}
	value := strings.Join(st.fieldLines, "\n")
	switch st.field {
	case FieldInputs:
		st.fn.Inputs = value
	case FieldOutputs:
		st.fn.Outputs = value
	case FieldBehavior:
		st.fn.Behavior = value
	}
	st.field = ""
	st.fieldIndent = 0
	st.fieldLines = nil
}

// flushFunction finalizes the open function and appends it to the open
// module: fields are trimmed and dependency references extracted from
// the behavior text.
func (st *state) flushFunction() {
	st.closeField()
	if st.fn == nil {
		return
	}
	st.fn.Inputs = strings.TrimSpace(st.fn.Inputs)
	st.fn.Outputs = strings.TrimSpace(st.fn.Outputs)
	st.fn.Behavior = strings.TrimSpace(st.fn.Behavior)
	st.fn.Dependencies = ExtractReferences(st.fn.Behavior)
	st.module.Functions = append(st.module.Functions, st.fn)
	st.fn = nil
}

func (st *state) flushModule() {
	st.flushFunction()
	if st.module == nil {
		return
	}
	st.doc.Modules = append(st.doc.Modules, st.module)
	st.module = nil
}

// finish flushes whatever is still open and returns the document. End of
// input acts as an implicit block boundary.
func (st *state) finish() *spec.ProjectSpec {
	st.flushModule()
	return st.doc
}

// splitDescription splits a module start line's remainder into name and
// description at the first " - ".
func splitDescription(rest string) (name, desc string) {
	if i := strings.Index(rest, " - "); i >= 0 {
		return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i+3:])
	}
	return rest, ""
}

var refPattern = regexp.MustCompile(`\[([^\]]*)\]`)

// ExtractReferences returns the bracketed reference names in behavior
// text, trimmed, without empties, deduplicated in first-occurrence
// order. The result is never nil.
func ExtractReferences(behavior string) []string {
	refs := []string{}
	seen := make(map[string]bool)
	for _, m := range refPattern.FindAllStringSubmatch(behavior, -1) {
		ref := strings.TrimSpace(m[1])
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}
