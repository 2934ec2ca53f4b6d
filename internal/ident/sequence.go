// Package ident issues the positional identifiers attached to modules
// and functions during a parse.
package ident

import "strconv"

// Sequence issues identifiers of the form "<name>_<n>", where n is
// strictly increasing across calls regardless of name. Each parser owns
// its own sequence, so independent parses cannot interfere with each
// other; two parses produce identical identifiers exactly when they
// start from the same value and visit blocks in the same order.
//
// A sequence is single-writer and not safe for concurrent use.
type Sequence struct {
	n int
}

// NewSequence returns a sequence whose first issued number is start+1.
// The usual starting value is 0, making the first identifier "<name>_1".
func NewSequence(start int) *Sequence {
	return &Sequence{n: start}
}

// Next returns "<name>_<n>" for the next n and advances the sequence.
func (s *Sequence) Next(name string) string {
	s.n++
	return name + "_" + strconv.Itoa(s.n)
}

// Value returns the last issued number, or the starting value if Next
// has not been called yet.
func (s *Sequence) Value() int {
	return s.n
}
