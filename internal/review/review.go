// Package review joins a change list with the reverse dependency graph
// to decide which functions must be flagged for review: the direct
// dependents of every changed function.
package review

import (
	"github.com/unte2002/NL2PL/internal/graph"
	"github.com/unte2002/NL2PL/internal/spec"
)

// ReasonDirectDependent marks a function flagged because its behavior
// references a changed function directly.
const ReasonDirectDependent = "direct-dependent"

// Flagged is one function in need of review, with the change that
// triggered the flag. A function referenced by several changed
// functions appears once per trigger.
type Flagged struct {
	ID      string      `json:"id" yaml:"id"`
	Name    string      `json:"name" yaml:"name"`
	Reason  string      `json:"reason" yaml:"reason"`
	Trigger spec.Change `json:"trigger" yaml:"trigger"`
}

// Summary counts the report's contents.
type Summary struct {
	InterfaceChanges int `json:"interfaceChanges" yaml:"interfaceChanges"`
	BehaviorChanges  int `json:"behaviorChanges" yaml:"behaviorChanges"`
	FlaggedTotal     int `json:"flaggedTotal" yaml:"flaggedTotal"`
	FlaggedFunctions int `json:"flaggedFunctions" yaml:"flaggedFunctions"`
}

// Report is the outcome of one review pass over a snapshot pair.
type Report struct {
	Changes []spec.Change `json:"changes" yaml:"changes"`
	Flagged []Flagged     `json:"flagged" yaml:"flagged"`
	Summary Summary       `json:"summary" yaml:"summary"`
}

// Review derives the flagged-function report from classified changes
// and the new tree's reverse dependency map. Both interface and
// behavior changes flag dependents; the changed function itself is not
// flagged. Like the rest of the pipeline, this never fails: unknown
// identifiers simply contribute nothing.
func Review(changes []spec.Change, m graph.ReverseDependencyMap, newSpec *spec.ProjectSpec) *Report {
	fns := newSpec.FunctionsByID()

	r := &Report{
		Changes: changes,
		Flagged: []Flagged{},
	}

	distinct := make(map[string]bool)
	for _, ch := range changes {
		switch ch.ChangeType {
		case spec.ChangeInterface:
			r.Summary.InterfaceChanges++
		case spec.ChangeBehavior:
			r.Summary.BehaviorChanges++
		}

		for _, id := range graph.AffectedFunctions(m, ch.ID) {
			// A self-referencing function is its own dependent in the
			// graph, but a change never flags the changed function.
			if id == ch.ID {
				continue
			}
			name := ""
			if fn, ok := fns[id]; ok {
				name = fn.Name
			}
			r.Flagged = append(r.Flagged, Flagged{
				ID:      id,
				Name:    name,
				Reason:  ReasonDirectDependent,
				Trigger: ch,
			})
			distinct[id] = true
		}
	}

	r.Summary.FlaggedTotal = len(r.Flagged)
	r.Summary.FlaggedFunctions = len(distinct)
	return r
}

// MarkStale applies a report to a tree, setting every flagged function's
// status to StatusStale. It returns the number of functions whose status
// actually changed.
func MarkStale(s *spec.ProjectSpec, r *Report) int {
	fns := s.FunctionsByID()
	n := 0
	for _, fl := range r.Flagged {
		fn, ok := fns[fl.ID]
		if !ok || fn.Status == spec.StatusStale {
			continue
		}
		fn.Status = spec.StatusStale
		n++
	}
	return n
}
