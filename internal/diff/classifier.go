// Package diff compares two parsed snapshots of a specification and
// classifies what changed per function.
package diff

import (
	"strings"

	"github.com/unte2002/NL2PL/internal/spec"
)

// DiffSpecs compares two trees by identifier and reports, for every
// function present in both, whether its interface (inputs or outputs)
// or only its behavior changed. Texts are compared after collapsing
// whitespace runs, so formatting-only edits classify as no change and
// are excluded from the result.
//
// Functions present in only one tree are never reported: an added
// function has no dependents to warn yet, and removal handling belongs
// to the caller. The result follows the new tree's document order.
//
// Identifiers are positional, so both snapshots must have been parsed
// with identically started sequences for the comparison to line up.
func DiffSpecs(oldSpec, newSpec *spec.ProjectSpec) []spec.Change {
	oldFns := oldSpec.FunctionsByID()

	changes := []spec.Change{}
	for _, mod := range newSpec.Modules {
		for _, fn := range mod.Functions {
			oldFn, ok := oldFns[fn.ID]
			if !ok {
				continue
			}
			ct := classify(oldFn, fn)
			if ct == spec.ChangeNone {
				continue
			}
			changes = append(changes, spec.Change{
				ID:         fn.ID,
				Name:       fn.Name,
				ChangeType: ct,
			})
		}
	}
	return changes
}

// classify orders the checks so that an interface difference wins even
// when the behavior text changed too.
func classify(oldFn, newFn *spec.Function) spec.ChangeType {
	if Normalize(oldFn.Inputs) != Normalize(newFn.Inputs) ||
		Normalize(oldFn.Outputs) != Normalize(newFn.Outputs) {
		return spec.ChangeInterface
	}
	if Normalize(oldFn.Behavior) != Normalize(newFn.Behavior) {
		return spec.ChangeBehavior
	}
	return spec.ChangeNone
}

// Normalize collapses every whitespace run to a single space and trims
// the ends, the equivalence under which field texts are compared.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
