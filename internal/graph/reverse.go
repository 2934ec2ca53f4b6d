// Package graph resolves dependency references between functions and
// builds the reverse graph used to find who is affected by a change.
package graph

import (
	"strings"

	"github.com/unte2002/NL2PL/internal/spec"
)

// ReverseDependencyMap maps a function identifier to the ordered,
// duplicate-free identifiers of functions whose behavior references it
// directly. There is no transitive closure.
type ReverseDependencyMap map[string][]string

// BuildReverseDependencyMap resolves every dependency reference in the
// tree and inverts the edges. References that match no function are
// dropped silently: dangling names are a normal state of a document
// being edited, not invalid input.
func BuildReverseDependencyMap(s *spec.ProjectSpec) ReverseDependencyMap {
	m := make(ReverseDependencyMap)
	for _, mod := range s.Modules {
		for _, fn := range mod.Functions {
			for _, ref := range fn.Dependencies {
				target := resolve(s, mod, ref)
				if target == "" {
					continue
				}
				if !containsString(m[target], fn.ID) {
					m[target] = append(m[target], fn.ID)
				}
			}
		}
	}
	return m
}

// AffectedFunctions returns the direct dependents recorded for id, or an
// empty list when the map has no entry for it.
func AffectedFunctions(m ReverseDependencyMap, id string) []string {
	if ids, ok := m[id]; ok {
		return ids
	}
	return []string{}
}

// resolve maps one raw reference to a function identifier.
//
// A qualified reference "Module.function" splits at the first dot and
// must match both names exactly, scanning (module, function) pairs in
// document order. An unqualified reference prefers a function in the
// referencing module, then falls back to a global scan in document
// order. The empty string means unresolved.
func resolve(s *spec.ProjectSpec, from *spec.Module, ref string) string {
	if i := strings.Index(ref, "."); i >= 0 {
		modName, fnName := ref[:i], ref[i+1:]
		for _, mod := range s.Modules {
			if mod.Name != modName {
				continue
			}
			for _, fn := range mod.Functions {
				if fn.Name == fnName {
					return fn.ID
				}
			}
		}
		return ""
	}

	for _, fn := range from.Functions {
		if fn.Name == ref {
			return fn.ID
		}
	}
	for _, mod := range s.Modules {
		for _, fn := range mod.Functions {
			if fn.Name == ref {
				return fn.ID
			}
		}
	}
	return ""
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
