package review

import (
	"reflect"
	"testing"

	"github.com/unte2002/NL2PL/internal/diff"
	"github.com/unte2002/NL2PL/internal/graph"
	"github.com/unte2002/NL2PL/internal/parser"
	"github.com/unte2002/NL2PL/internal/spec"
)

const baseText = "[모듈] A\n  함수 f\n    입력: x\n    출력: y\n  함수 g\n    동작: 1. [f] 를 부른다\n  함수 h\n    동작: 독립적으로 동작\n"

func TestReviewFlagsDirectDependents(t *testing.T) {
	newText := "[모듈] A\n  함수 f\n    입력: x, 플래그\n    출력: y\n  함수 g\n    동작: 1. [f] 를 부른다\n  함수 h\n    동작: 독립적으로 동작\n"

	oldSpec := parser.Parse(baseText)
	newSpec := parser.Parse(newText)
	changes := diff.DiffSpecs(oldSpec, newSpec)
	m := graph.BuildReverseDependencyMap(newSpec)

	r := Review(changes, m, newSpec)

	if len(r.Changes) != 1 || r.Changes[0].ChangeType != spec.ChangeInterface {
		t.Fatalf("changes = %v, want one interface change for f", r.Changes)
	}
	want := []Flagged{{
		ID:      "g_3",
		Name:    "g",
		Reason:  ReasonDirectDependent,
		Trigger: r.Changes[0],
	}}
	if !reflect.DeepEqual(r.Flagged, want) {
		t.Errorf("flagged = %v, want %v", r.Flagged, want)
	}
	if r.Summary.InterfaceChanges != 1 || r.Summary.BehaviorChanges != 0 {
		t.Errorf("summary changes = %+v", r.Summary)
	}
	if r.Summary.FlaggedTotal != 1 || r.Summary.FlaggedFunctions != 1 {
		t.Errorf("summary flags = %+v", r.Summary)
	}
}

func TestReviewBehaviorChangeAlsoFlags(t *testing.T) {
	newText := "[모듈] A\n  함수 f\n    입력: x\n    출력: y\n  함수 g\n    동작: 1. [f] 를 두 번 부른다\n  함수 h\n    동작: 독립적으로 동작\n"

	oldSpec := parser.Parse(baseText)
	newSpec := parser.Parse(newText)
	changes := diff.DiffSpecs(oldSpec, newSpec)
	m := graph.BuildReverseDependencyMap(newSpec)

	r := Review(changes, m, newSpec)

	// g's own behavior changed; nothing depends on g, so nothing is
	// flagged, but the change is counted.
	if r.Summary.BehaviorChanges != 1 {
		t.Errorf("behavior changes = %d, want 1", r.Summary.BehaviorChanges)
	}
	if len(r.Flagged) != 0 {
		t.Errorf("flagged = %v, want none", r.Flagged)
	}
}

func TestReviewSkipsChangedFunctionItself(t *testing.T) {
	oldText := "[모듈] A\n  함수 재귀\n    입력: n\n    동작: n이 남았으면 [재귀] 를 다시 부른다\n"
	newText := "[모듈] A\n  함수 재귀\n    입력: n, 한도\n    동작: n이 남았으면 [재귀] 를 다시 부른다\n"

	oldSpec := parser.Parse(oldText)
	newSpec := parser.Parse(newText)
	changes := diff.DiffSpecs(oldSpec, newSpec)
	m := graph.BuildReverseDependencyMap(newSpec)

	r := Review(changes, m, newSpec)

	// 재귀 depends on itself, so the graph lists it as its own
	// dependent, but its own change must not flag it.
	if got := graph.AffectedFunctions(m, "재귀_2"); len(got) != 1 {
		t.Fatalf("AffectedFunctions = %v, want the self edge", got)
	}
	if len(r.Flagged) != 0 {
		t.Errorf("flagged = %v, want none", r.Flagged)
	}
}

func TestReviewNoChangesEmptyReport(t *testing.T) {
	s := parser.Parse(baseText)
	r := Review(nil, graph.BuildReverseDependencyMap(s), s)

	if len(r.Flagged) != 0 || r.Summary.FlaggedTotal != 0 {
		t.Errorf("report = %+v, want empty", r)
	}
}

func TestReviewCountsDistinctFunctionsOnce(t *testing.T) {
	oldText := "[모듈] A\n  함수 f\n    입력: a\n  함수 g\n    입력: b\n  함수 둘다사용\n    동작: [f] 와 [g] 를 부른다\n"
	newText := "[모듈] A\n  함수 f\n    입력: a2\n  함수 g\n    입력: b2\n  함수 둘다사용\n    동작: [f] 와 [g] 를 부른다\n"

	oldSpec := parser.Parse(oldText)
	newSpec := parser.Parse(newText)
	changes := diff.DiffSpecs(oldSpec, newSpec)
	m := graph.BuildReverseDependencyMap(newSpec)

	r := Review(changes, m, newSpec)

	if r.Summary.FlaggedTotal != 2 {
		t.Errorf("FlaggedTotal = %d, want 2 (one per trigger)", r.Summary.FlaggedTotal)
	}
	if r.Summary.FlaggedFunctions != 1 {
		t.Errorf("FlaggedFunctions = %d, want 1 distinct", r.Summary.FlaggedFunctions)
	}
}

func TestMarkStale(t *testing.T) {
	newText := "[모듈] A\n  함수 f\n    입력: x, 플래그\n    출력: y\n  함수 g\n    동작: 1. [f] 를 부른다\n  함수 h\n    동작: 독립적으로 동작\n"

	oldSpec := parser.Parse(baseText)
	newSpec := parser.Parse(newText)
	changes := diff.DiffSpecs(oldSpec, newSpec)
	m := graph.BuildReverseDependencyMap(newSpec)
	r := Review(changes, m, newSpec)

	n := MarkStale(newSpec, r)

	if n != 1 {
		t.Fatalf("MarkStale = %d, want 1", n)
	}
	fns := newSpec.FunctionsByID()
	if fns["g_3"].Status != spec.StatusStale {
		t.Errorf("g status = %q, want stale", fns["g_3"].Status)
	}
	if fns["f_2"].Status != spec.StatusEmpty || fns["h_4"].Status != spec.StatusEmpty {
		t.Errorf("unrelated statuses changed: f=%q h=%q", fns["f_2"].Status, fns["h_4"].Status)
	}

	// Applying the same report twice changes nothing further.
	if again := MarkStale(newSpec, r); again != 0 {
		t.Errorf("second MarkStale = %d, want 0", again)
	}
}
