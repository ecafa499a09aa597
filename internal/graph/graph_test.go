package graph

import (
	"errors"
	"strings"
	"testing"
)

func acts(defs ...string) []Activity {
	// each entry is "id:pred1,pred2" with unit duration
	out := make([]Activity, 0, len(defs))
	for _, s := range defs {
		id, preds, _ := strings.Cut(s, ":")
		a := Activity{ID: id, Name: "Task " + id, Duration: 1}
		if preds != "" {
			a.Predecessors = strings.Split(preds, ",")
		}
		out = append(out, a)
	}
	return out
}

func TestBuild_SimpleDAG(t *testing.T) {
	// A -> B -> D
	// A -> C -> D
	g := Build(acts("a", "b:a", "c:a", "d:b,c"))

	if g.Len() != 4 {
		t.Errorf("expected 4 activities, got %d", g.Len())
	}

	if roots := g.IDs(g.Roots); len(roots) != 1 || roots[0] != "a" {
		t.Errorf("expected roots=[a], got %v", roots)
	}
	if leaves := g.IDs(g.Leaves); len(leaves) != 1 || leaves[0] != "d" {
		t.Errorf("expected leaves=[d], got %v", leaves)
	}

	a, _ := g.Lookup("a")
	if succ := g.IDs(g.Succ[a]); len(succ) != 2 || succ[0] != "b" || succ[1] != "c" {
		t.Errorf("expected a -> [b c], got %v", succ)
	}

	d, _ := g.Lookup("d")
	if pred := g.IDs(g.Pred[d]); len(pred) != 2 || pred[0] != "b" || pred[1] != "c" {
		t.Errorf("expected d <- [b c], got %v", pred)
	}
}

func TestBuild_DenseIndicesFollowInput(t *testing.T) {
	g := Build(acts("z", "y:z", "x:y"))
	for want, id := range []string{"z", "y", "x"} {
		got, ok := g.Lookup(id)
		if !ok || got != want {
			t.Errorf("Lookup(%q) = %d, %v; want %d", id, got, ok, want)
		}
	}
	if _, ok := g.Lookup("missing"); ok {
		t.Error("Lookup of unknown id should fail")
	}
}

func TestBuild_SingleActivity(t *testing.T) {
	g := Build(acts("x"))
	if g.Len() != 1 {
		t.Errorf("expected 1 activity, got %d", g.Len())
	}
	if len(g.Roots) != 1 || len(g.Leaves) != 1 {
		t.Errorf("expected x to be both root and leaf, got roots=%v leaves=%v", g.Roots, g.Leaves)
	}
}

func TestBuild_UnknownPredecessorsIgnored(t *testing.T) {
	g := Build(acts("a:z", "b"))
	a, _ := g.Lookup("a")
	if len(g.Pred[a]) != 0 {
		t.Errorf("expected no predecessors for a (z not in graph), got %v", g.Pred[a])
	}
}

func TestBuild_DuplicateEdgesCollapsed(t *testing.T) {
	g := Build(acts("a", "b:a,a"))
	a, _ := g.Lookup("a")
	if len(g.Succ[a]) != 1 {
		t.Errorf("expected a single edge a -> b, got %v", g.IDs(g.Succ[a]))
	}
}

func TestBuild_DuplicateIDKeepsFirst(t *testing.T) {
	list := acts("a", "b")
	list = append(list, Activity{ID: "a", Name: "second a", Duration: 7})
	g := Build(list)
	if g.Len() != 2 {
		t.Fatalf("expected 2 activities, got %d", g.Len())
	}
	if g.Activities[0].Name != "Task a" {
		t.Errorf("expected first definition of a to win, got %q", g.Activities[0].Name)
	}
}

func TestBuild_Empty(t *testing.T) {
	g := Build(nil)
	if g.Len() != 0 {
		t.Errorf("expected 0 activities, got %d", g.Len())
	}
	if cycle := g.DetectCycle(); cycle != nil {
		t.Errorf("expected no cycle, got %v", cycle)
	}
	order, err := g.TopoOrder()
	if err != nil || len(order) != 0 {
		t.Errorf("expected empty order, got %v, %v", order, err)
	}
}

func TestDetectCycle_NoCycle(t *testing.T) {
	g := Build(acts("a", "b:a", "c:a", "d:b,c"))
	if cycle := g.DetectCycle(); cycle != nil {
		t.Errorf("expected no cycle, got %v", cycle)
	}
}

func TestDetectCycle_TwoNodes(t *testing.T) {
	g := Build(acts("A:B", "B:A"))
	cycle := g.DetectCycle()
	want := []string{"A", "B", "A"}
	if strings.Join(cycle, " ") != strings.Join(want, " ") {
		t.Errorf("expected cycle %v, got %v", want, cycle)
	}
}

func TestDetectCycle_WithTail(t *testing.T) {
	// x -> a -> b -> c -> a: the tail x is not part of the reported cycle
	g := Build(acts("x", "a:x,c", "b:a", "c:b"))
	cycle := g.DetectCycle()
	if strings.Join(cycle, " ") != "a b c a" {
		t.Errorf("expected cycle [a b c a], got %v", cycle)
	}
}

func TestDetectCycle_SelfReference(t *testing.T) {
	g := Build(acts("a:a"))
	cycle := g.DetectCycle()
	if strings.Join(cycle, " ") != "a a" {
		t.Errorf("expected cycle [a a], got %v", cycle)
	}
}

func TestTopoOrder_InsertionTieBreak(t *testing.T) {
	g := Build(acts("c", "a", "b:c,a", "d:a"))
	order, err := g.TopoOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(g.IDs(order), " "); got != "c a b d" {
		t.Errorf("expected order [c a b d], got [%s]", got)
	}
}

func TestTopoOrder_Cycle(t *testing.T) {
	g := Build(acts("a:c", "b:a", "c:b"))
	if _, err := g.TopoOrder(); err == nil {
		t.Fatal("expected cycle error, got nil")
	}
}

func TestComponents(t *testing.T) {
	g := Build(acts("a", "b:a", "x", "y:x", "solo"))
	comps := g.Components()
	if len(comps) != 3 {
		t.Fatalf("expected 3 components, got %d: %v", len(comps), comps)
	}
	if comps[0][0] != "a" || comps[1][0] != "x" || comps[2][0] != "solo" {
		t.Errorf("components should be ordered by first activity, got %v", comps)
	}
}

func TestIssue_UnwrapsKind(t *testing.T) {
	is := CycleIssue([]string{"A", "B", "A"})
	if !errors.Is(is, ErrCycle) {
		t.Error("expected cycle issue to match ErrCycle")
	}
	if is.Error() != "Cycle detected in the network: A → B → A" {
		t.Errorf("unexpected message %q", is.Error())
	}
}
