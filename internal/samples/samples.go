// Package samples provides the demonstration networks bundled with critpath.
package samples

import (
	"github.com/joshharrison/critpath/internal/graph"
	"github.com/joshharrison/critpath/internal/pert"
)

// Simple is a five-activity network with one parallel branch. Its project
// duration is 12 with critical path A C D E.
func Simple() []graph.Activity {
	return []graph.Activity{
		{ID: "A", Name: "Start", Duration: 3, Predecessors: []string{}},
		{ID: "B", Name: "Design", Duration: 2, Predecessors: []string{"A"}},
		{ID: "C", Name: "Procure", Duration: 4, Predecessors: []string{"A"}},
		{ID: "D", Name: "Develop", Duration: 2, Predecessors: []string{"B", "C"}},
		{ID: "E", Name: "Test", Duration: 3, Predecessors: []string{"D"}},
	}
}

// Project is a small software project starting with a zero-duration
// milestone. Its project duration is 36.
func Project() []graph.Activity {
	return []graph.Activity{
		{ID: "A", Name: "Project Start", Duration: 0, Predecessors: []string{}},
		{ID: "B", Name: "Requirements Analysis", Duration: 5, Predecessors: []string{"A"}},
		{ID: "C", Name: "Design", Duration: 8, Predecessors: []string{"B"}},
		{ID: "D", Name: "Procurement", Duration: 10, Predecessors: []string{"B"}},
		{ID: "E", Name: "Development", Duration: 12, Predecessors: []string{"C", "D"}},
		{ID: "F", Name: "Testing", Duration: 6, Predecessors: []string{"E"}},
		{ID: "G", Name: "Documentation", Duration: 4, Predecessors: []string{"E"}},
		{ID: "H", Name: "Deployment", Duration: 3, Predecessors: []string{"F", "G"}},
	}
}

// PERT is a three-point network whose expected durations are 2, 3, 3, 4, 3.
func PERT() []pert.Activity {
	return []pert.Activity{
		{ID: "A", Name: "Task A", Optimistic: 1, MostLikely: 2, Pessimistic: 3, Predecessors: []string{}},
		{ID: "B", Name: "Task B", Optimistic: 2, MostLikely: 3, Pessimistic: 4, Predecessors: []string{}},
		{ID: "C", Name: "Task C", Optimistic: 1, MostLikely: 3, Pessimistic: 5, Predecessors: []string{"A"}},
		{ID: "D", Name: "Task D", Optimistic: 2, MostLikely: 4, Pessimistic: 6, Predecessors: []string{"A", "B"}},
		{ID: "E", Name: "Task E", Optimistic: 1, MostLikely: 2, Pessimistic: 9, Predecessors: []string{"C", "D"}},
	}
}

// Named returns the CPM sample called name ("simple" or "project").
func Named(name string) ([]graph.Activity, bool) {
	switch name {
	case "simple":
		return Simple(), true
	case "project":
		return Project(), true
	}
	return nil, false
}
