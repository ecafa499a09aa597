package graph

import (
	"fmt"
)

// Build constructs a Graph from the caller's activity list. Activities keep
// their input position as arena index. A repeated id keeps its first
// definition, and predecessor ids that name no activity are skipped; Validate
// reports both conditions.
func Build(activities []Activity) *Graph {
	g := &Graph{
		Activities: make([]Activity, 0, len(activities)),
		index:      make(map[string]int, len(activities)),
	}

	for _, a := range activities {
		if _, dup := g.index[a.ID]; dup {
			continue
		}
		g.index[a.ID] = len(g.Activities)
		g.Activities = append(g.Activities, a)
	}

	n := len(g.Activities)
	g.Succ = make([][]int, n)
	g.Pred = make([][]int, n)

	edgeSet := make(map[[2]int]bool)
	addEdge := func(from, to int) {
		key := [2]int{from, to}
		if edgeSet[key] {
			return
		}
		edgeSet[key] = true
		g.Succ[from] = append(g.Succ[from], to)
		g.Pred[to] = append(g.Pred[to], from)
	}

	// Successor lists end up ordered by the position of the dependent
	// activity, predecessor lists by the order the caller listed them.
	for i, a := range g.Activities {
		for _, predID := range a.Predecessors {
			if p, ok := g.index[predID]; ok {
				addEdge(p, i)
			}
		}
	}

	for i := 0; i < n; i++ {
		if len(g.Pred[i]) == 0 {
			g.Roots = append(g.Roots, i)
		}
		if len(g.Succ[i]) == 0 {
			g.Leaves = append(g.Leaves, i)
		}
	}

	return g
}

// Len returns the number of activities in the graph.
func (g *Graph) Len() int {
	return len(g.Activities)
}

// Lookup returns the arena index of the activity with the given id.
func (g *Graph) Lookup(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// ID returns the id of the activity at index i.
func (g *Graph) ID(i int) string {
	return g.Activities[i].ID
}

// IDs maps a slice of arena indices to activity ids.
func (g *Graph) IDs(indices []int) []string {
	ids := make([]string, len(indices))
	for k, i := range indices {
		ids[k] = g.Activities[i].ID
	}
	return ids
}

// DetectCycle returns the cycle path if one exists, or nil if the graph is acyclic.
// The path runs from the first repeated activity through the activity that closes
// the loop and ends with the repeated activity again, e.g. [A B C A].
// Uses an explicit-stack DFS with coloring: white (unvisited), gray (on the
// stack), black (done).
func (g *Graph) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	type frame struct {
		node int
		next int // next successor position to explore
	}

	color := make([]int, g.Len())

	for start := range g.Activities {
		if color[start] != white {
			continue
		}

		color[start] = gray
		stack := []frame{{node: start}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(g.Succ[top.node]) {
				succ := g.Succ[top.node][top.next]
				top.next++

				switch color[succ] {
				case white:
					color[succ] = gray
					stack = append(stack, frame{node: succ})
				case gray:
					var cycle []string
					onPath := false
					for _, f := range stack {
						if f.node == succ {
							onPath = true
						}
						if onPath {
							cycle = append(cycle, g.ID(f.node))
						}
					}
					return append(cycle, g.ID(succ))
				}
				continue
			}

			color[top.node] = black
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}

// TopoOrder performs Kahn's algorithm and returns arena indices in dependency
// order. Ready activities are released first-in first-out, seeded in input
// order, so the result is deterministic for a given input.
func (g *Graph) TopoOrder() ([]int, error) {
	inDegree := make([]int, g.Len())
	var queue []int
	for i := range g.Activities {
		inDegree[i] = len(g.Pred[i])
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, g.Len())
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, succ := range g.Succ[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) != g.Len() {
		return nil, fmt.Errorf("topological sort failed: graph has a cycle (%d of %d activities sorted)", len(order), g.Len())
	}
	return order, nil
}

// Components splits the network into connected components, treating every
// dependency as an undirected edge. Components are listed in order of their
// first activity.
func (g *Graph) Components() [][]string {
	visited := make([]bool, g.Len())
	var components [][]string

	for start := range g.Activities {
		if visited[start] {
			continue
		}

		var component []string
		visited[start] = true
		stack := []int{start}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, g.ID(node))

			for _, next := range g.Succ[node] {
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
			for _, next := range g.Pred[node] {
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
		}
		components = append(components, component)
	}
	return components
}
