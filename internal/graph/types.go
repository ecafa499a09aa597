package graph

// CriticalTolerance is the total-float threshold below which an activity is critical.
const CriticalTolerance = 1e-3

// Activity is a single node of the project network as supplied by the caller.
type Activity struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Duration     float64  `json:"duration"`
	Predecessors []string `json:"predecessors"`
}

// ComputedActivity is an Activity with its CPM schedule attached.
type ComputedActivity struct {
	Activity
	ES         float64 `json:"es"`
	EF         float64 `json:"ef"`
	LS         float64 `json:"ls"`
	LF         float64 `json:"lf"`
	TotalFloat float64 `json:"total_float"`
	FreeFloat  float64 `json:"free_float"`
	IsCritical bool    `json:"is_critical"`
}

// Graph is an activity network stored as an arena: activities live at dense
// indices (their input position) and all adjacency refers to those indices.
type Graph struct {
	Activities []Activity
	Succ       [][]int // index -> successor indices
	Pred       [][]int // index -> predecessor indices
	Roots      []int   // no predecessors within the graph
	Leaves     []int   // no successors within the graph

	index map[string]int
}
