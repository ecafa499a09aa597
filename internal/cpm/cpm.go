package cpm

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/joshharrison/critpath/internal/aoa"
	"github.com/joshharrison/critpath/internal/graph"
)

// Analyze performs critical path method analysis on an activity list.
// Validation errors and dependency cycles never surface as Go errors: they are
// reported inside the result, which then carries no schedule.
func Analyze(activities []graph.Activity, cfg Config) *Result {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	validation := graph.Validate(activities)
	if !validation.Valid {
		log.Debug().Int("errors", len(validation.Errors)).Msg("validation failed")
		return failed(validation.Errors, validation.Warnings)
	}

	g := graph.Build(activities)

	if cycle := g.DetectCycle(); cycle != nil {
		log.Debug().Strs("cycle", cycle).Msg("cycle detected")
		return failed([]*graph.Issue{graph.CycleIssue(cycle)}, validation.Warnings)
	}

	order, err := g.TopoOrder()
	if err != nil {
		// DetectCycle already ran, so this only trips on a broken graph.
		return failed([]*graph.Issue{{Kind: graph.ErrCycle, Msg: err.Error()}}, validation.Warnings)
	}

	sched := make([]graph.ComputedActivity, g.Len())
	for i, a := range g.Activities {
		sched[i] = graph.ComputedActivity{Activity: a}
	}

	// Forward pass: ES = max(EF of all predecessors)
	for _, i := range order {
		ts := &sched[i]
		es := 0.0
		for _, p := range g.Pred[i] {
			es = math.Max(es, sched[p].EF)
		}
		ts.ES = es
		ts.EF = es + ts.Duration
	}

	projectDuration := 0.0
	for i := range sched {
		projectDuration = math.Max(projectDuration, sched[i].EF)
	}

	// Backward pass: LF = min(LS of all successors), leaves finish with the project
	for k := len(order) - 1; k >= 0; k-- {
		i := order[k]
		ts := &sched[i]
		lf := projectDuration
		if len(g.Succ[i]) > 0 {
			lf = math.Inf(1)
			for _, s := range g.Succ[i] {
				lf = math.Min(lf, sched[s].LS)
			}
		}
		ts.LF = lf
		ts.LS = lf - ts.Duration
	}

	for i := range sched {
		ts := &sched[i]
		ts.TotalFloat = ts.LS - ts.ES

		if len(g.Succ[i]) > 0 {
			minSuccES := math.Inf(1)
			for _, s := range g.Succ[i] {
				minSuccES = math.Min(minSuccES, sched[s].ES)
			}
			ts.FreeFloat = minSuccES - ts.EF
		} else {
			ts.FreeFloat = projectDuration - ts.EF
		}

		ts.IsCritical = math.Abs(ts.TotalFloat) < graph.CriticalTolerance
	}

	result := &Result{
		Activities:      make([]graph.ComputedActivity, 0, len(order)),
		ProjectDuration: projectDuration,
		CriticalPaths:   criticalPaths(g, sched, order),
		Warnings:        graph.Messages(validation.Warnings),
		WarningIssues:   validation.Warnings,
	}
	for _, i := range order {
		result.Activities = append(result.Activities, sched[i])
	}
	result.Waves = computeWaves(result.Activities)

	log.Debug().
		Float64("project_duration", projectDuration).
		Int("critical_paths", len(result.CriticalPaths)).
		Msg("schedule computed")

	if !cfg.SkipAOA {
		aoaCfg := cfg.AOA
		if aoaCfg.Logger == nil {
			aoaCfg.Logger = cfg.Logger
		}
		network, warnings := aoa.Convert(result.Activities, aoaCfg)
		result.AOANetwork = network
		result.Warnings = append(result.Warnings, warnings...)
	}

	return result
}

func failed(errs, warnings []*graph.Issue) *Result {
	return &Result{
		Activities:    []graph.ComputedActivity{},
		CriticalPaths: [][]string{},
		Errors:        graph.Messages(errs),
		Warnings:      graph.Messages(warnings),
		ErrorIssues:   errs,
		WarningIssues: warnings,
	}
}

// criticalPaths enumerates every path through the critical subgraph, from
// critical activities without a critical predecessor to critical activities
// without a critical successor. Paths are listed in discovery order: start
// activities in topological order, branches in successor order.
func criticalPaths(g *graph.Graph, sched []graph.ComputedActivity, order []int) [][]string {
	critSucc := make([][]int, g.Len())
	var starts []int
	for _, i := range order {
		if !sched[i].IsCritical {
			continue
		}
		for _, s := range g.Succ[i] {
			if sched[s].IsCritical {
				critSucc[i] = append(critSucc[i], s)
			}
		}
		hasCritPred := false
		for _, p := range g.Pred[i] {
			if sched[p].IsCritical {
				hasCritPred = true
				break
			}
		}
		if !hasCritPred {
			starts = append(starts, i)
		}
	}

	paths := [][]string{}

	type frame struct {
		node int
		next int
	}
	for _, start := range starts {
		stack := []frame{{node: start}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if len(critSucc[top.node]) == 0 {
				path := make([]string, len(stack))
				for k, f := range stack {
					path[k] = g.ID(f.node)
				}
				paths = append(paths, path)
				stack = stack[:len(stack)-1]
				continue
			}
			if top.next < len(critSucc[top.node]) {
				succ := critSucc[top.node][top.next]
				top.next++
				stack = append(stack, frame{node: succ})
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}

	return paths
}

// computeWaves groups activities by their earliest start time.
func computeWaves(activities []graph.ComputedActivity) []Wave {
	esGroups := make(map[float64][]graph.ComputedActivity)
	for _, a := range activities {
		esGroups[a.ES] = append(esGroups[a.ES], a)
	}

	esValues := make([]float64, 0, len(esGroups))
	for es := range esGroups {
		esValues = append(esValues, es)
	}
	sort.Float64s(esValues)

	waves := make([]Wave, len(esValues))
	for i, es := range esValues {
		group := esGroups[es]

		// Critical activities first within a wave
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].IsCritical && !group[b].IsCritical
		})

		w := Wave{Index: i, ES: es}
		for _, a := range group {
			w.ActivityIDs = append(w.ActivityIDs, a.ID)
			if a.IsCritical {
				w.IsCritical = true
			}
		}
		waves[i] = w
	}

	return waves
}
