// Package pert schedules three-point estimated activities by reducing them to
// a CPM network with expected durations.
package pert

import (
	"github.com/joshharrison/critpath/internal/cpm"
	"github.com/joshharrison/critpath/internal/graph"
)

// Activity is an activity estimated with optimistic, most likely and
// pessimistic durations.
type Activity struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Optimistic   float64  `json:"optimistic"`
	MostLikely   float64  `json:"most_likely"`
	Pessimistic  float64  `json:"pessimistic"`
	Predecessors []string `json:"predecessors"`
}

// ComputedActivity is a PERT activity with its expected duration and schedule.
type ComputedActivity struct {
	Activity
	ExpectedDuration float64 `json:"expected_duration"`
	ES               float64 `json:"es"`
	EF               float64 `json:"ef"`
	LS               float64 `json:"ls"`
	LF               float64 `json:"lf"`
	TotalFloat       float64 `json:"total_float"`
	FreeFloat        float64 `json:"free_float"`
	IsCritical       bool    `json:"is_critical"`
}

// Result is a CPM result extended with the PERT view of every input activity,
// in input order.
type Result struct {
	*cpm.Result
	PERTActivities []ComputedActivity `json:"pert_activities"`
}

// ExpectedDuration is the beta-distribution estimate (O + 4M + P) / 6.
func ExpectedDuration(a Activity) float64 {
	return (a.Optimistic + 4*a.MostLikely + a.Pessimistic) / 6
}

// ToActivities converts PERT activities to plain activities carrying their
// expected durations.
func ToActivities(activities []Activity) []graph.Activity {
	out := make([]graph.Activity, len(activities))
	for i, a := range activities {
		out[i] = graph.Activity{
			ID:           a.ID,
			Name:         a.Name,
			Duration:     ExpectedDuration(a),
			Predecessors: a.Predecessors,
		}
	}
	return out
}

// Analyze runs the CPM analysis on expected durations and merges the schedule
// back into the PERT activities. Activities missing from the schedule (for
// example after a validation failure) keep zero times.
func Analyze(activities []Activity, cfg cpm.Config) *Result {
	res := cpm.Analyze(ToActivities(activities), cfg)

	out := &Result{
		Result:         res,
		PERTActivities: make([]ComputedActivity, len(activities)),
	}
	for i, a := range activities {
		ca := ComputedActivity{Activity: a, ExpectedDuration: ExpectedDuration(a)}
		if s, ok := res.Activity(a.ID); ok {
			ca.ES, ca.EF = s.ES, s.EF
			ca.LS, ca.LF = s.LS, s.LF
			ca.TotalFloat = s.TotalFloat
			ca.FreeFloat = s.FreeFloat
			ca.IsCritical = s.IsCritical
		}
		out.PERTActivities[i] = ca
	}
	return out
}
