package cpm

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/joshharrison/critpath/internal/aoa"
	"github.com/joshharrison/critpath/internal/graph"
)

// Result holds the complete critical path analysis of one activity network.
type Result struct {
	Activities      []graph.ComputedActivity `json:"activities"` // topological order
	ProjectDuration float64                  `json:"project_duration"`
	CriticalPaths   [][]string               `json:"critical_paths"`
	Waves           []Wave                   `json:"waves,omitempty"`
	Errors          []string                 `json:"errors,omitempty"`
	Warnings        []string                 `json:"warnings,omitempty"`
	AOANetwork      *aoa.Network             `json:"aoa_network,omitempty"`

	// Structured findings behind Errors and Warnings.
	ErrorIssues   []*graph.Issue `json:"-"`
	WarningIssues []*graph.Issue `json:"-"`
}

// Wave represents a group of activities sharing the same earliest start.
type Wave struct {
	Index       int      `json:"index"`
	ES          float64  `json:"es"`
	ActivityIDs []string `json:"activity_ids"`
	IsCritical  bool     `json:"is_critical"` // true if wave contains critical activities
}

// Config tunes a single Analyze call.
type Config struct {
	SkipAOA bool
	AOA     aoa.Config
	Logger  *zerolog.Logger // diagnostics; nil disables them
}

// OK reports whether the result is usable for display.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Err joins the fatal issues into one error, or returns nil for a usable result.
func (r *Result) Err() error {
	errs := make([]error, len(r.ErrorIssues))
	for i, is := range r.ErrorIssues {
		errs[i] = is
	}
	return errors.Join(errs...)
}

// Activity returns the computed activity with the given id.
func (r *Result) Activity(id string) (graph.ComputedActivity, bool) {
	for _, a := range r.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return graph.ComputedActivity{}, false
}
