package graph

import (
	"math"
)

// ValidationResult is the outcome of Validate. Valid is false whenever Errors
// is non-empty; Warnings never affect validity.
type ValidationResult struct {
	Valid    bool
	Errors   []*Issue
	Warnings []*Issue
}

// Validate checks an activity list for referential integrity, duration sanity,
// id uniqueness and connectivity. It has no side effects.
func Validate(activities []Activity) ValidationResult {
	var res ValidationResult

	known := make(map[string]bool, len(activities))
	for _, a := range activities {
		known[a.ID] = true
	}

	seen := make(map[string]bool, len(activities))
	for pos, a := range activities {
		if a.ID == "" {
			res.Errors = append(res.Errors, issuef(ErrEmptyID, "", "Activity at position %d has an empty id", pos+1))
			continue
		}
		if seen[a.ID] {
			res.Errors = append(res.Errors, issuef(ErrDuplicateID, a.ID, "Activity %q is defined more than once", a.ID))
			continue
		}
		seen[a.ID] = true

		for _, predID := range a.Predecessors {
			if !known[predID] {
				res.Errors = append(res.Errors, issuef(ErrMissingPredecessor, a.ID,
					"Activity %q references non-existent predecessor %q", a.ID, predID))
			}
		}

		switch {
		case math.IsNaN(a.Duration) || math.IsInf(a.Duration, 0):
			res.Errors = append(res.Errors, issuef(ErrInvalidDuration, a.ID, "Activity %q has invalid duration", a.ID))
		case a.Duration < 0:
			res.Errors = append(res.Errors, issuef(ErrNegativeDuration, a.ID, "Activity %q has negative duration", a.ID))
		case a.Duration == 0:
			res.Warnings = append(res.Warnings, issuef(ErrZeroDuration, a.ID, "Activity %q has zero duration (milestone)", a.ID))
		}
	}

	if components := Build(activities).Components(); len(components) > 1 {
		res.Warnings = append(res.Warnings, issuef(ErrDisconnected, "",
			"Network has %d disconnected components. Computing for entire project.", len(components)))
	}

	res.Valid = len(res.Errors) == 0
	return res
}
