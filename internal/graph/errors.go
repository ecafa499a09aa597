package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Issue kinds. Fatal kinds block scheduling; ErrZeroDuration and
// ErrDisconnected only ever appear as warnings.
var (
	ErrMissingPredecessor = errors.New("missing predecessor")
	ErrNegativeDuration   = errors.New("negative duration")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrDuplicateID        = errors.New("duplicate activity id")
	ErrEmptyID            = errors.New("empty activity id")
	ErrCycle              = errors.New("dependency cycle")

	ErrZeroDuration = errors.New("zero duration")
	ErrDisconnected = errors.New("disconnected network")
)

// Issue is a single validation finding. Its message is final and meant to be
// shown to the user as is.
type Issue struct {
	Kind       error
	ActivityID string
	Cycle      []string // set for ErrCycle
	Msg        string
}

func (e *Issue) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Issue) Unwrap() error { return e.Kind }

func issuef(kind error, activityID, format string, args ...any) *Issue {
	return &Issue{Kind: kind, ActivityID: activityID, Msg: fmt.Sprintf(format, args...)}
}

// CycleIssue reports a dependency cycle given as an ordered id sequence.
func CycleIssue(cycle []string) *Issue {
	return &Issue{
		Kind:  ErrCycle,
		Cycle: cycle,
		Msg:   "Cycle detected in the network: " + strings.Join(cycle, " → "),
	}
}

// Messages renders issues as their display strings.
func Messages(issues []*Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Error()
	}
	return out
}
