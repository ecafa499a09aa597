package aoa

import (
	"github.com/rs/zerolog"
)

// DefaultMergePassLimit bounds the redundant-dummy elimination passes.
const DefaultMergePassLimit = 10

// Event is a node of the arrow diagram: a point in time where activities
// finish and others may start.
type Event struct {
	ID int     `json:"id"`
	ES float64 `json:"es"`
	LF float64 `json:"lf"`
}

// Arc is an activity drawn as an arrow between two events. Dummy arcs carry no
// duration and only express precedence.
type Arc struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Duration   float64 `json:"duration"`
	StartEvent int     `json:"start_event"`
	EndEvent   int     `json:"end_event"`
	IsDummy    bool    `json:"is_dummy"`
	ES         float64 `json:"es"`
	EF         float64 `json:"ef"`
	LS         float64 `json:"ls"`
	LF         float64 `json:"lf"`
	TotalFloat float64 `json:"total_float"`
	IsCritical bool    `json:"is_critical"`
}

// Network is an Activity-on-Arrow network. Events are sorted by id.
type Network struct {
	Events     []Event `json:"events"`
	Activities []Arc   `json:"activities"`
	StartEvent int     `json:"start_event"`
	EndEvent   int     `json:"end_event"`
}

// Config tunes the conversion.
type Config struct {
	MergePassLimit int             // <= 0 means DefaultMergePassLimit
	Logger         *zerolog.Logger // diagnostics; nil disables them
}

// Event looks up an event by id.
func (n *Network) Event(id int) (Event, bool) {
	for _, e := range n.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// Sources returns the ids of events without incoming arcs.
func (n *Network) Sources() []int {
	hasIn := make(map[int]bool)
	for _, a := range n.Activities {
		hasIn[a.EndEvent] = true
	}
	var ids []int
	for _, e := range n.Events {
		if !hasIn[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Sinks returns the ids of events without outgoing arcs.
func (n *Network) Sinks() []int {
	hasOut := make(map[int]bool)
	for _, a := range n.Activities {
		hasOut[a.StartEvent] = true
	}
	var ids []int
	for _, e := range n.Events {
		if !hasOut[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Dummies returns the dummy arcs in network order.
func (n *Network) Dummies() []Arc {
	var out []Arc
	for _, a := range n.Activities {
		if a.IsDummy {
			out = append(out, a)
		}
	}
	return out
}
