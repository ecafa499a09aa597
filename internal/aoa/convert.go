package aoa

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/joshharrison/critpath/internal/graph"
)

// Convert turns a scheduled activity-on-node network into an arrow diagram.
//
// The network is built naively first (fresh end event per activity, dummies
// for every extra predecessor) with each event waiting on exactly the
// predecessors of the activities leaving it. It is then simplified: duplicate dummies are
// dropped, dummy-only events are folded into their successors, leaf events
// are joined into one terminal event and any arcs still sharing an event pair
// are split. The returned warnings are meant for display.
func Convert(activities []graph.ComputedActivity, cfg Config) (*Network, []string) {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	limit := cfg.MergePassLimit
	if limit <= 0 {
		limit = DefaultMergePassLimit
	}

	b := &builder{
		log:       log,
		nextEvent: 1,
		nextDummy: 1,
		events:    make(map[int]*Event),
	}

	b.buildInitial(activities)
	b.computeEventTimes()
	b.removeDuplicateDummies()

	var warnings []string
	if converged, passes := b.mergeDummyNodes(limit); !converged {
		warnings = append(warnings, fmt.Sprintf("AOA dummy cleanup stopped after %d passes without converging", passes))
	}

	b.mergeLeavesToSingleEnd()
	b.repairSharedPairs()
	b.pruneEvents()
	b.computeEventTimes()

	return b.network(), warnings
}

type builder struct {
	log       zerolog.Logger
	nextEvent int
	nextDummy int
	events    map[int]*Event
	arcs      []*Arc
}

func (b *builder) createEvent(es, lf float64) int {
	id := b.nextEvent
	b.nextEvent++
	b.events[id] = &Event{ID: id, ES: es, LF: lf}
	return id
}

// newDummy allocates a dummy arc without adding it to the network.
func (b *builder) newDummy(start, end int, at float64) *Arc {
	d := &Arc{
		ID:         fmt.Sprintf("DUMMY_%d", b.nextDummy),
		Name:       "Dummy",
		StartEvent: start,
		EndEvent:   end,
		IsDummy:    true,
		ES:         at,
		EF:         at,
		LS:         at,
		LF:         at,
	}
	b.nextDummy++
	return d
}

func (b *builder) eventIDs() []int {
	ids := make([]int, 0, len(b.events))
	for id := range b.events {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// buildInitial lays out one arc per activity in ascending ES order.
//
// An activity with several predecessors hangs off the end event of a
// predecessor nobody else follows and the others join it through dummies.
// When every predecessor is shared it gets a fresh start event fed by one
// dummy per predecessor, so no other activity inherits its dependencies.
func (b *builder) buildInitial(activities []graph.ComputedActivity) {
	sorted := scheduleOrder(activities)
	preds := reducedPredecessors(sorted)

	// pred id -> ids of the activities listing it
	users := make(map[string][]string)
	for _, a := range sorted {
		for _, p := range preds[a.ID] {
			users[p] = append(users[p], a.ID)
		}
	}
	usedElsewhere := func(pred, self string) bool {
		for _, u := range users[pred] {
			if u != self {
				return true
			}
		}
		return false
	}

	start := b.createEvent(0, 0)
	ends := make(map[string]int, len(sorted))

	for _, a := range sorted {
		startID := start
		ps := preds[a.ID]

		switch len(ps) {
		case 0:
		case 1:
			if e, ok := ends[ps[0]]; ok {
				startID = e
			}
		default:
			main := ""
			for _, p := range ps {
				if !usedElsewhere(p, a.ID) {
					main = p
					break
				}
			}
			if e, ok := ends[main]; ok {
				startID = e
				b.log.Debug().Str("activity", a.ID).Str("main_predecessor", main).Msg("main predecessor chosen")
			} else {
				main = ""
				startID = b.createEvent(a.ES, a.LS)
				b.log.Debug().Str("activity", a.ID).Int("event", startID).Msg("shared predecessors joined at new event")
			}

			for _, p := range ps {
				if p == main {
					continue
				}
				if e, ok := ends[p]; ok && e != startID {
					d := b.newDummy(e, startID, a.ES)
					b.arcs = append(b.arcs, d)
					b.log.Debug().
						Str("dummy", d.ID).
						Str("predecessor", p).
						Str("activity", a.ID).
						Int("from_event", e).
						Int("to_event", startID).
						Msg("dummy created")
				}
			}
		}

		end := b.createEvent(a.EF, a.LF)
		b.arcs = append(b.arcs, &Arc{
			ID:         a.ID,
			Name:       a.Name,
			Duration:   a.Duration,
			StartEvent: startID,
			EndEvent:   end,
			ES:         a.ES,
			EF:         a.EF,
			LS:         a.LS,
			LF:         a.LF,
			TotalFloat: a.TotalFloat,
			IsCritical: a.IsCritical,
		})
		ends[a.ID] = end
	}
}

// scheduleOrder sorts activities by ES. Ties follow topological order so a
// zero-duration predecessor is laid out before the activities it feeds.
func scheduleOrder(activities []graph.ComputedActivity) []graph.ComputedActivity {
	plain := make([]graph.Activity, len(activities))
	for i, a := range activities {
		plain[i] = a.Activity
	}
	g := graph.Build(plain)
	rank := make(map[string]int, len(activities))
	if order, err := g.TopoOrder(); err == nil {
		for r, idx := range order {
			rank[g.ID(idx)] = r
		}
	}

	sorted := make([]graph.ComputedActivity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ES != sorted[j].ES {
			return sorted[i].ES < sorted[j].ES
		}
		return rank[sorted[i].ID] < rank[sorted[j].ID]
	})
	return sorted
}

// reducedPredecessors lists, per activity, its predecessors minus repeats and
// those already reached through another listed predecessor. sorted must be
// in topological order.
func reducedPredecessors(sorted []graph.ComputedActivity) map[string][]string {
	ancestors := make(map[string]map[string]bool, len(sorted))
	reduced := make(map[string][]string, len(sorted))

	for _, a := range sorted {
		anc := make(map[string]bool)
		for _, p := range a.Predecessors {
			anc[p] = true
			for q := range ancestors[p] {
				anc[q] = true
			}
		}
		ancestors[a.ID] = anc

		seen := make(map[string]bool, len(a.Predecessors))
		var keep []string
		for _, p := range a.Predecessors {
			if seen[p] {
				continue
			}
			seen[p] = true
			implied := false
			for _, q := range a.Predecessors {
				if q != p && ancestors[q][p] {
					implied = true
					break
				}
			}
			if !implied {
				keep = append(keep, p)
			}
		}
		reduced[a.ID] = keep
	}
	return reduced
}

// computeEventTimes runs a forward and a backward pass over the events.
func (b *builder) computeEventTimes() {
	incoming := make(map[int][]*Arc)
	outgoing := make(map[int][]*Arc)
	for _, a := range b.arcs {
		incoming[a.EndEvent] = append(incoming[a.EndEvent], a)
		outgoing[a.StartEvent] = append(outgoing[a.StartEvent], a)
	}

	order := b.topoOrder(incoming)

	es := make(map[int]float64, len(order))
	projectDuration := 0.0
	for _, id := range order {
		t := 0.0
		for _, a := range incoming[id] {
			t = math.Max(t, es[a.StartEvent]+a.Duration)
		}
		es[id] = t
		projectDuration = math.Max(projectDuration, t)
	}

	lf := make(map[int]float64, len(order))
	for k := len(order) - 1; k >= 0; k-- {
		id := order[k]
		if len(outgoing[id]) == 0 {
			lf[id] = projectDuration
			continue
		}
		t := math.Inf(1)
		for _, a := range outgoing[id] {
			t = math.Min(t, lf[a.EndEvent]-a.Duration)
		}
		lf[id] = t
	}

	for id, ev := range b.events {
		ev.ES = es[id]
		ev.LF = lf[id]
	}
}

// topoOrder lists events so that every event follows the sources of its
// incoming arcs (DFS postorder over predecessors, explicit stack).
func (b *builder) topoOrder(incoming map[int][]*Arc) []int {
	type frame struct {
		id   int
		next int
	}

	ids := b.eventIDs()
	visited := make(map[int]bool, len(ids))
	order := make([]int, 0, len(ids))

	for _, root := range ids {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			in := incoming[top.id]
			if top.next < len(in) {
				p := in[top.next].StartEvent
				top.next++
				if !visited[p] {
					visited[p] = true
					stack = append(stack, frame{id: p})
				}
				continue
			}
			order = append(order, top.id)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}

// removeDuplicateDummies keeps one dummy per (start, end) pair.
func (b *builder) removeDuplicateDummies() {
	seen := make(map[[2]int]bool)
	kept := make([]*Arc, 0, len(b.arcs))
	for _, a := range b.arcs {
		if a.IsDummy {
			key := [2]int{a.StartEvent, a.EndEvent}
			if seen[key] {
				b.log.Debug().Str("dummy", a.ID).Int("from_event", key[0]).Int("to_event", key[1]).Msg("duplicate dummy removed")
				continue
			}
			seen[key] = true
		}
		kept = append(kept, a)
	}
	b.arcs = kept
}

// mergeDummyNodes folds the source event of a dummy into its target when the
// dummy is the source's only outgoing arc and the two events hang off
// different real activities. Each pass gathers candidates first and applies
// them afterwards, re-checking each one against the network as it stands.
// It reports whether the network settled and how many passes ran.
func (b *builder) mergeDummyNodes(limit int) (bool, int) {
	for pass := 1; pass <= limit; pass++ {
		candidates := b.mergeCandidates()
		if len(candidates) == 0 {
			return true, pass - 1
		}

		applied := 0
		for _, d := range candidates {
			if b.tryMerge(d) {
				applied++
			}
		}
		b.log.Debug().Int("pass", pass).Int("candidates", len(candidates)).Int("merged", applied).Msg("dummy cleanup pass")
	}
	return len(b.mergeCandidates()) == 0, limit
}

func (b *builder) mergeCandidates() []*Arc {
	var out []*Arc
	for _, a := range b.arcs {
		if a.IsDummy && b.mergeable(a) {
			out = append(out, a)
		}
	}
	return out
}

func (b *builder) mergeable(d *Arc) bool {
	for _, a := range b.arcs {
		if a.StartEvent == d.StartEvent && a != d {
			return false
		}
	}
	return b.realParent(d.StartEvent) != b.realParent(d.EndEvent)
}

// realParent returns the start event of the first real arc entering event,
// or event itself when only dummies (or nothing) enter it.
func (b *builder) realParent(event int) int {
	for _, a := range b.arcs {
		if a.EndEvent == event && !a.IsDummy {
			return a.StartEvent
		}
	}
	return event
}

func (b *builder) tryMerge(d *Arc) bool {
	pos := -1
	for i, a := range b.arcs {
		if a == d {
			pos = i
			break
		}
	}
	if pos < 0 || !b.mergeable(d) {
		return false
	}

	src, tgt := d.StartEvent, d.EndEvent
	b.arcs = append(b.arcs[:pos], b.arcs[pos+1:]...)
	for _, a := range b.arcs {
		if a.StartEvent == tgt {
			a.StartEvent = src
		}
		if a.EndEvent == tgt {
			a.EndEvent = src
		}
	}
	delete(b.events, tgt)

	b.log.Debug().Str("dummy", d.ID).Int("kept_event", src).Int("removed_event", tgt).Msg("events merged")
	return true
}

// mergeLeavesToSingleEnd redirects every arc that ends in a leaf event to a
// new terminal event when the network has more than one leaf.
func (b *builder) mergeLeavesToSingleEnd() {
	hasOut := make(map[int]bool)
	for _, a := range b.arcs {
		hasOut[a.StartEvent] = true
	}
	leaves := make(map[int]bool)
	for _, id := range b.eventIDs() {
		if !hasOut[id] {
			leaves[id] = true
		}
	}
	if len(leaves) <= 1 {
		return
	}

	end := b.createEvent(0, 0)
	for _, a := range b.arcs {
		if leaves[a.EndEvent] {
			a.EndEvent = end
		}
	}
	b.pruneEvents()

	b.log.Debug().Int("leaves", len(leaves)).Int("end_event", end).Msg("leaf events merged")
}

// repairSharedPairs guarantees that no two arcs connect the same ordered
// event pair. A dummy that parallels another arc adds nothing and is dropped;
// a real arc that parallels an earlier one is diverted through a fresh event
// and a dummy into its original end event.
func (b *builder) repairSharedPairs() {
	realPairs := make(map[[2]int]bool)
	for _, a := range b.arcs {
		if !a.IsDummy {
			realPairs[[2]int{a.StartEvent, a.EndEvent}] = true
		}
	}

	seen := make(map[[2]int]bool)
	kept := make([]*Arc, 0, len(b.arcs))
	for _, a := range b.arcs {
		key := [2]int{a.StartEvent, a.EndEvent}
		if a.IsDummy {
			if realPairs[key] || seen[key] {
				b.log.Debug().Str("dummy", a.ID).Int("from_event", key[0]).Int("to_event", key[1]).Msg("parallel dummy removed")
				continue
			}
			seen[key] = true
			kept = append(kept, a)
			continue
		}

		if !seen[key] {
			seen[key] = true
			kept = append(kept, a)
			continue
		}

		mid := b.createEvent(a.EF, a.LF)
		d := b.newDummy(mid, a.EndEvent, a.EF)
		a.EndEvent = mid
		seen[[2]int{a.StartEvent, mid}] = true
		seen[[2]int{mid, d.EndEvent}] = true
		kept = append(kept, a, d)

		b.log.Debug().Str("activity", a.ID).Str("dummy", d.ID).Int("via_event", mid).Msg("parallel arc split")
	}
	b.arcs = kept
}

// pruneEvents drops events no arc refers to. A network without arcs keeps
// its start event.
func (b *builder) pruneEvents() {
	if len(b.arcs) == 0 {
		return
	}
	referenced := make(map[int]bool)
	for _, a := range b.arcs {
		referenced[a.StartEvent] = true
		referenced[a.EndEvent] = true
	}
	for id := range b.events {
		if !referenced[id] {
			delete(b.events, id)
		}
	}
}

func (b *builder) network() *Network {
	n := &Network{
		Events:     make([]Event, 0, len(b.events)),
		Activities: make([]Arc, 0, len(b.arcs)),
		StartEvent: 1,
	}
	for _, id := range b.eventIDs() {
		n.Events = append(n.Events, *b.events[id])
	}
	for _, a := range b.arcs {
		n.Activities = append(n.Activities, *a)
	}

	// The terminal event is normally the newest one; parallel-arc repair can
	// add events after it, so pick the sink explicitly.
	if sinks := n.Sinks(); len(sinks) == 1 {
		n.EndEvent = sinks[0]
	} else if len(n.Events) > 0 {
		n.EndEvent = n.Events[len(n.Events)-1].ID
	}
	return n
}
