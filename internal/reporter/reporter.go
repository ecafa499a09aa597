package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/joshharrison/critpath/internal/aoa"
	"github.com/joshharrison/critpath/internal/cpm"
	"github.com/joshharrison/critpath/internal/pert"
	"github.com/joshharrison/critpath/internal/ui"
)

// Reporter renders an analysis result for the terminal.
type Reporter struct {
	Source string // file name or sample name shown in headers
	Unit   string // days or weeks
	Result *cpm.Result
	PERT   *pert.Result // optional three-point view of the same result
}

// New creates a new Reporter.
func New(source, unit string, res *cpm.Result) *Reporter {
	if unit == "" {
		unit = "days"
	}
	return &Reporter{Source: source, Unit: unit, Result: res}
}

// NewPERT creates a Reporter for a PERT analysis.
func NewPERT(source, unit string, res *pert.Result) *Reporter {
	r := New(source, unit, res.Result)
	r.PERT = res
	return r
}

// short renders a time value with at most two decimals.
func short(f float64) string {
	if math.Abs(f) < 0.005 {
		f = 0
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func (r *Reporter) amount(f float64) string {
	unit := r.Unit
	if f == 1 {
		unit = strings.TrimSuffix(unit, "s")
	}
	return short(f) + " " + unit
}

// PrintSchedule writes the full CPM report: header, schedule table, critical
// paths, waves and any issues.
func (r *Reporter) PrintSchedule(w io.Writer) {
	res := r.Result
	r.printHeader(w)

	if !res.OK() {
		r.PrintIssues(w)
		return
	}

	fmt.Fprintf(w, "  %-10s %-28s %8s %8s %8s %8s %8s %8s %8s  %s\n",
		"ID", "NAME", "DUR", "ES", "EF", "LS", "LF", "TF", "FF", "")
	for _, a := range res.Activities {
		name := truncate(a.Name, 28)
		tf := ui.FloatText(fmt.Sprintf("%8s", short(a.TotalFloat)), a.TotalFloat, a.IsCritical)
		fmt.Fprintf(w, "  %-10s %-28s %8s %8s %8s %8s %8s %s %8s  %s\n",
			a.ID, name, short(a.Duration), short(a.ES), short(a.EF),
			short(a.LS), short(a.LF), tf, short(a.FreeFloat), ui.CriticalMark(a.IsCritical))
	}
	fmt.Fprintln(w)

	r.printCriticalPaths(w)
	r.PrintWaves(w)
	r.PrintIssues(w)
}

func (r *Reporter) printHeader(w io.Writer) {
	res := r.Result
	title := "Critical Path Analysis"
	if r.PERT != nil {
		title = "PERT Analysis"
	}
	fmt.Fprintf(w, "\n%s %s\n", "📐", ui.BoldCyan(title))
	fmt.Fprintf(w, "%s\n", ui.Cyan("══════════════════════════"))
	if r.Source != "" {
		fmt.Fprintf(w, "Source:      %s\n", ui.Dim(r.Source))
	}
	if !res.OK() {
		fmt.Fprintf(w, "Status:      %s\n\n", ui.BoldRed("invalid network"))
		return
	}
	critical := 0
	for _, a := range res.Activities {
		if a.IsCritical {
			critical++
		}
	}
	fmt.Fprintf(w, "Duration:    %s\n", ui.Bold(r.amount(res.ProjectDuration)))
	fmt.Fprintf(w, "Activities:  %d total, %s\n\n", len(res.Activities),
		ui.BoldYellow(fmt.Sprintf("%d critical", critical)))
}

func (r *Reporter) printCriticalPaths(w io.Writer) {
	paths := r.Result.CriticalPaths
	if len(paths) == 0 {
		return
	}
	label := "Critical path"
	if len(paths) > 1 {
		label = fmt.Sprintf("Critical paths (%d)", len(paths))
	}
	fmt.Fprintf(w, "%s\n", ui.Bold(label+":"))
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", ui.BoldYellow("⚡ "+strings.Join(p, " → ")))
	}
	fmt.Fprintln(w)
}

// PrintWaves lists activities grouped by earliest start.
func (r *Reporter) PrintWaves(w io.Writer) {
	for _, wave := range r.Result.Waves {
		labels := make([]string, len(wave.ActivityIDs))
		for i, id := range wave.ActivityIDs {
			labels[i] = ui.ActivityLabel(id)
		}
		fmt.Fprintf(w, "  🌊 %s %d at %s (%s)  %s\n",
			ui.BoldWhite("WAVE"), wave.Index+1, short(wave.ES),
			ui.WaveStatus(wave.IsCritical), strings.Join(labels, " "))
	}
	if len(r.Result.Waves) > 0 {
		fmt.Fprintln(w)
	}
}

// PrintIssues writes errors and warnings, one per line.
func (r *Reporter) PrintIssues(w io.Writer) {
	for _, msg := range r.Result.Errors {
		fmt.Fprintf(w, "%s %s\n", ui.IssueIcon("error"), ui.Red(msg))
	}
	for _, msg := range r.Result.Warnings {
		fmt.Fprintf(w, "%s %s\n", ui.IssueIcon("warning"), ui.Yellow(msg))
	}
}

// PrintValidation writes a one-line verdict followed by the issues.
func (r *Reporter) PrintValidation(w io.Writer) {
	name := r.Source
	if name == "" {
		name = "network"
	}
	if r.Result.OK() {
		fmt.Fprintf(w, "%s %s %s\n", ui.IssueIcon(""), ui.Bold(name), ui.Green("is valid"))
	} else {
		fmt.Fprintf(w, "%s %s %s\n", ui.IssueIcon("error"), ui.Bold(name),
			ui.Red(fmt.Sprintf("has %d error(s)", len(r.Result.Errors))))
	}
	r.PrintIssues(w)
}

// PrintPERT writes the three-point table followed by the critical paths.
func (r *Reporter) PrintPERT(w io.Writer) {
	if r.PERT == nil {
		r.PrintSchedule(w)
		return
	}
	r.printHeader(w)
	if !r.Result.OK() {
		r.PrintIssues(w)
		return
	}

	fmt.Fprintf(w, "  %-10s %-24s %6s %6s %6s %8s %8s %8s %8s  %s\n",
		"ID", "NAME", "O", "M", "P", "EXP", "ES", "EF", "TF", "")
	for _, a := range r.PERT.PERTActivities {
		name := truncate(a.Name, 24)
		tf := ui.FloatText(fmt.Sprintf("%8s", short(a.TotalFloat)), a.TotalFloat, a.IsCritical)
		fmt.Fprintf(w, "  %-10s %-24s %6s %6s %6s %8s %8s %8s %s  %s\n",
			a.ID, name, short(a.Optimistic), short(a.MostLikely), short(a.Pessimistic),
			short(a.ExpectedDuration), short(a.ES), short(a.EF), tf, ui.CriticalMark(a.IsCritical))
	}
	fmt.Fprintln(w)

	r.printCriticalPaths(w)
	r.PrintIssues(w)
}

// PrintAOA lists the events and arcs of the arrow diagram.
func (r *Reporter) PrintAOA(w io.Writer) {
	n := r.Result.AOANetwork
	if n == nil {
		fmt.Fprintf(w, "%s\n", ui.Dim("no AOA network"))
		return
	}

	fmt.Fprintf(w, "\n%s %s\n", "🔀", ui.BoldCyan("Activity-on-Arrow Network"))
	fmt.Fprintf(w, "%s\n", ui.Cyan("══════════════════════════"))
	fmt.Fprintf(w, "Events:  %d (start %d, end %d)\n", len(n.Events), n.StartEvent, n.EndEvent)
	fmt.Fprintf(w, "Arcs:    %d (%d dummy)\n\n", len(n.Activities), len(n.Dummies()))

	fmt.Fprintf(w, "  %-6s %8s %8s\n", "EVENT", "ES", "LF")
	for _, e := range n.Events {
		fmt.Fprintf(w, "  %-6d %8s %8s\n", e.ID, short(e.ES), short(e.LF))
	}
	fmt.Fprintln(w)

	for _, a := range n.Activities {
		fmt.Fprintf(w, "  %s\n", arcLine(a))
	}
	r.PrintIssues(w)
}

func arcLine(a aoa.Arc) string {
	span := fmt.Sprintf("%3d → %-3d", a.StartEvent, a.EndEvent)
	if a.IsDummy {
		return fmt.Sprintf("%s %s", ui.Dim(span), ui.Dim(a.ID+" (dummy)"))
	}
	return fmt.Sprintf("%s %s %s %s %s", span, ui.ActivityLabel(a.ID), a.Name,
		ui.Dim("["+short(a.Duration)+"]"), ui.CriticalMark(a.IsCritical))
}

// JSON returns the machine-readable result.
func (r *Reporter) JSON() ([]byte, error) {
	type output struct {
		Source string `json:"source,omitempty"`
		Unit   string `json:"unit"`
		*cpm.Result
		PERTActivities []pert.ComputedActivity `json:"pert_activities,omitempty"`
	}

	o := output{Source: r.Source, Unit: r.Unit, Result: r.Result}
	if r.PERT != nil {
		o.PERTActivities = r.PERT.PERTActivities
	}
	return json.MarshalIndent(o, "", "  ")
}

// Summary returns a one-paragraph summary string.
func (r *Reporter) Summary() string {
	var b strings.Builder
	res := r.Result

	if !res.OK() {
		fmt.Fprintf(&b, "%s %s: %d error(s)\n", ui.IssueIcon("error"), r.Source, len(res.Errors))
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s: %s, %d activities",
		ui.IssueIcon(""), r.Source, ui.Bold(r.amount(res.ProjectDuration)), len(res.Activities))
	if len(res.CriticalPaths) > 0 {
		fmt.Fprintf(&b, ", critical %s", ui.BoldYellow(strings.Join(res.CriticalPaths[0], " → ")))
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintf(&b, " %s", ui.Yellow(fmt.Sprintf("(%d warning(s))", len(res.Warnings))))
	}
	b.WriteString("\n")
	return b.String()
}
