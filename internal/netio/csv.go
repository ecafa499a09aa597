package netio

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/joshharrison/critpath/internal/graph"
	"github.com/joshharrison/critpath/internal/pert"
)

const (
	activitiesHeader = "id,name,duration,predecessors"
	resultsHeader    = "id,name,duration,predecessors,es,ef,ls,lf,total_float,free_float,critical"
	pertHeader       = "id,name,optimistic,most_likely,pessimistic,predecessors"
)

// csvRows returns the trimmed, comma-split fields of every non-blank line
// after the header. Fields are not quoted: commas always separate.
func csvRows(data []byte) [][]string {
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return nil
	}

	var rows [][]string
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		rows = append(rows, parts)
	}
	return rows
}

// numericPrefix matches the leading decimal literal of a field.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// number parses the leading number of a CSV field, so "3d" reads as 3.
// Fields without one read as 0.
func number(s string) float64 {
	f, err := strconv.ParseFloat(numericPrefix.FindString(strings.TrimSpace(s)), 64)
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(f) {
		return 0
	}
	return f
}

func splitPredecessors(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseCSV reads activities from "id,name,duration,predecessors" lines. The
// first line is a header and is ignored, as are blank lines and lines with
// fewer than three fields. Predecessors are separated by ';'.
func ParseCSV(data []byte) []graph.Activity {
	activities := []graph.Activity{}
	for _, parts := range csvRows(data) {
		if len(parts) < 3 {
			continue
		}
		a := graph.Activity{
			ID:           parts[0],
			Name:         parts[1],
			Duration:     number(parts[2]),
			Predecessors: []string{},
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		if len(parts) > 3 {
			a.Predecessors = splitPredecessors(parts[3])
		}
		activities = append(activities, a)
	}
	return activities
}

// ParsePERTCSV reads three-point activities from
// "id,name,optimistic,most_likely,pessimistic,predecessors" lines with the
// same leniency as ParseCSV. Lines with fewer than five fields are skipped.
func ParsePERTCSV(data []byte) []pert.Activity {
	activities := []pert.Activity{}
	for _, parts := range csvRows(data) {
		if len(parts) < 5 {
			continue
		}
		a := pert.Activity{
			ID:           parts[0],
			Name:         parts[1],
			Optimistic:   number(parts[2]),
			MostLikely:   number(parts[3]),
			Pessimistic:  number(parts[4]),
			Predecessors: []string{},
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		if len(parts) > 5 {
			a.Predecessors = splitPredecessors(parts[5])
		}
		activities = append(activities, a)
	}
	return activities
}

// ExportCSV renders activities in the format ParseCSV reads.
func ExportCSV(activities []graph.Activity) string {
	var sb strings.Builder
	sb.WriteString(activitiesHeader)
	for _, a := range activities {
		sb.WriteByte('\n')
		sb.WriteString(strings.Join([]string{
			a.ID,
			a.Name,
			formatNumber(a.Duration),
			strings.Join(a.Predecessors, ";"),
		}, ","))
	}
	return sb.String()
}

// ExportResultsCSV renders a computed schedule, one activity per line.
func ExportResultsCSV(activities []graph.ComputedActivity) string {
	var sb strings.Builder
	sb.WriteString(resultsHeader)
	for _, a := range activities {
		sb.WriteByte('\n')
		sb.WriteString(strings.Join([]string{
			a.ID,
			a.Name,
			formatNumber(a.Duration),
			strings.Join(a.Predecessors, ";"),
			formatNumber(a.ES),
			formatNumber(a.EF),
			formatNumber(a.LS),
			formatNumber(a.LF),
			formatNumber(a.TotalFloat),
			formatNumber(a.FreeFloat),
			strconv.FormatBool(a.IsCritical),
		}, ","))
	}
	return sb.String()
}

// ExportPERTCSV renders three-point activities in the format ParsePERTCSV reads.
func ExportPERTCSV(activities []pert.Activity) string {
	var sb strings.Builder
	sb.WriteString(pertHeader)
	for _, a := range activities {
		sb.WriteByte('\n')
		sb.WriteString(strings.Join([]string{
			a.ID,
			a.Name,
			formatNumber(a.Optimistic),
			formatNumber(a.MostLikely),
			formatNumber(a.Pessimistic),
			strings.Join(a.Predecessors, ";"),
		}, ","))
	}
	return sb.String()
}
