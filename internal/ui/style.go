package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// SetNoColor turns colored output off (or back on) for the whole process.
func SetNoColor(off bool) {
	color.NoColor = off
}

// PrintLogo renders the colored critpath logo to stderr.
func PrintLogo() {
	w := os.Stderr
	frame := color.New(color.FgCyan)
	nodes := color.New(color.FgYellow)
	arrows := color.New(color.FgCyan, color.Faint)
	brand := color.New(color.Bold, color.FgMagenta)
	tag := color.New(color.Faint)

	fmt.Fprintln(w)
	frame.Fprintln(w, "   +--------------------------+")
	nodes.Fprintln(w, "   |  o-->o-->o-->o-->o-->o   |")
	arrows.Fprintln(w, "   |       \\         /        |")
	nodes.Fprintln(w, "   |        o------>o         |")
	brand.Fprintln(w, "   |  C R I T   P A T H       |")
	frame.Fprintln(w, "   +--------------------------+")
	tag.Fprintf(w, "   %s Critical path scheduling\n", Dim("⏱"))
	fmt.Fprintln(w)
}

// activityColors is a palette of distinct bold colors for differentiating activities.
var activityColors = []func(a ...interface{}) string{
	BoldMagenta,
	BoldCyan,
	BoldYellow,
	BoldGreen,
	color.New(color.Bold, color.FgHiBlue).SprintFunc(),
	color.New(color.Bold, color.FgHiRed).SprintFunc(),
}

// activityColorIndex hashes an activity ID to a palette index.
func activityColorIndex(id string) int {
	var h uint32
	for _, c := range id {
		h = h*31 + uint32(c)
	}
	return int(h % uint32(len(activityColors)))
}

// ActivityLabel returns the activity ID in a color stable across runs.
func ActivityLabel(id string) string {
	return activityColors[activityColorIndex(id)](id)
}

// CriticalMark returns the marker shown next to critical activities.
func CriticalMark(critical bool) string {
	if critical {
		return BoldYellow("⚡")
	}
	return " "
}

// FloatText colors a float value: red when critical, yellow when tight,
// green otherwise.
func FloatText(text string, float float64, critical bool) string {
	switch {
	case critical:
		return Red(text)
	case float < 1:
		return Yellow(text)
	default:
		return Green(text)
	}
}

// IssueIcon returns a colored icon for an issue severity.
func IssueIcon(severity string) string {
	switch severity {
	case "error":
		return Red("✗")
	case "warning":
		return Yellow("⚠")
	default:
		return Green("✓")
	}
}

// WaveStatus returns a colored wave label.
func WaveStatus(critical bool) string {
	if critical {
		return BoldYellow("critical")
	}
	return Dim("slack")
}
