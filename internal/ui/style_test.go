package ui

import (
	"testing"
)

func TestActivityLabelIsStable(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := ActivityLabel("A"); got != "A" {
		t.Errorf("expected plain label without color, got %q", got)
	}
	if activityColorIndex("deploy") != activityColorIndex("deploy") {
		t.Error("expected the same palette slot for the same id")
	}
}

func TestCriticalMark(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if CriticalMark(false) != " " {
		t.Error("expected blank marker for non-critical activities")
	}
	if CriticalMark(true) != "⚡" {
		t.Errorf("expected lightning marker, got %q", CriticalMark(true))
	}
}

func TestIssueIcon(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	for severity, want := range map[string]string{"error": "✗", "warning": "⚠", "": "✓"} {
		if got := IssueIcon(severity); got != want {
			t.Errorf("IssueIcon(%q) = %q, want %q", severity, got, want)
		}
	}
}
