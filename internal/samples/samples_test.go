package samples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshharrison/critpath/internal/cpm"
	"github.com/joshharrison/critpath/internal/pert"
)

func TestSimple(t *testing.T) {
	res := cpm.Analyze(Simple(), cpm.Config{})
	require.True(t, res.OK(), res.Errors)
	assert.Equal(t, 12.0, res.ProjectDuration)
	assert.Equal(t, [][]string{{"A", "C", "D", "E"}}, res.CriticalPaths)
	assert.Empty(t, res.Warnings)
}

func TestProject(t *testing.T) {
	res := cpm.Analyze(Project(), cpm.Config{})
	require.True(t, res.OK(), res.Errors)
	assert.Equal(t, 36.0, res.ProjectDuration)
	assert.Equal(t, []string{`Activity "A" has zero duration (milestone)`}, res.Warnings)
}

func TestPERT(t *testing.T) {
	want := []float64{2, 3, 3, 4, 3}
	for i, a := range PERT() {
		assert.Equal(t, want[i], pert.ExpectedDuration(a), a.ID)
	}
	res := pert.Analyze(PERT(), cpm.Config{})
	require.True(t, res.OK(), res.Errors)
	assert.Equal(t, 10.0, res.ProjectDuration)
}

func TestSamplesAreFreshCopies(t *testing.T) {
	first := Simple()
	first[0].Duration = 99
	first[1].Predecessors[0] = "Z"
	second := Simple()
	assert.Equal(t, 3.0, second[0].Duration)
	assert.Equal(t, []string{"A"}, second[1].Predecessors)
}

func TestNamed(t *testing.T) {
	acts, ok := Named("project")
	require.True(t, ok)
	assert.Len(t, acts, 8)
	_, ok = Named("huge")
	assert.False(t, ok)
}
