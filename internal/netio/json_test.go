package netio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshharrison/critpath/internal/graph"
	"github.com/joshharrison/critpath/internal/pert"
)

func TestParseJSON_Array(t *testing.T) {
	data := []byte(`[
		{"id": "A", "name": "Start", "duration": 3},
		{"id": "B", "duration": 2, "predecessors": ["A", " "]},
		{"id": "C", "name": "Join", "duration": "4", "predecessors": "A; B"}
	]`)
	want := []graph.Activity{
		{ID: "A", Name: "Start", Duration: 3, Predecessors: []string{}},
		{ID: "B", Name: "B", Duration: 2, Predecessors: []string{"A"}},
		{ID: "C", Name: "Join", Duration: 4, Predecessors: []string{"A", "B"}},
	}
	got, err := ParseJSON(data)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseJSON mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSON_Wrapped(t *testing.T) {
	got, err := ParseJSON([]byte(`{"project": "x", "activities": [{"id": "A", "duration": 1}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ID)
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid", `[{"id": }`, "invalid JSON"},
		{"scalar", `42`, "expected an array"},
		{"no activities", `{"tasks": []}`, "expected an array"},
		{"non-object item", `[{"id": "A"}, 7]`, "activity at index 1 is not an object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParsePERTJSON(t *testing.T) {
	data := []byte(`[
		{"id": "A", "name": "Task A", "optimistic": 1, "mostLikely": 2, "pessimistic": 3},
		{"id": "B", "optimistic": 2, "most_likely": 4, "pessimistic": 6, "predecessors": ["A"]}
	]`)
	want := []pert.Activity{
		{ID: "A", Name: "Task A", Optimistic: 1, MostLikely: 2, Pessimistic: 3, Predecessors: []string{}},
		{ID: "B", Name: "B", Optimistic: 2, MostLikely: 4, Pessimistic: 6, Predecessors: []string{"A"}},
	}
	got, err := ParsePERTJSON(data)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePERTJSON mismatch (-want +got):\n%s", diff)
	}
}
