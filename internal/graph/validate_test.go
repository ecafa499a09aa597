package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Clean(t *testing.T) {
	res := Validate(acts("a", "b:a", "c:b"))
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidate_MissingPredecessor(t *testing.T) {
	res := Validate(acts("a", "b:a,ghost"))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, `Activity "b" references non-existent predecessor "ghost"`, res.Errors[0].Error())
	assert.True(t, errors.Is(res.Errors[0], ErrMissingPredecessor))
	assert.Equal(t, "b", res.Errors[0].ActivityID)
}

func TestValidate_Durations(t *testing.T) {
	list := []Activity{
		{ID: "neg", Duration: -1},
		{ID: "zero", Duration: 0, Predecessors: []string{"neg"}},
		{ID: "nan", Duration: math.NaN(), Predecessors: []string{"zero"}},
	}
	res := Validate(list)
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, `Activity "neg" has negative duration`, res.Errors[0].Error())
	assert.ErrorIs(t, res.Errors[1], ErrInvalidDuration)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, `Activity "zero" has zero duration (milestone)`, res.Warnings[0].Error())
}

func TestValidate_DuplicateAndEmptyIDs(t *testing.T) {
	list := []Activity{
		{ID: "a", Duration: 1},
		{ID: "a", Duration: 2},
		{ID: "", Duration: 1},
	}
	res := Validate(list)
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 2)
	assert.ErrorIs(t, res.Errors[0], ErrDuplicateID)
	assert.Equal(t, "Activity at position 3 has an empty id", res.Errors[1].Error())
}

func TestValidate_DisconnectedIsWarningOnly(t *testing.T) {
	res := Validate(acts("a", "b:a", "x"))
	assert.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "Network has 2 disconnected components. Computing for entire project.", res.Warnings[0].Error())
	assert.ErrorIs(t, res.Warnings[0], ErrDisconnected)
}

func TestMessages(t *testing.T) {
	assert.Nil(t, Messages(nil))
	res := Validate(acts("a:nope"))
	assert.Equal(t, []string{`Activity "a" references non-existent predecessor "nope"`}, Messages(res.Errors))
}
