package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	base := State{SessionID: "sess-1", ActiveIndex: 1, SlideCount: 4, Sequence: 3}

	tests := []struct {
		name     string
		old      *State
		new      *State
		wantDiff *StateDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  &base,
			wantDiff: &StateDiff{
				SessionID:     "sess-1",
				ActiveIndex:   ptr(1),
				SlideCount:    ptr(4),
				Paused:        ptr(false),
				Transitioning: ptr(false),
				Sequence:      ptr(uint64(3)),
			},
		},
		{
			name:     "No Changes",
			old:      &base,
			new:      &base,
			wantDiff: nil,
		},
		{
			name: "Navigation",
			old:  &base,
			new: func() *State {
				s := base
				s.ActiveIndex = 2
				s.Transitioning = true
				s.Sequence = 4
				return &s
			}(),
			wantDiff: &StateDiff{
				SessionID:     "sess-1",
				ActiveIndex:   ptr(2),
				Transitioning: ptr(true),
				Sequence:      ptr(uint64(4)),
			},
		},
		{
			name: "Pause Only",
			old:  &base,
			new: func() *State {
				s := base
				s.Paused = true
				return &s
			}(),
			wantDiff: &StateDiff{
				SessionID: "sess-1",
				Paused:    ptr(true),
			},
		},
		{
			name:     "Nil New State",
			old:      &base,
			new:      nil,
			wantDiff: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			assert.Equal(t, tt.wantDiff, got)
		})
	}
}

func TestDiff_ApplyRoundTrip(t *testing.T) {
	steps := []State{
		{SessionID: "s", SlideCount: 4},
		{SessionID: "s", SlideCount: 4, ActiveIndex: 1, Transitioning: true, Sequence: 1},
		{SessionID: "s", SlideCount: 4, ActiveIndex: 1, Sequence: 1},
		{SessionID: "s", SlideCount: 4, ActiveIndex: 1, Sequence: 1, Paused: true},
		{SessionID: "s", SlideCount: 4, ActiveIndex: 3, Transitioning: true, Sequence: 2, Paused: true},
	}

	var client State
	var prev *State
	for i := range steps {
		d := Diff(prev, &steps[i])
		client = d.Apply(client)
		assert.Equal(t, steps[i], client, "step %d", i)
		prev = &steps[i]
	}
}

func TestDiff_JSONOmitsUnchanged(t *testing.T) {
	old := State{SessionID: "s", SlideCount: 4}
	next := old
	next.Paused = true

	b, err := json.Marshal(Diff(&old, &next))
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"s","paused":true}`, string(b))
}

func TestStateDiff_ApplyNil(t *testing.T) {
	var d *StateDiff
	s := State{ActiveIndex: 2}
	assert.Equal(t, s, d.Apply(s))
}
