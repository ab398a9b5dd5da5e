package domain

// StateDiff represents the changes between two carousel snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	ActiveIndex   *int    `json:"active_index,omitempty"`
	SlideCount    *int    `json:"slide_count,omitempty"`
	Paused        *bool   `json:"paused,omitempty"`
	Transitioning *bool   `json:"transitioning,omitempty"`
	Sequence      *uint64 `json:"sequence,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.ActiveIndex != newState.ActiveIndex {
		diff.ActiveIndex = ptr(newState.ActiveIndex)
	}
	if oldState == nil || oldState.SlideCount != newState.SlideCount {
		diff.SlideCount = ptr(newState.SlideCount)
	}
	if oldState == nil || oldState.Paused != newState.Paused {
		diff.Paused = ptr(newState.Paused)
	}
	if oldState == nil || oldState.Transitioning != newState.Transitioning {
		diff.Transitioning = ptr(newState.Transitioning)
	}
	if oldState == nil || oldState.Sequence != newState.Sequence {
		diff.Sequence = ptr(newState.Sequence)
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.ActiveIndex == nil &&
		d.SlideCount == nil &&
		d.Paused == nil &&
		d.Transitioning == nil &&
		d.Sequence == nil
}

// Apply merges the diff into a state, returning the updated copy.
// Clients replaying a stream of diffs end with the same snapshot as the server.
func (d *StateDiff) Apply(s State) State {
	if d == nil {
		return s
	}
	if d.SessionID != "" {
		s.SessionID = d.SessionID
	}
	if d.ActiveIndex != nil {
		s.ActiveIndex = *d.ActiveIndex
	}
	if d.SlideCount != nil {
		s.SlideCount = *d.SlideCount
	}
	if d.Paused != nil {
		s.Paused = *d.Paused
	}
	if d.Transitioning != nil {
		s.Transitioning = *d.Transitioning
	}
	if d.Sequence != nil {
		s.Sequence = *d.Sequence
	}
	return s
}

func ptr[T any](v T) *T {
	return &v
}
