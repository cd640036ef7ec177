package trackers

import (
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Success tracks whether each episode ended by reaching a terminal
// state, as opposed to being cut off
type Success struct {
	successes []bool
	filename  string
}

// NewSuccess returns a new Success tracker which will save its data at
// filename
func NewSuccess(filename string) *Success {
	return &Success{filename: filename}
}

// Track records the outcome of an episode on its last timestep
func (s *Success) Track(t ts.TimeStep) {
	if t.Last() {
		s.successes = append(s.successes,
			t.EndType() == ts.TerminalStateReached)
	}
}

// Data returns the outcome of all finished episodes
func (s *Success) Data() []bool {
	return s.successes
}

// Save saves the data tracked by the Success Tracker to disk.
func (s *Success) Save() error {
	return save(s.filename, s.successes)
}
