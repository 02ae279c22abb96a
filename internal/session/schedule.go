package session

import "sort"

// DifficultyStep changes spawn pacing once the run clock reaches At seconds.
// A zero or negative field keeps the current value.
type DifficultyStep struct {
	At       float64
	SpawnMin float64
	SpawnMax float64
	Visible  float64
}

// Schedule applies difficulty steps in ascending time order, each at most once.
type Schedule struct {
	steps []DifficultyStep
	next  int
}

// NewSchedule copies and sorts the steps by threshold.
func NewSchedule(steps []DifficultyStep) *Schedule {
	sorted := make([]DifficultyStep, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At < sorted[j].At
	})
	return &Schedule{steps: sorted}
}

// Due returns the steps whose threshold is at or below elapsed and marks them applied.
// A single call may return several steps when elapsed jumped across thresholds.
func (s *Schedule) Due(elapsed float64) []DifficultyStep {
	start := s.next
	for s.next < len(s.steps) && elapsed >= s.steps[s.next].At {
		s.next++
	}
	if start == s.next {
		return nil
	}
	return s.steps[start:s.next]
}

// Applied returns how many steps have fired.
func (s *Schedule) Applied() int {
	return s.next
}

// Reset re-arms every step.
func (s *Schedule) Reset() {
	s.next = 0
}

// Steps returns the sorted steps.
func (s *Schedule) Steps() []DifficultyStep {
	return s.steps
}
