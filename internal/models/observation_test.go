package models

import "testing"

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{ObservationStatusPending, ObservationStatusValidated, true},
		{ObservationStatusPending, ObservationStatusRejected, true},

		// Terminal states never move
		{ObservationStatusValidated, ObservationStatusRejected, false},
		{ObservationStatusValidated, ObservationStatusPending, false},
		{ObservationStatusRejected, ObservationStatusValidated, false},
		{ObservationStatusRejected, ObservationStatusPending, false},
		{ObservationStatusValidated, ObservationStatusValidated, false},
		{ObservationStatusRejected, ObservationStatusRejected, false},

		// No self-loop or unknown states
		{ObservationStatusPending, ObservationStatusPending, false},
		{"nonexistent", ObservationStatusValidated, false},
		{ObservationStatusPending, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestAllStatusesHaveTransitionEntry(t *testing.T) {
	allStatuses := []string{
		ObservationStatusPending, ObservationStatusValidated, ObservationStatusRejected,
	}
	for _, s := range allStatuses {
		if _, ok := ValidObservationTransitions[s]; !ok {
			t.Errorf("status %q has no transition entry", s)
		}
	}
}
