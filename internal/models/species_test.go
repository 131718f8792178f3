package models

import "testing"

func TestComputeRarityScore(t *testing.T) {
	tests := []struct {
		validated int
		expected  float64
	}{
		{0, 1.0},
		{1, 1.2},
		{5, 2.0},
		{10, 3.0},
		{12, 3.4},
		{100, 21.0},
	}

	for _, tt := range tests {
		got := ComputeRarityScore(tt.validated)
		if got != tt.expected {
			t.Errorf("ComputeRarityScore(%d) = %v, want %v", tt.validated, got, tt.expected)
		}
	}
}
