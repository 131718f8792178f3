package services

import "testing"

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		skip      int
		wantLimit int
		wantSkip  int
	}{
		{"negative values fall back", -5, -3, 100, 0},
		{"zero limit uses default", 0, 10, 100, 10},
		{"sane values pass through", 25, 0, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, skip := NormalizePage(tt.limit, tt.skip)
			if limit != tt.wantLimit || skip != tt.wantSkip {
				t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.limit, tt.skip, limit, skip, tt.wantLimit, tt.wantSkip)
			}
		})
	}
}
