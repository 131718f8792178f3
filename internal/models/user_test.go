package models

import "testing"

func TestRoleForReputation(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		reputation int
		expected   string
	}{
		{"user below threshold stays user", RoleUser, 9, RoleUser},
		{"user at threshold promoted", RoleUser, 10, RoleExpert},
		{"user above threshold promoted", RoleUser, 42, RoleExpert},
		{"user crossing from 7 with +3 promoted", RoleUser, 7 + 3, RoleExpert},
		{"user deep negative stays user", RoleUser, -50, RoleUser},
		{"expert at threshold stays expert", RoleExpert, 10, RoleExpert},
		{"expert dropping to 9 demoted", RoleExpert, 9, RoleUser},
		{"expert negative demoted", RoleExpert, -1, RoleUser},
		{"admin never promoted", RoleAdmin, 100, RoleAdmin},
		{"admin never demoted", RoleAdmin, -100, RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoleForReputation(tt.role, tt.reputation)
			if got != tt.expected {
				t.Errorf("RoleForReputation(%q, %d) = %q, want %q", tt.role, tt.reputation, got, tt.expected)
			}
		})
	}
}

func TestRoleForReputationIdempotent(t *testing.T) {
	// Applying the rule twice must not change the result again.
	for _, role := range []string{RoleUser, RoleExpert, RoleAdmin} {
		for _, rep := range []int{-5, 0, 9, 10, 11, 100} {
			once := RoleForReputation(role, rep)
			twice := RoleForReputation(once, rep)
			if once != twice {
				t.Errorf("rule not stable for (%q, %d): %q then %q", role, rep, once, twice)
			}
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleExpert, RoleAdmin} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "user", "MODERATOR", "SUPERADMIN"} {
		if IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = true, want false", role)
		}
	}
}
