package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles
const (
	RoleUser   = "USER"
	RoleExpert = "EXPERT"
	RoleAdmin  = "ADMIN"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleExpert, RoleAdmin:
		return true
	}
	return false
}

// PromotionThreshold is the reputation at which a USER becomes an EXPERT
// (and below which an EXPERT falls back to USER).
const PromotionThreshold = 10

// RoleForReputation applies the auto-promotion rule. It is a pure function
// of (current role, reputation): USER with reputation >= threshold becomes
// EXPERT, EXPERT with reputation < threshold becomes USER, ADMIN is never
// auto-changed.
func RoleForReputation(role string, reputation int) string {
	switch {
	case role == RoleUser && reputation >= PromotionThreshold:
		return RoleExpert
	case role == RoleExpert && reputation < PromotionThreshold:
		return RoleUser
	}
	return role
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Reputation   int       `json:"reputation"`
	CreatedAt    time.Time `json:"createdAt"`
}
