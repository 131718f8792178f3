package models

import (
	"time"

	"github.com/google/uuid"
)

// Action types recorded in the moderation audit trail.
const (
	ActionValidate = "VALIDATE"
	ActionReject   = "REJECT"
	ActionDelete   = "DELETE"
	ActionRestore  = "RESTORE"
)

// Audit target types.
const (
	TargetObservation = "OBSERVATION"
	TargetSpecies     = "SPECIES"
)

// ActionHistory is an append-only audit entry. There is no update or delete
// path for this entity; immutability is the audit contract. Username and
// role are denormalized at action time.
type ActionHistory struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Username      string    `json:"username"`
	UserRole      string    `json:"userRole"`
	ActionType    string    `json:"actionType"`
	TargetType    string    `json:"targetType"`
	TargetID      uuid.UUID `json:"targetId"`
	TargetDetails string    `json:"targetDetails,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
