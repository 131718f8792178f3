package models

import (
	"time"

	"github.com/google/uuid"
)

// Observation statuses
const (
	ObservationStatusPending   = "PENDING"
	ObservationStatusValidated = "VALIDATED"
	ObservationStatusRejected  = "REJECTED"
)

// Valid status transitions: from -> []to. PENDING is the only non-terminal
// state; a moderated observation is never re-moderated.
var ValidObservationTransitions = map[string][]string{
	ObservationStatusPending:   {ObservationStatusValidated, ObservationStatusRejected},
	ObservationStatusValidated: {},
	ObservationStatusRejected:  {},
}

func IsValidTransition(from, to string) bool {
	allowed, ok := ValidObservationTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Reputation deltas applied when a moderation decision lands. A rejection
// costs the author one point and earns the moderator nothing; the asymmetry
// with validation is intentional.
const (
	ReputationValidatedAuthor = 3
	ReputationRejectedAuthor  = -1
	ReputationModerator       = 1
)

// Danger level bounds (1 = harmless, 5 = highly dangerous).
const (
	MinDangerLevel = 1
	MaxDangerLevel = 5
)

type Observation struct {
	ID          uuid.UUID  `json:"id"`
	SpeciesID   uuid.UUID  `json:"speciesId"`
	AuthorID    uuid.UUID  `json:"authorId"`
	Description string     `json:"description"`
	DangerLevel *int       `json:"dangerLevel,omitempty"`
	Status      string     `json:"status"`
	ValidatedBy *uuid.UUID `json:"validatedBy,omitempty"`
	ValidatedAt *time.Time `json:"validatedAt,omitempty"`
	Deleted     bool       `json:"deleted"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	DeletedBy   *uuid.UUID `json:"deletedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
