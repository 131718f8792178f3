package models

import (
	"time"

	"github.com/google/uuid"
)

// Taxonomy classification entities. These live in the taxonomy service's own
// store; species ids reference the observation service and are resolved over
// its listing contract, never by a shared database.

type Family struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SubSpecies struct {
	ID              uuid.UUID  `json:"id"`
	SpeciesID       uuid.UUID  `json:"speciesId"`
	Name            string     `json:"name"`
	Characteristics *string    `json:"characteristics,omitempty"`
	FamilyID        *uuid.UUID `json:"familyId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type EvolutionaryBranch struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Description    *string     `json:"description,omitempty"`
	SpeciesIDs     []uuid.UUID `json:"speciesIds"`
	CommonAncestor *string     `json:"commonAncestor,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}
