package models

import (
	"time"

	"github.com/google/uuid"
)

// MinSpeciesDescriptionLen guards against empty-ish species descriptions.
const MinSpeciesDescriptionLen = 10

// ComputeRarityScore derives a species' rarity from its validated
// observation count: rarityScore = 1 + validatedCount/5. The score is always
// recomputed from a full recount of durable state, never maintained as an
// incremental counter.
func ComputeRarityScore(validatedCount int) float64 {
	return 1 + float64(validatedCount)/5
}

type Species struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"authorId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	RarityScore float64   `json:"rarityScore"`
	CreatedAt   time.Time `json:"createdAt"`
}
