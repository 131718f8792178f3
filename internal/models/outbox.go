package models

import (
	"time"

	"github.com/google/uuid"
)

// Outbox entry statuses.
const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// OutboxKindReputation is a reputation adjustment to be delivered to the
// identity ledger.
const OutboxKindReputation = "reputation_adjust"

// ReputationOutbox is a durable side-effect record. Entries are committed in
// the same transaction as the moderation decision they belong to and
// delivered asynchronously by the worker, at-least-once.
type ReputationOutbox struct {
	ID            uuid.UUID `json:"id"`
	Kind          string    `json:"kind"`
	UserID        uuid.UUID `json:"userId"`
	Points        int       `json:"points"`
	Status        string    `json:"status"`
	Attempts      int       `json:"attempts"`
	NextAttemptAt time.Time `json:"nextAttemptAt"`
	LastError     *string   `json:"lastError,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
