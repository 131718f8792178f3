package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharklandy/deapsea-project/internal/models"
)

// ReputationChange is a delta to be delivered to the identity ledger.
type ReputationChange struct {
	UserID uuid.UUID
	Points int
}

// DecisionWrite is the durable footprint of one moderation action: the
// observation mutation, the audit entry, and the reputation outbox rows.
// ApplyDecision commits all of it in a single transaction, so a decision is
// either fully recorded or not recorded at all.
type DecisionWrite struct {
	ObservationID uuid.UUID
	NewStatus     string
	ActorID       uuid.UUID
	ActorUsername string
	ActorRole     string
	ActionType    string
	TargetDetails string
	Reputation    []ReputationChange
}

type ModerationRepo struct {
	pool *pgxpool.Pool
}

func NewModerationRepo(pool *pgxpool.Pool) *ModerationRepo {
	return &ModerationRepo{pool: pool}
}

// ApplyDecision flips a PENDING observation to its terminal status. The
// status update is conditional on the row still being PENDING at write time;
// pgx.ErrNoRows means a concurrent moderator won the race.
func (r *ModerationRepo) ApplyDecision(ctx context.Context, w DecisionWrite) (*models.Observation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var o models.Observation
	err = scanObservation(tx.QueryRow(ctx, `
		UPDATE observations
		SET status = $2, validated_by = $3, validated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING `+observationColumns+`
	`, w.ObservationID, w.NewStatus, w.ActorID, models.ObservationStatusPending), &o)
	if err != nil {
		return nil, err
	}

	if err := insertHistory(ctx, tx, w); err != nil {
		return nil, err
	}

	for _, rc := range w.Reputation {
		if _, err := tx.Exec(ctx, `
			INSERT INTO reputation_outbox (kind, user_id, points)
			VALUES ($1, $2, $3)
		`, models.OutboxKindReputation, rc.UserID, rc.Points); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

// SoftDelete marks an observation deleted without touching its moderation
// state. Conditional on the row not being deleted yet.
func (r *ModerationRepo) SoftDelete(ctx context.Context, w DecisionWrite) (*models.Observation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var o models.Observation
	err = scanObservation(tx.QueryRow(ctx, `
		UPDATE observations
		SET deleted = true, deleted_at = now(), deleted_by = $2
		WHERE id = $1 AND deleted = false
		RETURNING `+observationColumns+`
	`, w.ObservationID, w.ActorID), &o)
	if err != nil {
		return nil, err
	}

	if err := insertHistory(ctx, tx, w); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

// Restore clears the soft-delete triple. Conditional on the row currently
// being deleted.
func (r *ModerationRepo) Restore(ctx context.Context, w DecisionWrite) (*models.Observation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var o models.Observation
	err = scanObservation(tx.QueryRow(ctx, `
		UPDATE observations
		SET deleted = false, deleted_at = NULL, deleted_by = NULL
		WHERE id = $1 AND deleted = true
		RETURNING `+observationColumns+`
	`, w.ObservationID), &o)
	if err != nil {
		return nil, err
	}

	if err := insertHistory(ctx, tx, w); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

func insertHistory(ctx context.Context, tx pgx.Tx, w DecisionWrite) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO action_history (user_id, username, user_role, action_type, target_type, target_id, target_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, w.ActorID, w.ActorUsername, w.ActorRole, w.ActionType, models.TargetObservation, w.ObservationID, w.TargetDetails)
	return err
}
