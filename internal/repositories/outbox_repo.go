package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharklandy/deapsea-project/internal/models"
)

type OutboxRepo struct {
	pool *pgxpool.Pool
}

func NewOutboxRepo(pool *pgxpool.Pool) *OutboxRepo {
	return &OutboxRepo{pool: pool}
}

// ClaimDue picks up to batchSize pending entries whose next attempt is due
// and bumps their attempt counter. SKIP LOCKED keeps concurrent workers from
// claiming the same rows.
func (r *OutboxRepo) ClaimDue(ctx context.Context, batchSize int) ([]models.ReputationOutbox, error) {
	if batchSize <= 0 {
		batchSize = 50
	}
	rows, err := r.pool.Query(ctx, `
		WITH due AS (
			SELECT id FROM reputation_outbox
			WHERE status = $1 AND next_attempt_at <= now()
			ORDER BY created_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		UPDATE reputation_outbox o
		SET attempts = o.attempts + 1, updated_at = now()
		FROM due WHERE o.id = due.id
		RETURNING o.id, o.kind, o.user_id, o.points, o.status, o.attempts,
		          o.next_attempt_at, o.last_error, o.created_at, o.updated_at
	`, models.OutboxStatusPending, batchSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReputationOutbox
	for rows.Next() {
		var e models.ReputationOutbox
		if err := rows.Scan(&e.ID, &e.Kind, &e.UserID, &e.Points, &e.Status, &e.Attempts,
			&e.NextAttemptAt, &e.LastError, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *OutboxRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reputation_outbox SET status = $2, last_error = NULL, updated_at = now()
		WHERE id = $1
	`, id, models.OutboxStatusSent)
	return err
}

func (r *OutboxRepo) MarkRetry(ctx context.Context, id uuid.UUID, lastError string, nextAttempt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reputation_outbox SET last_error = $2, next_attempt_at = $3, updated_at = now()
		WHERE id = $1
	`, id, lastError, nextAttempt)
	return err
}

func (r *OutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reputation_outbox SET status = $2, last_error = $3, updated_at = now()
		WHERE id = $1
	`, id, models.OutboxStatusFailed, lastError)
	return err
}
