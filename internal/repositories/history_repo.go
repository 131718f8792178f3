package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharklandy/deapsea-project/internal/models"
)

// HistoryRepo reads the append-only action history. Writes happen only
// inside moderation transactions (see ModerationRepo); there is no update or
// delete path.
type HistoryRepo struct {
	pool *pgxpool.Pool
}

func NewHistoryRepo(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

const historyColumns = `
	id, user_id, username, user_role, action_type, target_type, target_id, target_details, created_at`

func (r *HistoryRepo) List(ctx context.Context, limit, offset int) ([]models.ActionHistory, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+historyColumns+` FROM action_history
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectHistory(rows)
}

func (r *HistoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM action_history`).Scan(&n)
	return n, err
}

func (r *HistoryRepo) ListByActor(ctx context.Context, userID uuid.UUID) ([]models.ActionHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+historyColumns+` FROM action_history
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectHistory(rows)
}

func (r *HistoryRepo) ListByTargets(ctx context.Context, targetType string, targetIDs []uuid.UUID) ([]models.ActionHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+historyColumns+` FROM action_history
		WHERE target_type = $1 AND target_id = ANY($2)
		ORDER BY created_at DESC
	`, targetType, targetIDs)
	if err != nil {
		return nil, err
	}
	return collectHistory(rows)
}

func collectHistory(rows interface {
	Next() bool
	Scan(...any) error
	Close()
	Err() error
}) ([]models.ActionHistory, error) {
	defer rows.Close()

	var list []models.ActionHistory
	for rows.Next() {
		var h models.ActionHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.Username, &h.UserRole, &h.ActionType,
			&h.TargetType, &h.TargetID, &h.TargetDetails, &h.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}
