package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharklandy/deapsea-project/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, role, reputation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, u.Email, u.Username, u.PasswordHash, u.Role, u.Reputation).Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, username, password_hash, role, reputation, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.Reputation, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, username, password_hash, role, reputation, created_at
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.Reputation, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)
	`, email, username).Scan(&exists)
	return exists, err
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, username, role, reputation, created_at
		FROM users ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.Role, &u.Reputation, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	return err
}

// IncrementReputation atomically adds points and returns the updated row.
// The promotion rule is applied by the caller on the returned state.
func (r *UserRepo) IncrementReputation(ctx context.Context, id uuid.UUID, points int) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		UPDATE users SET reputation = reputation + $2
		WHERE id = $1
		RETURNING id, email, username, password_hash, role, reputation, created_at
	`, id, points).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.Reputation, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IncrementReputationOnce applies the delta at most once per deliveryID.
// The dedupe row and the increment commit in one transaction; a replayed
// delivery reads the current row instead. The bool reports whether the
// points were applied by this call.
func (r *UserRepo) IncrementReputationOnce(ctx context.Context, id uuid.UUID, points int, deliveryID uuid.UUID) (*models.User, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO reputation_deliveries (delivery_id) VALUES ($1)
		ON CONFLICT (delivery_id) DO NOTHING
	`, deliveryID)
	if err != nil {
		return nil, false, err
	}

	var u models.User
	if tag.RowsAffected() == 0 {
		err = tx.QueryRow(ctx, `
			SELECT id, email, username, password_hash, role, reputation, created_at
			FROM users WHERE id = $1
		`, id).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.Reputation, &u.CreatedAt)
		if err != nil {
			return nil, false, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, false, err
		}
		return &u, false, nil
	}

	err = tx.QueryRow(ctx, `
		UPDATE users SET reputation = reputation + $2
		WHERE id = $1
		RETURNING id, email, username, password_hash, role, reputation, created_at
	`, id, points).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.Reputation, &u.CreatedAt)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return &u, true, nil
}
