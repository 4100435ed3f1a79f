package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Upsert inserts the user on first sight. For an existing row the only
// field a login may change is the status, and only to Requested; the
// CASE keeps the conflict branch a no-op otherwise.
func (r *UserRepositoryPG) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (email, name, photo, role, status, joined_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (email) DO UPDATE
SET status = CASE WHEN EXCLUDED.status = 'Requested' THEN EXCLUDED.status ELSE users.status END
RETURNING email, name, photo, role, status, joined_at;
`, user.Email, user.Name, user.Photo, user.Role, user.Status, user.JoinedAt)
	return scanUser(row)
}

// GetByEmail fetches a user by its email key.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT email, name, photo, role, status, joined_at FROM users WHERE email = $1;
`, email)
	return scanUser(row)
}

// List returns every account ordered by email.
func (r *UserRepositoryPG) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
SELECT email, name, photo, role, status, joined_at FROM users ORDER BY email;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Email, &u.Name, &u.Photo, &u.Role, &u.Status, &u.JoinedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateRole sets the role and marks the upgrade request verified.
func (r *UserRepositoryPG) UpdateRole(ctx context.Context, email string, role domain.UserRole) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE users SET role = $2, status = 'verified' WHERE email = $1;
`, email, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the role-upgrade status.
func (r *UserRepositoryPG) UpdateStatus(ctx context.Context, email string, status domain.UserStatus) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE users SET status = $2 WHERE email = $1;
`, email, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.Email, &u.Name, &u.Photo, &u.Role, &u.Status, &u.JoinedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
