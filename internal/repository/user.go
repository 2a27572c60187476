package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/server"
)

// UserRepository reads and writes the local mirror of auth provider users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository on the shared pool.
func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{pool: s.DB.Pool}
}

// GetByID returns the user with the given provider id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		"SELECT id, username, email, is_staff, created_at FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "table:users")
	}
	return &u, nil
}

// Upsert inserts the user or refreshes its profile fields when the id is
// already known.
func (r *UserRepository) Upsert(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (id, username, email, is_staff) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, email = EXCLUDED.email, is_staff = EXCLUDED.is_staff
		RETURNING created_at`,
		u.ID, u.Username, u.Email, u.IsStaff,
	).Scan(&u.CreatedAt)
}
