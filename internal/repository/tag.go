package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/server"
)

// TagRepository reads and writes tags.
type TagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository constructs a TagRepository on the shared pool.
func NewTagRepository(s *server.Server) *TagRepository {
	return &TagRepository{pool: s.DB.Pool}
}

// List returns all tags ordered by name.
func (r *TagRepository) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, name, slug, created_at FROM tags ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan tag")
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Create inserts a tag. A duplicate name surfaces as a unique violation
// handled by the global error funnel.
func (r *TagRepository) Create(ctx context.Context, t *model.Tag) error {
	return r.pool.QueryRow(ctx,
		"INSERT INTO tags (id, name, slug) VALUES ($1, $2, $3) RETURNING created_at",
		t.ID, t.Name, t.Slug,
	).Scan(&t.CreatedAt)
}

// GetByIDs returns the tags with the given ids. The caller compares
// lengths to detect ids that do not exist.
func (r *TagRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}

	rows, err := r.pool.Query(ctx,
		"SELECT id, name, slug, created_at FROM tags WHERE id = ANY($1) ORDER BY name", ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tags")
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan tag")
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// GetOrCreateByName returns the tag with the given name, inserting it
// first when it does not exist. The upsert makes concurrent callers
// converge on the same row.
func (r *TagRepository) GetOrCreateByName(ctx context.Context, name, slug string) (*model.Tag, error) {
	var t model.Tag
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags (id, name, slug) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, slug, created_at`,
		uuid.New(), name, slug,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
