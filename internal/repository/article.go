package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/pressroomhq/pressroom/internal/filter"
	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/server"
)

// articleColumns is the projection shared by list and detail queries:
// the article row joined with its author.
const articleColumns = `a.id, a.title, a.summary, a.content, a.status, a.author_id, a.created_at, a.updated_at,
	u.id, u.username, u.email, u.is_staff, u.created_at`

const articleFrom = ` FROM articles a JOIN users u ON u.id = a.author_id`

// articleFilters is the filterable surface of the article list endpoints.
var articleFilters = filter.NewSet(
	filter.MultiChoice("status", "a.status", model.ArticleStatuses...),
	filter.In("status_in", "a.status"),
	filter.Exclude("exclude_status", "a.status"),
	filter.Exact("author", "a.author_id"),
	filter.IContains("title", "a.title"),
	filter.IContains("author_name", "u.username"),
	filter.DateGTE("created_after", "a.created_at"),
	filter.DateLTE("created_before", "a.created_at"),
	filter.Year("created_year", "a.created_at"),
	filter.Month("created_month", "a.created_at"),
	filter.Custom("tag", func(b *filter.Builder, values []string) error {
		b.Where(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM article_tags at JOIN tags t ON t.id = at.tag_id WHERE at.article_id = a.id AND lower(t.name) = lower(%s))",
			b.Bind(values[0]),
		))
		return nil
	}),
	filter.Search("search", "a.title", "a.content"),
)

var articleOrdering = filter.NewOrdering("-created_at").
	Allow("created_at", "a.created_at").
	Allow("updated_at", "a.updated_at").
	Allow("title", "a.title")

// ArticleRepository reads and writes articles and their tag associations.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository constructs an ArticleRepository on the shared pool.
func NewArticleRepository(s *server.Server) *ArticleRepository {
	return &ArticleRepository{pool: s.DB.Pool}
}

// List returns the page of articles visible to the viewer that match the
// query filters, plus the total match count for pagination.
func (r *ArticleRepository) List(ctx context.Context, q url.Values, vis Visibility) ([]model.Article, int, error) {
	b := filter.NewBuilder(0)
	if !vis.Staff {
		b.Where(fmt.Sprintf("(a.status = %s OR a.author_id = %s)",
			b.Bind(model.ArticleStatusPublished), b.Bind(vis.ViewerID)))
	}
	return r.list(ctx, q, b)
}

// ListByAuthor returns the author's own articles regardless of status,
// still honoring query filters.
func (r *ArticleRepository) ListByAuthor(ctx context.Context, q url.Values, authorID string) ([]model.Article, int, error) {
	b := filter.NewBuilder(0)
	b.Where(fmt.Sprintf("a.author_id = %s", b.Bind(authorID)))
	return r.list(ctx, q, b)
}

func (r *ArticleRepository) list(ctx context.Context, q url.Values, b *filter.Builder) ([]model.Article, int, error) {
	if err := articleFilters.Apply(q, b); err != nil {
		return nil, 0, err
	}

	var where string
	if frags := b.Fragments(); len(frags) > 0 {
		where = " WHERE " + strings.Join(frags, " AND ")
	}
	args := b.Args()

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*)"+articleFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count articles")
	}

	page := filter.ParsePage(q)
	query := fmt.Sprintf("SELECT %s%s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		articleColumns, articleFrom, where, articleOrdering.OrderBy(q), len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list articles")
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, 0, errors.Wrap(err, "failed to scan article")
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "failed to read articles")
	}

	if err := r.loadTags(ctx, articles); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// GetByID returns one article with its author, tags, and comment count.
func (r *ArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	query := "SELECT " + articleColumns + `,
	(SELECT count(*) FROM comments c WHERE c.article_id = a.id)` +
		articleFrom + " WHERE a.id = $1"

	var a model.Article
	row := r.pool.QueryRow(ctx, query, id)
	err := row.Scan(
		&a.ID, &a.Title, &a.Summary, &a.Content, &a.Status, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
		&a.Author.ID, &a.Author.Username, &a.Author.Email, &a.Author.IsStaff, &a.Author.CreatedAt,
		&a.CommentsCount,
	)
	if err != nil {
		return nil, errors.Wrap(err, "table:articles")
	}

	articles := []model.Article{a}
	if err := r.loadTags(ctx, articles); err != nil {
		return nil, err
	}

	return &articles[0], nil
}

// Create inserts the article and its tag associations in one transaction.
func (r *ArticleRepository) Create(ctx context.Context, a *model.Article, tagIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO articles (id, title, summary, content, status, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		a.ID, a.Title, a.Summary, a.Content, a.Status, a.AuthorID,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return err
	}

	if err := attachTags(ctx, tx, a.ID, tagIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update persists the article's mutable fields. When replaceTags is true
// the tag associations are replaced with tagIDs, all in one transaction.
func (r *ArticleRepository) Update(ctx context.Context, a *model.Article, replaceTags bool, tagIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE articles
		SET title = $2, summary = $3, content = $4, status = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		a.ID, a.Title, a.Summary, a.Content, a.Status,
	).Scan(&a.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "table:articles")
	}

	if replaceTags {
		if _, err := tx.Exec(ctx, "DELETE FROM article_tags WHERE article_id = $1", a.ID); err != nil {
			return err
		}
		if err := attachTags(ctx, tx, a.ID, tagIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// UpdateStatus changes only the status column, leaving other fields alone.
func (r *ArticleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE articles SET status = $2, updated_at = now() WHERE id = $1", id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:articles")
	}
	return nil
}

// Delete removes the article; associations and comments cascade.
func (r *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:articles")
	}
	return nil
}

func attachTags(ctx context.Context, tx pgx.Tx, articleID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx,
			"INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			articleID, tagID)
		if err != nil {
			return err
		}
	}
	return nil
}

// loadTags attaches tags to the given articles with one batched query.
func (r *ArticleRepository) loadTags(ctx context.Context, articles []model.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(articles))
	byID := make(map[uuid.UUID]*model.Article, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID
		byID[articles[i].ID] = &articles[i]
		articles[i].Tags = []model.Tag{}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT at.article_id, t.id, t.name, t.slug, t.created_at
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1)
		ORDER BY t.name`, ids)
	if err != nil {
		return errors.Wrap(err, "failed to load article tags")
	}
	defer rows.Close()

	for rows.Next() {
		var articleID uuid.UUID
		var t model.Tag
		if err := rows.Scan(&articleID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return errors.Wrap(err, "failed to scan article tag")
		}
		if a, ok := byID[articleID]; ok {
			a.Tags = append(a.Tags, t)
		}
	}
	return rows.Err()
}

func scanArticle(rows pgx.Rows, a *model.Article) error {
	return rows.Scan(
		&a.ID, &a.Title, &a.Summary, &a.Content, &a.Status, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
		&a.Author.ID, &a.Author.Username, &a.Author.Email, &a.Author.IsStaff, &a.Author.CreatedAt,
	)
}
