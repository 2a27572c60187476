package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/pressroomhq/pressroom/internal/filter"
	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/server"
)

const trialColumns = `t.id, t.title, t.description, t.status, t.budget, t.is_public, t.principal_investigator_id, t.created_at, t.updated_at,
	u.id, u.username, u.email, u.is_staff, u.created_at`

const trialFrom = ` FROM trials t JOIN users u ON u.id = t.principal_investigator_id`

// trialFilters is the filterable surface of the trial list endpoint.
var trialFilters = filter.NewSet(
	filter.MultiChoice("status", "t.status", model.TrialStatuses...),
	filter.In("status_in", "t.status"),
	filter.Exclude("exclude_status", "t.status"),
	filter.IContains("title", "t.title"),
	filter.Exact("principal_investigator", "t.principal_investigator_id"),
	filter.IContains("pi_name", "u.username"),
	filter.NumberGTE("budget_min", "t.budget"),
	filter.NumberLTE("budget_max", "t.budget"),
	filter.Bool("is_public", "t.is_public"),
	filter.DateGTE("created_after", "t.created_at"),
	filter.DateLTE("created_before", "t.created_at"),
	filter.Year("created_year", "t.created_at"),
	filter.Month("created_month", "t.created_at"),
	filter.Custom("has_participants", func(b *filter.Builder, values []string) error {
		want, err := filter.ParseBool(values[0])
		if err != nil {
			return &filter.InvalidFilterError{Param: "has_participants", Message: "must be true or false"}
		}
		predicate := "EXISTS (SELECT 1 FROM trial_participants tp WHERE tp.trial_id = t.id)"
		if !want {
			predicate = "NOT " + predicate
		}
		b.Where(predicate)
		return nil
	}),
	filter.Search("search", "t.title", "t.description", "u.username"),
)

var trialOrdering = filter.NewOrdering("-created_at").
	Allow("created_at", "t.created_at").
	Allow("updated_at", "t.updated_at").
	Allow("budget", "t.budget")

// TrialRepository reads trials and their participant aggregates.
type TrialRepository struct {
	pool *pgxpool.Pool
}

// NewTrialRepository constructs a TrialRepository on the shared pool.
func NewTrialRepository(s *server.Server) *TrialRepository {
	return &TrialRepository{pool: s.DB.Pool}
}

// List returns the page of trials visible to the viewer that match the
// query filters, plus the total match count.
func (r *TrialRepository) List(ctx context.Context, q url.Values, vis Visibility) ([]model.Trial, int, error) {
	b := filter.NewBuilder(0)
	if !vis.Staff {
		b.Where(fmt.Sprintf("(t.is_public OR t.principal_investigator_id = %s)", b.Bind(vis.ViewerID)))
	}

	if err := trialFilters.Apply(q, b); err != nil {
		return nil, 0, err
	}

	var where string
	if frags := b.Fragments(); len(frags) > 0 {
		where = " WHERE " + strings.Join(frags, " AND ")
	}
	args := b.Args()

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*)"+trialFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count trials")
	}

	page := filter.ParsePage(q)
	query := fmt.Sprintf("SELECT %s%s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		trialColumns, trialFrom, where, trialOrdering.OrderBy(q), len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list trials")
	}
	defer rows.Close()

	trials := []model.Trial{}
	for rows.Next() {
		var t model.Trial
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Budget, &t.IsPublic, &t.PIID, &t.CreatedAt, &t.UpdatedAt,
			&t.PI.ID, &t.PI.Username, &t.PI.Email, &t.PI.IsStaff, &t.PI.CreatedAt,
		)
		if err != nil {
			return nil, 0, errors.Wrap(err, "failed to scan trial")
		}
		trials = append(trials, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "failed to read trials")
	}

	return trials, total, nil
}

// GetByID returns one trial with its principal investigator and
// participant count.
func (r *TrialRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Trial, error) {
	query := "SELECT " + trialColumns + `,
	(SELECT count(*) FROM trial_participants tp WHERE tp.trial_id = t.id)` +
		trialFrom + " WHERE t.id = $1"

	var t model.Trial
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Budget, &t.IsPublic, &t.PIID, &t.CreatedAt, &t.UpdatedAt,
		&t.PI.ID, &t.PI.Username, &t.PI.Email, &t.PI.IsStaff, &t.PI.CreatedAt,
		&t.ParticipantsCount,
	)
	if err != nil {
		return nil, errors.Wrap(err, "table:trials")
	}
	return &t, nil
}
