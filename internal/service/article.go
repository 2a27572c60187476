package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/pressroomhq/pressroom/internal/errs"
	"github.com/pressroomhq/pressroom/internal/lib/job"
	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/repository"
	"github.com/pressroomhq/pressroom/internal/server"
)

// Viewer identifies the authenticated reader and their privilege level
// for visibility decisions.
type Viewer struct {
	ID    string
	Staff bool
}

// CreateArticleInput is the validated payload for creating an article.
// Tags can be referenced by id, created inline by name, or both.
type CreateArticleInput struct {
	Title    string
	Summary  string
	Content  string
	Status   string
	TagIDs   []uuid.UUID
	TagNames []string
}

// UpdateArticleInput carries the fields of a full or partial update. Nil
// pointers mean "leave unchanged"; a full update sets every field.
type UpdateArticleInput struct {
	Title    *string
	Summary  *string
	Content  *string
	Status   *string
	TagIDs   *[]uuid.UUID
	TagNames *[]string
}

// ArticleService implements the article workflows: listing with
// visibility rules, authoring, and the publish transition.
type ArticleService struct {
	server *server.Server
	repos  *repository.Repositories
	auth   *AuthService
}

// NewArticleService constructs an ArticleService.
func NewArticleService(s *server.Server, repos *repository.Repositories, auth *AuthService) *ArticleService {
	return &ArticleService{
		server: s,
		repos:  repos,
		auth:   auth,
	}
}

// List returns articles visible to the viewer: everything for staff,
// published plus their own for everyone else.
func (s *ArticleService) List(ctx context.Context, q url.Values, viewer Viewer) ([]model.Article, int, error) {
	articles, total, err := s.repos.Articles.List(ctx, q, repository.Visibility{
		ViewerID: viewer.ID,
		Staff:    viewer.Staff,
	})
	if err != nil {
		return nil, 0, convertFilterError(err)
	}
	return articles, total, nil
}

// Mine returns the viewer's own articles in every status.
func (s *ArticleService) Mine(ctx context.Context, q url.Values, viewer Viewer) ([]model.Article, int, error) {
	articles, total, err := s.repos.Articles.ListByAuthor(ctx, q, viewer.ID)
	if err != nil {
		return nil, 0, convertFilterError(err)
	}
	return articles, total, nil
}

// Get returns one article. Unpublished articles are visible only to
// their author and staff; everyone else gets a 404 so drafts do not leak
// their existence.
func (s *ArticleService) Get(ctx context.Context, id uuid.UUID, viewer Viewer) (*model.Article, error) {
	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canSee(article, viewer) {
		return nil, errs.NewNotFoundError("Article not found", true, nil)
	}

	return article, nil
}

// Create stores a new article authored by the viewer. The author row is
// synced from the auth provider on first sight.
func (s *ArticleService) Create(ctx context.Context, viewer Viewer, role string, in CreateArticleInput) (*model.Article, error) {
	if _, err := s.auth.EnsureUser(ctx, viewer.ID, role); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = model.ArticleStatusDraft
	}

	if err := checkPublishable(status, in.Summary); err != nil {
		return nil, err
	}

	tagIDs, err := s.resolveTags(ctx, in.TagIDs, in.TagNames)
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		ID:       uuid.New(),
		Title:    in.Title,
		Summary:  in.Summary,
		Content:  in.Content,
		Status:   status,
		AuthorID: viewer.ID,
	}

	if err := s.repos.Articles.Create(ctx, article, tagIDs); err != nil {
		return nil, err
	}

	return s.repos.Articles.GetByID(ctx, article.ID)
}

// Update applies a full or partial update. Only the author or staff may
// modify an article, and the merged result must still satisfy the
// publish rules.
func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, viewer Viewer, in UpdateArticleInput) (*model.Article, error) {
	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnership(article, viewer); err != nil {
		return nil, err
	}

	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Summary != nil {
		article.Summary = *in.Summary
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
	if in.Status != nil {
		article.Status = *in.Status
	}

	if err := checkPublishable(article.Status, article.Summary); err != nil {
		return nil, err
	}

	replaceTags := in.TagIDs != nil || in.TagNames != nil
	var tagIDs []uuid.UUID
	if replaceTags {
		var ids []uuid.UUID
		var names []string
		if in.TagIDs != nil {
			ids = *in.TagIDs
		}
		if in.TagNames != nil {
			names = *in.TagNames
		}
		tagIDs, err = s.resolveTags(ctx, ids, names)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repos.Articles.Update(ctx, article, replaceTags, tagIDs); err != nil {
		return nil, err
	}

	return s.repos.Articles.GetByID(ctx, id)
}

// Delete removes an article. Only the author or staff may delete.
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID, viewer Viewer) error {
	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireOwnership(article, viewer); err != nil {
		return err
	}

	return s.repos.Articles.Delete(ctx, id)
}

// Publish transitions a draft or archived article to published, touching
// only the status column, and queues the author notification.
func (s *ArticleService) Publish(ctx context.Context, id uuid.UUID, viewer Viewer) (*model.Article, error) {
	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnership(article, viewer); err != nil {
		return nil, err
	}

	if err := checkPublishTransition(article.Status); err != nil {
		return nil, err
	}

	if err := s.repos.Articles.UpdateStatus(ctx, id, model.ArticleStatusPublished); err != nil {
		return nil, err
	}

	article, err = s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.enqueuePublishNotification(ctx, article)

	return article, nil
}

// enqueuePublishNotification queues the author email. Failures are
// logged, not returned; publishing succeeded either way.
func (s *ArticleService) enqueuePublishNotification(ctx context.Context, article *model.Article) {
	task, err := job.NewArticlePublishedTask(
		article.ID.String(),
		article.Title,
		article.Author.Email,
		article.Author.Username,
	)
	if err != nil {
		s.server.Logger.Error().Err(err).
			Str("article_id", article.ID.String()).
			Msg("failed to build publish notification task")
		return
	}

	if _, err := s.server.Job.Client.EnqueueContext(ctx, task); err != nil {
		s.server.Logger.Error().Err(err).
			Str("article_id", article.ID.String()).
			Msg("failed to enqueue publish notification")
	}
}

func (s *ArticleService) canSee(article *model.Article, viewer Viewer) bool {
	if viewer.Staff || article.Status == model.ArticleStatusPublished {
		return true
	}
	return article.AuthorID == viewer.ID
}

func (s *ArticleService) requireOwnership(article *model.Article, viewer Viewer) error {
	if viewer.Staff || article.AuthorID == viewer.ID {
		return nil
	}

	// Hide the article entirely from viewers who cannot even read it.
	if !s.canSee(article, viewer) {
		return errs.NewNotFoundError("Article not found", true, nil)
	}

	return errs.NewForbiddenError("You do not have permission to modify this article", true)
}

// resolveTags turns id references and inline names into a deduplicated
// tag id list. Unknown ids are rejected; names are created on demand.
func (s *ArticleService) resolveTags(ctx context.Context, ids []uuid.UUID, names []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var resolved []uuid.UUID

	if len(ids) > 0 {
		tags, err := s.repos.Tags.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(tags) != len(uniqueUUIDs(ids)) {
			code := "TAG_NOT_FOUND"
			fieldErrors := []errs.FieldError{{Field: "tag_ids", Error: "one or more tags do not exist"}}
			return nil, errs.NewBadRequestError("One or more tags do not exist", true, &code, fieldErrors, nil)
		}
		for _, t := range tags {
			if !seen[t.ID] {
				seen[t.ID] = true
				resolved = append(resolved, t.ID)
			}
		}
	}

	for _, name := range names {
		tag, err := s.repos.Tags.GetOrCreateByName(ctx, name, slugify(name))
		if err != nil {
			return nil, err
		}
		if !seen[tag.ID] {
			seen[tag.ID] = true
			resolved = append(resolved, tag.ID)
		}
	}

	return resolved, nil
}

func uniqueUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	var out []uuid.UUID
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// checkPublishable enforces that created or updated articles carry a
// summary when their status is published.
func checkPublishable(status, summary string) error {
	if status == model.ArticleStatusPublished && strings.TrimSpace(summary) == "" {
		code := "ARTICLE_SUMMARY_REQUIRED"
		fieldErrors := []errs.FieldError{{Field: "summary", Error: "is required when publishing"}}
		return errs.NewBadRequestError("A summary is required to publish an article", true, &code, fieldErrors, nil)
	}
	return nil
}

// checkPublishTransition rejects republishing. The publish action itself
// imposes no summary requirement; that rule belongs to create and update.
func checkPublishTransition(status string) error {
	if status == model.ArticleStatusPublished {
		code := "ARTICLE_ALREADY_PUBLISHED"
		return errs.NewBadRequestError("Article is already published", true, &code, nil, nil)
	}
	return nil
}
