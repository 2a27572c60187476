package service

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroomhq/pressroom/internal/errs"
	"github.com/pressroomhq/pressroom/internal/filter"
	"github.com/pressroomhq/pressroom/internal/model"
)

func TestCheckPublishable(t *testing.T) {
	assert.NoError(t, checkPublishable(model.ArticleStatusDraft, ""))
	assert.NoError(t, checkPublishable(model.ArticleStatusArchived, ""))
	assert.NoError(t, checkPublishable(model.ArticleStatusPublished, "a summary"))

	err := checkPublishable(model.ArticleStatusPublished, "")
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ARTICLE_SUMMARY_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "summary", httpErr.Errors[0].Field)

	// A whitespace-only summary is as good as no summary.
	assert.Error(t, checkPublishable(model.ArticleStatusPublished, "   "))
}

func TestCheckPublishTransition(t *testing.T) {
	// The action itself requires no summary; drafts publish as they are.
	assert.NoError(t, checkPublishTransition(model.ArticleStatusDraft))
	assert.NoError(t, checkPublishTransition(model.ArticleStatusArchived))

	err := checkPublishTransition(model.ArticleStatusPublished)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ARTICLE_ALREADY_PUBLISHED", httpErr.Code)
}

func TestCanSee(t *testing.T) {
	svc := &ArticleService{}
	draft := &model.Article{Status: model.ArticleStatusDraft, AuthorID: "user_author"}
	published := &model.Article{Status: model.ArticleStatusPublished, AuthorID: "user_author"}

	assert.True(t, svc.canSee(published, Viewer{ID: "user_other"}))
	assert.True(t, svc.canSee(draft, Viewer{ID: "user_author"}))
	assert.True(t, svc.canSee(draft, Viewer{ID: "user_other", Staff: true}))
	assert.False(t, svc.canSee(draft, Viewer{ID: "user_other"}))
}

func TestRequireOwnership(t *testing.T) {
	svc := &ArticleService{}
	published := &model.Article{Status: model.ArticleStatusPublished, AuthorID: "user_author"}
	draft := &model.Article{Status: model.ArticleStatusDraft, AuthorID: "user_author"}

	assert.NoError(t, svc.requireOwnership(published, Viewer{ID: "user_author"}))
	assert.NoError(t, svc.requireOwnership(published, Viewer{ID: "user_other", Staff: true}))

	// A reader who can see the article but does not own it gets a 403.
	err := svc.requireOwnership(published, Viewer{ID: "user_other"})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)

	// A reader who cannot even see the article gets a 404, not a 403.
	err = svc.requireOwnership(draft, Viewer{ID: "user_other"})
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestUniqueUUIDs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.Len(t, uniqueUUIDs([]uuid.UUID{a, b, a, b, a}), 2)
	assert.Empty(t, uniqueUUIDs(nil))
}

func TestConvertFilterError(t *testing.T) {
	err := convertFilterError(&filter.InvalidFilterError{
		Param:   "budget_min",
		Message: "must be a number",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "INVALID_FILTER", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "budget_min", httpErr.Errors[0].Field)

	// Non-filter errors pass through untouched.
	assert.Equal(t, assert.AnError, convertFilterError(assert.AnError))
}
