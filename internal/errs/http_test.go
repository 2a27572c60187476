package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("OK"))
}

func TestHTTPErrorIs(t *testing.T) {
	err := NewNotFoundError("Article not found", true, nil)

	wrapped := errors.Wrap(err, "loading article")
	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
}

func TestNewBadRequestErrorCustomCode(t *testing.T) {
	code := "ARTICLE_ALREADY_PUBLISHED"
	err := NewBadRequestError("Article is already published", true, &code, nil, nil)

	assert.Equal(t, "ARTICLE_ALREADY_PUBLISHED", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, err.Override)
}

func TestWithMessage(t *testing.T) {
	base := NewForbiddenError("original", false)
	copied := base.WithMessage("replaced")

	assert.Equal(t, "replaced", copied.Message)
	assert.Equal(t, base.Code, copied.Code)
	assert.Equal(t, "original", base.Message)
}
