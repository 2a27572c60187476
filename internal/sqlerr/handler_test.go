package sqlerr

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroomhq/pressroom/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "tags",
		ConstraintName: "tags_name_key",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "TAG_ALREADY_EXISTS", httpErr.Code)
	assert.Contains(t, httpErr.Message, "Name")
	assert.True(t, httpErr.Override)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "articles",
		ColumnName: "author_id",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ARTICLE_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Author does not exist", httpErr.Message)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "articles",
		ColumnName: "title",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, "ARTICLE_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestHandleErrorNoRowsNamesEntity(t *testing.T) {
	err := HandleError(errors.Wrap(pgx.ErrNoRows, "table:articles"))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Article not found", httpErr.Message)
}

func TestHandleErrorNoRowsWithoutTable(t *testing.T) {
	err := HandleError(pgx.ErrNoRows)

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewForbiddenError("nope", false)
	assert.Equal(t, original, HandleError(original))
}

func TestHandleErrorUnknownBecomes500(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(assert.AnError))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("99999"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "slug", extractColumnForUniqueViolation("tags_slug_key"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("unique_tags_name"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_tags"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
