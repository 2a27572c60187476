package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginateContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = "api.example.com"
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestPaginateFirstPage(t *testing.T) {
	c := paginateContext(t, "/api/v1/articles?status=published")

	resp := paginate(c, []string{"a", "b"}, 50)

	assert.Equal(t, 50, resp.Count)
	assert.Nil(t, resp.Previous)
	require.NotNil(t, resp.Next)
	assert.Contains(t, *resp.Next, "offset=20")
	assert.Contains(t, *resp.Next, "limit=20")
	assert.Contains(t, *resp.Next, "status=published")
	assert.Contains(t, *resp.Next, "http://api.example.com/api/v1/articles")
}

func TestPaginateMiddlePage(t *testing.T) {
	c := paginateContext(t, "/api/v1/articles?limit=10&offset=20")

	resp := paginate(c, []string{"a"}, 100)

	require.NotNil(t, resp.Next)
	assert.Contains(t, *resp.Next, "offset=30")
	require.NotNil(t, resp.Previous)
	assert.Contains(t, *resp.Previous, "offset=10")
}

func TestPaginatePreviousDropsZeroOffset(t *testing.T) {
	c := paginateContext(t, "/api/v1/articles?limit=10&offset=10")

	resp := paginate(c, []string{"a"}, 100)

	require.NotNil(t, resp.Previous)
	assert.NotContains(t, *resp.Previous, "offset=")
}

func TestPaginateLastPage(t *testing.T) {
	c := paginateContext(t, "/api/v1/articles?limit=10&offset=40")

	resp := paginate(c, []string{"a"}, 45)

	assert.Nil(t, resp.Next)
	require.NotNil(t, resp.Previous)
}

func TestPaginateEmptyResults(t *testing.T) {
	c := paginateContext(t, "/api/v1/articles")

	resp := paginate[string](c, nil, 0)

	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
}
