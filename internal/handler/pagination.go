package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pressroomhq/pressroom/internal/filter"
)

// PaginatedResponse is the envelope of every list endpoint: the total
// match count, absolute next/previous page links (null at the edges),
// and the current page of results.
type PaginatedResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// paginate wraps a page of results in the envelope, deriving the
// next/previous links from the request URL.
func paginate[T any](c echo.Context, results []T, total int) *PaginatedResponse[T] {
	if results == nil {
		results = []T{}
	}

	page := filter.ParsePage(c.QueryParams())

	resp := &PaginatedResponse[T]{
		Count:   total,
		Results: results,
	}

	if page.Offset+page.Limit < total {
		resp.Next = pageURL(c, page.Limit, page.Offset+page.Limit)
	}
	if page.Offset > 0 {
		prev := page.Offset - page.Limit
		if prev < 0 {
			prev = 0
		}
		resp.Previous = pageURL(c, page.Limit, prev)
	}

	return resp
}

// pageURL rebuilds the request URL with the given limit/offset, keeping
// every other query parameter (filters, ordering) intact.
func pageURL(c echo.Context, limit, offset int) *string {
	u := *c.Request().URL

	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}
	u.RawQuery = q.Encode()

	link := c.Scheme() + "://" + c.Request().Host + u.RequestURI()
	return &link
}
