package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/pressroomhq/pressroom/internal/middleware"
	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/service"
)

// validate is the shared validator instance driving the `validate` tags on
// request payloads.
var validate = validator.New()

// viewerFrom extracts the authenticated viewer from Echo context. The auth
// middleware guarantees user_id is set on protected routes.
func viewerFrom(c echo.Context) service.Viewer {
	return service.Viewer{
		ID:    middleware.GetUserID(c),
		Staff: middleware.GetUserRole(c) == service.StaffRole,
	}
}

// UserSummary is the nested author/investigator representation.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}

func newUserSummary(u model.User) UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		IsStaff:  u.IsStaff,
	}
}

// TagResponse is the tag representation, nested in articles and served by
// the tag endpoints.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

func newTagResponse(t model.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
	}
}

func newTagResponses(tags []model.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = newTagResponse(t)
	}
	return out
}
