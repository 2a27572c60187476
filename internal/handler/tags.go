package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pressroomhq/pressroom/internal/server"
	"github.com/pressroomhq/pressroom/internal/service"
)

// TagHandler serves the tag vocabulary endpoints.
type TagHandler struct {
	Handler
	services *service.Services
}

// NewTagHandler constructs a TagHandler.
func NewTagHandler(s *server.Server, services *service.Services) *TagHandler {
	return &TagHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// ListTagsRequest has no bindable payload.
type ListTagsRequest struct{}

func (r *ListTagsRequest) Validate() error { return nil }

// CreateTagRequest is the payload for creating a tag. The slug is derived
// server-side from the name.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

func (r *CreateTagRequest) Validate() error {
	return validate.Struct(r)
}

// List serves GET /tags.
func (h *TagHandler) List(c echo.Context, req *ListTagsRequest) ([]TagResponse, error) {
	tags, err := h.services.Tags.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return newTagResponses(tags), nil
}

// Create serves POST /tags.
func (h *TagHandler) Create(c echo.Context, req *CreateTagRequest) (*TagResponse, error) {
	tag, err := h.services.Tags.Create(c.Request().Context(), req.Name)
	if err != nil {
		return nil, err
	}
	resp := newTagResponse(*tag)
	return &resp, nil
}
