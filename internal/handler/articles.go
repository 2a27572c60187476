package handler

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pressroomhq/pressroom/internal/middleware"
	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/server"
	"github.com/pressroomhq/pressroom/internal/service"
	"github.com/pressroomhq/pressroom/internal/validation"
)

// ArticleHandler serves the article endpoints.
type ArticleHandler struct {
	Handler
	services *service.Services
}

// NewArticleHandler constructs an ArticleHandler.
func NewArticleHandler(s *server.Server, services *service.Services) *ArticleHandler {
	return &ArticleHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// --- Requests ---------------------------------------------------------------

// ListArticlesRequest has no bindable payload; filters, ordering, and
// pagination are read from the query string by the repository layer.
type ListArticlesRequest struct{}

func (r *ListArticlesRequest) Validate() error { return nil }

// ArticleIDRequest binds the article id path parameter.
type ArticleIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *ArticleIDRequest) Validate() error {
	return validate.Struct(r)
}

// InlineTagRequest is a tag referenced by name inside an article payload.
// Unknown names are created on the fly.
type InlineTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// CreateArticleRequest is the payload for creating an article. Tags can
// be attached by id (tag_ids) or inline by name (tags); both are accepted
// together. Author and timestamps are always server-assigned.
type CreateArticleRequest struct {
	Title   string             `json:"title" validate:"required,min=5"`
	Summary string             `json:"summary"`
	Content string             `json:"content"`
	Status  string             `json:"status" validate:"omitempty,oneof=draft published archived"`
	TagIDs  []string           `json:"tag_ids" validate:"omitempty,dive,uuid"`
	Tags    []InlineTagRequest `json:"tags" validate:"omitempty,dive"`
}

func (r *CreateArticleRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return requireSummaryWhenPublished(r.Status, r.Summary)
}

// UpdateArticleRequest is the payload for a full update. Every mutable
// field must be supplied.
type UpdateArticleRequest struct {
	ID      string             `param:"id" validate:"required,uuid"`
	Title   string             `json:"title" validate:"required,min=5"`
	Summary string             `json:"summary"`
	Content string             `json:"content"`
	Status  string             `json:"status" validate:"required,oneof=draft published archived"`
	TagIDs  []string           `json:"tag_ids" validate:"omitempty,dive,uuid"`
	Tags    []InlineTagRequest `json:"tags" validate:"omitempty,dive"`
}

func (r *UpdateArticleRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return requireSummaryWhenPublished(r.Status, r.Summary)
}

// PatchArticleRequest is the payload for a partial update. Nil fields are
// left unchanged; the cross-field publish rule is re-checked against the
// merged article in the service layer.
type PatchArticleRequest struct {
	ID      string              `param:"id" validate:"required,uuid"`
	Title   *string             `json:"title" validate:"omitempty,min=5"`
	Summary *string             `json:"summary"`
	Content *string             `json:"content"`
	Status  *string             `json:"status" validate:"omitempty,oneof=draft published archived"`
	TagIDs  *[]string           `json:"tag_ids" validate:"omitempty,dive,uuid"`
	Tags    *[]InlineTagRequest `json:"tags" validate:"omitempty,dive"`
}

func (r *PatchArticleRequest) Validate() error {
	return validate.Struct(r)
}

func requireSummaryWhenPublished(status, summary string) error {
	if status == model.ArticleStatusPublished && strings.TrimSpace(summary) == "" {
		return validation.CustomValidationErrors{{
			Field:   "summary",
			Message: "is required when status is published",
		}}
	}
	return nil
}

// --- Responses --------------------------------------------------------------

// ArticleResponse is the list representation of an article. The detail
// representation adds the body and aggregates.
type ArticleResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Summary   string        `json:"summary"`
	Status    string        `json:"status"`
	Author    UserSummary   `json:"author"`
	Tags      []TagResponse `json:"tags"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ArticleDetailResponse is the single-article representation.
type ArticleDetailResponse struct {
	ArticleResponse
	Content       string `json:"content"`
	CommentsCount int    `json:"comments_count"`
}

func newArticleResponse(a model.Article) ArticleResponse {
	return ArticleResponse{
		ID:        a.ID.String(),
		Title:     a.Title,
		Summary:   a.Summary,
		Status:    a.Status,
		Author:    newUserSummary(a.Author),
		Tags:      newTagResponses(a.Tags),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func newArticleDetailResponse(a *model.Article) *ArticleDetailResponse {
	return &ArticleDetailResponse{
		ArticleResponse: newArticleResponse(*a),
		Content:         a.Content,
		CommentsCount:   a.CommentsCount,
	}
}

func newArticleResponses(articles []model.Article) []ArticleResponse {
	out := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		out[i] = newArticleResponse(a)
	}
	return out
}

// --- Endpoints --------------------------------------------------------------

// List serves GET /articles.
func (h *ArticleHandler) List(c echo.Context, req *ListArticlesRequest) (*PaginatedResponse[ArticleResponse], error) {
	articles, total, err := h.services.Articles.List(c.Request().Context(), c.QueryParams(), viewerFrom(c))
	if err != nil {
		return nil, err
	}
	return paginate(c, newArticleResponses(articles), total), nil
}

// Mine serves GET /articles/mine: the viewer's own articles in any status.
func (h *ArticleHandler) Mine(c echo.Context, req *ListArticlesRequest) (*PaginatedResponse[ArticleResponse], error) {
	articles, total, err := h.services.Articles.Mine(c.Request().Context(), c.QueryParams(), viewerFrom(c))
	if err != nil {
		return nil, err
	}
	return paginate(c, newArticleResponses(articles), total), nil
}

// Get serves GET /articles/:id.
func (h *ArticleHandler) Get(c echo.Context, req *ArticleIDRequest) (*ArticleDetailResponse, error) {
	article, err := h.services.Articles.Get(c.Request().Context(), uuid.MustParse(req.ID), viewerFrom(c))
	if err != nil {
		return nil, err
	}
	return newArticleDetailResponse(article), nil
}

// Create serves POST /articles.
func (h *ArticleHandler) Create(c echo.Context, req *CreateArticleRequest) (*ArticleDetailResponse, error) {
	article, err := h.services.Articles.Create(c.Request().Context(), viewerFrom(c), middleware.GetUserRole(c), service.CreateArticleInput{
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Status:   req.Status,
		TagIDs:   parseUUIDs(req.TagIDs),
		TagNames: tagNames(req.Tags),
	})
	if err != nil {
		return nil, err
	}
	return newArticleDetailResponse(article), nil
}

// Update serves PUT /articles/:id.
func (h *ArticleHandler) Update(c echo.Context, req *UpdateArticleRequest) (*ArticleDetailResponse, error) {
	tagIDs := parseUUIDs(req.TagIDs)
	names := tagNames(req.Tags)

	article, err := h.services.Articles.Update(c.Request().Context(), uuid.MustParse(req.ID), viewerFrom(c), service.UpdateArticleInput{
		Title:    &req.Title,
		Summary:  &req.Summary,
		Content:  &req.Content,
		Status:   &req.Status,
		TagIDs:   &tagIDs,
		TagNames: &names,
	})
	if err != nil {
		return nil, err
	}
	return newArticleDetailResponse(article), nil
}

// Patch serves PATCH /articles/:id.
func (h *ArticleHandler) Patch(c echo.Context, req *PatchArticleRequest) (*ArticleDetailResponse, error) {
	in := service.UpdateArticleInput{
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
		Status:  req.Status,
	}
	if req.TagIDs != nil {
		ids := parseUUIDs(*req.TagIDs)
		in.TagIDs = &ids
	}
	if req.Tags != nil {
		names := tagNames(*req.Tags)
		in.TagNames = &names
	}

	article, err := h.services.Articles.Update(c.Request().Context(), uuid.MustParse(req.ID), viewerFrom(c), in)
	if err != nil {
		return nil, err
	}
	return newArticleDetailResponse(article), nil
}

// Delete serves DELETE /articles/:id.
func (h *ArticleHandler) Delete(c echo.Context, req *ArticleIDRequest) error {
	return h.services.Articles.Delete(c.Request().Context(), uuid.MustParse(req.ID), viewerFrom(c))
}

// Publish serves POST /articles/:id/publish.
func (h *ArticleHandler) Publish(c echo.Context, req *ArticleIDRequest) (*ArticleDetailResponse, error) {
	article, err := h.services.Articles.Publish(c.Request().Context(), uuid.MustParse(req.ID), viewerFrom(c))
	if err != nil {
		return nil, err
	}
	return newArticleDetailResponse(article), nil
}

// parseUUIDs converts validated uuid strings. Values reach this point only
// after the uuid validator tag passed.
func parseUUIDs(values []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		if id, err := uuid.Parse(v); err == nil {
			out = append(out, id)
		}
	}
	return out
}

func tagNames(tags []InlineTagRequest) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}
