package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/server"
	"github.com/pressroomhq/pressroom/internal/service"
)

// TrialHandler serves the read-only trial endpoints.
type TrialHandler struct {
	Handler
	services *service.Services
}

// NewTrialHandler constructs a TrialHandler.
func NewTrialHandler(s *server.Server, services *service.Services) *TrialHandler {
	return &TrialHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// ListTrialsRequest has no bindable payload; filters come from the query
// string.
type ListTrialsRequest struct{}

func (r *ListTrialsRequest) Validate() error { return nil }

// TrialIDRequest binds the trial id path parameter.
type TrialIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *TrialIDRequest) Validate() error {
	return validate.Struct(r)
}

// TrialResponse is the list representation of a trial. Budget is a
// decimal serialized as a string to avoid float rounding.
type TrialResponse struct {
	ID                    string      `json:"id"`
	Title                 string      `json:"title"`
	Description           string      `json:"description"`
	Status                string      `json:"status"`
	Budget                string      `json:"budget"`
	IsPublic              bool        `json:"is_public"`
	PrincipalInvestigator UserSummary `json:"principal_investigator"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// TrialDetailResponse adds the participant aggregate.
type TrialDetailResponse struct {
	TrialResponse
	ParticipantsCount int `json:"participants_count"`
}

func newTrialResponse(t model.Trial) TrialResponse {
	return TrialResponse{
		ID:                    t.ID.String(),
		Title:                 t.Title,
		Description:           t.Description,
		Status:                t.Status,
		Budget:                t.Budget.StringFixed(2),
		IsPublic:              t.IsPublic,
		PrincipalInvestigator: newUserSummary(t.PI),
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

func newTrialResponses(trials []model.Trial) []TrialResponse {
	out := make([]TrialResponse, len(trials))
	for i, t := range trials {
		out[i] = newTrialResponse(t)
	}
	return out
}

// List serves GET /trials.
func (h *TrialHandler) List(c echo.Context, req *ListTrialsRequest) (*PaginatedResponse[TrialResponse], error) {
	trials, total, err := h.services.Trials.List(c.Request().Context(), c.QueryParams(), viewerFrom(c))
	if err != nil {
		return nil, err
	}
	return paginate(c, newTrialResponses(trials), total), nil
}

// Get serves GET /trials/:id.
func (h *TrialHandler) Get(c echo.Context, req *TrialIDRequest) (*TrialDetailResponse, error) {
	trial, err := h.services.Trials.Get(c.Request().Context(), uuid.MustParse(req.ID), viewerFrom(c))
	if err != nil {
		return nil, err
	}
	return &TrialDetailResponse{
		TrialResponse:     newTrialResponse(*trial),
		ParticipantsCount: trial.ParticipantsCount,
	}, nil
}
