package service

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/pressroomhq/pressroom/internal/errs"
	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/repository"
	"github.com/pressroomhq/pressroom/internal/server"
)

// TrialService serves the read-only trial endpoints.
type TrialService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewTrialService constructs a TrialService.
func NewTrialService(s *server.Server, repos *repository.Repositories) *TrialService {
	return &TrialService{
		server: s,
		repos:  repos,
	}
}

// List returns trials visible to the viewer: everything for staff, public
// trials plus their own for everyone else.
func (s *TrialService) List(ctx context.Context, q url.Values, viewer Viewer) ([]model.Trial, int, error) {
	trials, total, err := s.repos.Trials.List(ctx, q, repository.Visibility{
		ViewerID: viewer.ID,
		Staff:    viewer.Staff,
	})
	if err != nil {
		return nil, 0, convertFilterError(err)
	}
	return trials, total, nil
}

// Get returns one trial. Private trials are visible only to their
// principal investigator and staff; everyone else gets a 404.
func (s *TrialService) Get(ctx context.Context, id uuid.UUID, viewer Viewer) (*model.Trial, error) {
	trial, err := s.repos.Trials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewer.Staff && !trial.IsPublic && trial.PIID != viewer.ID {
		return nil, errs.NewNotFoundError("Trial not found", true, nil)
	}

	return trial, nil
}
