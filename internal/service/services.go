package service

import (
	"github.com/pkg/errors"

	"github.com/pressroomhq/pressroom/internal/errs"
	"github.com/pressroomhq/pressroom/internal/filter"
	"github.com/pressroomhq/pressroom/internal/lib/job"
	"github.com/pressroomhq/pressroom/internal/repository"
	"github.com/pressroomhq/pressroom/internal/server"
)

// Services is the container for all business-logic services.
type Services struct {
	Auth     *AuthService
	Articles *ArticleService
	Trials   *TrialService
	Tags     *TagService
	Job      *job.JobService
}

// NewService constructs the service container from the application
// container and the repositories.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s, repos)

	return &Services{
		Auth:     authService,
		Articles: NewArticleService(s, repos, authService),
		Trials:   NewTrialService(s, repos),
		Tags:     NewTagService(s, repos),
		Job:      s.Job,
	}, nil
}

// convertFilterError turns an invalid filter value into a 400 naming the
// offending query parameter. Other errors pass through untouched.
func convertFilterError(err error) error {
	var filterErr *filter.InvalidFilterError
	if errors.As(err, &filterErr) {
		code := "INVALID_FILTER"
		fieldErrors := []errs.FieldError{{
			Field: filterErr.Param,
			Error: filterErr.Message,
		}}
		return errs.NewBadRequestError("Invalid filter value", true, &code, fieldErrors, nil)
	}
	return err
}
