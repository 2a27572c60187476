package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/repository"
	"github.com/pressroomhq/pressroom/internal/server"
)

// TagService manages the tag vocabulary.
type TagService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewTagService constructs a TagService.
func NewTagService(s *server.Server, repos *repository.Repositories) *TagService {
	return &TagService{
		server: s,
		repos:  repos,
	}
}

// List returns all tags.
func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.repos.Tags.List(ctx)
}

// Create adds a tag with a server-derived slug. Duplicate names surface
// as a unique violation handled by the global error funnel.
func (s *TagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{
		ID:   uuid.New(),
		Name: name,
		Slug: slugify(name),
	}

	if err := s.repos.Tags.Create(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// slugify lowercases the name and collapses runs of non-alphanumeric
// characters into single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
