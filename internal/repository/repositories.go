package repository

import (
	"github.com/pressroomhq/pressroom/internal/server"
)

// Repositories is a container for all repository instances, wired once
// from the application container and shared by the service layer.
type Repositories struct {
	Articles *ArticleRepository
	Tags     *TagRepository
	Trials   *TrialRepository
	Users    *UserRepository
}

// NewRepositories constructs the repository container from the shared
// database pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Articles: NewArticleRepository(s),
		Tags:     NewTagRepository(s),
		Trials:   NewTrialRepository(s),
		Users:    NewUserRepository(s),
	}
}

// Visibility describes who is reading in list queries. Staff see
// everything; other viewers are restricted to public rows plus their own.
type Visibility struct {
	ViewerID string
	Staff    bool
}
