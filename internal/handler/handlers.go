package handler

import (
	"github.com/pressroomhq/pressroom/internal/server"
	"github.com/pressroomhq/pressroom/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health   *HealthHandler
	Docs     *DocsHandler
	Articles *ArticleHandler
	Trials   *TrialHandler
	Tags     *TagHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Docs:     NewDocsHandler(s),
		Articles: NewArticleHandler(s, services),
		Trials:   NewTrialHandler(s, services),
		Tags:     NewTagHandler(s, services),
	}
}
