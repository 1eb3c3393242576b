package handler

import (
	"github.com/deppfellow/geouser/internal/server"
	"github.com/deppfellow/geouser/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Root    *RootHandler
	User    *UserHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:    NewRootHandler(s),
		User:    NewUserHandler(s, services.User),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
