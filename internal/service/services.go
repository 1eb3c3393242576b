// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/geouser/internal/lib/weather"
	"github.com/deppfellow/geouser/internal/repository"
	"github.com/deppfellow/geouser/internal/server"
)

type Services struct {
	User *UserService
}

// NewServices wires the services over the repositories, enriching zips
// with the OpenWeatherMap client built from config.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	weatherClient := weather.NewClient(s.Config.Weather, s.Logger)

	userService := NewUserService(repos.Users, weatherClient, s.Logger)
	userService.slowThreshold = s.Config.Observability.Logging.SlowQueryThreshold

	return &Services{
		User: userService,
	}, nil
}
