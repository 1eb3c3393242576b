package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/geouser/internal/lib/weather"
	"github.com/deppfellow/geouser/internal/model"
	"github.com/deppfellow/geouser/internal/repository"
)

// Enricher resolves a zip code to its location.
type Enricher interface {
	Enrich(ctx context.Context, zip string) (*weather.Location, error)
}

// UserService implements fetch-enrich-persist over the user repository:
// every write that carries a zip is enriched first and persisted only when
// enrichment succeeded.
type UserService struct {
	repo     repository.UserRepository
	enricher Enricher
	logger   *zerolog.Logger

	// slowThreshold flags store calls slower than it; zero disables.
	slowThreshold time.Duration
}

func NewUserService(repo repository.UserRepository, enricher Enricher, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		enricher: enricher,
		logger:   logger,
	}
}

// observe warns about a store call that took longer than slowThreshold.
func (s *UserService) observe(op string, start time.Time) {
	if s.slowThreshold <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > s.slowThreshold {
		s.logger.Warn().
			Str("operation", op).
			Dur("duration", elapsed).
			Dur("threshold", s.slowThreshold).
			Msg("slow store call")
	}
}

func (s *UserService) enrich(ctx context.Context, zip string) (*model.GeoFields, error) {
	loc, err := s.enricher.Enrich(ctx, zip)
	if err != nil {
		return nil, fmt.Errorf("failed to enrich zip %s: %w", zip, err)
	}

	return &model.GeoFields{
		Zip:       zip,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Timezone:  loc.Timezone,
	}, nil
}

// Create enriches zip and stores a new user. Nothing is stored when
// enrichment fails.
func (s *UserService) Create(ctx context.Context, name, zip string) (*model.User, error) {
	zip = strings.TrimSpace(zip)

	geo, err := s.enrich(ctx, zip)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:      name,
		Zip:       geo.Zip,
		Latitude:  geo.Latitude,
		Longitude: geo.Longitude,
		Timezone:  geo.Timezone,
	}

	start := time.Now()
	err = s.repo.Create(ctx, user)
	s.observe("create", start)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("zip", user.Zip).
		Str("timezone", user.Timezone).
		Msg("user created")

	return user, nil
}

// Get returns the user with id or repository.ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	defer s.observe("get", time.Now())
	return s.repo.GetByID(ctx, id)
}

// List returns every user keyed by id, nil when there are none.
func (s *UserService) List(ctx context.Context) (map[string]model.User, error) {
	start := time.Now()
	users, err := s.repo.List(ctx)
	s.observe("list", start)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users, nil
}

// Update patches the supplied fields of user id.
//
// A nil or blank field is left untouched. A non-empty zip is enriched before
// anything is written, and the zip with its derived fields is applied as
// one unit; when enrichment fails the stored record is unchanged. With
// neither field supplied the call only checks that the user exists.
func (s *UserService) Update(ctx context.Context, id string, name, zip *string) error {
	var patch model.UserPatch

	if name != nil && strings.TrimSpace(*name) != "" {
		patch.Name = name
	}

	if zip != nil && strings.TrimSpace(*zip) != "" {
		// Fail fast on unknown ids before spending a provider call.
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}

		geo, err := s.enrich(ctx, strings.TrimSpace(*zip))
		if err != nil {
			return err
		}
		patch.Geo = geo
	}

	start := time.Now()
	err := s.repo.Update(ctx, id, patch)
	s.observe("update", start)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", id).
		Bool("name_changed", patch.Name != nil).
		Bool("zip_changed", patch.Geo != nil).
		Msg("user updated")

	return nil
}

// Delete removes user id. Unknown ids are not an error.
func (s *UserService) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.repo.Delete(ctx, id)
	s.observe("delete", start)
	if err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
