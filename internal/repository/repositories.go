package repository

import (
	"fmt"

	"github.com/deppfellow/geouser/internal/config"
	"github.com/deppfellow/geouser/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users UserRepository
}

// NewRepositories constructs the repository container for the configured
// store driver, using the connections opened by server.New.
func NewRepositories(s *server.Server) (*Repositories, error) {
	var users UserRepository

	switch s.Config.Store.Driver {
	case config.StoreDriverRedis:
		if s.Redis == nil {
			return nil, fmt.Errorf("store driver %q requires a redis client", s.Config.Store.Driver)
		}
		users = NewRedisUserRepository(s.Redis, s.Config.Store.UsersKey)
	case config.StoreDriverPostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("store driver %q requires a database pool", s.Config.Store.Driver)
		}
		users = NewPostgresUserRepository(s.DB.Pool)
	case config.StoreDriverMemory:
		users = NewMemoryUserRepository()
	default:
		return nil, fmt.Errorf("unknown store driver %q", s.Config.Store.Driver)
	}

	return &Repositories{
		Users: users,
	}, nil
}
