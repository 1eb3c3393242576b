// Package server defines the Server container that composes the app's main
// dependencies and owns their lifecycle:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the connection backing the selected store driver (postgres or redis)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/geouser/internal/config"
	"github.com/deppfellow/geouser/internal/database"
	loggerPkg "github.com/deppfellow/geouser/internal/logger"
)

// Server is the application container holding shared resources.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB is set for the postgres store driver.
	DB *database.Database

	// Redis is set for the redis store driver.
	Redis *redis.Client

	httpServer *http.Server
}

// New opens the connection required by the configured store driver.
// The postgres driver also runs the embedded migrations.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		if err := database.Migrate(ctx, logger, cfg.Database); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		db, err := database.New(ctx, cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		server.DB = db

	case config.StoreDriverRedis:
		client, err := database.NewRedis(ctx, cfg.Redis, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		server.Redis = client

	case config.StoreDriverMemory:
		logger.Warn().Msg("using in-memory store, users are lost on restart")
	}

	return server, nil
}

// Ping checks the store connection in use. The memory driver has none.
func (s *Server) Ping(ctx context.Context) error {
	switch {
	case s.DB != nil:
		return s.DB.Ping(ctx)
	case s.Redis != nil:
		return s.Redis.Ping(ctx).Err()
	default:
		return nil
	}
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("store", s.Config.Store.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server, waiting for in-flight requests until ctx
// expires, then closes the store connection.
func (s *Server) Shutdown(ctx context.Context) error {
	var errList []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close redis connection: %w", err))
		}
	}

	return errors.Join(errList...)
}
