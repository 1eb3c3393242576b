package database

import (
	"context"
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/geouser/internal/config"
	loggerConfig "github.com/deppfellow/geouser/internal/logger"
)

// RedisPingTimeout is how long startup waits for the first PING.
const RedisPingTimeout = 5 * time.Second

// NewRedis creates the Redis client and pings it.
//
// Redis is the users store when the redis driver is selected, so an
// unreachable server fails startup.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}

	logger.Info().Str("address", cfg.Address).Int("db", cfg.DB).Msg("connected to redis")

	return client, nil
}
