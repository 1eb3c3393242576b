// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any of the code below reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix GEOUSER_.

	Keys are normalized (lowercased, prefix removed) and a double underscore
	marks nesting, so single underscores can stay inside key names:

	  GEOUSER_SERVER__PORT          -> server.port
	  GEOUSER_WEATHER__API_KEY      -> weather.api_key
	  GEOUSER_SERVER__CORS_ALLOWED_ORIGINS=https://a.app,https://b.app
	                                -> server.cors_allowed_origins (split on ",")
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "GEOUSER_"

// Store drivers understood by the repository layer.
const (
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Database      DatabaseConfig       `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis"`
	Weather       WeatherConfig        `koanf:"weather" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`

	// CompanyName is interpolated into the greeting served on "/".
	CompanyName string `koanf:"company_name" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the per-client request rate (requests/second) enforced by
	// the rate limiter middleware. Zero disables it.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// StoreConfig selects the document store backing the users collection.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=redis postgres memory"`

	// UsersKey is the name of the users collection (Redis hash key).
	UsersKey string `koanf:"users_key" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// Only required when Store.Driver is "postgres".
type DatabaseConfig struct {
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// WeatherConfig configures the OpenWeatherMap current-weather client used
// to enrich zip codes.
type WeatherConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	APIKey  string `koanf:"api_key" validate:"required"`

	// Country is appended to every zip lookup ("10001,us").
	Country string `koanf:"country" validate:"required"`

	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// RateLimit caps outbound lookups per second. Zero disables it.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DefaultConfig returns a Config holding every default value. Env vars are
// unmarshalled on top of it, so only the keys present in the environment
// override anything.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env:         "development",
			CompanyName: "RentRedi",
		},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
		},
		Store: StoreConfig{
			Driver:   StoreDriverRedis,
			UsersKey: "users",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org",
			Country: "us",
			Timeout: 10 * time.Second,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey converts GEOUSER_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// LoadConfig loads configuration from environment variables, unmarshals it
// on top of DefaultConfig, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix GEOUSER_
//   - Unmarshals into Config (durations parse "10s", lists split on ",")
//   - Validates struct tags, then driver specific requirements
//   - Sets default observability if missing and validates it
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := DefaultConfig()
	if err := k.UnmarshalWithConf("", mainConfig, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			WeaklyTypedInput: true,
			Result:           mainConfig,
		},
	}); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.validateStore(); err != nil {
		return nil, err
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces are labelled consistently.
	mainConfig.Observability.ServiceName = "geouser"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// validateStore checks the connection block of the selected driver.
func (c *Config) validateStore() error {
	switch c.Store.Driver {
	case StoreDriverRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address is required for store driver %q", c.Store.Driver)
		}
	case StoreDriverPostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("database.host, database.user and database.name are required for store driver %q", c.Store.Driver)
		}
	}
	return nil
}
