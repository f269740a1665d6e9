package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"encore.app/proxy/model"
)

// Default configuration values.
const (
	defaultRoutesFile     = "conf.json"
	defaultKeyHeader      = "Idempotency-Key"
	defaultBackendTimeout = 30 * time.Second
	defaultNamespace      = "default"
	defaultTaskQueue      = "proxy-cache"
)

var validate = validator.New()

// Config is the process configuration, built once at startup and passed to
// the components that need it.
type Config struct {
	RoutesFile     string        `validate:"required"`
	KeyHeader      string        `validate:"required"`
	BackendTimeout time.Duration `validate:"gt=0"`

	// Temporal is disabled when HostPort is empty.
	Temporal TemporalConfig

	Routes model.RouteTable `validate:"required,min=1,dive"`
}

// TemporalConfig locates the temporal frontend used for deferred record writes.
type TemporalConfig struct {
	HostPort  string
	Namespace string
	TaskQueue string `validate:"required_with=HostPort"`
}

// Enabled reports whether a temporal host is configured.
func (c TemporalConfig) Enabled() bool {
	return c.HostPort != ""
}

// Load reads the environment, then the route table file it points at.
func Load() (*Config, error) {
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("open routes file: %w", err)
	}
	defer f.Close()

	routes, err := ParseRoutes(f)
	if err != nil {
		return nil, fmt.Errorf("parse routes file %s: %w", cfg.RoutesFile, err)
	}
	cfg.Routes = routes

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config without routes from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		RoutesFile:     envOr(getenv, "PROXY_ROUTES_FILE", defaultRoutesFile),
		KeyHeader:      envOr(getenv, "PROXY_KEY_HEADER", defaultKeyHeader),
		BackendTimeout: defaultBackendTimeout,
		Temporal: TemporalConfig{
			HostPort:  envOr(getenv, "TEMPORAL_HOST_PORT", ""),
			Namespace: envOr(getenv, "TEMPORAL_NAMESPACE", defaultNamespace),
			TaskQueue: envOr(getenv, "PROXY_TASK_QUEUE", defaultTaskQueue),
		},
	}

	if raw := envOr(getenv, "PROXY_BACKEND_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PROXY_BACKEND_TIMEOUT %q: %w", raw, err)
		}
		cfg.BackendTimeout = d
	}

	return cfg, nil
}

// Validate checks the configuration, including every route.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
