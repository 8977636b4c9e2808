package sesskit

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sesskit/sesskit/cookie"
)

// Config holds session configuration.
type Config struct {
	// Timeout is the idle TTL after which a session record expires.
	Timeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"24h"`

	// StoreType selects a registered store factory by name.
	StoreType string `env:"SESSION_STORE_TYPE" envDefault:"sqlite"`

	// Cookie configures the session cookie's name and default attributes.
	Cookie cookie.Config
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:   24 * time.Hour,
		StoreType: "sqlite",
		Cookie:    cookie.DefaultConfig(),
	}
}

// Merge returns a copy of c with every non-zero field of o applied on top.
// The cookie subconfig merges recursively with the same precedence.
func (c Config) Merge(o Config) Config {
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.StoreType != "" {
		c.StoreType = o.StoreType
	}
	c.Cookie = c.Cookie.Merge(o.Cookie)
	return c
}

var dotenvOnce sync.Once

// LoadConfig builds a Config from environment variables, loading a .env
// file once per process if one exists.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		// Missing .env files are fine.
		_ = godotenv.Load()
	})

	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(errors.New("session: parse config from environment"), err)
	}
	return cfg, nil
}
