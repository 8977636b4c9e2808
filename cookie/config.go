package cookie

import "time"

// Config holds the default attributes applied whenever the cookie value is
// established.
type Config struct {
	// Name is the cookie carrying the session id.
	Name string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// Domain and Path scope the cookie; empty values are omitted.
	Domain string `env:"SESSION_COOKIE_DOMAIN"`
	Path   string `env:"SESSION_COOKIE_PATH"`

	// Secure restricts the cookie to HTTPS (recommended for production).
	Secure bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	// HTTPOnly hides the cookie from client-side scripts.
	HTTPOnly bool `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"false"`

	// ExpiresIn sets a default lifetime; 0 leaves the cookie without an
	// Expires attribute (a browser session cookie).
	ExpiresIn time.Duration `env:"SESSION_COOKIE_EXPIRES_IN" envDefault:"0"`
}

// DefaultConfig returns the default cookie configuration.
func DefaultConfig() Config {
	return Config{
		Name: "sid",
	}
}

// Merge returns a copy of c with every non-zero field of o applied on top.
func (c Config) Merge(o Config) Config {
	if o.Name != "" {
		c.Name = o.Name
	}
	if o.Domain != "" {
		c.Domain = o.Domain
	}
	if o.Path != "" {
		c.Path = o.Path
	}
	if o.Secure {
		c.Secure = true
	}
	if o.HTTPOnly {
		c.HTTPOnly = true
	}
	if o.ExpiresIn != 0 {
		c.ExpiresIn = o.ExpiresIn
	}
	return c
}
