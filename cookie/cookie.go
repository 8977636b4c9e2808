package cookie

import (
	"net/http"
	"time"
)

// neverExpire is the far-future instant used as the "never expire" sentinel.
var neverExpire = time.Unix(1<<31-1, 0).UTC()

// Cookie models the single named session cookie for one request/response
// cycle: the value carried in, the attributes to send back out, and whether
// any attribute changed since the value was established. It is never
// persisted.
type Cookie struct {
	config      Config
	value       string
	domain      string
	path        string
	secure      bool
	httpOnly    bool
	expires     time.Time
	attrChanged bool
}

// New parses the raw Cookie header and extracts the value of the configured
// cookie name, if present. An empty or malformed header yields a cookie
// without a value.
func New(header string, cfg Config) *Cookie {
	cfg = DefaultConfig().Merge(cfg)

	c := &Cookie{config: cfg}

	if header != "" {
		// Clients only echo name=value pairs; any attribute-looking pairs
		// in the header parse as unrelated cookies and are skipped.
		parsed, err := http.ParseCookie(header)
		if err == nil {
			for _, pc := range parsed {
				if pc.Name == cfg.Name {
					c.value = pc.Value
					break
				}
			}
		}
	}

	return c
}

// Name returns the configured cookie name.
func (c *Cookie) Name() string {
	return c.config.Name
}

// Value returns the session id or "" if the cookie carried none.
func (c *Cookie) Value() string {
	return c.value
}

// SetValue stores a new session id and applies the configured default
// attributes. Establishing the value with only defaults applied does not
// count as an attribute change.
func (c *Cookie) SetValue(value string) {
	c.value = value

	if c.config.Domain != "" {
		c.SetDomain(c.config.Domain)
	}
	if c.config.Path != "" {
		c.SetPath(c.config.Path)
	}
	if c.config.Secure {
		c.SetSecure(true)
	}
	if c.config.HTTPOnly {
		c.SetHTTPOnly(true)
	}
	if c.config.ExpiresIn != 0 {
		c.SetExpiresIn(c.config.ExpiresIn)
	}

	c.attrChanged = false
}

// AttrChanged reports whether any attribute setter ran since the value was
// last established. It gates whether an unchanged existing session still
// needs an outbound cookie.
func (c *Cookie) AttrChanged() bool {
	return c.attrChanged
}

// Domain returns the domain attribute.
func (c *Cookie) Domain() string { return c.domain }

// SetDomain sets the domain attribute.
func (c *Cookie) SetDomain(domain string) {
	c.attrChanged = true
	c.domain = domain
}

// Path returns the path attribute.
func (c *Cookie) Path() string { return c.path }

// SetPath sets the path attribute.
func (c *Cookie) SetPath(path string) {
	c.attrChanged = true
	c.path = path
}

// Secure returns the secure flag.
func (c *Cookie) Secure() bool { return c.secure }

// SetSecure sets the secure flag.
func (c *Cookie) SetSecure(secure bool) {
	c.attrChanged = true
	c.secure = secure
}

// HTTPOnly returns the httponly flag.
func (c *Cookie) HTTPOnly() bool { return c.httpOnly }

// SetHTTPOnly sets the httponly flag.
func (c *Cookie) SetHTTPOnly(httpOnly bool) {
	c.attrChanged = true
	c.httpOnly = httpOnly
}

// Expires returns the expiration instant, or the zero time if none is set.
func (c *Cookie) Expires() time.Time { return c.expires }

// SetExpires sets an explicit expiration instant. The zero time means
// "never expire" and resolves to a far-future instant.
func (c *Cookie) SetExpires(t time.Time) {
	c.attrChanged = true
	if t.IsZero() {
		t = neverExpire
	}
	c.expires = t.UTC()
}

// SetExpiresIn sets the expiration to a duration from now.
func (c *Cookie) SetExpiresIn(d time.Duration) {
	c.attrChanged = true
	c.expires = time.Now().Add(d).UTC()
}

// SetNeverExpires sets the far-future "never expire" sentinel.
func (c *Cookie) SetNeverExpires() {
	c.SetExpires(time.Time{})
}

// String serializes the cookie in Set-Cookie wire format without the header
// prefix; the transport layer prepends it.
func (c *Cookie) String() string {
	hc := http.Cookie{
		Name:     c.config.Name,
		Value:    c.value,
		Domain:   c.domain,
		Path:     c.path,
		Secure:   c.secure,
		HttpOnly: c.httpOnly,
		Expires:  c.expires,
	}
	return hc.String()
}
