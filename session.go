package sesskit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sesskit/sesskit/cookie"
	"github.com/sesskit/sesskit/store"
)

// Session is the single source of truth for one request's session: whether
// it is new, which id it carries and what variables it holds. A Session is
// constructed, used and saved entirely within one request and discarded
// afterwards; it is not safe for concurrent use.
type Session struct {
	config       Config
	store        store.Store
	cookie       *cookie.Cookie
	vars         store.Vars
	isNew        bool
	cookieToSend string
}

// New builds a Session from the raw inbound Cookie header.
//
// With no session value in the header the session starts new. A value with
// an invalid format, or one whose record has timed out, is converted into a
// fresh session with the old cookie explicitly expired — the caller never
// sees an error for a lapsed client session. Configuration errors (unknown
// store type) and store I/O failures propagate.
func New(ctx context.Context, cookieHeader string, opts ...Option) (*Session, error) {
	o := sessionOptions{
		config:   DefaultConfig(),
		registry: DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	st := o.store
	if st == nil {
		var err error
		st, err = o.registry.Open(o.config.StoreType, o.config.Timeout)
		if err != nil {
			return nil, err
		}
	}

	s := &Session{
		config: o.config,
		store:  st,
		vars:   store.Vars{},
		isNew:  true,
	}
	s.cookie = cookie.New(cookieHeader, o.config.Cookie)

	// No id supplied: start new. No outbound cookie is pending yet; Save
	// stages it.
	if s.cookie.Value() == "" {
		s.renew()
		return s, nil
	}

	// Malformed id: never look it up, expire it on the client instead.
	if err := ValidateID(s.ID()); err != nil {
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.isNew = false
	vars, err := st.Load(ctx, s.ID())
	switch {
	case errors.Is(err, store.ErrTimedOut):
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		s.vars = vars
	}

	return s, nil
}

// ID returns the current session id.
func (s *Session) ID() string {
	return s.cookie.Value()
}

// IsNew reports whether this session was started by this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

// Cookie exposes the session cookie for explicit attribute edits.
func (s *Session) Cookie() *cookie.Cookie {
	return s.cookie
}

// renew initializes the session as a brand-new one with a fresh id. The
// pending outbound cookie, if any, is deliberately left untouched.
func (s *Session) renew() {
	s.isNew = true
	s.vars = store.Vars{}
	s.cookie = cookie.New("", s.config.Cookie)
	s.cookie.SetValue(GenerateID())
}

// Save persists the session. If the session is new, or any cookie attribute
// changed since the value was established, the current cookie is staged as
// the pending outbound cookie first. The store is called unconditionally so
// it can delete the record of an emptied session.
func (s *Session) Save(ctx context.Context) error {
	if s.isNew || s.cookie.AttrChanged() {
		s.cookieToSend = s.cookie.String()
	}
	return s.store.Save(ctx, s.ID(), s.vars)
}

// Clear empties the session and rotates its id. The outbound cookie now
// carries the old id with an expiration in the past, telling the client to
// forget it; a subsequent Save replaces it with the new id's cookie.
func (s *Session) Clear(ctx context.Context) error {
	s.cookie.SetExpires(time.Now().AddDate(-1, 0, 0))
	s.vars = store.Vars{}
	if err := s.Save(ctx); err != nil {
		return err
	}
	s.renew()
	return nil
}

// CookieToSend returns the pending serialized outbound cookie. ok is false
// when nothing new, changed, expired or cleared happened.
func (s *Session) CookieToSend() (string, bool) {
	if s.cookieToSend == "" {
		return "", false
	}
	return s.cookieToSend, true
}

// Get returns the value stored under key or ErrKeyNotFound.
func (s *Session) Get(key string) (any, error) {
	val, ok := s.vars[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return val, nil
}

// GetOr returns the value stored under key, or def if absent.
func (s *Session) GetOr(key string, def any) any {
	if val, ok := s.vars[key]; ok {
		return val
	}
	return def
}

// GetString returns a string value from the session.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.vars[key]
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt returns an int value from the session. JSON decoding turns numbers
// into float64, so those convert too.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.vars[key]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool returns a bool value from the session.
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.vars[key]
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores a value under key.
func (s *Session) Set(key string, value any) {
	s.vars[key] = value
}

// Delete removes the value under key or fails with ErrKeyNotFound.
func (s *Session) Delete(key string) error {
	if _, ok := s.vars[key]; !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	delete(s.vars, key)
	return nil
}

// Has reports whether key is present.
func (s *Session) Has(key string) bool {
	_, ok := s.vars[key]
	return ok
}

// Len returns the number of session variables.
func (s *Session) Len() int {
	return len(s.vars)
}

// Keys returns the variable names in map order.
func (s *Session) Keys() []string {
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	return keys
}

// Vars returns a copy of the session variables for enumeration. Mutating
// the copy does not affect the session.
func (s *Session) Vars() store.Vars {
	return s.vars.Clone()
}
