package store

import "errors"

// ErrTimedOut indicates the session record is absent or expired.
// Load does not distinguish the two cases.
var ErrTimedOut = errors.New("session.timed_out")
