package store

import "context"

// Vars holds the key-value data of one session. Values must survive a JSON
// round trip (nested maps, slices, numbers, strings, booleans, nil).
type Vars map[string]any

// Clone returns an independent shallow copy of the top-level map.
func (v Vars) Clone() Vars {
	if v == nil {
		return nil
	}
	out := make(Vars, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Store defines the contract every session backend must implement.
//
// A backend tracks, per session id, the creation time, the last-access time
// and the serialized vars. Records whose last-access time is older than the
// backend's timeout are expired and indistinguishable from records that
// never existed.
type Store interface {
	// Save persists vars under id. Saving empty vars deletes the record
	// instead of storing it. Save must handle both the create and the
	// update case and refreshes the last-access time on every call.
	Save(ctx context.Context, id string, vars Vars) error

	// Load returns the vars stored under id. If no record exists, or the
	// record's last-access time is past the timeout, it returns ErrTimedOut.
	Load(ctx context.Context, id string) (Vars, error)

	// GC deletes every record whose last-access time exceeds the timeout.
	GC(ctx context.Context) error
}
