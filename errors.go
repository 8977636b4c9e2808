package sesskit

import "errors"

var (
	// ErrUnknownStore indicates the configured store type has no registered
	// factory. This is a configuration error and always propagates.
	ErrUnknownStore = errors.New("session.unknown_store_type")

	// ErrInvalidID indicates a session id with the wrong length or charset.
	ErrInvalidID = errors.New("session.invalid_id_format")

	// ErrKeyNotFound indicates a session variable that is not present.
	ErrKeyNotFound = errors.New("session.key_not_found")
)
