package sesskit

import (
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Session ids are 128 random bits rendered as 32 lowercase hex characters.
var idPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// GenerateID returns a fresh random session id.
func GenerateID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// ValidateID checks the session id format: exactly 32 characters, each in
// [0-9a-f]. It is a pure format check and never consults a store. Uppercase
// hex is rejected.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
