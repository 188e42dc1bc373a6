package models

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// IDLength is the length of an entity identity: 24 hex characters, the
// shape carried over from the legacy document store so existing clients
// keep working.
const IDLength = 24

// NewID generates a new 24-hex-character entity identity.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:IDLength/2])
}

// ValidID reports whether s has the required identity shape. Only length
// and charset are checked; nothing depends on the generating scheme.
func ValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
