package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey returns a stable key-safe identifier for a user ID. Storage
// keys embed it so object paths never expose raw user identifiers.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
