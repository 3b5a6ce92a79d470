package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key derives a fixed-length cache key from its parts
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(hash[:16])
}
