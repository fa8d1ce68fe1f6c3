package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyForSource derives a stable cache key from a source's bytes, so two
// identical tokenize requests share a cached result regardless of filename.
func KeyForSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
