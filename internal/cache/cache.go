// Package cache provides the caching layers used by the evidence reader and
// the page collector: in-memory via go-cache, persistent on disk, or both.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key from its parts. Parts are joined before
// hashing so ("a", "bc") and ("ab", "c") produce distinct keys.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "pricelens:v1:" + hex.EncodeToString(hash[:])
}
