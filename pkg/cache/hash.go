package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key builds a namespaced key, e.g. Key("avatar", url) = "avatar:<url>".
// Keys are hashed before they touch the filesystem, so any string is safe.
func Key(namespace string, parts ...string) string {
	return namespace + ":" + strings.Join(parts, "\x00")
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
