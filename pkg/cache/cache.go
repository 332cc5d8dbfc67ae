// Package cache stores fetched avatar bytes between runs.
//
// Avatars rarely change, and the wall is regenerated on every data update,
// so remote images are kept on disk for a configurable TTL. [FileCache] is
// the CLI implementation, [NullCache] disables caching, and [MemoryCache]
// backs the per-run memo.
//
// # Usage
//
//	c, err := cache.New(cache.Options{TTL: 7 * 24 * time.Hour})
//	defer c.Close()
//
//	key := cache.Key("avatar", url)
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data, nil
//	}
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Options configures [New].
type Options struct {
	Dir      string // defaults to DefaultDir()
	Disabled bool   // returns a NullCache
}

// New opens the cache described by opts.
func New(opts Options) (Cache, error) {
	if opts.Disabled {
		return NewNullCache(), nil
	}
	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return NewFileCache(dir)
}

// DefaultDir returns the per-user cache directory, e.g.
// ~/.cache/sponsorwall on Linux.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "sponsorwall"), nil
}
