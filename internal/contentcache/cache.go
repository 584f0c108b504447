// Package contentcache caches rendered page content between requests so
// repeat lookups skip the wiki API. Entries are opaque JSON blobs with a
// bounded lifetime; a read refreshes the entry's TTL.
package contentcache

import "context"

// Cache stores rendered content blobs by key.
type Cache interface {
	// Get returns the cached blob for key, reporting whether it was present
	// and still live. A hit refreshes the entry's TTL.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a blob under key, replacing any previous entry.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases any resources held by the cache.
	Close() error
}
