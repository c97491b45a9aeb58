// Package cacheprovider is the generic key/value cache used for patient and
// access-block entries. Values are stored as JSON.
package cacheprovider

import (
	"context"
	"fmt"
	"time"
)

// Provider is implemented by the Redis and in-memory caches.
type Provider interface {
	// GetItem decodes the value at key into dest. It reports false on a miss.
	GetItem(ctx context.Context, key string, dest any) (bool, error)
	AddItem(ctx context.Context, key string, value any, ttl time.Duration) error
	RemoveItem(ctx context.Context, key string) error
}

// BlockedAccessDomain prefixes blocked data source keys.
const BlockedAccessDomain = "BlockedAccess"

// BlockedAccessKey is the cache key holding the blocked data sources for hdid.
// Format: BlockedAccess:{hdid}
func BlockedAccessKey(hdid string) string {
	return fmt.Sprintf("%s:%s", BlockedAccessDomain, hdid)
}
