package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found is false on a miss, in which case dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}

// Keys shared between the services that read and invalidate them.
const (
	KeyWebsiteSettingsCurrent = "website_settings:current"
	KeyDashboardStats         = "dashboard:stats"
)
