package cachegen

import "time"

const (
	defaultTTL = 10 * time.Minute

	// NoExpiry passed as ttl to ProviderStore.Set stores the entry without
	// expiry. Zero selects the store's default TTL instead.
	NoExpiry time.Duration = -1
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
