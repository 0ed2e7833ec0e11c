// Package prefstore defines the durable key-value boundary used to persist
// language routing preferences across process restarts. The pipeline only
// depends on the [Store] interface; concrete stores (in-memory, Postgres)
// are interchangeable collaborators.
package prefstore

import "context"

// Store is a generic string key-value store. Implementations must be safe
// for concurrent use.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent;
	// absence is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
}
