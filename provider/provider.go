// Package provider defines the byte stores a preset store persists
// snapshots in.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation).
//
// Important: the keyspace "preset:<ns>:" is owned by the preset store.
// External code MUST NOT write values under this prefix. Foreign writes fail
// frame validation and are deleted on the next Load.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL (<= 0 means no expiry where the
	// store supports it). May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Lister is implemented by providers that can enumerate their keys.
type Lister interface {
	// Keys returns every live key starting with prefix, in no particular
	// order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
