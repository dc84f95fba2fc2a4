// Package statestore provides pluggable backends for persisted navigation
// state. The navigation tree serializes node state to opaque byte blobs
// keyed by a restoration key; this package stores and retrieves those blobs.
package statestore

import "context"

// Store is the pluggable backend interface for persisted navigation state.
//
// Keys are strings (hierarchical paths supported via "/" separators), values
// are opaque binary blobs produced by the tree's state codec. All
// implementations must be safe for concurrent use: saves run on the tree's
// run loop while restoration can happen during host startup.
//
// Implementations:
//   - Memory: process-local map, for tests and ephemeral hosts
//   - SQLite: durable single-file store for on-device persistence
type Store interface {
	// Put stores a blob at the specified key, overwriting any existing value.
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves the blob for the specified key.
	// Returns errors.ErrKeyNotFound (wrapped) if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns all keys matching the prefix in lexicographic order.
	// An empty prefix lists all keys. Returns an empty slice when nothing
	// matches.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the blob at the specified key. Deleting a missing key
	// is a no-op (idempotent).
	Delete(ctx context.Context, key string) error
}
