// Package service defines the interfaces for all application services.
package service

import "context"

// KeyValueStore is the persistence collaborator behind the ledger.
// Values are opaque serialized blobs; the ledger owns their format.
type KeyValueStore interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
