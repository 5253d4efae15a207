// Package metadata stores opaque values under string keys in the local
// database. The destination list lives in a single slot of this store.
package metadata

import (
	"context"
)

// Repository is a key/value slot store.
//
// Get returns (nil, nil) when the key is absent. Set replaces the whole value.
// Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
