// Package metadata stores small key/value records in the local database.
// The session token and its bookkeeping live here.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store. Get returns
// common.ErrorNotFound (wrapped) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
