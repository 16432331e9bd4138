package prefs

import (
	"context"
)

// Repository is an unscoped, process-local key/value store for small
// non-secret settings.
//
// Get returns common.ErrorNotFound when the key is absent. Set replaces the
// value with a single statement, so readers see either the old or the new
// value. Delete succeeds when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Move(ctx context.Context, from, to string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
