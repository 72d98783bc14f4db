package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// KV is the minimal contract the document layer needs from a backend:
// whole-value get/put/delete by string key. Values are opaque text.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
