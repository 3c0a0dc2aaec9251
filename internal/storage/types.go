package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by GetEntry for a missing key.
var ErrNotFound = errors.New("not found")

// KV is an opaque string key-value store. Get reports whether the key
// exists; Delete of a missing key is not an error.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry is a stored value with its last write time.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
