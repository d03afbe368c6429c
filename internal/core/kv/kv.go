package kv

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is a raw KV entry with metadata.
type Entry struct {
	Key       string
	Value     json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KV is the interface for the app's persistent key-value store. Keys are
// strings, values are JSON-serializable. All operations are synchronous; the
// backing store is local and in-process. Get on a missing key returns an error
// wrapping sql.ErrNoRows.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	GetRaw(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}
