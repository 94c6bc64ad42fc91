package models

import "context"

// * This interface defines the durable key-value storage needed by the session.
// * Writes are synchronous and idempotent per key; values survive restarts.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
