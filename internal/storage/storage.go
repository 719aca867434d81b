package storage

import (
	"context"
	"time"
)

// ObjectStore is the remote bucket the gateway writes to. Errors are returned as-is;
// callers decide how to wrap them.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error

	DeleteObject(ctx context.Context, key string) error

	PresignGetObject(ctx context.Context, key string, expiry time.Duration) (string, error)
}
