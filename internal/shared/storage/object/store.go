package object

import (
	"context"
	"io"
	"time"
)

// ObjectStore defines the contract for storing and retrieving binary objects.
// Keys are chosen by the caller; implementations never derive them from user
// input.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (url string, err error)
}
