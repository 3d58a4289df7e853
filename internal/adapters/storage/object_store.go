package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore is the outbound contract to the document object store.
// Implementations must map a missing object to domain.ErrObjectNotFound
// and any transport failure to domain.ErrStorageUnreachable so callers
// can react without knowing the driver.
type ObjectStore interface {
	// Head checks that the object exists
	Head(ctx context.Context, key string) error

	// SignedURL returns a time-limited GET URL for the object.
	// No permanent credential is ever embedded in the result.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Get opens the object for streaming
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}
