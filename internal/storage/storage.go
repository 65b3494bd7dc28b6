// Package storage abstracts the object store holding uploaded attachments.
package storage

import (
	"context"
	"io"
)

// Store persists attachment payloads under opaque keys
type Store interface {
	// Put uploads the object and returns the URL clients can fetch it from
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	// Remove deletes the object. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
