package blobstore

import (
	"context"
	"io"

	"scribe/internal/models"
)

// Store is the blob storage boundary used to hand media to the
// transcription service, which reads uploaded objects directly by URI.
type Store interface {
	// EnsureBucket creates the target bucket if absent. Creation racing
	// with a prior create is treated as success.
	EnsureBucket(ctx context.Context) error

	// Upload writes an object under key, replacing any existing object
	// under the same key.
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (models.BlobObject, error)

	// Exists reports whether an object is present under key.
	Exists(ctx context.Context, key string) (bool, error)

	// URI returns the storage URI for key.
	URI(key string) string
}
