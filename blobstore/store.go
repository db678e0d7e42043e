// Package blobstore abstracts where the pipeline's flat files live:
// ontologies and compound lists are read as sequential streams, reports
// are written the same way.
//
// # Built-in Implementations
//
//   - Local: local filesystem
//   - Memory: in-memory store for tests
//   - s3.Store: Amazon S3 (aws-sdk-go-v2)
//   - minio.Store: MinIO and S3-compatible endpoints
//
// Implementations must be safe for concurrent use.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// Store provides sequential read and write access to named blobs.
type Store interface {
	// Open opens a blob for reading. The caller closes the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Create creates or replaces a blob for writing. The blob content
	// is complete once the returned writer has been closed without
	// error.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}
