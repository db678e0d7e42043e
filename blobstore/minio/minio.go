// Package minio implements blobstore.Store for MinIO and other
// S3-compatible endpoints via the native MinIO SDK.
package minio

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/chemont/blobstore"
)

// Store implements blobstore.Store on a MinIO bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// New creates a MinIO store. rootPrefix is prepended to all keys.
func New(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: rootPrefix}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens an object for reading.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.key(name)

	// GetObject is lazy; stat first so a missing key surfaces here.
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NotFound" {
			return nil, fmt.Errorf("minio: open %s: %w", key, blobstore.ErrNotFound)
		}
		return nil, fmt.Errorf("minio: open %s: %w", key, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio: open %s: %w", key, err)
	}
	return obj, nil
}

// Create returns a writer that streams into a PutObject call. The
// object is complete when the writer is closed; Close reports any
// upload error.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	key := s.key(name)
	pr, pw := io.Pipe()

	w := &putWriter{pw: pw, done: make(chan struct{})}

	go func() {
		defer close(w.done)
		_, err := s.client.PutObject(ctx, s.bucket, key, pr, -1, minio.PutObjectOptions{})
		if err != nil {
			w.err = fmt.Errorf("minio: upload %s: %w", key, err)
			_ = pr.CloseWithError(err)
			return
		}
		_ = pr.Close()
	}()

	return w, nil
}

type putWriter struct {
	pw   *io.PipeWriter
	done chan struct{}
	err  error
}

func (w *putWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *putWriter) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	<-w.done
	return w.err
}
