// Package s3 implements blobstore.Store on Amazon S3.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/chemont/blobstore"
)

// Client is the subset of the S3 API the store needs. Satisfied by
// *s3.Client; narrowed for testability.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	manager.UploadAPIClient
}

// Store implements blobstore.Store on an S3 bucket. Reads stream the
// object body; writes go through the s3 upload manager so large reports
// are uploaded in parallel parts.
type Store struct {
	client Client
	bucket string
	prefix string
}

// New creates a Store for the given bucket. rootPrefix is prepended to
// all keys (e.g. "assignments/").
func New(client Client, bucket, rootPrefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: rootPrefix}
}

// NewFromDefaultConfig creates a Store using the ambient AWS
// configuration (environment, shared config, instance role).
func NewFromDefaultConfig(ctx context.Context, bucket, rootPrefix string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}
	return New(s3.NewFromConfig(cfg), bucket, rootPrefix), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens an object for reading.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("s3: open %s: %w", s.key(name), blobstore.ErrNotFound)
		}
		return nil, fmt.Errorf("s3: open %s: %w", s.key(name), err)
	}
	return out.Body, nil
}

// Create returns a writer that streams into a multipart upload. The
// upload completes when the writer is closed; Close reports any upload
// error.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()

	w := &uploadWriter{pw: pw, done: make(chan struct{})}

	uploader := manager.NewUploader(s.client)
	go func() {
		defer close(w.done)
		_, err := uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key(name)),
			Body:   pr,
		})
		if err != nil {
			w.setErr(fmt.Errorf("s3: upload %s: %w", s.key(name), err))
			_ = pr.CloseWithError(err)
			return
		}
		_ = pr.Close()
	}()

	return w, nil
}

type uploadWriter struct {
	pw   *io.PipeWriter
	done chan struct{}

	mu  sync.Mutex
	err error
}

func (w *uploadWriter) setErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}

func (w *uploadWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *uploadWriter) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	<-w.done
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
