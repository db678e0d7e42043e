package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local implements Store on the local file system. An empty root uses
// names as given (absolute or relative to the working directory).
type Local struct {
	root string
}

// NewLocal creates a Local store rooted at root.
func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (s *Local) path(name string) string {
	if s.root == "" {
		return name
	}
	return filepath.Join(s.root, name)
}

// Open opens a file for reading.
func (s *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("blobstore: open %s: %w", s.path(name), err)
	}
	return f, nil
}

// Create creates or truncates a file for writing, creating parent
// directories as needed.
func (s *Local) Create(_ context.Context, name string) (io.WriteCloser, error) {
	path := s.path(name)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("blobstore: mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("blobstore: create %s: %w", path, err)
	}
	return f, nil
}
