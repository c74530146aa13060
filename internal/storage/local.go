package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore is a disk-backed Store rooted at a single directory. Paths are
// flattened to their base name so a crafted path cannot escape the root.
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if needed and returns a store.
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) resolve(path string) string {
	return filepath.Join(s.root, filepath.Base(strings.TrimSpace(path)))
}

// Save writes the blob, rejecting anything over MaxResumeSize.
func (s *LocalStore) Save(path string, r io.Reader) (string, error) {
	dst := s.resolve(path)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer f.Close()

	// Copy one byte past the cap so oversized uploads are detected.
	n, err := io.Copy(f, io.LimitReader(r, MaxResumeSize+1))
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if n > MaxResumeSize {
		os.Remove(dst)
		return "", &ErrTooLarge{Limit: MaxResumeSize}
	}

	return filepath.Base(dst), nil
}

// Open returns a reader for the blob at path.
func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(s.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// Delete removes the blob at path. A missing blob is not an error.
func (s *LocalStore) Delete(path string) error {
	err := os.Remove(s.resolve(path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
