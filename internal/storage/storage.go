// Package storage provides object storage for uploaded resumes, keyed by path.
package storage

import (
	"fmt"
	"io"
)

// MaxResumeSize caps resume uploads at 5 MB.
const MaxResumeSize = 5 * 1024 * 1024

// allowedExtensions are the accepted resume file types.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// AllowedExtension reports whether ext (including the dot) is an accepted
// resume file type.
func AllowedExtension(ext string) bool {
	return allowedExtensions[ext]
}

// Store is the object storage contract: save, open and delete blobs by path.
type Store interface {
	// Save writes the blob and returns the storage path it landed at.
	Save(path string, r io.Reader) (string, error)
	// Open returns a reader for the blob at path.
	Open(path string) (io.ReadCloser, error)
	// Delete removes the blob at path. Deleting a missing blob is not an error.
	Delete(path string) error
}

// ErrTooLarge indicates an upload exceeded MaxResumeSize.
type ErrTooLarge struct {
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("file exceeds the %d byte limit", e.Limit)
}
