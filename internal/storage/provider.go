// Package storage defines the file-system abstraction used to import and
// export recipe files.
package storage

import "github.com/starford/recipebox/internal/models"

// Provider is the interface for recipe file operations.
type Provider interface {
	// List returns metadata for every recipe file under dir (relative to root).
	List(dir string) ([]models.FileMetadata, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
}

// Verify *FS satisfies Provider at compile time.
var _ Provider = (*FS)(nil)
