// Package store persists named template sources.
package store

import (
	"errors"
	"time"
)

// Store persists template sources by name.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores source under name. Saving an existing name replaces the
	// source, keeps the ID and increments the version.
	Save(name, source string) error

	// Load retrieves a template.
	// Returns ErrNotFound if no template is stored under name.
	Load(name string) (Entry, error)

	// List returns metadata for all stored templates, ordered by name.
	// Returns an empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes a template.
	// Returns nil if the template doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is a stored template.
type Entry struct {
	ID        string
	Name      string
	Source    string
	Version   int
	UpdatedAt time.Time
}

// Info provides metadata without loading the source.
type Info struct {
	ID        string
	Name      string
	Version   int
	UpdatedAt time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a template doesn't exist.
	ErrNotFound = errors.New("template not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("template store closed")
)
