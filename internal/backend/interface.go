package backend

import (
	"context"

	"expenses/internal/ports"
	"expenses/internal/storage"
)

// Backend is the authoritative store: every load reads from it.
type Backend interface {
	ports.ExpenseLoader
	ports.ExpenseWriter
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance, the mirrors to keep in
// step with it, and an optional cleanup function
type BackendResult struct {
	Backend Backend
	Mirrors []ports.Mirror
	Cleanup CleanupFunc
}

// Store assembles the persistence facade from the result.
func (r *BackendResult) Store() *storage.Store {
	return storage.NewStore(r.Backend, r.Mirrors...)
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	DocumentPath string
	DBPath       string
	CSVPath      string

	// MirrorOnWrite keeps the other representations updated on every
	// append.
	MirrorOnWrite bool

	// Memory backend specific
	SeedFile string
}

// BackendType represents the type of backend
type BackendType string

const (
	JSONBackend   BackendType = "json"
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case JSONBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
