// Package sqlite provides the public API for the SQLite address book backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/addressbook/internal/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// NewBackend creates a new SQLite backend instance that logs to logger (nil
// discards). The backend is not attached; call Attach with a Config to
// initialize.
//
// Example:
//
//	backend := sqlite.NewBackend(nil)
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: dataDir,
//	})
//	defer backend.Detach()
//	book, err := backend.Load()
func NewBackend(logger *slog.Logger) types.Storage {
	return sqlite.NewBackend(logger)
}
