// Package sqlite implements the SQLite storage backend for the address book.
// JSONL files in the data directory are the source of truth; SQLite is the
// query engine, rebuilt from them on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Backend implements types.Storage using SQLite and JSONL files.
type Backend struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	logger   *slog.Logger

	// ids maps contact names to the contact_id they were persisted under,
	// so IDs stay stable across saves.
	ids map[string]string
}

var _ types.Storage = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance. A nil logger discards
// log output. The backend is not attached; call Attach with a Config to
// initialize.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{
		logger: logger,
		ids:    make(map[string]string),
	}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, builds a fresh SQLite schema, and
// loads the JSONL files into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a disposable cache of the JSONL files.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}

	contacts, phones, err := loadAllJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	ids, err := queryContactIDs(db)
	if err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.ids = ids
	b.attached = true

	b.logger.Debug("storage attached",
		slog.String("data_dir", dataDir),
		slog.Int("contacts", contacts),
		slog.Int("phones", phones),
	)
	return nil
}

// Detach releases all resources held by the backend.
// After Detach, Load and Save return ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.ids = make(map[string]string)
	return nil
}

// queryContactIDs returns the name to contact_id mapping of the loaded
// contacts.
func queryContactIDs(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT contact_id, name FROM contacts`)
	if err != nil {
		return nil, fmt.Errorf("querying contact ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning contact id: %w", err)
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

// generateUUID generates a new UUID v7 for contact IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
