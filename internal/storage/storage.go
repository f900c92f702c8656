// Package storage provides the key-value stores the pet engine persists to.
package storage

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"pocketpet/internal/config"
	"pocketpet/internal/pet"
)

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store is a pet.Store that holds resources which must be released.
type Store interface {
	pet.Store
	io.Closer
}

// Open creates the store selected by cfg. An empty path falls back to a
// file in dir named after the backend.
func Open(cfg config.Storage, dir string) (Store, error) {
	path := cfg.Path
	switch cfg.Backend {
	case BackendMemory:
		log.Printf("Using in-memory storage; stats will not survive a restart")
		return NewMemoryStore(), nil
	case BackendFile, "":
		if path == "" {
			path = filepath.Join(dir, "pet.json")
		}
		return NewFileStore(path)
	case BackendSQLite:
		if path == "" {
			path = filepath.Join(dir, "pet.db")
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
