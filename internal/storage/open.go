package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}

const sqliteFileName = "animtodo.db"

// Open returns the slot store for backend rooted at dataDir.
func Open(backend Backend, dataDir string) (Store, error) {
	switch Backend(strings.ToLower(string(backend))) {
	case BackendFile, "":
		return NewFileStore(dataDir)
	case BackendSQLite:
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(filepath.Join(dataDir, sqliteFileName))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
