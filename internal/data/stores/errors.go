package stores

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sharo-jef/checklist-sub001/internal/data/db"
)

// IsNotFoundError returns true if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsCorruptionError returns true if the error indicates database corruption.
func IsCorruptionError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CORRUPT ||
			code == sqlite3.SQLITE_NOTADB ||
			code == sqlite3.SQLITE_CANTOPEN
	}

	errStr := err.Error()
	return strings.Contains(errStr, "database disk image is malformed") ||
		strings.Contains(errStr, "file is not a database")
}

// RecoverFromCorruption moves a corrupted database file (plus its WAL and SHM
// sidecars) out of the way so the next Open starts fresh. Checklist state is
// reconstructible by the operator, so starting over beats refusing to start.
func RecoverFromCorruption(dataDir string) error {
	dbPath := filepath.Join(dataDir, db.DBFileName)

	timestamp := time.Now().Format("20060102-150405")
	backupPath := filepath.Join(dataDir, fmt.Sprintf("%s.corrupt.%s", db.DBFileName, timestamp))

	if err := os.Rename(dbPath, backupPath); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("backup corrupted database: %w", err)
		}
	}

	// Orphaned WAL/SHM files would be matched against the new database and
	// rejected, so they move or go.
	for _, suffix := range []string{"-wal", "-shm"} {
		sidecar := dbPath + suffix
		if _, err := os.Stat(sidecar); err != nil {
			continue
		}
		if err := os.Rename(sidecar, backupPath+suffix); err != nil {
			if delErr := os.Remove(sidecar); delErr != nil {
				return fmt.Errorf("backup or remove %s file: %w", suffix, err)
			}
		}
	}

	return nil
}
