// Package testsupport provides shared helpers for storage-backed tests.
package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared in-memory SQLite database suitable for
// exercising the bun dataset adapter without touching disk.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}
