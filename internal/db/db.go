package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryDSN names a private in-memory database. The session journal
// lives only as long as the process.
const MemoryDSN = ":memory:"

// OpenDB opens the session journal and runs migrations. Each connection
// to ":memory:" gets its own database, so the pool is pinned to one
// connection.
func OpenDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite", MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
