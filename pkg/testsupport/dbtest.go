package testsupport

import (
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared in-memory SQLite database. The shared
// cache keeps the schema alive across the pooled connections bun opens.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewBunSQLiteDB wraps a fresh in-memory SQLite database in a bun.DB limited
// to a single connection so DDL and queries observe the same state.
func NewBunSQLiteDB() (*bun.DB, error) {
	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		return nil, err
	}
	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	return bunDB, nil
}
