package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/amishk599/jobwatch/internal/model"
)

// SQLiteStore persists seen listing IDs in a SQLite database, keyed by scope
// so one database file can back several watchers.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the seen_listings table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS seen_listings (
		scope      TEXT NOT NULL,
		listing_id TEXT NOT NULL,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (scope, listing_id)
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating seen_listings table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// LoadSeen returns the set of listing IDs recorded for the given scope.
func (s *SQLiteStore) LoadSeen(scope string) (model.SeenSet, error) {
	rows, err := s.db.Query("SELECT listing_id FROM seen_listings WHERE scope = ?", scope)
	if err != nil {
		return nil, &model.StoreError{Op: "load", Err: err}
	}
	defer rows.Close()

	seen := make(model.SeenSet)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, &model.StoreError{Op: "load", Err: err}
		}
		seen.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StoreError{Op: "load", Err: err}
	}

	return seen, nil
}

// SaveSeen records every ID in seen for the given scope. IDs already present
// keep their original first_seen timestamp; IDs are never removed.
func (s *SQLiteStore) SaveSeen(scope string, seen model.SeenSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &model.StoreError{Op: "save", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO seen_listings (scope, listing_id) VALUES (?, ?)")
	if err != nil {
		return &model.StoreError{Op: "save", Err: err}
	}
	defer stmt.Close()

	for id := range seen {
		if _, err := stmt.Exec(scope, id); err != nil {
			return &model.StoreError{Op: "save", Err: fmt.Errorf("inserting %s: %w", id, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &model.StoreError{Op: "save", Err: err}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
