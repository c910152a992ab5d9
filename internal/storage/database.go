package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS quotes (
			id INTEGER PRIMARY KEY,
			quote TEXT NOT NULL,
			author TEXT NOT NULL,
			era TEXT NOT NULL DEFAULT '',
			topic TEXT NOT NULL DEFAULT '',
			context TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			language TEXT NOT NULL DEFAULT 'English',
			interpretation TEXT NOT NULL DEFAULT '',
			historical_significance TEXT NOT NULL DEFAULT '',
			themes TEXT NOT NULL DEFAULT '',
			key_phrases TEXT NOT NULL DEFAULT '[]',
			modern_relevance TEXT NOT NULL DEFAULT '',
			loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_author ON quotes(author);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
