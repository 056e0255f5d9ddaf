package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vovakirdan/huddle-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS uploads (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	filename    TEXT NOT NULL,
	stored_name TEXT NOT NULL UNIQUE,
	kind        TEXT NOT NULL,
	size        INTEGER NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies the schema.
// Use ":memory:" for an ephemeral store in tests.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordUpload inserts an upload record and returns it with its id set.
func (s *SQLiteStore) RecordUpload(ctx context.Context, u *store.Upload) (*store.Upload, error) {
	query := `
		INSERT INTO uploads (filename, stored_name, kind, size)
		VALUES (?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, u.Filename, u.StoredName, u.Kind, u.Size)
	if err != nil {
		return nil, fmt.Errorf("insert upload: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.getUpload(ctx, id)
}

// RecentUploads returns up to limit upload records, newest first.
func (s *SQLiteStore) RecentUploads(ctx context.Context, limit int) ([]store.Upload, error) {
	query := `
		SELECT id, filename, stored_name, kind, size, created_at
		FROM uploads
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("select uploads: %w", err)
	}
	defer rows.Close()

	var uploads []store.Upload
	for rows.Next() {
		var u store.Upload
		if err := rows.Scan(&u.ID, &u.Filename, &u.StoredName, &u.Kind, &u.Size, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}

	return uploads, nil
}

func (s *SQLiteStore) getUpload(ctx context.Context, id int64) (*store.Upload, error) {
	query := `
		SELECT id, filename, stored_name, kind, size, created_at
		FROM uploads
		WHERE id = ?
	`
	var u store.Upload
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Filename, &u.StoredName, &u.Kind, &u.Size, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("select upload: %w", err)
	}
	return &u, nil
}
