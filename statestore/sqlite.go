package statestore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/zeroxpunk/navtree/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS nav_state (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLite is a durable Store backed by a single SQLite database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if necessary) the database at path and ensures
// the state table exists. Use ":memory:" for an ephemeral database.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapFatal(err, "SQLite", "NewSQLite", "database open")
	}

	// modernc.org/sqlite serializes writes internally; a single connection
	// avoids SQLITE_BUSY on concurrent puts.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapFatal(err, "SQLite", "NewSQLite", "schema creation")
	}

	return &SQLite{db: db}, nil
}

// Put stores data under key, overwriting any existing blob.
func (s *SQLite) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO nav_state (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		key, data)
	if err != nil {
		return errors.WrapRecoverable(err, "SQLite", "Put", "state upsert")
	}
	return nil
}

// Get retrieves the blob stored under key.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM nav_state WHERE key = ?`, key).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.WrapRecoverable(errors.ErrKeyNotFound, "SQLite", "Get", "key lookup")
	}
	if err != nil {
		return nil, errors.WrapRecoverable(err, "SQLite", "Get", "state query")
	}
	return data, nil
}

// List returns all keys with the given prefix in lexicographic order.
func (s *SQLite) List(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeLike(prefix) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM nav_state WHERE key LIKE ? ESCAPE '\' ORDER BY key`, pattern)
	if err != nil {
		return nil, errors.WrapRecoverable(err, "SQLite", "List", "key query")
	}
	defer func() { _ = rows.Close() }()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.WrapRecoverable(err, "SQLite", "List", "row scan")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapRecoverable(err, "SQLite", "List", "row iteration")
	}
	return keys, nil
}

// Delete removes the blob under key; missing keys are a no-op.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM nav_state WHERE key = ?`, key); err != nil {
		return errors.WrapRecoverable(err, "SQLite", "Delete", "state delete")
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// escapeLike escapes LIKE wildcards in a literal prefix.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
