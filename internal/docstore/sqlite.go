package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// SQLiteStore implements [Store] on the documents table created by the shared
// migrations. One process-wide instance is constructed at startup and shared by
// every manager.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a [SQLiteStore].
type Option func(*SQLiteStore)

// WithNow overrides the store clock used to resolve [ServerTimestamp]. Tests
// use this to make creation times distinct and deterministic.
func WithNow(fn func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = fn }
}

// NewSQLiteStore creates a store over an open database connection.
func NewSQLiteStore(db *sql.DB, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put creates or fully replaces a document. The created_at column keeps its
// original value on replace so creation ordering stays stable.
func (s *SQLiteStore) Put(ctx context.Context, collection, id string, fields Fields) error {
	nowMillis := Millis(s.now())

	resolved := make(map[string]any, len(fields))
	for k, v := range fields {
		switch tv := v.(type) {
		case serverTimestamp:
			resolved[k] = nowMillis
		case incrementValue:
			// An increment on a fresh document starts from zero.
			resolved[k] = int64(tv)
		case nil:
			// Absent and null are equivalent; don't store the key.
		default:
			resolved[k] = v
		}
	}

	data, err := json.Marshal(resolved)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	createdAt := nowMillis
	if ca, ok := resolved["createdAt"].(int64); ok {
		createdAt = ca
	}

	query := `
		INSERT INTO documents (collection, id, data, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data
	`

	if _, err := s.db.ExecContext(ctx, query, collection, id, string(data), createdAt); err != nil {
		return fmt.Errorf("failed to put document %s/%s: %w", collection, id, err)
	}

	return nil
}

// Get retrieves a document's fields, or (nil, nil) when it does not exist.
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (Fields, error) {
	var data string

	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document %s/%s: %w", collection, id, err)
	}

	return decodeFields(data)
}

// Query returns documents matching all equality filters, ordered by orderDesc
// descending. Equal timestamps fall back to reverse insertion order.
func (s *SQLiteStore) Query(ctx context.Context, collection string, filters Fields, orderDesc string) ([]Fields, error) {
	query := "SELECT data FROM documents WHERE collection = ?"
	args := []any{collection}

	for _, k := range sortedKeys(filters) {
		query += " AND json_extract(data, ?) = ?"
		args = append(args, "$."+k, filters[k])
	}

	query += " ORDER BY json_extract(data, ?) DESC, rowid DESC"
	args = append(args, "$."+orderDesc)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}
	defer rows.Close()

	var results []Fields
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		fields, err := decodeFields(data)
		if err != nil {
			return nil, err
		}
		results = append(results, fields)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return results, nil
}

// Update merges fields into an existing document as a single UPDATE statement,
// so increments and timestamp resolution are atomic per document.
func (s *SQLiteStore) Update(ctx context.Context, collection, id string, fields Fields) error {
	expr := "data"
	var args []any

	for _, k := range sortedKeys(fields) {
		path := "$." + k

		switch v := fields[k].(type) {
		case incrementValue:
			expr = fmt.Sprintf("json_set(%s, ?, COALESCE(json_extract(data, ?), 0) + ?)", expr)
			args = append(args, path, path, int64(v))
		case serverTimestamp:
			expr = fmt.Sprintf("json_set(%s, ?, ?)", expr)
			args = append(args, path, Millis(s.now()))
		case nil:
			expr = fmt.Sprintf("json_remove(%s, ?)", expr)
			args = append(args, path)
		default:
			enc, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to encode field %s: %w", k, err)
			}
			expr = fmt.Sprintf("json_set(%s, ?, json(?))", expr)
			args = append(args, path, string(enc))
		}
	}

	query := fmt.Sprintf("UPDATE documents SET data = %s WHERE collection = ? AND id = ?", expr)
	args = append(args, collection, id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNoDocument, collection, id)
	}

	return nil
}

// Delete removes a document. Deleting a missing document is a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

func decodeFields(data string) (Fields, error) {
	var fields Fields
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return fields, nil
}

// sortedKeys keeps generated SQL deterministic for a given field set.
func sortedKeys(fields Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
