package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("metadata get %s: %w", key, err)
	}
	return value, nil
}

// Put writes the pairs in key order so repeated calls touch rows identically.
func (r *SQLiteRepository) Put(ctx context.Context, values map[string]string) error {
	updated := r.now().UTC().Format(time.RFC3339)
	for _, key := range slices.Sorted(maps.Keys(values)) {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, values[key], updated)
		if err != nil {
			return fmt.Errorf("metadata put %s: %w", key, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Forget(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata`); err != nil {
			return fmt.Errorf("metadata clear: %w", err)
		}
		return nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	q := `DELETE FROM metadata WHERE key IN (?` + strings.Repeat(`, ?`, len(keys)-1) + `)`
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("metadata forget %v: %w", keys, err)
	}
	return nil
}
