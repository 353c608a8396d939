package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// KVEntry represents a kv row.
type KVEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// KVRepo handles the kv table.
type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo { return &KVRepo{db: db} }

func (r *KVRepo) Put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO kv(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=CURRENT_TIMESTAMP;
	`, key, value)
	return err
}

// Get returns nil when the key is absent.
func (r *KVRepo) Get(ctx context.Context, key string) (*KVEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM kv WHERE key = ?`, key)
	var e KVEntry
	if err := row.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *KVRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
