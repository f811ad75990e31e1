package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVTable is a string-keyed blob table. It is the durable backend behind
// the key-value store facade.
type KVTable struct {
	db *sql.DB
}

// Get returns the value for key. ok is false when the key is absent.
func (t *KVTable) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	err = t.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Put inserts or replaces the value for key.
func (t *KVTable) Put(ctx context.Context, key string, value []byte) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (t *KVTable) Delete(ctx context.Context, key string) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// DeleteAll removes every key.
func (t *KVTable) DeleteAll(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

// Keys lists all keys in lexical order.
func (t *KVTable) Keys(ctx context.Context) ([]string, error) {
	rows, err := t.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Size returns the total number of bytes held in keys and values.
func (t *KVTable) Size(ctx context.Context) (int64, error) {
	var size sql.NullInt64
	err := t.db.QueryRowContext(ctx,
		`SELECT SUM(LENGTH(key) + LENGTH(value)) FROM kv`).Scan(&size)
	if err != nil {
		return 0, fmt.Errorf("size: %w", err)
	}
	return size.Int64, nil
}
