package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value stored under key. found is false when the key is absent.
func (r *KVRepo) Get(ctx context.Context, key string) (value string, found bool, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get: %w", err)
	}
	return value, true, nil
}

func (r *KVRepo) Put(ctx context.Context, key string, value string) error {
	return WithTx(ctx, r.db, "kv put", func(tx *sql.Tx) error {
		return upsert(ctx, tx, key, value)
	})
}

// PutWithBackup writes value under key and, in the same transaction, copies
// the previous value (if any) to backupKey.
func (r *KVRepo) PutWithBackup(ctx context.Context, key, backupKey, value string) error {
	return WithTx(ctx, r.db, "kv put with backup", func(tx *sql.Tx) error {
		var prev string
		err := tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&prev)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("read previous: %w", err)
		default:
			if err := upsert(ctx, tx, backupKey, prev); err != nil {
				return err
			}
		}
		return upsert(ctx, tx, key, value)
	})
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	return WithTx(ctx, r.db, "kv delete", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
		return err
	})
}

func upsert(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key, including keys left behind by older revisions.
func (r *KVRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("kv keys: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv keys scan: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv keys rows: %w", err)
	}
	return out, nil
}
