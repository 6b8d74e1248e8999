package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/socconsole/internal/dbx"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}

type SQLiteRepository struct {
	db dbx.DBTX
	// root is set on repositories built over *sql.DB; a repository already
	// bound to a transaction has none and runs InTx callbacks in place.
	root dbx.TxStarter
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, root: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

// InTx runs fn against a repository bound to one transaction; all writes
// made through it are committed together or not at all.
func (r *SQLiteRepository) InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	if r.root == nil {
		return fn(ctx, r)
	}
	return dbx.WithTx(ctx, r.root, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &SQLiteRepository{db: tx})
	})
}
