package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"monterhyra/infrastructure/sqlite"
	"monterhyra/models"
)

// ErrNotFound is returned when a key has no stored document or blob.
var ErrNotFound = errors.New("kvstore: not found")

// Store persists JSON documents and binary blobs by key.
type Store struct {
	db *sqlite.DB
}

func New(db *sqlite.DB) *Store {
	return &Store{db: db}
}

// Get decodes the document stored under key into dst.
func (s *Store) Get(ctx context.Context, key string, dst any) error {
	var entry models.KVEntry
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&entry).Where("key = ?", key).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(entry.Value), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Set replaces the document under key with the JSON encoding of v.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return SetTx(ctx, tx, key, v)
	})
}

// SetTx writes a document inside the caller transaction.
func SetTx(ctx context.Context, tx bun.Tx, key string, v any) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kvstore: key is required")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	entry := &models.KVEntry{Key: key, Value: string(b), UpdatedAt: time.Now().UTC()}
	_, err = tx.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the document under key. Missing keys are not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.KVEntry)(nil)).Where("key = ?", key).Exec(ctx)
		return err
	})
}

// PutBlob stores a binary payload under key, replacing any previous one.
func (s *Store) PutBlob(ctx context.Context, key string, data []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kvstore: blob key is required")
	}
	blob := &models.Blob{Key: key, Data: data, Size: int64(len(data)), CreatedAt: time.Now().UTC()}
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(blob).
			On("CONFLICT (key) DO UPDATE").
			Set("data = EXCLUDED.data").
			Set("size = EXCLUDED.size").
			Exec(ctx)
		return err
	})
}

// GetBlob returns the payload under key or ErrNotFound.
func (s *Store) GetBlob(ctx context.Context, key string) ([]byte, error) {
	var blob models.Blob
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&blob).Where("key = ?", key).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}
	return blob.Data, nil
}

// RemoveBlob deletes the payload under key.
func (s *Store) RemoveBlob(ctx context.Context, key string) error {
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.Blob)(nil)).Where("key = ?", key).Exec(ctx)
		return err
	})
}
