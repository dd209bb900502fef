package kvstore

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"monterhyra/infrastructure/sqlite"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return New(db)
}

func TestGetMissingKeyReturnsNotFound(t *testing.T) {
	store := openTestStore(t)

	var dst map[string]any
	err := store.Get(context.Background(), "missing", &dst)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetOverwritesAndRemoveDeletes(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "orders", []string{"a"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "orders", []string{"a", "b"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	var got []string
	if err := store.Get(ctx, "orders", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("unexpected value: %v", got)
	}

	if err := store.Remove(ctx, "orders"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Get(ctx, "orders", &got); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	payload := bytes.Repeat([]byte{0x50, 0x4b}, 1024)
	if err := store.PutBlob(ctx, "order-1", payload); err != nil {
		t.Fatalf("put blob: %v", err)
	}
	got, err := store.GetBlob(ctx, "order-1")
	if err != nil {
		t.Fatalf("get blob: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("blob payload mismatch")
	}

	if err := store.RemoveBlob(ctx, "order-1"); err != nil {
		t.Fatalf("remove blob: %v", err)
	}
	if _, err := store.GetBlob(ctx, "order-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
