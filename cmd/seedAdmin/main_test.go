package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	"monterhyra/infrastructure/argon"
	"monterhyra/infrastructure/sqlite"
)

func TestSeedUpsertsUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	ctx := context.Background()

	if err := seed(ctx, dbPath, "admin", "admin", "First123!Password"); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := seed(ctx, dbPath, "admin", "warehouse", "Second123!Password"); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var role, hash string
	var count int
	err = db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewRaw(`SELECT COUNT(*) FROM users`).Scan(ctx, &count); err != nil {
			return err
		}
		return tx.NewRaw(`SELECT role, password_hash FROM users WHERE username = ?`, "admin").Scan(ctx, &role, &hash)
	})
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if count != 1 || role != "warehouse" {
		t.Fatalf("expected one updated user, got count=%d role=%s", count, role)
	}
	if ok, _ := argon.ComparePasswordAndHash("Second123!Password", hash); !ok {
		t.Fatalf("expected second password stored")
	}
}

func TestSeedRequiresPassword(t *testing.T) {
	if err := seed(context.Background(), filepath.Join(t.TempDir(), "seed.db"), "admin", "admin", " "); err == nil {
		t.Fatalf("expected missing password error")
	}
}

func TestSeedRejectsUnknownRole(t *testing.T) {
	if err := seed(context.Background(), filepath.Join(t.TempDir(), "seed.db"), "admin", "root", "First123!Password"); err == nil {
		t.Fatalf("expected unknown role error")
	}
}
