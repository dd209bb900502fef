package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"monterhyra/frontend/login"
	"monterhyra/infrastructure/config"
	"monterhyra/infrastructure/rbac"
	"monterhyra/infrastructure/sqlite"
)

// seedAdmin creates or updates a portal account from ADMIN_USERNAME,
// ADMIN_ROLE and ADMIN_PASSWORD.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	username := getenv("ADMIN_USERNAME", "admin")
	role := getenv("ADMIN_ROLE", rbac.RoleAdmin)
	if err := seed(context.Background(), cfg.SQLitePath, username, role, os.Getenv("ADMIN_PASSWORD")); err != nil {
		slog.Error("seed user", slog.String("username", username), slog.Any("err", err))
		os.Exit(1)
	}

	fmt.Printf("seeded %s user (username=%s)\n", role, username)
}

func seed(ctx context.Context, dbPath, username, role, password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("ADMIN_PASSWORD is required")
	}

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := sqlite.ApplyEmbeddedMigrations(ctx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return login.UpsertUserPasswordHash(ctx, db, username, role, password)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
