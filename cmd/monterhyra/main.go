package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"monterhyra/frontend/events"
	"monterhyra/frontend/orders"
	"monterhyra/frontend/printfiles"
	"monterhyra/infrastructure/audit"
	"monterhyra/infrastructure/cache"
	"monterhyra/infrastructure/config"
	httpserver "monterhyra/infrastructure/http"
	"monterhyra/infrastructure/kvstore"
	"monterhyra/infrastructure/rbac"
	"monterhyra/infrastructure/sqlite"
)

const sessionSweepInterval = 15 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		log.Error("open db", slog.String("path", cfg.SQLitePath), slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sqlite.ApplyEmbeddedMigrations(ctx, db); err != nil {
		log.Error("apply migrations", slog.Any("err", err))
		os.Exit(1)
	}

	rbacCache := cache.NewRbacRolesCache()
	auditSvc := audit.NewService(db)
	store := kvstore.New(db)
	eventSvc := events.NewService(store, auditSvc, cfg.PublicBaseURL)

	server := httpserver.NewServer(cfg.Address, httpserver.Options{
		DB:             db,
		SessionCache:   cache.NewUserSessionCache(),
		UserCache:      cache.NewUserCache(),
		RbacCache:      rbacCache,
		Rbac:           rbac.New(rbacCache),
		Audit:          auditSvc,
		Events:         eventSvc,
		Orders:         orders.NewRepository(store, eventSvc, auditSvc, int(cfg.BlobThresholdBytes)),
		Printer:        printfiles.NewGenerator(cfg.PrintWorkers),
		SessionTTL:     cfg.SessionTTL,
		AllowedOrigins: cfg.AllowedOrigins,
		Timeout:        cfg.HTTPServer.Timeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
	})
	if err := server.Start(); err != nil {
		log.Error("start server", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("monterhyra listening",
		slog.String("address", cfg.Address),
		slog.String("env", cfg.Env),
		slog.Int("print_workers", cfg.PrintWorkers))

	go sweepSessions(ctx, server)

	<-ctx.Done()
	log.Info("shutting down")
	if err := server.Stop(); err != nil {
		log.Error("graceful shutdown", slog.Any("err", err))
	}
}

func sweepSessions(ctx context.Context, server *httpserver.Server) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			server.SweepSessions(ctx, now)
		}
	}
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == config.EnvProd {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	switch env {
	case config.EnvDev, config.EnvProd:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
