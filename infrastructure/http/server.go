package http

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"monterhyra/frontend/events"
	loginflow "monterhyra/frontend/login"
	"monterhyra/frontend/orders"
	"monterhyra/frontend/printfiles"
	sessioncontext "monterhyra/frontend/shared/context"
	"monterhyra/frontend/shared/respond"
	"monterhyra/infrastructure/audit"
	"monterhyra/infrastructure/cache"
	"monterhyra/infrastructure/rbac"
	sessioncookie "monterhyra/infrastructure/session"
	"monterhyra/infrastructure/sqlite"
	"monterhyra/models"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 10 * time.Second

// Options carries the services the routes are wired to.
type Options struct {
	DB             *sqlite.DB
	SessionCache   *cache.UserSessionCache
	UserCache      *cache.UserCache
	RbacCache      *cache.RbacRolesCache
	Rbac           *rbac.Rbac
	Audit          *audit.Service
	Events         *events.Service
	Orders         *orders.Repository
	Printer        *printfiles.Generator
	SessionTTL     time.Duration
	AllowedOrigins []string
	Timeout        time.Duration
	IdleTimeout    time.Duration
}

// Server bundles dependencies and route wiring.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	DB           *sqlite.DB
	SessionCache *cache.UserSessionCache
	UserCache    *cache.UserCache
	RbacCache    *cache.RbacRolesCache
	Rbac         *rbac.Rbac
	Audit        *audit.Service
	Events       *events.Service
	Orders       *orders.Repository
	Printer      *printfiles.Generator
	SessionTTL   time.Duration
}

// NewServer creates a new http server.
func NewServer(addr string, opts Options) *Server {
	s := &Server{
		Addr:         addr,
		router:       chi.NewRouter(),
		DB:           opts.DB,
		SessionCache: opts.SessionCache,
		UserCache:    opts.UserCache,
		RbacCache:    opts.RbacCache,
		Rbac:         opts.Rbac,
		Audit:        opts.Audit,
		Events:       opts.Events,
		Orders:       opts.Orders,
		Printer:      opts.Printer,
		SessionTTL:   opts.SessionTTL,
		server: &http.Server{
			MaxHeaderBytes: 1 << 20,
			ReadTimeout:    opts.Timeout,
			IdleTimeout:    opts.IdleTimeout,
		},
	}
	if s.Printer == nil {
		s.Printer = printfiles.NewGenerator(0)
	}

	// Secure headers first.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	})

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5, "application/json", "text/html", "text/plain", "text/css"))

	// Preflights are answered before routing; the configurator sends no cookies.
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins(opts.AllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", printfiles.StatusHeader, printfiles.FailuresHeader},
	}).Handler)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, loginflow.HomePath, http.StatusSeeOther)
	})

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Serve assets from embedded FS.
	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		slog.Error("assets subfs init failed; serving fallback fs", slog.Any("err", err))
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	s.router.Group(func(r chi.Router) {
		r.Use(s.CSRFMiddleware)
		s.RegisterLoginRoutes(r)
	})

	s.RegisterPublicRoutes(s.router)

	s.router.Group(func(r chi.Router) {
		r.Use(s.CSRFMiddleware)
		r.Use(s.AuthenticateMiddleware)
		s.RegisterAdminRoutes(r)
	})

	s.server.Handler = s.router
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func allowedOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// AuthenticateMiddleware loads session and applies RBAC checks.
func (s *Server) AuthenticateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionCookie, err := r.Cookie(sessioncookie.CookieName)
		if err != nil || sessionCookie.Value == "" {
			s.deny(w, r, http.StatusUnauthorized)
			return
		}

		sessionToken := sessionCookie.Value
		session, ok := s.resolveSession(r.Context(), sessionToken)
		if !ok {
			slog.Warn("session not found", slog.String("method", r.Method), slog.String("path", r.URL.Path))
			s.deny(w, r, http.StatusUnauthorized)
			return
		}

		if session.Expired() {
			http.SetCookie(w, sessioncookie.SessionCookie("", -1))
			s.SessionCache.DeleteSessionBySessionToken(sessionToken)
			if err := loginflow.DeleteSessionByToken(r.Context(), s.DB, sessionToken); err != nil {
				slog.Error("cannot delete session from DB", slog.String("session_id", sessionToken), slog.Any("err", err))
			}
			s.deny(w, r, http.StatusUnauthorized)
			return
		}

		if !s.Rbac.Permitted(session.UserRoles, r.URL.Path, r.Method) {
			slog.Warn("rbac denied",
				slog.Int64("user_id", session.UserID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
			s.deny(w, r, http.StatusForbidden)
			return
		}

		ctx := sessioncontext.NewContextWithSession(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// deny answers API calls with JSON and page requests with a login redirect.
func (s *Server) deny(w http.ResponseWriter, r *http.Request, status int) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		msg := "authentication required"
		if status == http.StatusForbidden {
			msg = "forbidden"
		}
		respond.Error(w, r, status, msg)
		return
	}
	if status == http.StatusForbidden {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) resolveSession(ctx context.Context, token string) (session models.Session, ok bool) {
	if cached, found := s.SessionCache.FindSessionBySessionToken(token); found {
		return cached, true
	}

	dbSession, err := loginflow.LoadSessionByToken(ctx, s.DB, token)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("load session from db failed", slog.String("session_id", token), slog.Any("err", err))
		}
		return session, false
	}

	s.SessionCache.AddSession(dbSession)
	s.UserCache.Add(dbSession.User.Username, dbSession.User)
	return dbSession, true
}

// SweepSessions drops expired sessions from the cache and the database.
func (s *Server) SweepSessions(ctx context.Context, now time.Time) {
	cached := s.SessionCache.Sweep(now)
	stored, err := loginflow.DeleteExpiredSessions(ctx, s.DB, now)
	if err != nil {
		slog.Error("session sweep failed", slog.Any("err", err))
		return
	}
	if cached > 0 || stored > 0 {
		slog.Info("expired sessions removed", slog.Int("cached", cached), slog.Int64("stored", stored))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("err", err))
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %v", err)
	}
	s.ln = nil
	return nil
}
