package login

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"monterhyra/infrastructure/argon"
	"monterhyra/infrastructure/cache"
	sessioncookie "monterhyra/infrastructure/session"
	"monterhyra/infrastructure/sqlite"
	"monterhyra/models"
)

const testPassword = "Monter-Hyra2024"

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "login.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestUpsertUserRejectsUnknownRole(t *testing.T) {
	db := openTestDB(t)
	err := UpsertUserPasswordHash(context.Background(), db, "lager", "superuser", testPassword)
	if err == nil {
		t.Fatalf("expected unknown role error")
	}
}

func TestAuthenticateUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if err := UpsertUserPasswordHash(ctx, db, "Admin", "admin", testPassword); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	user, err := authenticateUser(ctx, db, "admin", testPassword)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Role != "admin" {
		t.Fatalf("expected admin role, got %q", user.Role)
	}

	if _, err := authenticateUser(ctx, db, "admin", "Wrong-Pass2024"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows for wrong password, got %v", err)
	}
	if _, err := authenticateUser(ctx, db, "nobody", testPassword); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows for unknown user, got %v", err)
	}
}

func TestAuthenticateRehashesWeakHash(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	weak := &argon.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	hash, err := argon.CreateHash(testPassword, weak)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&models.User{Username: "lager", PasswordHash: hash, Role: "warehouse"}).Exec(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}

	if _, err := authenticateUser(ctx, db, "lager", testPassword); err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	var stored models.User
	err = db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		stored, err = findUserByUsername(ctx, tx, "lager")
		return err
	})
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if argon.NeedsRehash(stored.PasswordHash, argon.DefaultParams) {
		t.Fatalf("expected hash upgraded to default params")
	}
	if _, err := authenticateUser(ctx, db, "lager", testPassword); err != nil {
		t.Fatalf("authenticate after rehash: %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if err := UpsertUserPasswordHash(ctx, db, "lager", "warehouse", testPassword); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	user, err := authenticateUser(ctx, db, "lager", testPassword)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	live := newSession(user, time.Hour)
	if err := persistSession(ctx, db, live); err != nil {
		t.Fatalf("persist live: %v", err)
	}
	dead := newSession(user, time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Minute)
	if err := persistSession(ctx, db, dead); err != nil {
		t.Fatalf("persist dead: %v", err)
	}

	loaded, err := LoadSessionByToken(ctx, db, live.ID)
	if err != nil {
		t.Fatalf("load live: %v", err)
	}
	if loaded.User.Username != "lager" || len(loaded.UserRoles) != 1 || loaded.UserRoles[0] != "warehouse" {
		t.Fatalf("unexpected session: %+v", loaded)
	}

	removed, err := DeleteExpiredSessions(ctx, db, time.Now())
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 expired session removed, got %d", removed)
	}
	if _, err := LoadSessionByToken(ctx, db, dead.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected expired session gone, got %v", err)
	}

	if err := DeleteSessionByToken(ctx, db, live.ID); err != nil {
		t.Fatalf("delete live: %v", err)
	}
	if _, err := LoadSessionByToken(ctx, db, live.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected deleted session gone, got %v", err)
	}
}

func TestCreateLoginHandler(t *testing.T) {
	db := openTestDB(t)
	if err := UpsertUserPasswordHash(context.Background(), db, "admin", "admin", testPassword); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	sessions := cache.NewUserSessionCache()
	handler := CreateLoginHandler(db, sessions, cache.NewUserCache(), 2*time.Hour)

	form := url.Values{"username": {"admin"}, "password": {testPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != HomePath {
		t.Fatalf("expected redirect to %s, got %d %q", HomePath, rec.Code, rec.Header().Get("Location"))
	}
	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessioncookie.CookieName {
			token = c.Value
			if c.MaxAge != 7200 {
				t.Fatalf("expected cookie max age 7200, got %d", c.MaxAge)
			}
		}
	}
	if token == "" {
		t.Fatalf("expected session cookie")
	}
	if _, ok := sessions.FindSessionBySessionToken(token); !ok {
		t.Fatalf("session not cached")
	}

	form.Set("password", "Wrong-Pass2024")
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	handler(rec, req)
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?error=") {
		t.Fatalf("expected error redirect, got %q", loc)
	}
}

func TestLoginScreenEscapesError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login?error="+url.QueryEscape("<b>nope</b>"), nil)
	rec := httptest.NewRecorder()
	GetLoginScreenHandler(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, "<b>nope</b>") {
		t.Fatalf("error message not escaped")
	}
	if !strings.Contains(body, `action="/login"`) {
		t.Fatalf("login form missing")
	}
}

func TestSessionTokensAreUnique(t *testing.T) {
	a, b := newSessionToken(), newSessionToken()
	if a == b || len(a) != 64 {
		t.Fatalf("unexpected tokens %q %q", a, b)
	}
}
