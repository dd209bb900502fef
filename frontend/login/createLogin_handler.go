package login

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"monterhyra/infrastructure/cache"
	sessioncookie "monterhyra/infrastructure/session"
	"monterhyra/infrastructure/sqlite"
	"monterhyra/models"
)

// HomePath is where a successful login lands.
const HomePath = "/admin/orders"

// CreateLoginHandler authenticates the user and issues a session cookie.
func CreateLoginHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache, ttl time.Duration) http.HandlerFunc {
	if ttl <= 0 {
		ttl = sessioncookie.DefaultTTL
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		if username == "" || password == "" {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("username and password are required"), http.StatusSeeOther)
			return
		}

		user, err := authenticateUser(r.Context(), db, username, password)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Redirect(w, r, "/login?error="+url.QueryEscape("invalid username or password"), http.StatusSeeOther)
				return
			}
			slog.Error("login: authenticate", slog.String("username", username), slog.Any("err", err))
			http.Redirect(w, r, "/login?error="+url.QueryEscape("authentication failed"), http.StatusSeeOther)
			return
		}

		session := newSession(user, ttl)
		if err := persistSession(r.Context(), db, session); err != nil {
			slog.Error("login: persist session", slog.Int64("user_id", user.ID), slog.Any("err", err))
			http.Redirect(w, r, "/login?error="+url.QueryEscape("failed to create session"), http.StatusSeeOther)
			return
		}

		sessionCache.AddSession(session)
		userCache.Add(user.Username, user)

		http.SetCookie(w, sessioncookie.SessionCookie(session.ID, int(ttl.Seconds())))
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
	}
}

func newSession(user models.User, ttl time.Duration) models.Session {
	return models.Session{
		ID:        newSessionToken(),
		UserID:    user.ID,
		User:      user,
		UserRoles: []string{user.Role},
		ExpiresAt: sessioncookie.Expiry(ttl),
	}
}
