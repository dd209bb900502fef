package adminusers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"monterhyra/frontend/shared/context"
	"monterhyra/frontend/shared/nav"
	"monterhyra/infrastructure/sqlite"
)

const usersPath = "/admin/users"

// UsersPageQueryHandler renders the admin users list page.
func UsersPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		data, err := LoadUsersPageData(r.Context(), db)
		if err != nil {
			slog.Error("admin users: failed to load data", slog.Any("err", err))
			http.Error(w, "failed to load users", http.StatusInternalServerError)
			return
		}

		data.Status = r.URL.Query().Get("status")
		data.ErrorMessage = r.URL.Query().Get("error")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := UsersListPage(nav.BuildTopNavData(session), data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render users page", http.StatusInternalServerError)
			return
		}
	}
}

func CreateUserCommandHandler(db *sqlite.DB, auditor Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectError(w, r, "invalid form data")
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		role := strings.TrimSpace(r.FormValue("role"))

		if err := CreateUser(r.Context(), db, auditor, context.UserID(r.Context()), username, password, role); err != nil {
			// Validation and password policy messages are safe to show as-is.
			redirectError(w, r, err.Error())
			return
		}

		http.Redirect(w, r, usersPath+"?status="+url.QueryEscape("user created"), http.StatusSeeOther)
	}
}

func DeleteUserCommandHandler(db *sqlite.DB, auditor Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || userID <= 0 {
			redirectError(w, r, "invalid user")
			return
		}
		if err := DeleteUser(r.Context(), db, auditor, context.UserID(r.Context()), userID); err != nil {
			switch {
			case errors.Is(err, ErrLastAdmin), errors.Is(err, ErrSelfDelete):
				redirectError(w, r, err.Error())
			case errors.Is(err, sql.ErrNoRows):
				redirectError(w, r, "user not found")
			default:
				slog.Error("admin users: delete failed", slog.Int64("user_id", userID), slog.Any("err", err))
				redirectError(w, r, "failed to delete user")
			}
			return
		}
		http.Redirect(w, r, usersPath+"?status="+url.QueryEscape("user deleted"), http.StatusSeeOther)
	}
}

func ResetPasswordCommandHandler(db *sqlite.DB, auditor Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || userID <= 0 {
			redirectError(w, r, "invalid user")
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectError(w, r, "invalid form data")
			return
		}
		if err := ResetPassword(r.Context(), db, auditor, context.UserID(r.Context()), userID, r.FormValue("password")); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				redirectError(w, r, "user not found")
				return
			}
			redirectError(w, r, err.Error())
			return
		}
		http.Redirect(w, r, usersPath+"?status="+url.QueryEscape("password updated"), http.StatusSeeOther)
	}
}

func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, usersPath+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
