package login

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"monterhyra/frontend/shared/html"
	"monterhyra/frontend/shared/nav"
)

// GetLoginScreenHandler renders the login screen.
func GetLoginScreenHandler(w http.ResponseWriter, r *http.Request) {
	errorMessage := r.URL.Query().Get("error")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := GetLoginScreen(errorMessage).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render login screen", http.StatusInternalServerError)
		return
	}
}

// GetLoginScreen is the username/password form for the admin portal.
func GetLoginScreen(errorMessage string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="login"><h1>Logga in</h1>`)
		if errorMessage != "" {
			fmt.Fprintf(&b, `<p class="error">%s</p>`, templ.EscapeString(errorMessage))
		}
		b.WriteString(`<form method="POST" action="/login">` +
			`<label>Användarnamn <input type="text" name="username" autocomplete="username" required></label>` +
			`<label>Lösenord <input type="password" name="password" autocomplete="current-password" required></label>` +
			`<button type="submit">Logga in</button></form></section>`)
		_, err := io.WriteString(w, html.RenderLayout("Logga in", nav.TopNavData{}, b.String()))
		return err
	})
}
