package adminusers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"monterhyra/frontend/shared/html"
	"monterhyra/frontend/shared/nav"
	"monterhyra/infrastructure/rbac"
)

// UsersListPage lists portal accounts with create, reset and delete forms.
func UsersListPage(top nav.TopNavData, data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>Användare</h1>`)
		if data.Status != "" {
			fmt.Fprintf(&b, `<p class="status">%s</p>`, templ.EscapeString(data.Status))
		}
		if data.ErrorMessage != "" {
			fmt.Fprintf(&b, `<p class="error">%s</p>`, templ.EscapeString(data.ErrorMessage))
		}
		b.WriteString(`<table class="users"><thead><tr><th>Användarnamn</th><th>Roll</th><th>Nytt lösenord</th><th></th></tr></thead><tbody>`)
		for _, u := range data.Users {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td>`, templ.EscapeString(u.Username), templ.EscapeString(u.Role))
			fmt.Fprintf(&b, `<td><form method="POST" action="/admin/users/%d/password"><input type="password" name="password" required><button type="submit">Spara</button></form></td>`, u.ID)
			fmt.Fprintf(&b, `<td><form method="POST" action="/admin/users/%d/delete"><button type="submit">Ta bort</button></form></td></tr>`, u.ID)
		}
		b.WriteString(`</tbody></table>`)
		fmt.Fprintf(&b, `<h2>Ny användare</h2><form method="POST" action="/admin/users">`+
			`<label>Användarnamn <input type="text" name="username" required></label>`+
			`<label>Lösenord <input type="password" name="password" required></label>`+
			`<label>Roll <select name="role"><option value="%s">Lager</option><option value="%s">Admin</option></select></label>`+
			`<button type="submit">Skapa</button></form>`, rbac.RoleWarehouse, rbac.RoleAdmin)
		_, err := io.WriteString(w, html.RenderLayout("Användare", top, b.String()))
		return err
	})
}
