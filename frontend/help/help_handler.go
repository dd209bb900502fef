package help

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	sessioncontext "monterhyra/frontend/shared/context"
	"monterhyra/frontend/shared/html"
	"monterhyra/frontend/shared/nav"
	"monterhyra/infrastructure/rbac"
)

type PageData struct {
	Top         nav.TopNavData
	IsAdmin     bool
	IsWarehouse bool
}

func HelpPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		data := PageData{
			Top:         nav.BuildTopNavData(session),
			IsAdmin:     session.User.Role == rbac.RoleAdmin,
			IsWarehouse: session.User.Role == rbac.RoleWarehouse,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := HelpPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render help page", http.StatusInternalServerError)
			return
		}
	}
}

// HelpPage explains the admin portal per role.
func HelpPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>Hjälp</h1>`)
		b.WriteString(`<h2>Beställningar</h2><ul>` +
			`<li>Följesedel: PDF med kategoriserad packlista och standardkit för lagret.</li>` +
			`<li>ZIP: tryckfiler för väggar och förråd i tryckfärdig PDF med utfall.</li>` +
			`<li>Sammanfattning: textversion av beställningen.</li></ul>`)
		if data.IsWarehouse {
			b.WriteString(`<p>Som lagerpersonal kan du läsa beställningar och ladda ner följesedlar och tryckfiler.</p>`)
		}
		if data.IsAdmin {
			b.WriteString(`<h2>Administration</h2><ul>` +
				`<li>Offert: PDF med frysta priser från beställningstillfället.</li>` +
				`<li>Event och prislistor hanteras via API:t under /api/admin/events.</li>` +
				`<li>Användare: skapa konton med rollen admin eller lager.</li></ul>`)
		}
		_, err := io.WriteString(w, html.RenderLayout("Hjälp", data.Top, b.String()))
		return err
	})
}
