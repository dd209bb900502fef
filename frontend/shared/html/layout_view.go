package html

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"monterhyra/frontend/shared/nav"
)

// RenderLayout wraps body in the admin page shell. A zero nav renders no menu.
func RenderLayout(title string, top nav.TopNavData, body string) string {
	var menu strings.Builder
	if top.Username != "" {
		menu.WriteString(`<nav class="topnav">`)
		for _, l := range nav.Links {
			fmt.Fprintf(&menu, `<a href="%s">%s</a>`, l.Href, templ.EscapeString(l.Label))
		}
		fmt.Fprintf(&menu, `<span class="user">%s</span><form method="POST" action="/logout"><button type="submit">Logga ut</button></form></nav>`,
			templ.EscapeString(top.Username))
	}
	return fmt.Sprintf("<!doctype html><html lang=\"sv\"><head><meta charset=\"utf-8\"><title>%s</title><link rel=\"stylesheet\" href=\"/assets/app.css\"></head><body>%s<main>%s</main>%s</body></html>",
		templ.EscapeString(title), menu.String(), body, CSRFFormScript())
}
