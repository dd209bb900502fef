package orders

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"monterhyra/frontend/pricing"
	"monterhyra/frontend/shared/html"
	"monterhyra/frontend/shared/nav"
	"monterhyra/models"
)

// OrdersPage lists every order with download and delete actions.
func OrdersPage(top nav.TopNavData, list []models.Order, status string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>Beställningar</h1>`)
		b.WriteString(`<p class="exports"><a href="/api/admin/orders/export.xlsx">Exportera Excel</a> <a href="/api/admin/orders/export.csv">Exportera CSV</a></p>`)
		if status != "" {
			fmt.Fprintf(&b, `<p class="status">%s</p>`, templ.EscapeString(status))
		}
		if len(list) == 0 {
			b.WriteString(`<p>Inga beställningar ännu.</p>`)
		} else {
			b.WriteString(`<table class="orders"><thead><tr><th>Order</th><th>Datum</th><th>Kund</th><th>Event</th><th>Totalpris</th><th>Filer</th><th></th></tr></thead><tbody>`)
			for _, o := range list {
				writeOrderRow(&b, o)
			}
			b.WriteString(`</tbody></table>`)
		}
		_, err := io.WriteString(w, html.RenderLayout("Beställningar", top, b.String()))
		return err
	})
}

func writeOrderRow(b *strings.Builder, o models.Order) {
	id := templ.EscapeString(o.ID)
	customer := customerLine(o.CustomerInfo)
	if o.PrintOnly {
		customer += " (tryckfiler)"
	}
	fmt.Fprintf(b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
		id,
		o.Timestamp.Format("2006-01-02 15:04"),
		templ.EscapeString(customer),
		templ.EscapeString(o.CustomerInfo.EventDate),
		templ.EscapeString(pricing.FormatSEK(o.OrderData.TotalPrice)),
	)
	if o.Files.ArchiveSize > 0 {
		fmt.Fprintf(b, `<a href="/api/admin/orders/%s/archive.zip">ZIP</a> `, id)
	}
	fmt.Fprintf(b, `<a href="/api/admin/orders/%s/packing-slip.pdf">Följesedel</a> `, id)
	if !o.PrintOnly {
		fmt.Fprintf(b, `<a href="/api/admin/orders/%s/quote.pdf">Offert</a> `, id)
	}
	fmt.Fprintf(b, `<a href="/api/admin/orders/%s/summary.txt">Sammanfattning</a>`, id)
	fmt.Fprintf(b, `</td><td><form method="POST" action="/admin/orders/%s/delete"><button type="submit">Ta bort</button></form></td></tr>`, id)
}
