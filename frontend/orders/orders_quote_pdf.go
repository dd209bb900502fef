package orders

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"monterhyra/frontend/pricing"
	"monterhyra/models"
)

var (
	grey      = &props.Color{Red: 90, Green: 90, Blue: 90}
	headerBg  = &props.Color{Red: 33, Green: 37, Blue: 41}
	stripeBg  = &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryBg = &props.Color{Red: 235, Green: 235, Blue: 235}
)

// GenerateQuotePDF renders the frozen price lines of an order.
func GenerateQuotePDF(o models.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Sida {current} av {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   grey,
		}).
		Build()

	m := maroto.New(cfg)
	addQuoteHeader(m, o)
	addQuoteTableHeader(m)
	for i, l := range o.OrderData.PriceLines {
		addQuoteRow(m, l, i%2 == 1)
	}
	addQuoteTotal(m, o.OrderData.TotalPrice)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addQuoteHeader(m core.Maroto, o models.Order) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New("Offert", props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Left})),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("Order: "+o.ID, props.Text{Size: 9, Color: grey})),
			col.New(6).Add(text.New("Datum: "+o.Timestamp.Format("2006-01-02"), props.Text{Size: 9, Align: align.Right, Color: grey})),
		),
		row.New(6).Add(
			col.New(12).Add(text.New(customerLine(o.CustomerInfo), props.Text{Size: 9, Color: grey})),
		),
		row.New(4),
	)
}

func addQuoteTableHeader(m core.Maroto) {
	head := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: &props.Color{Red: 255, Green: 255, Blue: 255}}
	headLeft := head
	headLeft.Align = align.Left
	cell := &props.Cell{BackgroundColor: headerBg}

	m.AddRows(row.New(8).Add(
		col.New(6).Add(text.New("Beskrivning", headLeft)).WithStyle(cell),
		col.New(2).Add(text.New("Antal", head)).WithStyle(cell),
		col.New(2).Add(text.New("À-pris", head)).WithStyle(cell),
		col.New(2).Add(text.New("Belopp", head)).WithStyle(cell),
	))
}

func addQuoteRow(m core.Maroto, l models.PriceLine, striped bool) {
	left := props.Text{Size: 8, Align: align.Left}
	right := props.Text{Size: 8, Align: align.Right}

	cols := []core.Col{
		col.New(6).Add(text.New(l.Description, left)),
		col.New(2).Add(text.New(formatQty(l.Quantity)+" "+l.Unit, right)),
		col.New(2).Add(text.New(pricing.FormatSEK(l.UnitPrice), right)),
		col.New(2).Add(text.New(pricing.FormatSEK(l.Amount), right)),
	}
	if striped {
		cell := &props.Cell{BackgroundColor: stripeBg}
		for i := range cols {
			cols[i] = cols[i].WithStyle(cell)
		}
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addQuoteTotal(m core.Maroto, total float64) {
	cell := &props.Cell{BackgroundColor: summaryBg}
	bold := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(4),
		row.New(9).Add(
			col.New(8).Add(text.New("Totalt exkl. moms", bold)).WithStyle(cell),
			col.New(4).Add(text.New(pricing.FormatSEK(total), bold)).WithStyle(cell),
		),
	)
}

func customerLine(c models.CustomerInfo) string {
	switch {
	case c.Company != "" && c.Name != "":
		return c.Company + ", " + c.Name
	case c.Company != "":
		return c.Company
	default:
		return c.Name
	}
}

func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
