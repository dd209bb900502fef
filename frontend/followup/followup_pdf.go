package followup

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"monterhyra/frontend/packlist"
	"monterhyra/models"
)

const (
	descW     = 100.0
	qtyW      = 20.0
	checkW    = 20.0
	checkSize = 4.0
	barcodeW  = 70.0
	barcodeH  = 16.0
)

var checkColumns = []string{"Monterad", "Levererad", "Returnerad"}

// ErrNoOrderID is returned for orders without an id to print in the barcode.
var ErrNoOrderID = errors.New("followup: order has no id")

// RenderPackingSlip renders the warehouse checklist for an order: one
// colored band per non-empty packing list category, the accessory kit, and
// a notes block when space remains.
func RenderPackingSlip(order models.Order, printedAt time.Time) ([]byte, error) {
	if strings.TrimSpace(order.ID) == "" {
		return nil, ErrNoOrderID
	}
	barcodePNG, err := renderCode128PNG(order.ID, 1000, 220)
	if err != nil {
		return nil, fmt.Errorf("order barcode: %w", err)
	}

	secs := sections(packlist.Categorize(order.OrderData.Packlista))
	blocks := paginate(secs)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(printedAt)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Följesedel "+order.ID, true)
	pdf.SetAuthor("Monterhyra", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	drawHeader(pdf, tr, order, printedAt, barcodePNG)

	page := 0
	for _, b := range blocks {
		if b.page != page {
			pdf.AddPage()
			page = b.page
		}
		switch b.kind {
		case blockColumns:
			drawColumns(pdf, tr, b.y)
		case blockBand:
			drawBand(pdf, tr, secs[b.section], b.y)
		case blockRow:
			drawRow(pdf, tr, secs[b.section].rows[b.row], b.y)
		case blockNotes:
			drawNotes(pdf, b.y)
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, order models.Order, printedAt time.Time, barcodePNG []byte) {
	c := order.CustomerInfo

	pdf.SetXY(marginX, 15)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(100, 10, tr("Följesedel"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		"Order: " + order.ID,
		"Kund: " + orDash(c.Company, c.Name),
		"Leveransadress: " + orDash(c.DeliveryAddress),
		"Eventdatum: " + orDash(c.EventDate),
		"Utskriven: " + printedAt.Format("2006-01-02"),
	}
	for _, l := range lines {
		pdf.SetX(marginX)
		pdf.CellFormat(110, 5.5, tr(l), "", 1, "L", false, 0, "")
	}

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("order-barcode", opt, bytes.NewReader(barcodePNG))
	x := pageWidth - marginX - barcodeW
	pdf.ImageOptions("order-barcode", x, 17, barcodeW, barcodeH, false, opt, 0, "")
	pdf.SetXY(x, 17+barcodeH+1)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(barcodeW, 5, order.ID, "", 0, "C", false, 0, "")
}

func drawColumns(pdf *gofpdf.Fpdf, tr func(string) string, y float64) {
	pdf.SetXY(marginX, y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(descW, columnHeadH, "Beskrivning", "B", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, columnHeadH, "Antal", "B", 0, "C", false, 0, "")
	for _, name := range checkColumns {
		pdf.CellFormat(checkW, columnHeadH, tr(name), "B", 0, "C", false, 0, "")
	}
}

func drawBand(pdf *gofpdf.Fpdf, tr func(string) string, s section, y float64) {
	pdf.SetFillColor(s.color.r, s.color.g, s.color.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginX, y)
	pdf.CellFormat(pageWidth-2*marginX, bandH, " "+tr(s.title), "", 0, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawRow(pdf *gofpdf.Fpdf, tr func(string) string, r row, y float64) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginX, y)
	pdf.CellFormat(descW, rowH, fit(pdf, tr, r.description, descW-2), "B", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, rowH, fit(pdf, tr, r.quantity, qtyW-2), "B", 0, "C", false, 0, "")
	pdf.SetLineWidth(0.2)
	for i := range checkColumns {
		x := marginX + descW + qtyW + float64(i)*checkW
		pdf.Line(x, y+rowH, x+checkW, y+rowH)
		pdf.Rect(x+(checkW-checkSize)/2, y+(rowH-checkSize)/2, checkSize, checkSize, "D")
	}
}

func drawNotes(pdf *gofpdf.Fpdf, y float64) {
	pdf.SetXY(marginX, y)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, notesTitleH, "Anteckningar", "", 0, "L", false, 0, "")
	pdf.SetLineWidth(0.2)
	for i := 1; i <= notesLines; i++ {
		ly := y + notesTitleH + float64(i)*notesLineH
		pdf.Line(marginX, ly, pageWidth-marginX, ly)
	}
}

// fit translates s and shortens it with an ellipsis until it is at most w wide.
func fit(pdf *gofpdf.Fpdf, tr func(string) string, s string, w float64) string {
	if pdf.GetStringWidth(tr(s)) <= w {
		return tr(s)
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(tr(string(r)+"...")) > w {
		r = r[:len(r)-1]
	}
	return tr(string(r) + "...")
}

func orDash(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return "-"
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, toNRGBA(scaled)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
