package printfiles

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"

	"monterhyra/frontend/bematrix"
)

const (
	cornerMarkMM  = 10.0
	hairlineMM    = 0.1
	fillSpotName  = "Background"
	pdfAuthor     = "Monterhyra PDF Generator"
	pdfCreator    = "Monterhyra System"
	backgroundImg = "background"
	logoImg       = "logo"
)

// documentDate is stamped into every PDF so identical input yields
// identical bytes.
var documentDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// errImageRejected marks a page that gofpdf could not finish because it
// refused one of the prepared images.
var errImageRejected = errors.New("image rejected by pdf writer")

// wallImages are the rasters already decoded and re-encoded for one wall.
type wallImages struct {
	background *preparedImage
	logo       *preparedImage
}

// RenderWall renders one wall to a single-page PDF whose page is the trim
// size plus bleed on every side.
//
// Background and logo problems are returned as failures and the page is
// rendered without them; an error means no document was produced.
func RenderWall(d WallDesign, pt PrintType) (Document, []WallFailure, error) {
	if pt == "" {
		pt = d.PrintType
	}
	if pt != PrintFabric && pt != PrintRigid {
		return Document{}, nil, fmt.Errorf("wall %s: unknown print type %q", d.WallID, pt)
	}
	d = withModuleSize(d)
	if d.WidthMM <= 0 || d.HeightMM <= 0 {
		return Document{}, nil, fmt.Errorf("wall %s: invalid size %dx%d mm", d.WallID, d.WidthMM, d.HeightMM)
	}
	if offGrid(d) {
		slog.Warn("printfiles: wall size is off the module grid",
			slog.String("wall_id", d.WallID),
			slog.Int("width_mm", d.WidthMM),
			slog.Int("height_mm", d.HeightMM),
			slog.Int("module_mm", bematrix.ModuleMM))
	}

	var failures []WallFailure
	fail := func(stage string, err error) {
		failures = append(failures, WallFailure{WallID: d.WallID, Label: d.Label, Stage: stage, Err: err.Error()})
	}

	var imgs wallImages
	if d.BackgroundImage != "" {
		if img, err := prepareBackground(d.BackgroundImage, d.WidthMM, d.HeightMM); err != nil {
			fail(StageBackground, err)
		} else {
			imgs.background = &img
		}
	}
	if d.Logo != nil && d.Logo.ImageData != "" {
		if d.Logo.Width <= 0 || d.Logo.Height <= 0 {
			fail(StageLogo, fmt.Errorf("logo has invalid size %.1fx%.1f mm", d.Logo.Width, d.Logo.Height))
		} else if img, err := prepareLogo(d.Logo.ImageData); err != nil {
			fail(StageLogo, err)
		} else {
			imgs.logo = &img
		}
	}

	doc, imageFailures, err := renderWall(d, pt, imgs)
	return doc, append(failures, imageFailures...), err
}

// renderWall draws the page. When the writer rejects an image the page is
// drawn again without any images and the rejection is reported under
// StageImage.
func renderWall(d WallDesign, pt PrintType, imgs wallImages) (Document, []WallFailure, error) {
	doc, err := drawWall(d, pt, imgs)
	if !errors.Is(err, errImageRejected) {
		return doc, nil, err
	}
	failure := WallFailure{WallID: d.WallID, Label: d.Label, Stage: StageImage, Err: err.Error()}
	doc, err = drawWall(d, pt, wallImages{})
	return doc, []WallFailure{failure}, err
}

func drawWall(d WallDesign, pt PrintType, imgs wallImages) (Document, error) {
	bleed := float64(pt.BleedMM())
	wallW, wallH := float64(d.WidthMM), float64(d.HeightMM)
	pageW, pageH := wallW+2*bleed, wallH+2*bleed

	pdf := newPage(pageW, pageH)

	// Keep Background the only spot color; gofpdf writes spot colors in
	// map order.
	if c, ok := backgroundCMYK(d); ok {
		pdf.AddSpotColor(fillSpotName, c.C, c.M, c.Y, c.K)
		pdf.SetFillSpotColor(fillSpotName, 100)
		pdf.Rect(0, 0, pageW, pageH, "F")
	}
	if imgs.background != nil {
		drawImage(pdf, backgroundImg, *imgs.background, bleed, bleed, wallW, wallH)
	}
	if imgs.logo != nil {
		drawImage(pdf, logoImg, *imgs.logo, d.Logo.X+bleed, d.Logo.Y+bleed, d.Logo.Width, d.Logo.Height)
	}
	if pdf.Err() {
		return Document{}, fmt.Errorf("wall %s: %w: %v", d.WallID, errImageRejected, pdf.Error())
	}

	drawCutMarks(pdf, bleed, wallW, wallH)
	setMetadata(pdf, d, pt)

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return Document{}, fmt.Errorf("wall %s: output pdf: %w", d.WallID, err)
	}
	w, h := pdf.GetPageSize()
	return Document{
		Name:         documentName(d),
		WallID:       d.WallID,
		WidthMM:      d.WidthMM,
		HeightMM:     d.HeightMM,
		PageWidthMM:  w,
		PageHeightMM: h,
		Bytes:        out.Bytes(),
	}, nil
}

// newPage creates a single-page document, landscape when wider than tall.
func newPage(w, h float64) *gofpdf.Fpdf {
	orientation := "P"
	size := gofpdf.SizeType{Wd: w, Ht: h}
	if w > h {
		orientation = "L"
		size = gofpdf.SizeType{Wd: h, Ht: w}
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           size,
	})
	pdf.SetCreationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()
	return pdf
}

func drawImage(pdf *gofpdf.Fpdf, name string, img preparedImage, x, y, w, h float64) {
	opt := gofpdf.ImageOptions{ImageType: img.imageType, ReadDpi: false}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(img.data))
	pdf.ImageOptions(name, x, y, w, h, false, opt, 0, "")
}

// drawCutMarks outlines the trim box in red and crosses each corner with
// registration marks that run into the bleed.
func drawCutMarks(pdf *gofpdf.Fpdf, bleed, w, h float64) {
	pdf.SetDrawColor(255, 0, 0)
	pdf.SetLineWidth(hairlineMM)
	pdf.Rect(bleed, bleed, w, h, "D")

	corners := [][2]float64{
		{bleed, bleed},
		{bleed + w, bleed},
		{bleed, bleed + h},
		{bleed + w, bleed + h},
	}
	for _, c := range corners {
		x, y := c[0], c[1]
		pdf.Line(x, y-cornerMarkMM, x, y+cornerMarkMM)
		pdf.Line(x-cornerMarkMM, y, x+cornerMarkMM, y)
	}
}

func setMetadata(pdf *gofpdf.Fpdf, d WallDesign, pt PrintType) {
	pdf.SetTitle(fmt.Sprintf("%s %s - %s Tryck", d.Category.documentTitle(), d.Label, pt.TradeName()), true)
	pdf.SetSubject(fmt.Sprintf("%dmm x %dmm (%gm x %gm)", d.WidthMM, d.HeightMM, d.WidthMeters, d.HeightMeters), true)
	pdf.SetAuthor(pdfAuthor, true)
	pdf.SetCreator(pdfCreator, true)
	pdf.SetKeywords(fmt.Sprintf("%s, tryck, beMatrix, %dmm bleed", pt.TradeName(), pt.BleedMM()), true)
}

// withModuleSize fills missing millimeter sizes from the meter values,
// snapped to the beMatrix grid.
func withModuleSize(d WallDesign) WallDesign {
	if d.WidthMM <= 0 && d.WidthMeters > 0 {
		d.WidthMM = bematrix.FromMeters(d.WidthMeters).MM
	}
	if d.HeightMM <= 0 && d.HeightMeters > 0 {
		d.HeightMM = bematrix.FromMeters(d.HeightMeters).MM
	}
	if d.WidthMeters == 0 {
		d.WidthMeters = float64(d.WidthMM) / 1000
	}
	if d.HeightMeters == 0 {
		d.HeightMeters = float64(d.HeightMM) / 1000
	}
	return d
}

// offGrid reports a millimeter size that is not a whole number of modules.
func offGrid(d WallDesign) bool {
	return d.WidthMM%bematrix.ModuleMM != 0 || d.HeightMM%bematrix.ModuleMM != 0
}
