package followup

import (
	"monterhyra/frontend/packlist"
)

// Page geometry in millimeters, A4 portrait.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginX      = 15.0
	firstPageTop = 62.0
	pageTop      = 20.0
	pageBottom   = 275.0

	columnHeadH = 7.0
	bandH       = 8.0
	rowH        = 7.0
	sectionGap  = 3.0
	notesTitleH = 8.0
	notesLineH  = 9.0
	notesLines  = 4
)

type rgb struct{ r, g, b int }

var categoryColors = map[packlist.Category]rgb{
	packlist.CategoryTV:        {52, 101, 164},
	packlist.CategoryCounter:   {196, 122, 44},
	packlist.CategoryFurniture: {78, 154, 6},
	packlist.CategoryTech:      {117, 80, 123},
	packlist.CategoryPrint:     {204, 0, 0},
	packlist.CategoryFrame:     {85, 87, 83},
	packlist.CategoryMisc:      {136, 138, 133},
}

var kitColor = rgb{32, 74, 135}

// KitTitle is the header of the fixed accessory kit section.
const KitTitle = "Standardkit tillbehör"

// AccessoryKit is packed with every booth regardless of configuration.
var AccessoryKit = []string{
	"Buntband",
	"Silvertejp",
	"Dubbelhäftande tejp",
	"Eltejp",
	"Kardborreband",
	"Skarvsladd 10 m",
	"Grenuttag 6-vägs",
	"Skruvdragare med bits",
	"Verktygslåda",
	"Måttband",
	"Vattenpass",
	"Sax",
	"Mattkniv",
	"Batterier AA/AAA",
	"Reservlampor",
	"Stege",
	"Sopsäckar",
	"Plastfilm",
	"Trasor",
	"Rengöringsmedel",
	"Handdammsugare",
	"Pennor och block",
	"Första hjälpen-kit",
	"Reservskruv beMatrix",
}

type section struct {
	title string
	color rgb
	rows  []row
}

type row struct {
	description string
	quantity    string
}

type blockKind int

const (
	blockColumns blockKind = iota
	blockBand
	blockRow
	blockNotes
)

// block is one placed element. Rows and bands are never split across pages.
type block struct {
	kind    blockKind
	page    int
	y       float64
	h       float64
	section int
	row     int
}

// sections turns a categorized list into slip sections. Empty categories
// are skipped; the accessory kit is always last.
func sections(c packlist.Categorized) []section {
	var out []section
	for _, g := range c {
		if len(g.Items) == 0 {
			continue
		}
		s := section{title: g.Title, color: categoryColors[g.Category]}
		for _, it := range g.Items {
			s.rows = append(s.rows, row{description: it.Label, quantity: it.Display})
		}
		out = append(out, s)
	}
	kit := section{title: KitTitle, color: kitColor}
	for _, item := range AccessoryKit {
		kit.rows = append(kit.rows, row{description: item, quantity: "1"})
	}
	return append(out, kit)
}

// paginate places every band and row top to bottom, starting a new page
// whenever the next element would cross the bottom threshold. A band is
// moved along with its first row so it never ends a page. The notes block
// is added only if it fits on the last page.
func paginate(secs []section) []block {
	var blocks []block
	page := 0
	y := firstPageTop

	newPage := func() {
		page++
		y = pageTop
		blocks = append(blocks, block{kind: blockColumns, page: page, y: y, h: columnHeadH})
		y += columnHeadH
	}

	blocks = append(blocks, block{kind: blockColumns, page: page, y: y, h: columnHeadH})
	y += columnHeadH

	for si, s := range secs {
		need := bandH
		if len(s.rows) > 0 {
			need += rowH
		}
		if y+need > pageBottom {
			newPage()
		}
		blocks = append(blocks, block{kind: blockBand, page: page, y: y, h: bandH, section: si})
		y += bandH
		for ri := range s.rows {
			if y+rowH > pageBottom {
				newPage()
			}
			blocks = append(blocks, block{kind: blockRow, page: page, y: y, h: rowH, section: si, row: ri})
			y += rowH
		}
		y += sectionGap
	}

	notesH := notesTitleH + notesLines*notesLineH
	if y+notesH <= pageBottom {
		blocks = append(blocks, block{kind: blockNotes, page: page, y: y, h: notesH})
	}
	return blocks
}
