package packlist

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Packlista"

// ExportXLSX writes the categorized list to a single-sheet workbook, one
// header row per category followed by its items. Empty categories are kept
// so the sheet layout is the same for every order.
func ExportXLSX(title string, c Categorized) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "A", 44); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "C", 16); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	groupStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2C3E50"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create group style: %w", err)
	}

	if title == "" {
		title = "Packlista"
	}
	f.SetCellValue(sheetName, "A1", SanitizeCell(title))
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	row := 3
	for _, g := range c {
		r := strconv.Itoa(row)
		f.SetCellValue(sheetName, "A"+r, g.Title)
		f.SetCellValue(sheetName, "B"+r, "Antal")
		f.SetCellValue(sheetName, "C"+r, "Beskrivning")
		f.SetCellStyle(sheetName, "A"+r, "C"+r, groupStyle)
		row++
		for _, item := range g.Items {
			r := strconv.Itoa(row)
			f.SetCellValue(sheetName, "A"+r, SanitizeCell(item.Label))
			f.SetCellValue(sheetName, "B"+r, item.Quantity)
			if item.Display != formatQuantity(item.Quantity) {
				f.SetCellValue(sheetName, "C"+r, SanitizeCell(item.Display))
			}
			row++
		}
		row++
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SanitizeCell defuses spreadsheet formula injection in user-provided text.
func SanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
