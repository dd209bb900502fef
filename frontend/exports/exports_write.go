package exports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"monterhyra/frontend/packlist"
	"monterhyra/models"
)

const sheetName = "Beställningar"

// Rows flattens orders in the order given.
func Rows(list []models.Order) []Row {
	rows := make([]Row, 0, len(list))
	for _, o := range list {
		r := Row{
			ID:          o.ID,
			Date:        o.Timestamp.Format("2006-01-02 15:04"),
			Name:        o.CustomerInfo.Name,
			Company:     o.CustomerInfo.Company,
			Email:       o.CustomerInfo.Email,
			Phone:       o.CustomerInfo.Phone,
			Event:       o.OrderData.EventID,
			EventDate:   o.CustomerInfo.EventDate,
			Address:     o.CustomerInfo.DeliveryAddress,
			TotalPrice:  o.OrderData.TotalPrice,
			ArchiveSize: o.Files.ArchiveSize,
			PrintOnly:   o.PrintOnly,
		}
		if f := o.OrderData.Config.Floor; f != nil {
			r.FloorSize = fmt.Sprintf("%gx%g", f.Width, f.Depth)
		}
		rows = append(rows, r)
	}
	return rows
}

func (r Row) record() []string {
	return []string{
		r.ID, r.Date,
		packlist.SanitizeCell(r.Name),
		packlist.SanitizeCell(r.Company),
		packlist.SanitizeCell(r.Email),
		packlist.SanitizeCell(r.Phone),
		r.Event,
		packlist.SanitizeCell(r.EventDate),
		packlist.SanitizeCell(r.Address),
		r.FloorSize,
		strconv.FormatFloat(r.TotalPrice, 'f', 0, 64),
		strconv.FormatInt(r.ArchiveSize, 10),
		strconv.FormatBool(r.PrintOnly),
	}
}

func writeOrdersCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write(r.record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ordersWorkbook(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2C3E50"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheetName, "A1", last, headStyle)

	for i, r := range rows {
		for col, v := range r.record() {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			switch col {
			case 10:
				f.SetCellValue(sheetName, cell, r.TotalPrice)
			case 11:
				f.SetCellValue(sheetName, cell, r.ArchiveSize)
			default:
				f.SetCellValue(sheetName, cell, v)
			}
		}
	}
	if err := f.SetColWidth(sheetName, "A", "M", 18); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
