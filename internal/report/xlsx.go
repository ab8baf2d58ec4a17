// Package report renders aggregated per-worker rows into the formatted
// spreadsheet handed out by the reports endpoint.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Row is one flat worker line in the export, already aggregated and rounded.
type Row struct {
	WorkerID        int64
	FullName        string
	Phone           string
	Status          string
	AssignedSite    string
	JoiningDate     time.Time
	DaysPresent     int64
	DaysAbsent      int64
	OvertimeHours   float64
	WagesEarned     int64
	AmountPaid      int64
	PendingBalance  int64
	LastPaymentDate *time.Time
}

// Metadata is the report header block. Currency is the symbol used in the
// money column headers and number formats; empty means rupees.
type Metadata struct {
	CompanyName string
	Title       string
	PeriodFrom  string
	PeriodTo    string
	Currency    string
	GeneratedAt time.Time
}

const (
	sheetName    = "Worker Report"
	headerRow    = 5
	dataStartRow = 6
	lastColumn   = "M"
)

const dateFormat = "02/01/2006"

func headerTitles(currency string) []string {
	return []string{
		"Worker ID", "Full Name", "Mobile", "Status", "Assigned Site", "Joining Date",
		"Days Present", "Days Absent", "Overtime (hrs)", "Wages Earned (" + currency + ")",
		"Amount Paid (" + currency + ")", "Pending (" + currency + ")", "Last Payment",
	}
}

var columnWidths = []float64{12, 25, 15, 10, 20, 14, 13, 12, 14, 16, 15, 13, 14}

// Generate writes the workbook: three merged metadata rows, a styled header,
// one row per worker, then a totals row whose sums are spreadsheet-native
// formulas over the data range rather than recomputed values.
func Generate(rows []Row, meta Metadata) ([]byte, error) {
	currency := meta.Currency
	if currency == "" {
		currency = "₹"
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.SetDefaultFont("Calibri")

	if err := writeMetadata(f, meta); err != nil {
		return nil, err
	}
	if err := writeHeader(f, currency); err != nil {
		return nil, err
	}
	if err := writeRows(f, rows); err != nil {
		return nil, err
	}
	if err := writeTotals(f, len(rows)); err != nil {
		return nil, err
	}
	if err := applyStyles(f, len(rows), currency); err != nil {
		return nil, err
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, width)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMetadata(f *excelize.File, meta Metadata) error {
	lines := []string{
		meta.CompanyName,
		meta.Title,
		fmt.Sprintf("Report Period: %s to %s", meta.PeriodFrom, meta.PeriodTo),
	}
	for i, line := range lines {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(sheetName, cell, line); err != nil {
			return err
		}
		if err := f.MergeCell(sheetName, cell, fmt.Sprintf("%s%d", lastColumn, i+1)); err != nil {
			return err
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16, Color: "1F2937"}})
	if err != nil {
		return err
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: "374151"}})
	if err != nil {
		return err
	}
	periodStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 11, Color: "6B7280"}})
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	_ = f.SetCellStyle(sheetName, "A2", "A2", subtitleStyle)
	_ = f.SetCellStyle(sheetName, "A3", "A3", periodStyle)

	return f.SetDocProps(&excelize.DocProperties{
		Creator: meta.CompanyName,
		Created: meta.GeneratedAt.Format(time.RFC3339),
	})
}

func writeHeader(f *excelize.File, currency string) error {
	for c, v := range headerTitles(currency) {
		cell, _ := excelize.CoordinatesToCellName(c+1, headerRow)
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return f.SetRowHeight(sheetName, headerRow, 24)
}

func writeRows(f *excelize.File, rows []Row) error {
	for i, row := range rows {
		lastPayment := "-"
		if row.LastPaymentDate != nil {
			lastPayment = row.LastPaymentDate.Format(dateFormat)
		}
		values := []any{
			row.WorkerID,
			row.FullName,
			stringOrDash(row.Phone),
			row.Status,
			stringOrDash(row.AssignedSite),
			row.JoiningDate.Format(dateFormat),
			row.DaysPresent,
			row.DaysAbsent,
			row.OvertimeHours,
			row.WagesEarned,
			row.AmountPaid,
			row.PendingBalance,
			lastPayment,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, dataStartRow+i)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTotals(f *excelize.File, count int) error {
	totalsRow := dataStartRow + count
	dataEndRow := totalsRow - 1

	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalsRow), "TOTALS"); err != nil {
		return err
	}
	// Native formulas over the data range: the spreadsheet stays correct if a
	// reviewer edits a cell.
	for _, col := range []string{"G", "H", "I", "J", "K", "L"} {
		cell := fmt.Sprintf("%s%d", col, totalsRow)
		formula := fmt.Sprintf("SUM(%s%d:%s%d)", col, dataStartRow, col, dataEndRow)
		if err := f.SetCellFormula(sheetName, cell, formula); err != nil {
			return err
		}
	}
	return nil
}

func applyStyles(f *excelize.File, count int, currency string) error {
	totalsRow := dataStartRow + count
	border := []excelize.Border{
		{Type: "top", Style: 1, Color: "D1D5DB"},
		{Type: "left", Style: 1, Color: "D1D5DB"},
		{Type: "bottom", Style: 1, Color: "D1D5DB"},
		{Type: "right", Style: 1, Color: "D1D5DB"},
	}
	currencyFmt := currency + "#,##0"

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2563EB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{Border: border, CustomNumFmt: &currencyFmt})
	if err != nil {
		return err
	}
	totalsStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E5E7EB"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return err
	}
	totalsMoneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"E5E7EB"}, Pattern: 1},
		Border:       border,
		CustomNumFmt: &currencyFmt,
	})
	if err != nil {
		return err
	}

	hdr := fmt.Sprintf("%d", headerRow)
	if err := f.SetCellStyle(sheetName, "A"+hdr, lastColumn+hdr, headerStyle); err != nil {
		return err
	}
	if count > 0 {
		first := fmt.Sprintf("%d", dataStartRow)
		last := fmt.Sprintf("%d", totalsRow-1)
		if err := f.SetCellStyle(sheetName, "A"+first, "I"+last, dataStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "J"+first, "L"+last, moneyStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "M"+first, "M"+last, dataStyle); err != nil {
			return err
		}
	}
	tr := fmt.Sprintf("%d", totalsRow)
	if err := f.SetCellStyle(sheetName, "A"+tr, "I"+tr, totalsStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "J"+tr, "L"+tr, totalsMoneyStyle); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, "M"+tr, "M"+tr, totalsStyle)
}

func stringOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
