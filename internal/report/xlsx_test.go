package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/salmanfarismn/LaborLog/internal/report"
)

const sheet = "Worker Report"

func sampleMetadata() report.Metadata {
	return report.Metadata{
		CompanyName: "Manarath Engineers",
		Title:       "Worker Report",
		PeriodFrom:  "01/03/2026",
		PeriodTo:    "31/03/2026",
		Currency:    "₹",
		GeneratedAt: time.Date(2026, time.April, 1, 9, 0, 0, 0, time.Local),
	}
}

func sampleRows() []report.Row {
	lastPaid := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.Local)
	return []report.Row{
		{
			WorkerID:        1,
			FullName:        "Ravi Kumar",
			Phone:           "9876500001",
			Status:          "ACTIVE",
			AssignedSite:    "North Yard",
			JoiningDate:     time.Date(2026, time.January, 5, 0, 0, 0, 0, time.Local),
			DaysPresent:     12,
			DaysAbsent:      1,
			OvertimeHours:   4,
			WagesEarned:     9200,
			AmountPaid:      5000,
			PendingBalance:  4200,
			LastPaymentDate: &lastPaid,
		},
		{
			WorkerID:    2,
			FullName:    "Suresh Babu",
			Status:      "INACTIVE",
			JoiningDate: time.Date(2025, time.November, 10, 0, 0, 0, 0, time.Local),
		},
	}
}

func openGenerated(t *testing.T, rows []report.Row) *excelize.File {
	t.Helper()
	data, err := report.Generate(rows, sampleMetadata())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestGenerate_SingleSheet(t *testing.T) {
	f := openGenerated(t, sampleRows())

	assert.Equal(t, []string{sheet}, f.GetSheetList())
}

func TestGenerate_MetadataBlock(t *testing.T) {
	f := openGenerated(t, sampleRows())

	assert.Equal(t, "Manarath Engineers", cell(t, f, "A1"))
	assert.Equal(t, "Worker Report", cell(t, f, "A2"))
	assert.Equal(t, "Report Period: 01/03/2026 to 31/03/2026", cell(t, f, "A3"))
	assert.Equal(t, "", cell(t, f, "A4"))
}

func TestGenerate_HeaderRow(t *testing.T) {
	f := openGenerated(t, sampleRows())

	assert.Equal(t, "Worker ID", cell(t, f, "A5"))
	assert.Equal(t, "Full Name", cell(t, f, "B5"))
	assert.Equal(t, "Wages Earned (₹)", cell(t, f, "J5"))
	assert.Equal(t, "Last Payment", cell(t, f, "M5"))
}

func TestGenerate_DataRows(t *testing.T) {
	f := openGenerated(t, sampleRows())

	assert.Equal(t, "Ravi Kumar", cell(t, f, "B6"))
	assert.Equal(t, "9876500001", cell(t, f, "C6"))
	assert.Equal(t, "North Yard", cell(t, f, "E6"))
	assert.Equal(t, "05/01/2026", cell(t, f, "F6"))
	assert.Equal(t, "12", cell(t, f, "G6"))
	assert.Equal(t, "20/03/2026", cell(t, f, "M6"))

	// Empty optional fields render as a dash.
	assert.Equal(t, "-", cell(t, f, "C7"))
	assert.Equal(t, "-", cell(t, f, "E7"))
	assert.Equal(t, "-", cell(t, f, "M7"))
}

func TestGenerate_TotalsRowUsesFormulas(t *testing.T) {
	// Two data rows at 6 and 7, so totals land on row 8.
	f := openGenerated(t, sampleRows())

	assert.Equal(t, "TOTALS", cell(t, f, "A8"))
	for _, col := range []string{"G", "H", "I", "J", "K", "L"} {
		formula, err := f.GetCellFormula(sheet, col+"8")
		require.NoError(t, err)
		assert.Equal(t, "SUM("+col+"6:"+col+"7)", formula)
	}
}

func TestGenerate_NoRows_TotalsFollowHeader(t *testing.T) {
	f := openGenerated(t, nil)

	assert.Equal(t, "TOTALS", cell(t, f, "A6"))
}

func TestGenerate_CurrencyFlowsIntoHeaders(t *testing.T) {
	meta := sampleMetadata()
	meta.Currency = "$"
	data, err := report.Generate(sampleRows(), meta)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Wages Earned ($)", cell(t, f, "J5"))
	assert.Equal(t, "Amount Paid ($)", cell(t, f, "K5"))
	assert.Equal(t, "Pending ($)", cell(t, f, "L5"))
}

func TestGenerate_NoCurrency_DefaultsToRupee(t *testing.T) {
	meta := sampleMetadata()
	meta.Currency = ""
	data, err := report.Generate(nil, meta)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Wages Earned (₹)", cell(t, f, "J5"))
}
