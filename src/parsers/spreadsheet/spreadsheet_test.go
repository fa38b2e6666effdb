package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/processors"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestXLSXParser_FirstSheet(t *testing.T) {
	t.Parallel()
	buf := buildWorkbook(t, [][]interface{}{
		{"Description", "Amount", "Type"},
		{"Client A", 5000, "Income"},
		{"Rent", -1200, "Expense"},
	})

	table, err := NewXLSXParser().Parse(buf)
	require.NoError(t, err)
	require.Equal(t, []string{"Description", "Amount", "Type"}, table.Columns)
	require.Equal(t, [][]string{
		{"Client A", "5000", "Income"},
		{"Rent", "-1200", "Expense"},
	}, table.Rows)
}

func TestXLSXParser_ReadsStoredValues(t *testing.T) {
	t.Parallel()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows := [][]interface{}{
		{"Description", "Amount", "Date", "Booked", "Duration"},
		{"Client A", 5000, 45296, 45296.5, 0.25},
		{"Rent", -1200, 45294, 45294.5, 0.5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	accounting, err := f.NewStyle(&excelize.Style{NumFmt: 39})
	require.NoError(t, err)
	shortDate, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	dayFirst := "dd/mm/yyyy hh:mm"
	customDate, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dayFirst})
	require.NoError(t, err)
	clock := "[h]:mm"
	timeOnly, err := f.NewStyle(&excelize.Style{CustomNumFmt: &clock})
	require.NoError(t, err)

	require.NoError(t, f.SetCellStyle(sheet, "B2", "B3", accounting))
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C3", shortDate))
	require.NoError(t, f.SetCellStyle(sheet, "D2", "D3", customDate))
	require.NoError(t, f.SetCellStyle(sheet, "E2", "E3", timeOnly))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := NewXLSXParser().Parse(buf)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Client A", "5000", "2024-01-05", "2024-01-05 12:00:00", "0.25"},
		{"Rent", "-1200", "2024-01-03", "2024-01-03 12:00:00", "0.5"},
	}, table.Rows)

	ledger, _, err := processors.NewLedgerProcessor().Process(table)
	require.NoError(t, err)
	summary := processors.NewAggregator().Aggregate(ledger)
	require.Equal(t, 1200.0, summary.TotalExpenses)
	require.Equal(t, []models.MonthlyBucket{{Month: "2024-01", Sum: 3800, Count: 2}}, summary.MonthlyBreakdown)
	require.Equal(t, &models.DateRange{Start: "2024-01-03", End: "2024-01-05"}, summary.DateRange)
}

func TestIsDateFormatCode(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"yyyy-mm-dd":              true,
		"d-mmm-yy":                true,
		"[$-409]mmmm d, yyyy":     true,
		"h:mm:ss":                 false,
		"[h]:mm":                  false,
		"#,##0.00;[Red](#,##0.00)": false,
		`0.00 "days"`:             false,
		"General":                 false,
	}
	for code, want := range cases {
		require.Equal(t, want, isDateFormatCode(code), code)
	}
}

func TestXLSXParser_EmptySheet(t *testing.T) {
	t.Parallel()
	_, err := NewXLSXParser().Parse(buildWorkbook(t, nil))
	require.Error(t, err)
}

func TestParsers_RejectGarbage(t *testing.T) {
	t.Parallel()
	_, err := NewXLSXParser().Parse(strings.NewReader("not a workbook"))
	require.Error(t, err)
	_, err = NewXLSParser().Parse(strings.NewReader("not a workbook"))
	require.Error(t, err)
}
