// backend/src/parsers/spreadsheet/xlsx.go
package spreadsheet

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/xuri/excelize/v2"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Built-in number formats that render a serial as a calendar date.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// Quoted literals, escapes and bracketed sections ([Red], [$-409]) in a
// format code never carry date tokens.
var formatNoise = regexp.MustCompile(`"[^"]*"|\\.|\[[^\]]*\]`)

// XLSXParser reads the first sheet of an Office Open XML workbook.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse reads stored cell values rather than their display text, so number
// formats such as accounting negatives do not leak into amounts. Date-styled
// serials are converted to ISO dates.
func (p *XLSXParser) Parse(file io.Reader) (*models.RawTable, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: failed to open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.L.Warn("Failed to close xlsx workbook", "error", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx parser: workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: failed to read sheet %q: %w", sheet, err)
	}

	dates := newDateStyles(f)
	converted := 0
	for r, row := range rows {
		for c, raw := range row {
			serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			if !dates.isDateCell(sheet, cell) {
				continue
			}
			if v, ok := dates.format(serial); ok {
				row[c] = v
				converted++
			}
		}
	}

	table, err := models.NewRawTable(rows)
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: %w", err)
	}
	logger.L.Debug("XLSX workbook parsed", "sheet", sheet, "columns", len(table.Columns), "rows", len(table.Rows), "dateCells", converted)
	return table, nil
}

// dateStyles memoizes whether a style index renders as a date.
type dateStyles struct {
	f        *excelize.File
	date1904 bool
	byStyle  map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	d := &dateStyles{f: f, byStyle: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateStyles) isDateCell(sheet, cell string) bool {
	idx, err := d.f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	if isDate, ok := d.byStyle[idx]; ok {
		return isDate
	}

	isDate := false
	if style, err := d.f.GetStyle(idx); err == nil && style != nil {
		switch {
		case builtinDateFormats[style.NumFmt]:
			isDate = true
		case style.CustomNumFmt != nil:
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	d.byStyle[idx] = isDate
	return isDate
}

func (d *dateStyles) format(serial float64) (string, bool) {
	if serial < 0 {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(dateLayout), true
	}
	return t.Format(dateTimeLayout), true
}

// isDateFormatCode reports whether a custom format code shows a day or year.
// Pure time formats (h:mm) and numeric formats are not dates.
func isDateFormatCode(code string) bool {
	code = strings.ToLower(formatNoise.ReplaceAllString(code, ""))
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}
	return strings.ContainsAny(code, "dy")
}
