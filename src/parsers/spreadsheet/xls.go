// backend/src/parsers/spreadsheet/xls.go
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shakinm/xlsReader/xls"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
)

// XLSParser reads the first sheet of a legacy BIFF (.xls) workbook.
type XLSParser struct{}

func NewXLSParser() *XLSParser {
	return &XLSParser{}
}

func (p *XLSParser) Parse(file io.Reader) (*models.RawTable, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("xls parser: failed to read file: %w", err)
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xls parser: failed to open workbook: %w", err)
	}
	if len(workbook.GetSheets()) == 0 {
		return nil, fmt.Errorf("xls parser: workbook has no sheets")
	}

	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("xls parser: failed to get first sheet: %w", err)
	}

	var records [][]string
	for _, row := range sheet.GetRows() {
		var record []string
		for _, cell := range row.GetCols() {
			record = append(record, cell.GetString())
		}
		records = append(records, record)
	}

	table, err := models.NewRawTable(records)
	if err != nil {
		return nil, fmt.Errorf("xls parser: %w", err)
	}
	logger.L.Debug("XLS workbook parsed", "columns", len(table.Columns), "rows", len(table.Rows))
	return table, nil
}
