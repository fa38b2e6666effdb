// backend/src/models/table.go
package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNoHeader is returned when an upload has no usable header row.
var ErrNoHeader = errors.New("file has no header row")

// RawTable is a parsed upload before any schema inference: the header labels
// as written by the user and the data rows as text cells.
// Every row has exactly len(Columns) cells.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// NewRawTable builds a RawTable from parsed records where the first non-blank
// record is the header. Blank headers become "Unnamed: <i>" and repeated
// headers get a ".<n>" suffix so column names stay unique. Labels are NFC
// normalized so visually equal headers compare equal. Short rows are
// padded, long rows truncated and fully blank rows skipped.
func NewRawTable(records [][]string) (*RawTable, error) {
	headerIdx := -1
	for i, rec := range records {
		if !isBlankRecord(rec) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoHeader
	}

	header := records[headerIdx]
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := norm.NFC.String(strings.TrimSpace(h))
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		columns[i] = name
	}

	table := &RawTable{Columns: columns}
	for _, rec := range records[headerIdx+1:] {
		if isBlankRecord(rec) {
			continue
		}
		row := make([]string, len(columns))
		copy(row, rec)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// Column returns the cells of column idx in row order.
func (t *RawTable) Column(idx int) []string {
	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row[idx]
	}
	return cells
}

func isBlankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
