// backend/src/processors/row_cleaner.go
package processors

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var amountSymbols = strings.NewReplacer("$", "", ",", "", "₹", "")

// ParseAmount strips $ , ₹ from a cell and parses what is left as a decimal.
// Empty, non-numeric or out-of-float64-range cells report false.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(amountSymbols.Replace(raw))
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if f, _ := d.Float64(); math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return d, true
}

// ParseTax parses a tax cell. Missing or unparseable values are zero and
// negative values are taken as magnitudes.
func ParseTax(raw string) decimal.Decimal {
	d, ok := ParseAmount(raw)
	if !ok {
		return decimal.Zero
	}
	return d.Abs()
}

// cleanedRow is a raw row whose amount parsed.
type cleanedRow struct {
	cells  []string
	amount decimal.Decimal
}

// cleanRows keeps the rows whose amount column parses and reports how many
// were dropped. Dropped rows are not errors.
func cleanRows(rows [][]string, amountIdx int) ([]cleanedRow, int) {
	kept := make([]cleanedRow, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		amount, ok := ParseAmount(row[amountIdx])
		if !ok {
			dropped++
			continue
		}
		kept = append(kept, cleanedRow{cells: row, amount: amount})
	}
	return kept, dropped
}
