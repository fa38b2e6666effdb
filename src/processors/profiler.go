// backend/src/processors/profiler.go
package processors

import (
	"math"
	"strconv"
	"strings"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/security/validation"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/utils"
)

const (
	profileSampleRows = 100
	dateSniffValues   = 10
)

// Profiler describes any RawTable regardless of whether it is ledger-shaped.
type Profiler struct{}

func NewProfiler() *Profiler { return &Profiler{} }

// Profile classifies columns, computes numeric stats and the Pearson
// correlation matrix, and keeps a display sample.
func (p *Profiler) Profile(table *models.RawTable) *models.GenericProfile {
	info := models.ColumnInfo{
		TotalColumns:   len(table.Columns),
		Columns:        append([]string(nil), table.Columns...),
		NumericColumns: []string{},
		TextColumns:    []string{},
		DateColumns:    []string{},
	}

	numeric := make(map[int][]*float64)
	var numericIdx []int
	isNumeric := make([]bool, len(table.Columns))
	for i, name := range table.Columns {
		cells := table.Column(i)
		if values, ok := parseNumericColumn(cells); ok {
			numeric[i] = values
			numericIdx = append(numericIdx, i)
			isNumeric[i] = true
			info.NumericColumns = append(info.NumericColumns, name)
			continue
		}
		if looksLikeDates(cells) {
			info.DateColumns = append(info.DateColumns, name)
		} else {
			info.TextColumns = append(info.TextColumns, name)
		}
	}
	info.NumericCount = len(info.NumericColumns)
	info.TextCount = len(info.TextColumns)
	info.DateCount = len(info.DateColumns)

	stats := make(map[string]models.ColumnStats, len(numericIdx))
	for _, i := range numericIdx {
		stats[table.Columns[i]] = columnStats(numeric[i])
	}

	correlation := []models.CorrelationCell{}
	if len(numericIdx) > 1 {
		for _, i := range numericIdx {
			for _, j := range numericIdx {
				correlation = append(correlation, models.CorrelationCell{
					X:     table.Columns[i],
					Y:     table.Columns[j],
					Value: pearson(numeric[i], numeric[j]),
				})
			}
		}
	}

	return &models.GenericProfile{
		ColumnInfo:  info,
		Stats:       stats,
		SampleData:  sampleData(table, numeric, isNumeric),
		Correlation: correlation,
	}
}

// parseNumericColumn succeeds when every non-empty cell is a number. Empty
// cells become nil. A column with no values at all counts as numeric.
func parseNumericColumn(cells []string) ([]*float64, bool) {
	values := make([]*float64, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil || math.IsInf(v, 0) {
			return nil, false
		}
		if math.IsNaN(v) {
			continue
		}
		values[i] = &v
	}
	return values, true
}

// looksLikeDates checks up to the first 10 non-empty cells.
func looksLikeDates(cells []string) bool {
	checked := 0
	for _, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if _, ok := utils.ParseDate(c); !ok {
			return false
		}
		checked++
		if checked == dateSniffValues {
			break
		}
	}
	return checked > 0
}

func columnStats(values []*float64) models.ColumnStats {
	var s models.ColumnStats
	n := 0
	sum := 0.0
	for _, v := range values {
		if v == nil {
			continue
		}
		if n == 0 || *v < s.Min {
			s.Min = *v
		}
		if n == 0 || *v > s.Max {
			s.Max = *v
		}
		sum += *v
		n++
	}
	if n > 0 {
		s.Mean = sum / float64(n)
	}
	return s
}

// pearson correlates two columns over rows where both have values.
// Undefined results (fewer than two pairs, zero variance) are 0.
func pearson(xs, ys []*float64) float64 {
	var n, sumX, sumY float64
	for k := range xs {
		if xs[k] == nil || ys[k] == nil {
			continue
		}
		sumX += *xs[k]
		sumY += *ys[k]
		n++
	}
	if n < 2 {
		return 0
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for k := range xs {
		if xs[k] == nil || ys[k] == nil {
			continue
		}
		dx, dy := *xs[k]-meanX, *ys[k]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	r := cov / math.Sqrt(varX*varY)
	if math.IsNaN(r) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

// sampleData renders the first rows as column -> value, numbers as floats
// and missing values as "".
func sampleData(table *models.RawTable, numeric map[int][]*float64, isNumeric []bool) []map[string]any {
	limit := len(table.Rows)
	if limit > profileSampleRows {
		limit = profileSampleRows
	}
	out := make([]map[string]any, 0, limit)
	for r := 0; r < limit; r++ {
		row := make(map[string]any, len(table.Columns))
		for c, name := range table.Columns {
			if isNumeric[c] {
				if v := numeric[c][r]; v != nil {
					row[name] = *v
				} else {
					row[name] = ""
				}
				continue
			}
			row[name] = validation.SanitizeCell(table.Rows[r][c])
		}
		out = append(out, row)
	}
	return out
}
