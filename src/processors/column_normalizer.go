// backend/src/processors/column_normalizer.go
package processors

import "strings"

var labelSymbols = strings.NewReplacer(
	"$", "",
	"₹", "",
	"%", "",
	"(", "",
	")", "",
)

// NormalizeColumnName lowercases a header label, drops the symbols $ ₹ % ( ),
// trims it and turns inner spaces into underscores.
// "Amt ($)" becomes "amt".
func NormalizeColumnName(label string) string {
	c := labelSymbols.Replace(strings.ToLower(label))
	c = strings.TrimSpace(c)
	return strings.ReplaceAll(c, " ", "_")
}

// NormalizeColumns normalizes every label, keeping table order.
func NormalizeColumns(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = NormalizeColumnName(l)
	}
	return out
}
