// backend/src/processors/column_mapper.go
package processors

import (
	"strings"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
)

// FieldRule is one entry of the keyword taxonomy: a canonical field and the
// column-name fragments that identify it, most specific first.
type FieldRule struct {
	Field    string
	Keywords []string
}

// Taxonomy is evaluated in order. Changing the order or the keyword lists
// changes which columns uploads map to.
var Taxonomy = []FieldRule{
	{Field: models.FieldAmount, Keywords: []string{"amount", "total", "value", "price", "amt", "sum", "debit", "credit"}},
	{Field: models.FieldDate, Keywords: []string{"date", "txn_date", "invoice_date", "posting_date", "transaction_date", "datetime"}},
	{Field: models.FieldType, Keywords: []string{"type", "dr_cr", "credit_debit", "income_expense", "transaction_type"}},
	{Field: models.FieldCategory, Keywords: []string{"category", "head", "purpose", "expense_type", "expense_category"}},
	{Field: models.FieldCustomer, Keywords: []string{"customer", "client", "buyer", "party", "vendor", "particulars", "description"}},
	{Field: models.FieldTax, Keywords: []string{"gst", "tax", "vat", "igst", "cgst", "sgst"}},
}

// MapColumns resolves each taxonomy field against normalized column labels.
// An exact label match on any keyword (keyword order, then table order) wins
// over a substring match; the substring pass takes the first column in table
// order containing any keyword. Fields with no match stay unmapped.
// A missing amount column is a *MappingError.
func MapColumns(normalized []string) (models.ColumnMapping, error) {
	mapping := make(models.ColumnMapping, len(Taxonomy))
	for _, rule := range Taxonomy {
		if idx, ok := exactMatch(normalized, rule.Keywords); ok {
			mapping[rule.Field] = models.ColumnBinding{Column: normalized[idx], Index: idx}
			continue
		}
		if idx, ok := substringMatch(normalized, rule.Keywords); ok {
			mapping[rule.Field] = models.ColumnBinding{Column: normalized[idx], Index: idx}
		}
	}

	if !mapping.Has(models.FieldAmount) {
		return nil, &MappingError{Field: models.FieldAmount}
	}
	return mapping, nil
}

func exactMatch(columns, keywords []string) (int, bool) {
	for _, kw := range keywords {
		for i, col := range columns {
			if col == kw {
				return i, true
			}
		}
	}
	return -1, false
}

func substringMatch(columns, keywords []string) (int, bool) {
	for i, col := range columns {
		for _, kw := range keywords {
			if strings.Contains(col, kw) {
				return i, true
			}
		}
	}
	return -1, false
}
