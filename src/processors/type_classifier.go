// backend/src/processors/type_classifier.go
package processors

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
)

// IncomeKeywords mark a type cell as income; anything else is an expense.
var IncomeKeywords = []string{"income", "revenue", "credit", "receipt", "sale", "sales"}

// ClassifyByLabel labels a row from an explicit type column.
func ClassifyByLabel(label string) string {
	l := strings.ToLower(label)
	for _, kw := range IncomeKeywords {
		if strings.Contains(l, kw) {
			return models.TypeIncome
		}
	}
	return models.TypeExpense
}

// ClassifyBySign labels a row from its amount when no type column exists.
func ClassifyBySign(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return models.TypeIncome
	}
	return models.TypeExpense
}
