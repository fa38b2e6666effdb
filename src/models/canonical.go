// backend/src/models/canonical.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical field names a source column can be mapped to.
const (
	FieldAmount   = "amount"
	FieldDate     = "date"
	FieldType     = "type"
	FieldCategory = "category"
	FieldCustomer = "customer"
	FieldTax      = "tax"
)

// CanonicalFields lists the ledger columns in output order.
var CanonicalFields = []string{FieldAmount, FieldType, FieldDate, FieldCategory, FieldCustomer, FieldTax}

// Transaction types assigned by the classifier.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Ledger defaults for unmapped optional fields.
const (
	DefaultCategory = "General"
	DefaultCustomer = "Unknown"
)

// ColumnBinding points a canonical field at a source column.
type ColumnBinding struct {
	Column string `json:"column"` // normalized label
	Index  int    `json:"index"`
}

// ColumnMapping maps canonical field names to the source column they were resolved from.
type ColumnMapping map[string]ColumnBinding

// Has reports whether field was resolved.
func (m ColumnMapping) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// LedgerEntry is one normalized transaction.
type LedgerEntry struct {
	Amount   decimal.Decimal // signed as found in the source
	Type     string          // TypeIncome or TypeExpense
	Date     *time.Time      // nil when unmapped or unparseable
	Category string
	Customer string
	Tax      decimal.Decimal // never negative
}

// IsIncome reports whether the entry was classified as income.
func (e LedgerEntry) IsIncome() bool { return e.Type == TypeIncome }

// CanonicalLedger is the validated transaction table all aggregation works on.
type CanonicalLedger []LedgerEntry
