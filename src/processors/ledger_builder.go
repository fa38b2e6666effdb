// backend/src/processors/ledger_builder.go
package processors

import (
	"github.com/shopspring/decimal"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/security/validation"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/utils"
)

// LedgerProcessor turns a RawTable of unknown schema into a validated CanonicalLedger.
type LedgerProcessor struct{}

func NewLedgerProcessor() *LedgerProcessor { return &LedgerProcessor{} }

// Process runs normalize, map, clean, classify, build and validate in order.
// It returns a *MappingError when no amount column exists and a
// *ValidationError when the ledger is empty or one-sided.
func (p *LedgerProcessor) Process(table *models.RawTable) (models.CanonicalLedger, models.ColumnMapping, error) {
	normalized := NormalizeColumns(table.Columns)
	mapping, err := MapColumns(normalized)
	if err != nil {
		logger.L.Info("Column mapping failed", "columns", normalized, "error", err)
		return nil, nil, err
	}

	rows, dropped := cleanRows(table.Rows, mapping[models.FieldAmount].Index)
	if dropped > 0 {
		logger.L.Debug("Dropped rows with unparseable amounts", "dropped", dropped, "kept", len(rows))
	}

	ledger := buildLedger(rows, mapping)
	if err := ValidateLedger(ledger); err != nil {
		return nil, nil, err
	}
	return ledger, mapping, nil
}

// buildLedger assembles the canonical columns, filling unmapped or blank
// optional fields with their defaults.
func buildLedger(rows []cleanedRow, mapping models.ColumnMapping) models.CanonicalLedger {
	cell := func(row cleanedRow, field string) (string, bool) {
		b, ok := mapping[field]
		if !ok {
			return "", false
		}
		return row.cells[b.Index], true
	}

	ledger := make(models.CanonicalLedger, 0, len(rows))
	for _, row := range rows {
		entry := models.LedgerEntry{
			Amount:   row.amount,
			Category: models.DefaultCategory,
			Customer: models.DefaultCustomer,
			Tax:      decimal.Zero,
		}

		if label, ok := cell(row, models.FieldType); ok {
			entry.Type = ClassifyByLabel(label)
		} else {
			entry.Type = ClassifyBySign(row.amount)
		}

		if raw, ok := cell(row, models.FieldDate); ok {
			if t, ok := utils.ParseDate(raw); ok {
				entry.Date = &t
			}
		}
		if raw, ok := cell(row, models.FieldCategory); ok {
			if v := validation.SanitizeCell(raw); v != "" {
				entry.Category = v
			}
		}
		if raw, ok := cell(row, models.FieldCustomer); ok {
			if v := validation.SanitizeCell(raw); v != "" {
				entry.Customer = v
			}
		}
		if raw, ok := cell(row, models.FieldTax); ok {
			entry.Tax = ParseTax(raw)
		}

		ledger = append(ledger, entry)
	}
	return ledger
}
