// backend/src/processors/validator.go
package processors

import "github.com/sivasakthivelp04-cell/finsight-ai/src/models"

// ValidateLedger rejects ledgers that are empty or hold only one transaction type.
func ValidateLedger(ledger models.CanonicalLedger) error {
	if len(ledger) == 0 {
		return errEmptyLedger
	}
	var hasIncome, hasExpense bool
	for _, e := range ledger {
		if e.IsIncome() {
			hasIncome = true
		} else {
			hasExpense = true
		}
		if hasIncome && hasExpense {
			return nil
		}
	}
	return errOneSided
}
