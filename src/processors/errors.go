// backend/src/processors/errors.go
package processors

import (
	"fmt"
	"strings"
)

// MappingError reports a mandatory canonical field that no column could be mapped to.
type MappingError struct {
	Field string
}

func (e *MappingError) Error() string {
	label := e.Field
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return fmt.Sprintf("Error: '%s' column not detected. Please ensure your file has an %s field.", label, e.Field)
}

// ValidationError reports a ledger that cannot be analyzed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	errEmptyLedger = &ValidationError{Reason: "Error: No valid financial data found."}
	errOneSided    = &ValidationError{Reason: "Error: File must contain both Income and Expense transactions."}
)
