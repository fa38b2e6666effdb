// backend/src/models/profile.go
package models

type ColumnInfo struct {
	TotalColumns   int      `json:"total_columns"`
	NumericCount   int      `json:"numeric_count"`
	TextCount      int      `json:"text_count"`
	DateCount      int      `json:"date_count"`
	Columns        []string `json:"columns"`
	NumericColumns []string `json:"numeric_columns"`
	TextColumns    []string `json:"text_columns"`
	DateColumns    []string `json:"date_columns"`
}

type ColumnStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// CorrelationCell is one entry of the flattened correlation matrix.
type CorrelationCell struct {
	X     string  `json:"x"`
	Y     string  `json:"y"`
	Value float64 `json:"value"`
}

// GenericProfile describes any uploaded table, ledger-shaped or not.
type GenericProfile struct {
	ColumnInfo  ColumnInfo             `json:"column_info"`
	Stats       map[string]ColumnStats `json:"stats"`
	SampleData  []map[string]any       `json:"sample_data"`
	Correlation []CorrelationCell      `json:"correlation"`
}
