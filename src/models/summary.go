// backend/src/models/summary.go
package models

// CategoryAmount is one entry of a top-N breakdown.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthlyBucket aggregates ledger rows for one calendar month ("YYYY-MM").
type MonthlyBucket struct {
	Month string  `json:"month"`
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TaxMetadata struct {
	EstimatedTaxPayable float64 `json:"estimated_tax_payable"`
}

// SampleTransaction is a display copy of a ledger row. Date is
// "2006-01-02 15:04:05" or empty when the row has no date.
type SampleTransaction struct {
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Customer string  `json:"customer"`
	Tax      float64 `json:"tax"`
}

// FinancialSummary is derived from a CanonicalLedger on every request.
type FinancialSummary struct {
	TotalRevenue      float64            `json:"total_revenue"`
	TotalExpenses     float64            `json:"total_expenses"`
	NetProfit         float64            `json:"net_profit"`
	ProfitMargin      float64            `json:"profit_margin"`
	ExpenseRatio      float64            `json:"expense_ratio"`
	RowCount          int                `json:"row_count"`
	Columns           []string           `json:"columns"`
	DateRange         *DateRange         `json:"date_range"`
	Categories        map[string]float64 `json:"categories"`
	TopExpenses       []CategoryAmount   `json:"top_expenses"`
	TopRevenueSources []CategoryAmount   `json:"top_revenue_sources"`
	MonthlyBreakdown  []MonthlyBucket    `json:"monthly_breakdown"`

	AccountsReceivable float64 `json:"accounts_receivable"`
	AccountsPayable    float64 `json:"accounts_payable"`
	InventoryValue     float64 `json:"inventory_value"`
	TotalDebt          float64 `json:"total_debt"`

	TaxMetadata        TaxMetadata         `json:"tax_metadata"`
	SampleTransactions []SampleTransaction `json:"sample_transactions"`

	ColumnMapping   ColumnMapping   `json:"column_mapping,omitempty"`
	GenericMetadata *GenericProfile `json:"generic_metadata,omitempty"`
}
