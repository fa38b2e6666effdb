// backend/src/processors/aggregator.go
package processors

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/utils"
)

const (
	topN            = 5
	sampleRowsLimit = 10
)

var hundred = decimal.NewFromInt(100)

// Keyword sets for the balance-sheet proxies, matched against lowercased
// category text. A row may count towards more than one proxy.
var (
	receivableKeywords = []string{"receivable", "debtor", "due from"}
	payableKeywords    = []string{"payable", "creditor", "due to"}
	inventoryKeywords  = []string{"inventory", "stock", "raw material"}
	debtKeywords       = []string{"loan", "liability", "mortgage", "debt"}
)

// Aggregator derives a FinancialSummary from a validated ledger.
type Aggregator struct{}

func NewAggregator() *Aggregator { return &Aggregator{} }

// Aggregate is a pure function of the ledger.
func (a *Aggregator) Aggregate(ledger models.CanonicalLedger) *models.FinancialSummary {
	var revenue, expenses, tax decimal.Decimal
	var receivable, payable, inventory, debt decimal.Decimal
	categories := make(map[string]decimal.Decimal)
	incomeByCategory := make(map[string]decimal.Decimal)
	expenseByCategory := make(map[string]decimal.Decimal)

	for _, e := range ledger {
		abs := e.Amount.Abs()
		if e.IsIncome() {
			revenue = revenue.Add(e.Amount)
			incomeByCategory[e.Category] = incomeByCategory[e.Category].Add(e.Amount)
		} else {
			expenses = expenses.Add(abs)
			expenseByCategory[e.Category] = expenseByCategory[e.Category].Add(abs)
		}
		categories[e.Category] = categories[e.Category].Add(abs)
		tax = tax.Add(e.Tax)

		cat := strings.ToLower(e.Category)
		if containsAny(cat, receivableKeywords) {
			receivable = receivable.Add(e.Amount)
		}
		if containsAny(cat, payableKeywords) {
			payable = payable.Add(e.Amount)
		}
		if containsAny(cat, inventoryKeywords) {
			inventory = inventory.Add(e.Amount)
		}
		if containsAny(cat, debtKeywords) {
			debt = debt.Add(e.Amount)
		}
	}
	profit := revenue.Sub(expenses)

	var margin, expenseRatio decimal.Decimal
	if revenue.IsPositive() {
		margin = profit.Div(revenue).Mul(hundred)
		expenseRatio = expenses.Div(revenue).Mul(hundred)
	}

	summary := &models.FinancialSummary{
		TotalRevenue:       revenue.InexactFloat64(),
		TotalExpenses:      expenses.InexactFloat64(),
		NetProfit:          profit.InexactFloat64(),
		ProfitMargin:       margin.InexactFloat64(),
		ExpenseRatio:       expenseRatio.InexactFloat64(),
		RowCount:           len(ledger),
		Columns:            append([]string(nil), models.CanonicalFields...),
		Categories:         toFloatMap(categories),
		TopExpenses:        topCategories(expenseByCategory, topN),
		TopRevenueSources:  topCategories(incomeByCategory, topN),
		AccountsReceivable: receivable.InexactFloat64(),
		AccountsPayable:    payable.InexactFloat64(),
		InventoryValue:     inventory.InexactFloat64(),
		TotalDebt:          debt.InexactFloat64(),
		TaxMetadata:        models.TaxMetadata{EstimatedTaxPayable: tax.InexactFloat64()},
	}
	summary.MonthlyBreakdown, summary.DateRange = monthlySeries(ledger)
	summary.SampleTransactions = sampleRows(ledger, sampleRowsLimit)
	return summary
}

// topCategories returns at most n groups by descending amount, ties broken by name.
func topCategories(groups map[string]decimal.Decimal, n int) []models.CategoryAmount {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c := groups[names[i]].Cmp(groups[names[j]]); c != 0 {
			return c > 0
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}

	out := make([]models.CategoryAmount, 0, len(names))
	for _, name := range names {
		out = append(out, models.CategoryAmount{Category: name, Amount: groups[name].InexactFloat64()})
	}
	return out
}

// monthlySeries buckets dated rows by calendar month in chronological order.
// Rows without a date are left out of the series and the range.
func monthlySeries(ledger models.CanonicalLedger) ([]models.MonthlyBucket, *models.DateRange) {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	var first, last *models.LedgerEntry
	for i := range ledger {
		e := &ledger[i]
		if e.Date == nil {
			continue
		}
		key := e.Date.Format(utils.YearMonthFormat)
		sums[key] = sums[key].Add(e.Amount)
		counts[key]++
		if first == nil || e.Date.Before(*first.Date) {
			first = e
		}
		if last == nil || e.Date.After(*last.Date) {
			last = e
		}
	}

	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Strings(months)

	series := make([]models.MonthlyBucket, 0, len(months))
	for _, m := range months {
		series = append(series, models.MonthlyBucket{Month: m, Sum: sums[m].InexactFloat64(), Count: counts[m]})
	}

	if first == nil {
		return series, nil
	}
	return series, &models.DateRange{
		Start: first.Date.Format(utils.DateFormat),
		End:   last.Date.Format(utils.DateFormat),
	}
}

func sampleRows(ledger models.CanonicalLedger, limit int) []models.SampleTransaction {
	if len(ledger) < limit {
		limit = len(ledger)
	}
	out := make([]models.SampleTransaction, 0, limit)
	for _, e := range ledger[:limit] {
		s := models.SampleTransaction{
			Amount:   e.Amount.InexactFloat64(),
			Type:     e.Type,
			Category: e.Category,
			Customer: e.Customer,
			Tax:      e.Tax.InexactFloat64(),
		}
		if e.Date != nil {
			s.Date = e.Date.Format(utils.DateTimeFormat)
		}
		out = append(out, s)
	}
	return out
}

func toFloatMap(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v.InexactFloat64()
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
