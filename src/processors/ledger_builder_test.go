package processors

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, header []string, rows ...[]string) *models.RawTable {
	t.Helper()
	table, err := models.NewRawTable(append([][]string{header}, rows...))
	require.NoError(t, err)
	return table
}

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Amt ($)":            "amt",
		"  Total Amount (₹) ": "total_amount",
		"GST %":              "gst",
		"Txn Date":           "txn_date",
		"Customer":           "customer",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeColumnName(in), in)
	}
}

func TestMapColumns_SubstringMatchForSymbolLabel(t *testing.T) {
	t.Parallel()
	mapping, err := MapColumns(NormalizeColumns([]string{"Date", "Amt ($)"}))
	require.NoError(t, err)
	require.Equal(t, models.ColumnBinding{Column: "amt", Index: 1}, mapping[models.FieldAmount])
	require.Equal(t, 0, mapping[models.FieldDate].Index)
}

func TestMapColumns_ExactBeatsSubstring(t *testing.T) {
	t.Parallel()
	mapping, err := MapColumns([]string{"total_amount", "amount"})
	require.NoError(t, err)
	require.Equal(t, 1, mapping[models.FieldAmount].Index)
}

func TestMapColumns_ExactFollowsKeywordOrder(t *testing.T) {
	t.Parallel()
	mapping, err := MapColumns([]string{"total", "amount"})
	require.NoError(t, err)
	require.Equal(t, "amount", mapping[models.FieldAmount].Column)
}

func TestMapColumns_SubstringFollowsTableOrder(t *testing.T) {
	t.Parallel()
	mapping, err := MapColumns([]string{"net_value", "gross_amount"})
	require.NoError(t, err)
	require.Equal(t, 0, mapping[models.FieldAmount].Index)
}

func TestMapColumns_OptionalFieldsUnmapped(t *testing.T) {
	t.Parallel()
	mapping, err := MapColumns([]string{"amount"})
	require.NoError(t, err)
	require.Len(t, mapping, 1)
	require.False(t, mapping.Has(models.FieldDate))
}

func TestMapColumns_MissingAmount(t *testing.T) {
	t.Parallel()
	for _, cols := range [][]string{
		{"date", "description", "category"},
		{"name", "notes"},
		{},
	} {
		_, err := MapColumns(cols)
		var mErr *MappingError
		require.True(t, errors.As(err, &mErr), cols)
		require.Equal(t, models.FieldAmount, mErr.Field)
		require.Contains(t, err.Error(), "'Amount' column not detected")
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"$1,200.50": "1200.5",
		"₹ 5000":    "5000",
		"-300":      "-300",
		" 42 ":      "42",
	}
	for in, want := range cases {
		got, ok := ParseAmount(in)
		require.True(t, ok, in)
		require.True(t, got.Equal(decimal.RequireFromString(want)), "%s -> %s", in, got)
	}
	for _, bad := range []string{"", "n/a", "$", "12abc", "1e400", "-1e400"} {
		_, ok := ParseAmount(bad)
		require.False(t, ok, bad)
	}
}

func TestParseTax_NonNegative(t *testing.T) {
	t.Parallel()
	require.True(t, ParseTax("-18").Equal(decimal.NewFromInt(18)))
	require.True(t, ParseTax("").IsZero())
	require.True(t, ParseTax("abc").IsZero())
}

func TestClassifyByLabel(t *testing.T) {
	t.Parallel()
	require.Equal(t, models.TypeIncome, ClassifyByLabel("Income"))
	require.Equal(t, models.TypeIncome, ClassifyByLabel("CREDIT"))
	require.Equal(t, models.TypeIncome, ClassifyByLabel("Product Sales"))
	require.Equal(t, models.TypeExpense, ClassifyByLabel("Debit"))
	require.Equal(t, models.TypeExpense, ClassifyByLabel(""))
}

func TestClassifyBySign(t *testing.T) {
	t.Parallel()
	require.Equal(t, models.TypeIncome, ClassifyBySign(decimal.NewFromInt(1)))
	require.Equal(t, models.TypeExpense, ClassifyBySign(decimal.Zero))
	require.Equal(t, models.TypeExpense, ClassifyBySign(decimal.NewFromInt(-1)))
}

func TestLedgerProcessor_DefaultsAndDroppedRows(t *testing.T) {
	t.Parallel()
	table := newTable(t,
		[]string{"Amount", "Notes"},
		[]string{"$1,000", "first"},
		[]string{"n/a", "bad"},
		[]string{"-250", "second"},
	)

	ledger, mapping, err := NewLedgerProcessor().Process(table)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	require.Equal(t, 0, mapping[models.FieldAmount].Index)

	require.Equal(t, models.TypeIncome, ledger[0].Type)
	require.Equal(t, models.TypeExpense, ledger[1].Type)
	for _, e := range ledger {
		require.Equal(t, models.DefaultCategory, e.Category)
		require.Equal(t, models.DefaultCustomer, e.Customer)
		require.Nil(t, e.Date)
		require.True(t, e.Tax.IsZero())
	}
}

func TestLedgerProcessor_MappedFields(t *testing.T) {
	t.Parallel()
	table := newTable(t,
		[]string{"Txn Date", "Party", "Head", "Dr/Cr Type", "Value", "GST"},
		[]string{"2024-02-01", "Acme", "Consulting", "Credit", "1000", "180"},
		[]string{"not a date", "", "", "Debit", "400", "-72"},
	)

	ledger, _, err := NewLedgerProcessor().Process(table)
	require.NoError(t, err)
	require.Len(t, ledger, 2)

	require.Equal(t, models.TypeIncome, ledger[0].Type)
	require.Equal(t, "Acme", ledger[0].Customer)
	require.Equal(t, "Consulting", ledger[0].Category)
	require.NotNil(t, ledger[0].Date)
	require.Equal(t, "2024-02-01", ledger[0].Date.Format("2006-01-02"))
	require.True(t, ledger[0].Tax.Equal(decimal.NewFromInt(180)))

	// explicit type column wins over the sign of the amount
	require.Equal(t, models.TypeExpense, ledger[1].Type)
	require.Nil(t, ledger[1].Date)
	require.Equal(t, models.DefaultCustomer, ledger[1].Customer)
	require.Equal(t, models.DefaultCategory, ledger[1].Category)
	require.True(t, ledger[1].Tax.Equal(decimal.NewFromInt(72)))
}

func TestLedgerProcessor_SanitizesMarkup(t *testing.T) {
	t.Parallel()
	table := newTable(t,
		[]string{"Amount", "Category"},
		[]string{"10", "<b>Sales</b>"},
		[]string{"-5", "Food & Drinks"},
	)
	ledger, _, err := NewLedgerProcessor().Process(table)
	require.NoError(t, err)
	require.Equal(t, "Sales", ledger[0].Category)
	require.Equal(t, "Food & Drinks", ledger[1].Category)
}

func TestLedgerProcessor_MissingAmountColumn(t *testing.T) {
	t.Parallel()
	table := newTable(t, []string{"Date", "Description"}, []string{"2024-01-01", "x"})
	_, _, err := NewLedgerProcessor().Process(table)
	var mErr *MappingError
	require.ErrorAs(t, err, &mErr)
	require.Equal(t, "amount", mErr.Field)
}

func TestLedgerProcessor_OnlyExpenses(t *testing.T) {
	t.Parallel()
	table := newTable(t,
		[]string{"Amount", "Type"},
		[]string{"100", "Expense"},
		[]string{"200", "Purchase"},
	)
	_, _, err := NewLedgerProcessor().Process(table)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Error(), "both Income and Expense")
}

func TestLedgerProcessor_OnlyIncome(t *testing.T) {
	t.Parallel()
	table := newTable(t, []string{"Amount"}, []string{"100"}, []string{"5"})
	_, _, err := NewLedgerProcessor().Process(table)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestLedgerProcessor_EmptyAfterCleaning(t *testing.T) {
	t.Parallel()
	table := newTable(t, []string{"Amount"}, []string{"abc"}, []string{"--"})
	_, _, err := NewLedgerProcessor().Process(table)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "Error: No valid financial data found.", vErr.Error())
}
