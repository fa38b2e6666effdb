package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/analysis"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/parsers"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/processors"
)

const referenceCSV = "Description,Amount,Type,Date\n" +
	"Client A,5000,Income,2024-01-05\n" +
	"Rent,-1200,Expense,2024-01-03\n"

func newTestFinancialService() FinancialService {
	return NewFinancialService(
		processors.NewLedgerProcessor(),
		processors.NewAggregator(),
		processors.NewProfiler(),
		analysis.NewRuleBasedEngine(),
	)
}

func TestProcess_ReferenceUpload(t *testing.T) {
	t.Parallel()
	svc := newTestFinancialService()

	summary, err := svc.Process(context.Background(), []byte(referenceCSV), "ledger.csv")
	require.NoError(t, err)

	require.Equal(t, 5000.0, summary.TotalRevenue)
	require.Equal(t, 1200.0, summary.TotalExpenses)
	require.Equal(t, 3800.0, summary.NetProfit)
	require.Equal(t, 76.0, summary.ProfitMargin)
	require.Equal(t, 24.0, summary.ExpenseRatio)
	require.Equal(t, map[string]float64{"General": 6200}, summary.Categories)
	require.Equal(t, []models.MonthlyBucket{{Month: "2024-01", Sum: 3800, Count: 2}}, summary.MonthlyBreakdown)

	require.True(t, summary.ColumnMapping.Has(models.FieldAmount))
	require.Equal(t, "amount", summary.ColumnMapping[models.FieldAmount].Column)
	require.NotNil(t, summary.GenericMetadata)
	require.Equal(t, 4, summary.GenericMetadata.ColumnInfo.TotalColumns)
	require.Contains(t, summary.GenericMetadata.ColumnInfo.NumericColumns, "Amount")
}

func TestProcess_Idempotent(t *testing.T) {
	t.Parallel()
	svc := newTestFinancialService()

	first, err := svc.Process(context.Background(), []byte(referenceCSV), "ledger.csv")
	require.NoError(t, err)
	second, err := svc.Process(context.Background(), []byte(referenceCSV), "ledger.csv")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestProcess_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		filename string
		sentinel error
		message  string
	}{
		{
			name:     "unsupported extension",
			data:     referenceCSV,
			filename: "ledger.pdf",
			sentinel: ErrFormat,
		},
		{
			name:     "no amount column",
			data:     "Description,Type\nRent,Expense\n",
			filename: "ledger.csv",
			sentinel: ErrMapping,
			message:  "Error: 'Amount' column not detected. Please ensure your file has an amount field.",
		},
		{
			name:     "expenses only",
			data:     "Description,Amount\nRent,-1200\nPower,-300\n",
			filename: "ledger.csv",
			sentinel: ErrValidation,
			message:  "Error: File must contain both Income and Expense transactions.",
		},
		{
			name:     "no parseable amounts",
			data:     "Description,Amount\nRent,abc\n",
			filename: "ledger.csv",
			sentinel: ErrValidation,
			message:  "Error: No valid financial data found.",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			summary, err := newTestFinancialService().Process(context.Background(), []byte(tt.data), tt.filename)
			require.Nil(t, summary)
			require.ErrorIs(t, err, tt.sentinel)
			if tt.message != "" {
				require.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestProcess_UnsupportedFormatIsDetectable(t *testing.T) {
	t.Parallel()
	_, err := newTestFinancialService().Process(context.Background(), []byte("x"), "notes.docx")
	require.True(t, errors.Is(err, parsers.ErrUnsupportedFormat))
}

func TestProfile_NonLedgerTable(t *testing.T) {
	t.Parallel()
	data := "Height,Weight,Name\n1.8,80,Ann\n1.6,60,Bob\n1.7,70,Cid\n"

	profile, err := newTestFinancialService().Profile(context.Background(), []byte(data), "people.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"Height", "Weight"}, profile.ColumnInfo.NumericColumns)
	require.Equal(t, []string{"Name"}, profile.ColumnInfo.TextColumns)
	require.NotEmpty(t, profile.Correlation)
}

func TestAnalyzeAndTranslate(t *testing.T) {
	t.Parallel()
	svc := newTestFinancialService()
	ctx := context.Background()

	summary, err := svc.Process(ctx, []byte(referenceCSV), "ledger.csv")
	require.NoError(t, err)

	result, err := svc.Analyze(ctx, summary, "", "en")
	require.NoError(t, err)
	require.Equal(t, "Healthy", result.Status)
	require.Equal(t, 15.0, result.IndustryBenchmarks.ProfitMarginAvg)

	translated, err := svc.Translate(ctx, result, "hi", models.ContextFromSummary(summary, "General"))
	require.NoError(t, err)
	require.Equal(t, "स्वस्थ", translated.Status)
	require.Equal(t, result.HealthScore, translated.HealthScore)

	_, err = svc.Analyze(ctx, nil, "General", "en")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Translate(ctx, nil, "hi", models.TranslationContext{})
	require.ErrorIs(t, err, ErrInvalidInput)
}
