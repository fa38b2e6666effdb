// backend/src/analysis/rule_based.go
package analysis

import (
	"context"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/utils"
)

const (
	baseScore        = 65
	maxRuleScore     = 92
	healthyThreshold = 70

	highARShare   = 0.2 // receivables above this share of revenue
	highDebtShare = 0.4
	highMargin    = 20.0
	lowMargin     = 15.0

	expenseRatioElevated = 30.0
	expenseRatioSevere   = 50.0

	benchmarkMarginGeneral  = 15.0
	benchmarkMarginIndustry = 18.5
	benchmarkRevenueGrowth  = 12.0
	benchmarkExpenseRatio   = 72.0
	aboveAverageMargin      = 18.0

	creditScoreFactor = 0.9
)

const (
	severityMedium = "Medium"
	severityHigh   = "High"

	workingCapitalGood     = "Good"
	workingCapitalWarning  = "Warning"
	workingCapitalCritical = "Critical"

	generalIndustry = "General"
)

var complianceWatch = []string{"GST", "TDS", "Income Tax"}

// RuleBasedEngine scores a summary with fixed thresholds and picks every
// narrative string from the phrasebook of the requested language.
type RuleBasedEngine struct{}

var _ Engine = (*RuleBasedEngine)(nil)

func NewRuleBasedEngine() *RuleBasedEngine {
	return &RuleBasedEngine{}
}

// HealthScore computes the deterministic score in [0, 92].
func HealthScore(s *models.FinancialSummary) int {
	score := baseScore
	if s.NetProfit > 0 {
		score += 15
	}
	if s.ProfitMargin > highMargin {
		score += 10
	}
	if s.AccountsReceivable < s.AccountsPayable && s.AccountsReceivable > 0 {
		score += 5
	}
	if s.TotalDebt > s.TotalRevenue*highDebtShare {
		score -= 20
	}
	if s.ProfitMargin < lowMargin {
		score -= 10
	}
	return utils.ClampInt(score, 0, maxRuleScore)
}

func (e *RuleBasedEngine) Analyze(ctx context.Context, s *models.FinancialSummary, industry, lang string) *models.AnalysisResult {
	book := bookFor(lang)
	score := HealthScore(s)
	highAR := s.AccountsReceivable > s.TotalRevenue*highARShare
	status := book.status(score)

	result := &models.AnalysisResult{
		HealthScore: score,
		Status:      status,
		Summary:     book.summary(status, score, formatMoney(s.TotalRevenue)),
		Risks: []models.Risk{{
			Type:     book.LiquidityRiskType,
			Severity: severityMedium,
			Message:  book.LiquidityRiskMessage,
		}},
		Recommendations: []models.Recommendation{{
			Action:   book.TaxComplianceAction,
			Impact:   book.TaxComplianceImpact,
			Category: "Tax",
		}},
		CostOptimization:  []models.CostOptimization{costOptimization(book, s.ExpenseRatio)},
		FinancialProducts: []models.FinancialProduct{financialProduct(book, highAR, s.NetProfit > 0, score)},
		BookkeepingTaxCompliance: models.BookkeepingTaxCompliance{
			BookkeepingStatus: book.BookkeepingNeedsWork,
			TaxInsights:       book.TaxInsights,
			ComplianceWatch:   append([]string(nil), complianceWatch...),
		},
		WorkingCapitalAnalysis: workingCapital(book, highAR, s.AccountsReceivable, s.AccountsPayable),
		Creditworthiness: models.Creditworthiness{
			Score:     int(float64(score) * creditScoreFactor),
			Rationale: book.CreditRationale,
		},
		IndustryBenchmarks: models.IndustryBenchmarks{
			ProfitMarginAvg:  benchmarkMarginIndustry,
			RevenueGrowthAvg: benchmarkRevenueGrowth,
			ExpenseRatioAvg:  benchmarkExpenseRatio,
			UserComparison:   book.Average,
		},
		Forecast: book.Forecast,
		Language: LanguageCode(lang),
		Engine:   models.EngineRuleBased,
	}

	if highAR {
		result.Risks[0].Severity = severityHigh
	}
	if s.NetProfit > 0 {
		result.BookkeepingTaxCompliance.BookkeepingStatus = book.BookkeepingGood
	}
	if industry == "" || industry == generalIndustry {
		result.IndustryBenchmarks.ProfitMarginAvg = benchmarkMarginGeneral
	}
	if s.ProfitMargin > aboveAverageMargin {
		result.IndustryBenchmarks.UserComparison = book.AboveAverage
	}

	logger.FromContext(ctx).Debug("Rule-based analysis computed", "score", score, "language", result.Language)
	return result
}

func costTarget(expenseRatio float64) int {
	if expenseRatio < expenseRatioSevere {
		return 10
	}
	return 15
}

func costOptimization(book *phrasebook, expenseRatio float64) models.CostOptimization {
	if expenseRatio > expenseRatioElevated {
		target := costTarget(expenseRatio)
		return models.CostOptimization{
			Area:             book.OperatingExpensesArea,
			Suggestion:       book.costCut(expenseRatio, target),
			SavingsPotential: percent(target),
		}
	}
	return models.CostOptimization{
		Area:             book.FixedCostsArea,
		Suggestion:       book.FixedCostsSuggestion,
		SavingsPotential: percent(5),
	}
}

func financialProduct(book *phrasebook, highAR, profitable bool, score int) models.FinancialProduct {
	switch {
	case highAR:
		return models.FinancialProduct{Product: book.InvoiceFinancing, ProviderType: "NBFC", Rationale: book.InvoiceFinancingRationale}
	case profitable && score > healthyThreshold:
		return models.FinancialProduct{Product: book.ExpansionLoan, ProviderType: "Bank", Rationale: book.ExpansionLoanRationale}
	default:
		return models.FinancialProduct{Product: book.WorkingCapitalLoan, ProviderType: "Bank/NBFC", Rationale: book.WorkingCapitalRationale}
	}
}

func workingCapital(book *phrasebook, highAR bool, ar, ap float64) models.WorkingCapitalAnalysis {
	switch {
	case highAR:
		return models.WorkingCapitalAnalysis{Status: workingCapitalWarning, Message: book.WorkingCapitalHighAR}
	case ap > ar && ar > 0:
		return models.WorkingCapitalAnalysis{Status: workingCapitalCritical, Message: book.WorkingCapitalAPOverAR}
	default:
		return models.WorkingCapitalAnalysis{Status: workingCapitalGood, Message: book.WorkingCapitalBalanced}
	}
}

func percent(n int) string {
	return moneyPrinter.Sprintf("%d%%", n)
}

// Translate maps known phrasebook text into lang. Summaries and cost
// suggestions rendered by Analyze are re-rendered from tc; free text that is
// not in the phrasebook is kept as is.
func (e *RuleBasedEngine) Translate(ctx context.Context, result *models.AnalysisResult, lang string, tc models.TranslationContext) *models.AnalysisResult {
	to := bookFor(lang)
	out := result.Clone()

	out.Status = translateLiteral(out.Status, to)
	out.Summary = translateSummary(out, to, tc)
	if out.Forecast == "" {
		out.Forecast = to.DefaultForecast
	} else {
		out.Forecast = translateLiteral(out.Forecast, to)
	}

	for i := range out.Risks {
		out.Risks[i].Type = translateLiteral(out.Risks[i].Type, to)
		out.Risks[i].Message = translateLiteral(out.Risks[i].Message, to)
	}
	if len(out.Risks) == 0 {
		out.Risks = []models.Risk{{Type: to.DefaultRiskType, Severity: severityMedium, Message: to.DefaultRiskMessage}}
	}
	for i := range out.Recommendations {
		out.Recommendations[i].Action = translateLiteral(out.Recommendations[i].Action, to)
		out.Recommendations[i].Impact = translateLiteral(out.Recommendations[i].Impact, to)
	}
	if len(out.Recommendations) == 0 {
		out.Recommendations = []models.Recommendation{{Action: to.DefaultRecommendation, Impact: to.DefaultRecommendImpact, Category: generalIndustry}}
	}

	for i := range out.CostOptimization {
		c := &out.CostOptimization[i]
		c.Area = translateLiteral(c.Area, to)
		if isRenderedCostCut(c.Suggestion, tc.ExpenseRatio) {
			c.Suggestion = to.costCut(tc.ExpenseRatio, costTarget(tc.ExpenseRatio))
		} else {
			c.Suggestion = translateLiteral(c.Suggestion, to)
		}
	}
	for i := range out.FinancialProducts {
		p := &out.FinancialProducts[i]
		p.Product = translateLiteral(p.Product, to)
		p.Rationale = translateLiteral(p.Rationale, to)
	}

	out.BookkeepingTaxCompliance.BookkeepingStatus = translateLiteral(out.BookkeepingTaxCompliance.BookkeepingStatus, to)
	out.BookkeepingTaxCompliance.TaxInsights = translateLiteral(out.BookkeepingTaxCompliance.TaxInsights, to)
	out.WorkingCapitalAnalysis.Message = translateLiteral(out.WorkingCapitalAnalysis.Message, to)
	out.Creditworthiness.Rationale = translateLiteral(out.Creditworthiness.Rationale, to)
	out.IndustryBenchmarks.UserComparison = translateLiteral(out.IndustryBenchmarks.UserComparison, to)

	out.Language = LanguageCode(lang)
	logger.FromContext(ctx).Debug("Rule-based translation applied", "language", out.Language)
	return out
}

func translateSummary(r *models.AnalysisResult, to *phrasebook, tc models.TranslationContext) string {
	if r.Summary == "" {
		return to.DefaultSummary
	}
	revenue := formatMoney(tc.Revenue)
	for _, book := range phrasebooks {
		if r.Summary == book.summary(book.status(r.HealthScore), r.HealthScore, revenue) {
			return to.summary(to.status(r.HealthScore), r.HealthScore, revenue)
		}
	}
	return translateLiteral(r.Summary, to)
}

func isRenderedCostCut(s string, expenseRatio float64) bool {
	target := costTarget(expenseRatio)
	for _, book := range phrasebooks {
		if s == book.costCut(expenseRatio, target) {
			return true
		}
	}
	return false
}
