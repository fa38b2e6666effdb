// backend/src/models/analysis.go
package models

// Engine names reported on an AnalysisResult.
const (
	EngineLLM       = "llm"
	EngineRuleBased = "rule_based"
)

type Risk struct {
	Type     string `json:"type"`
	Severity string `json:"severity"` // Low, Medium or High
	Message  string `json:"message"`
}

type Recommendation struct {
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Category string `json:"category"`
}

type CostOptimization struct {
	Area             string `json:"area"`
	Suggestion       string `json:"suggestion"`
	SavingsPotential string `json:"savings_potential"`
}

type FinancialProduct struct {
	Product      string `json:"product"`
	ProviderType string `json:"provider_type"`
	Rationale    string `json:"rationale"`
}

type BookkeepingTaxCompliance struct {
	BookkeepingStatus string   `json:"bookkeeping_status"`
	TaxInsights       string   `json:"tax_insights"`
	ComplianceWatch   []string `json:"compliance_watch"`
}

type WorkingCapitalAnalysis struct {
	Status  string `json:"status"` // Good, Warning or Critical
	Message string `json:"message"`
}

type Creditworthiness struct {
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
}

type IndustryBenchmarks struct {
	ProfitMarginAvg  float64 `json:"profit_margin_avg"`
	RevenueGrowthAvg float64 `json:"revenue_growth_avg"`
	ExpenseRatioAvg  float64 `json:"expense_ratio_avg"`
	UserComparison   string  `json:"user_comparison"`
}

// AnalysisResult is the narrative assessment of a FinancialSummary.
type AnalysisResult struct {
	HealthScore              int                      `json:"health_score"`
	Status                   string                   `json:"status"`
	Summary                  string                   `json:"summary"`
	Risks                    []Risk                   `json:"risks"`
	Recommendations          []Recommendation         `json:"recommendations"`
	CostOptimization         []CostOptimization       `json:"cost_optimization"`
	FinancialProducts        []FinancialProduct       `json:"financial_products"`
	BookkeepingTaxCompliance BookkeepingTaxCompliance `json:"bookkeeping_tax_compliance"`
	WorkingCapitalAnalysis   WorkingCapitalAnalysis   `json:"working_capital_analysis"`
	Creditworthiness         Creditworthiness         `json:"creditworthiness"`
	IndustryBenchmarks       IndustryBenchmarks       `json:"industry_benchmarks"`
	Forecast                 string                   `json:"forecast"`
	Language                 string                   `json:"language"`
	Engine                   string                   `json:"engine"`
}

// Clone returns a deep copy so callers can rewrite narrative fields safely.
func (r *AnalysisResult) Clone() *AnalysisResult {
	c := *r
	c.Risks = append([]Risk(nil), r.Risks...)
	c.Recommendations = append([]Recommendation(nil), r.Recommendations...)
	c.CostOptimization = append([]CostOptimization(nil), r.CostOptimization...)
	c.FinancialProducts = append([]FinancialProduct(nil), r.FinancialProducts...)
	c.BookkeepingTaxCompliance.ComplianceWatch = append([]string(nil), r.BookkeepingTaxCompliance.ComplianceWatch...)
	return &c
}

// TranslationContext carries the figures a translation may need to re-render
// narrative text without recomputing the analysis.
type TranslationContext struct {
	Revenue      float64 `json:"revenue"`
	Profit       float64 `json:"profit"`
	ExpenseRatio float64 `json:"expense_ratio"`
	Industry     string  `json:"industry"`
}

// ContextFromSummary builds a TranslationContext from a summary.
func ContextFromSummary(s *FinancialSummary, industry string) TranslationContext {
	return TranslationContext{
		Revenue:      s.TotalRevenue,
		Profit:       s.NetProfit,
		ExpenseRatio: s.ExpenseRatio,
		Industry:     industry,
	}
}
