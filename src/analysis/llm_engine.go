// backend/src/analysis/llm_engine.go
package analysis

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/llm"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/utils"
)

const (
	DefaultLLMTimeout = 30 * time.Second

	analysisTemperature    = 0.7
	translationTemperature = 0.3
)

var (
	errIncompleteAnalysis = errors.New("model response is missing status or summary")

	//go:embed prompts/*.tmpl
	promptFS  embed.FS
	templates = template.Must(template.New("prompts").Delims("[[", "]]").ParseFS(promptFS, "prompts/*.tmpl"))
)

type analysisPromptData struct {
	Sector              string
	Revenue             float64
	Expenses            float64
	Profit              float64
	ProfitMargin        float64
	ExpenseRatio        float64
	Categories          string
	Receivable          float64
	Payable             float64
	Inventory           float64
	Debt                float64
	Tax                 float64
	LanguageInstruction string
}

type translatePromptData struct {
	LanguageName    string
	Summary         string
	Forecast        string
	Status          string
	Risks           string
	Recommendations string
	Revenue         string
	Profit          string
	Industry        string
	StatusChoices   string
}

type translatedNarrative struct {
	Summary         string                  `json:"summary"`
	Forecast        string                  `json:"forecast"`
	Status          string                  `json:"status"`
	Risks           []models.Risk           `json:"risks"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// LLMEngine asks a chat-completion provider for the analysis and falls back
// to another Engine whenever the call fails or the answer is unusable.
type LLMEngine struct {
	provider llm.Provider
	fallback Engine
	timeout  time.Duration
}

var _ Engine = (*LLMEngine)(nil)

func NewLLMEngine(provider llm.Provider, fallback Engine, timeout time.Duration) *LLMEngine {
	if fallback == nil {
		fallback = NewRuleBasedEngine()
	}
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	return &LLMEngine{provider: provider, fallback: fallback, timeout: timeout}
}

func (e *LLMEngine) Analyze(ctx context.Context, s *models.FinancialSummary, industry, lang string) *models.AnalysisResult {
	log := logger.FromContext(ctx)
	if industry == "" {
		industry = generalIndustry
	}

	result, err := e.analyze(ctx, s, industry, lang)
	if err != nil {
		log.Warn("LLM analysis failed, using rule-based fallback", "provider", e.provider.Name(), "error", err)
		return e.fallback.Analyze(ctx, s, industry, lang)
	}
	log.Info("LLM analysis completed", "provider", e.provider.Name(), "score", result.HealthScore)
	return result
}

func (e *LLMEngine) analyze(ctx context.Context, s *models.FinancialSummary, industry, lang string) (*models.AnalysisResult, error) {
	book := bookFor(lang)

	categories, err := json.MarshalIndent(s.Categories, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode categories: %w", err)
	}
	prompt, err := render("analysis.tmpl", analysisPromptData{
		Sector:              industry,
		Revenue:             s.TotalRevenue,
		Expenses:            s.TotalExpenses,
		Profit:              s.NetProfit,
		ProfitMargin:        s.ProfitMargin,
		ExpenseRatio:        s.ExpenseRatio,
		Categories:          string(categories),
		Receivable:          s.AccountsReceivable,
		Payable:             s.AccountsPayable,
		Inventory:           s.InventoryValue,
		Debt:                s.TotalDebt,
		Tax:                 s.TaxMetadata.EstimatedTaxPayable,
		LanguageInstruction: book.AnalysisPromptLanguage,
	})
	if err != nil {
		return nil, err
	}
	system := "You are an expert financial consultant for " + industry +
		" SMEs. Your goal is to provide deep financial intelligence. " + book.AnalysisSystemSuffix

	raw, err := e.complete(ctx, system, prompt, analysisTemperature)
	if err != nil {
		return nil, err
	}

	var result models.AnalysisResult
	if err := llm.SmartParse(raw, &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Status) == "" || strings.TrimSpace(result.Summary) == "" {
		return nil, errIncompleteAnalysis
	}

	result.HealthScore = utils.ClampInt(result.HealthScore, 0, 100)
	fillEmptyCollections(&result)
	result.Language = LanguageCode(lang)
	result.Engine = models.EngineLLM
	return &result, nil
}

// Translate starts from the phrasebook translation and overlays whatever
// narrative fields the model returns.
func (e *LLMEngine) Translate(ctx context.Context, result *models.AnalysisResult, lang string, tc models.TranslationContext) *models.AnalysisResult {
	log := logger.FromContext(ctx)
	out := e.fallback.Translate(ctx, result, lang, tc)

	narrative, err := e.translate(ctx, result, lang, tc)
	if err != nil {
		log.Warn("LLM translation failed, using phrasebook translation", "provider", e.provider.Name(), "error", err)
		return out
	}

	if narrative.Summary != "" {
		out.Summary = narrative.Summary
	}
	if narrative.Forecast != "" {
		out.Forecast = narrative.Forecast
	}
	if narrative.Status != "" {
		out.Status = translateLiteral(narrative.Status, bookFor(lang))
	}
	if len(narrative.Risks) > 0 {
		out.Risks = narrative.Risks
	}
	if len(narrative.Recommendations) > 0 {
		out.Recommendations = narrative.Recommendations
	}
	return out
}

func (e *LLMEngine) translate(ctx context.Context, result *models.AnalysisResult, lang string, tc models.TranslationContext) (*translatedNarrative, error) {
	book := bookFor(lang)

	risks, err := json.MarshalIndent(result.Risks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode risks: %w", err)
	}
	recs, err := json.MarshalIndent(result.Recommendations, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode recommendations: %w", err)
	}
	industry := tc.Industry
	if industry == "" {
		industry = generalIndustry
	}

	prompt, err := render("translate.tmpl", translatePromptData{
		LanguageName:    book.Name,
		Summary:         result.Summary,
		Forecast:        result.Forecast,
		Status:          result.Status,
		Risks:           string(risks),
		Recommendations: string(recs),
		Revenue:         formatMoney(tc.Revenue),
		Profit:          formatMoney(tc.Profit),
		Industry:        industry,
		StatusChoices:   fmt.Sprintf("%q, %q, %q", book.Healthy, book.AtRisk, book.Critical),
	})
	if err != nil {
		return nil, err
	}
	system := "You are a professional translator specializing in financial content. Translate to " + book.Name + "."

	raw, err := e.complete(ctx, system, prompt, translationTemperature)
	if err != nil {
		return nil, err
	}
	var narrative translatedNarrative
	if err := llm.SmartParse(raw, &narrative); err != nil {
		return nil, err
	}
	return &narrative, nil
}

func (e *LLMEngine) complete(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.provider.Complete(ctx, system, prompt, llm.Options{JSON: true, Temperature: temperature})
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

func fillEmptyCollections(r *models.AnalysisResult) {
	if r.Risks == nil {
		r.Risks = []models.Risk{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []models.Recommendation{}
	}
	if r.CostOptimization == nil {
		r.CostOptimization = []models.CostOptimization{}
	}
	if r.FinancialProducts == nil {
		r.FinancialProducts = []models.FinancialProduct{}
	}
	if r.BookkeepingTaxCompliance.ComplianceWatch == nil {
		r.BookkeepingTaxCompliance.ComplianceWatch = []string{}
	}
}
