// backend/src/analysis/locale.go
package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// phrasebook holds every narrative string the rule-based engine can emit in
// one language. Static phrases are listed by literals() in a fixed order so
// text can be mapped between languages by position.
type phrasebook struct {
	Tag  language.Tag
	Name string // English name of the language, used in LLM prompts

	Healthy, AtRisk, Critical string

	OperatingExpensesArea string
	FixedCostsArea        string
	FixedCostsSuggestion  string

	InvoiceFinancing          string
	InvoiceFinancingRationale string
	ExpansionLoan             string
	ExpansionLoanRationale    string
	WorkingCapitalLoan        string
	WorkingCapitalRationale   string

	WorkingCapitalBalanced  string
	WorkingCapitalHighAR    string
	WorkingCapitalAPOverAR  string
	LiquidityRiskType       string
	LiquidityRiskMessage    string
	TaxComplianceAction     string
	TaxComplianceImpact     string
	BookkeepingGood         string
	BookkeepingNeedsWork    string
	TaxInsights             string
	CreditRationale         string
	AboveAverage            string
	Average                 string
	Forecast                string
	DefaultSummary          string
	DefaultForecast         string
	DefaultRiskType         string
	DefaultRiskMessage      string
	DefaultRecommendation   string
	DefaultRecommendImpact  string
	AnalysisSystemSuffix    string
	AnalysisPromptLanguage  string

	summary func(status string, score int, revenue string) string
	costCut func(expenseRatio float64, target int) string
}

func (p *phrasebook) literals() []string {
	return []string{
		p.Healthy, p.AtRisk, p.Critical,
		p.OperatingExpensesArea, p.FixedCostsArea, p.FixedCostsSuggestion,
		p.InvoiceFinancing, p.InvoiceFinancingRationale,
		p.ExpansionLoan, p.ExpansionLoanRationale,
		p.WorkingCapitalLoan, p.WorkingCapitalRationale,
		p.WorkingCapitalBalanced, p.WorkingCapitalHighAR, p.WorkingCapitalAPOverAR,
		p.LiquidityRiskType, p.LiquidityRiskMessage,
		p.TaxComplianceAction, p.TaxComplianceImpact,
		p.BookkeepingGood, p.BookkeepingNeedsWork, p.TaxInsights,
		p.CreditRationale, p.AboveAverage, p.Average, p.Forecast,
		p.DefaultSummary, p.DefaultForecast, p.DefaultRiskType, p.DefaultRiskMessage,
		p.DefaultRecommendation, p.DefaultRecommendImpact,
	}
}

func (p *phrasebook) status(score int) string {
	if score > healthyThreshold {
		return p.Healthy
	}
	return p.AtRisk
}

var english = &phrasebook{
	Tag:  language.English,
	Name: "English",

	Healthy:  "Healthy",
	AtRisk:   "At Risk",
	Critical: "Critical",

	OperatingExpensesArea: "Operating Expenses",
	FixedCostsArea:        "Fixed Costs",
	FixedCostsSuggestion:  "Renegotiate utilities and rent for better margins.",

	InvoiceFinancing:          "Invoice Financing",
	InvoiceFinancingRationale: "High receivables detected. Use invoice financing to unlock cash flow.",
	ExpansionLoan:             "Business Expansion Loan",
	ExpansionLoanRationale:    "Eligible for growth capital based on strong health score and profitability.",
	WorkingCapitalLoan:        "Working Capital Loan",
	WorkingCapitalRationale:   "To maintain smooth day-to-day operations.",

	WorkingCapitalBalanced: "Working capital cycle is balanced.",
	WorkingCapitalHighAR:   "High receivables indicate delays in collection - cash flow risk.",
	WorkingCapitalAPOverAR: "Payables exceed receivables. Supplier trust risk may increase.",
	LiquidityRiskType:      "Liquidity",
	LiquidityRiskMessage:   "Closely monitor collection cycle to maintain cash flow.",
	TaxComplianceAction:    "Tax Compliance",
	TaxComplianceImpact:    "Reduce legal risk",
	BookkeepingGood:        "Good",
	BookkeepingNeedsWork:   "Needs Improvement",
	TaxInsights:            "Check GST returns and ensure TDS reconciliation.",
	CreditRationale:        "Consistent income and debt management history.",
	AboveAverage:           "Above Average",
	Average:                "Average",
	Forecast:               "Expected 10-15% growth over 12 months.",
	DefaultSummary:         "Financial analysis available.",
	DefaultForecast:        "Steady growth expected.",
	DefaultRiskType:        "Financial",
	DefaultRiskMessage:     "Risk analysis available.",
	DefaultRecommendation:  "Financial optimization",
	DefaultRecommendImpact: "Improvement",
	AnalysisSystemSuffix:   "Provide all fields in English.",
	AnalysisPromptLanguage: "Provide all fields in English",

	summary: func(status string, score int, revenue string) string {
		return fmt.Sprintf("Business is %s with a score of %d. Revenue is $%s.", status, score, revenue)
	},
	costCut: func(ratio float64, target int) string {
		return fmt.Sprintf("Operating expenses are %.1f%% of revenue. Recommended: reduce marketing & admin costs by %d-%d%%.", ratio, target, target+5)
	},
}

var hindi = &phrasebook{
	Tag:  language.Hindi,
	Name: "Hindi",

	Healthy:  "स्वस्थ",
	AtRisk:   "जोखिम में",
	Critical: "गंभीर",

	OperatingExpensesArea: "परिचालन व्यय (Operating Expenses)",
	FixedCostsArea:        "फिक्स्ड कॉस्ट (Fixed Costs)",
	FixedCostsSuggestion:  "बेहतर मार्जिन के लिए उपयोगिताओं और किराए पर फिर से बातचीत करें।",

	InvoiceFinancing:          "चालान वित्तपोषण (Invoice Financing)",
	InvoiceFinancingRationale: "आपके पास उच्च प्राप्य खाते (AR) हैं। नकदी प्रवाह के लिए इनका उपयोग करें।",
	ExpansionLoan:             "व्यापार विस्तार ऋण (Business Expansion Loan)",
	ExpansionLoanRationale:    "मजबूत स्वास्थ्य स्कोर और लाभप्रदता के आधार पर विकास के लिए पात्र।",
	WorkingCapitalLoan:        "कार्यशील पूंजी ऋण (Working Capital Loan)",
	WorkingCapitalRationale:   "दैनिक कार्यों को सुचारू रूप से चलाने के लिए।",

	WorkingCapitalBalanced: "कार्यशील पूंजी चक्र संतुलित है।",
	WorkingCapitalHighAR:   "उच्च प्राप्य राशि (AR) संग्रह में देरी का संकेत देती है - नकदी प्रवाह जोखिम।",
	WorkingCapitalAPOverAR: "देय राशि प्राप्य से अधिक है। आपूर्तिकर्ता विश्वास जोखिम बढ़ सकता है।",
	LiquidityRiskType:      "तरलता (Liquidity)",
	LiquidityRiskMessage:   "नकदी प्रवाह बनाए रखने के लिए संग्रह चक्र की बारीकी से निगरानी करें।",
	TaxComplianceAction:    "कर अनुपालन (Tax Compliance)",
	TaxComplianceImpact:    "कानूनी जोखिम कम करें",
	BookkeepingGood:        "अच्छी",
	BookkeepingNeedsWork:   "सुधार की आवश्यकता है",
	TaxInsights:            "जीएसटी रिटर्न की जांच करें और टीडीएस मिलान सुनिश्चित करें।",
	CreditRationale:        "स्थिर आय और ऋण प्रबंधन इतिहास।",
	AboveAverage:           "औसत से ऊपर",
	Average:                "औसत",
	Forecast:               "12 महीनों में 10-15% विकास की उम्मीद है।",
	DefaultSummary:         "वित्तीय विश्लेषण उपलब्ध है।",
	DefaultForecast:        "स्थिर विकास की उम्मीद है।",
	DefaultRiskType:        "वित्तीय",
	DefaultRiskMessage:     "जोखिम विश्लेषण उपलब्ध है।",
	DefaultRecommendation:  "वित्तीय अनुकूलन",
	DefaultRecommendImpact: "सुधार",
	AnalysisSystemSuffix:   "CRITICAL: You MUST provide all narrative descriptions, summaries, risk messages, and recommendation actions in HINDI. Do NOT use English for these fields.",
	AnalysisPromptLanguage: "IMPORTANT: Provide all narrative fields in HINDI",

	summary: func(status string, score int, revenue string) string {
		return fmt.Sprintf("व्यवसाय %d के स्कोर के साथ %s है। राजस्व $%s है।", score, status, revenue)
	},
	costCut: func(ratio float64, target int) string {
		return fmt.Sprintf("व्यय अनुपात %.1f%% है। विपणन और व्यवस्थापक लागत को %d%% तक कम करने की सिफारिश की जाती है।", ratio, target)
	},
}

// phrasebooks is ordered by matcher preference; the first entry is the fallback.
var phrasebooks = []*phrasebook{english, hindi}

var languageMatcher = language.NewMatcher([]language.Tag{english.Tag, hindi.Tag})

// moneyPrinter groups thousands the way the narrative templates expect ("5,000.00").
var moneyPrinter = message.NewPrinter(language.English)

// bookFor returns the phrasebook for a language code, falling back to English
// for unknown or unsupported codes.
func bookFor(code string) *phrasebook {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return english
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return english
	}
	return phrasebooks[idx]
}

// LanguageCode returns the canonical code ("en", "hi") used for a requested language.
func LanguageCode(code string) string {
	base, _ := bookFor(code).Tag.Base()
	return base.String()
}

func formatMoney(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}

// translateLiteral maps a known static phrase from any language into the
// target phrasebook. Unknown text is returned unchanged.
func translateLiteral(s string, to *phrasebook) string {
	if s == "" {
		return s
	}
	target := to.literals()
	for _, book := range phrasebooks {
		for i, lit := range book.literals() {
			if lit == s {
				return target[i]
			}
		}
	}
	return s
}
