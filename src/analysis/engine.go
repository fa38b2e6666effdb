// backend/src/analysis/engine.go
package analysis

import (
	"context"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
)

// Engine turns a FinancialSummary into a narrative AnalysisResult.
// Implementations never fail: problems are logged and a deterministic
// result is returned instead.
type Engine interface {
	Analyze(ctx context.Context, summary *models.FinancialSummary, industry, lang string) *models.AnalysisResult
	// Translate rewrites the narrative fields of result into lang without
	// recomputing any figures.
	Translate(ctx context.Context, result *models.AnalysisResult, lang string, tc models.TranslationContext) *models.AnalysisResult
}
