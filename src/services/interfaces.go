// backend/src/services/interfaces.go
package services

import (
	"context"
	"errors"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
)

// Define common service errors. Errors returned by FinancialService wrap one
// of these together with the underlying cause, whose message is safe to show
// to the uploader.
var (
	ErrFormat         = errors.New("unsupported or unreadable file")
	ErrMapping        = errors.New("column mapping failed")
	ErrValidation     = errors.New("ledger validation failed")
	ErrInvalidInput   = errors.New("invalid input")
	ErrReportNotFound = errors.New("report not found")
)

// FinancialService runs the upload pipeline and the narrative engine.
type FinancialService interface {
	// Process parses an upload and returns its summary, including the generic
	// column profile and the detected column mapping.
	Process(ctx context.Context, data []byte, filename string) (*models.FinancialSummary, error)
	// Profile parses an upload and profiles its raw columns without building a ledger.
	Profile(ctx context.Context, data []byte, filename string) (*models.GenericProfile, error)
	Analyze(ctx context.Context, summary *models.FinancialSummary, industry, language string) (*models.AnalysisResult, error)
	Translate(ctx context.Context, result *models.AnalysisResult, language string, tc models.TranslationContext) (*models.AnalysisResult, error)
}

// ReportService keeps processed uploads for later retrieval.
type ReportService interface {
	Save(ctx context.Context, report *models.Report) (*models.Report, error)
	Get(ctx context.Context, id string) (*models.Report, error)
	// List returns stored reports newest first.
	List(ctx context.Context) []models.ReportListItem
	Delete(ctx context.Context, id string) error
}
