// backend/src/handlers/report_handler.go
package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/analysis"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/security/validation"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/services"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/utils"
)

type ReportHandler struct {
	financialService services.FinancialService
	reportService    services.ReportService
}

func NewReportHandler(financialService services.FinancialService, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{financialService: financialService, reportService: reportService}
}

func (h *ReportHandler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, h.reportService.List(r.Context()), http.StatusOK)
}

// HandleGetReport returns a stored report, translated when ?lang= asks for a
// different language than the one it was analyzed in.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	report, ok := h.localizedReport(w, r)
	if !ok {
		return
	}

	currentETag, etagErr := utils.GenerateETag(report)
	if etagErr != nil {
		log.Error("Failed to generate ETag for report", "reportID", report.ID, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		if utils.ETagMatches(r.Header.Get("If-None-Match"), quotedETag) {
			log.Debug("ETag match for report", "reportID", report.ID, "etag", currentETag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	utils.SendJSON(w, report, http.StatusOK)
}

func (h *ReportHandler) HandleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := h.reportService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDownloadReport exports the report's figures and narrative as CSV.
func (h *ReportHandler) HandleDownloadReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.localizedReport(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := writeReportCSV(&buf, report); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to render report CSV", "reportID", report.ID, "error", err)
		utils.SendJSONError(w, "Failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "finsight-report-"+report.ID+".csv"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *ReportHandler) localizedReport(w http.ResponseWriter, r *http.Request) (*models.Report, bool) {
	ctx := r.Context()
	report, err := h.reportService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, err)
		return nil, false
	}

	lang := r.URL.Query().Get("lang")
	if err := validation.ValidateLanguageCode(lang); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if lang == "" || analysis.LanguageCode(lang) == report.Analysis.Language {
		return report, true
	}

	translated, err := h.financialService.Translate(ctx, report.Analysis, lang, models.ContextFromSummary(report.Summary, report.Industry))
	if err != nil {
		sendServiceError(w, r, err)
		return nil, false
	}
	localized := *report
	localized.Language = translated.Language
	localized.Analysis = translated
	return &localized, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(utils.RoundFloat(v, 2), 'f', 2, 64)
}

// writeReportCSV renders metric/value rows. Free-text cells are escaped
// against spreadsheet formula injection.
func writeReportCSV(buf *bytes.Buffer, report *models.Report) error {
	s, a := report.Summary, report.Analysis
	text := validation.SanitizeForFormulaInjection

	rows := [][]string{
		{"section", "item", "value"},
		{"report", "filename", text(report.Filename)},
		{"report", "industry", text(report.Industry)},
		{"report", "created_at", report.CreatedAt.Format(utils.DateTimeFormat)},
		{"totals", "total_revenue", formatFloat(s.TotalRevenue)},
		{"totals", "total_expenses", formatFloat(s.TotalExpenses)},
		{"totals", "net_profit", formatFloat(s.NetProfit)},
		{"totals", "profit_margin", formatFloat(s.ProfitMargin)},
		{"totals", "expense_ratio", formatFloat(s.ExpenseRatio)},
		{"totals", "row_count", strconv.Itoa(s.RowCount)},
		{"proxies", "accounts_receivable", formatFloat(s.AccountsReceivable)},
		{"proxies", "accounts_payable", formatFloat(s.AccountsPayable)},
		{"proxies", "inventory_value", formatFloat(s.InventoryValue)},
		{"proxies", "total_debt", formatFloat(s.TotalDebt)},
		{"tax", "estimated_tax_payable", formatFloat(s.TaxMetadata.EstimatedTaxPayable)},
	}
	for _, c := range s.TopExpenses {
		rows = append(rows, []string{"top_expenses", text(c.Category), formatFloat(c.Amount)})
	}
	for _, c := range s.TopRevenueSources {
		rows = append(rows, []string{"top_revenue_sources", text(c.Category), formatFloat(c.Amount)})
	}
	for _, m := range s.MonthlyBreakdown {
		rows = append(rows, []string{"monthly", m.Month, formatFloat(m.Sum)})
	}

	rows = append(rows,
		[]string{"analysis", "health_score", strconv.Itoa(a.HealthScore)},
		[]string{"analysis", "status", text(a.Status)},
		[]string{"analysis", "summary", text(a.Summary)},
		[]string{"analysis", "forecast", text(a.Forecast)},
	)
	for _, risk := range a.Risks {
		rows = append(rows, []string{"risk", text(risk.Type), text(strings.TrimSpace(risk.Severity + ": " + risk.Message))})
	}
	for _, rec := range a.Recommendations {
		rows = append(rows, []string{"recommendation", text(rec.Action), text(rec.Impact)})
	}

	cw := csv.NewWriter(buf)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write report csv: %w", err)
	}
	return nil
}
