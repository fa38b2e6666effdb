// backend/src/handlers/analysis_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/security/validation"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/services"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/utils"
)

const maxJSONBodyBytes = 2 << 20

type AnalysisHandler struct {
	financialService services.FinancialService
}

func NewAnalysisHandler(financialService services.FinancialService) *AnalysisHandler {
	return &AnalysisHandler{financialService: financialService}
}

type AnalyzeRequest struct {
	Summary  *models.FinancialSummary `json:"summary"`
	Industry string                   `json:"industry"`
	Language string                   `json:"language"`
}

type TranslateRequest struct {
	Analysis *models.AnalysisResult    `json:"analysis"`
	Language string                    `json:"language"`
	Context  models.TranslationContext `json:"context"`
}

// HandleAnalyze runs the narrative engine on a previously computed summary.
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	req.Industry = strings.TrimSpace(req.Industry)
	if err := validation.ValidateIndustry(req.Industry); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateLanguageCode(req.Language); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Industry == "" {
		req.Industry = defaultIndustry
	}
	if req.Language == "" {
		req.Language = defaultLanguage
	}

	result, err := h.financialService.Analyze(r.Context(), req.Summary, req.Industry, req.Language)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, result, http.StatusOK)
}

// HandleTranslate rewrites an analysis into another language.
func (h *AnalysisHandler) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStringNotEmpty(req.Language, "language"); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateLanguageCode(req.Language); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateIndustry(req.Context.Industry); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.financialService.Translate(r.Context(), req.Analysis, req.Language, req.Context)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, result, http.StatusOK)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.WarnFromContext(r.Context(), "Invalid JSON request body", "path", r.URL.Path, "error", err)
		utils.SendJSONError(w, "Invalid JSON request body", http.StatusBadRequest)
		return false
	}
	return true
}
