// backend/src/handlers/upload_handler.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/security/validation"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/services"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/utils"
)

const (
	defaultIndustry = "General"
	defaultLanguage = "en"

	// multipartOverhead covers form fields and boundaries on top of the file.
	multipartOverhead = 1 << 20
)

type UploadHandler struct {
	financialService services.FinancialService
	reportService    services.ReportService
	maxUploadSize    int64
}

func NewUploadHandler(financialService services.FinancialService, reportService services.ReportService, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		financialService: financialService,
		reportService:    reportService,
		maxUploadSize:    maxUploadSize,
	}
}

type UploadResponse struct {
	ReportID string                   `json:"report_id"`
	Summary  *models.FinancialSummary `json:"summary"`
	Analysis *models.AnalysisResult   `json:"analysis"`
}

type uploadedFile struct {
	data     []byte
	filename string
}

// HandleUpload processes a ledger upload, analyzes it and stores the report.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	upload, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	industry := strings.TrimSpace(r.FormValue("industry"))
	if err := validation.ValidateIndustry(industry); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if industry == "" {
		industry = defaultIndustry
	}
	lang := strings.TrimSpace(r.FormValue("lang"))
	if err := validation.ValidateLanguageCode(lang); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if lang == "" {
		lang = defaultLanguage
	}

	log.Info("Processing upload request", "filename", upload.filename, "industry", industry, "lang", lang)

	summary, err := h.financialService.Process(ctx, upload.data, upload.filename)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	analysis, err := h.financialService.Analyze(ctx, summary, industry, lang)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	report, err := h.reportService.Save(ctx, &models.Report{
		Filename: upload.filename,
		Industry: industry,
		Language: analysis.Language,
		Summary:  summary,
		Analysis: analysis,
	})
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	utils.SendJSON(w, UploadResponse{ReportID: report.ID, Summary: summary, Analysis: analysis}, http.StatusOK)
}

// HandleProfile profiles an arbitrary table without requiring ledger columns.
func (h *UploadHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	profile, err := h.financialService.Profile(r.Context(), upload.data, upload.filename)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, profile, http.StatusOK)
}

// readUpload parses the multipart form, validates the "file" part and reads
// it into memory. It writes the error response itself when ok is false.
func (h *UploadHandler) readUpload(w http.ResponseWriter, r *http.Request) (*uploadedFile, bool) {
	log := logger.FromContext(r.Context())
	maxMB := h.maxUploadSize / (1024 * 1024)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			log.Warn("Upload exceeds size limit", "limit", h.maxUploadSize)
			utils.SendJSONError(w, fmt.Sprintf("File too large (max %d MB)", maxMB), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		log.Warn("Failed to parse multipart form", "error", err)
		utils.SendJSONError(w, "Failed to parse upload form", http.StatusBadRequest)
		return nil, false
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		log.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	if fileHeader.Size > h.maxUploadSize {
		log.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", h.maxUploadSize)
		utils.SendJSONError(w, fmt.Sprintf("File too large (max %d MB)", maxMB), http.StatusRequestEntityTooLarge)
		return nil, false
	}

	if err := validation.ValidateFilename(fileHeader.Filename); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	filename := filepath.Base(strings.ReplaceAll(strings.TrimSpace(fileHeader.Filename), "\\", "/"))

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file, filename)
	if err != nil {
		log.Warn("Server-side file content validation failed", "filename", filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	log.Debug("File content validated by magic bytes", "filename", filename, "clientType", clientContentType, "detectedType", detectedContentType)

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read uploaded file", "filename", filename, "error", err)
		utils.SendJSONError(w, msgUnreadableFile, http.StatusBadRequest)
		return nil, false
	}
	return &uploadedFile{data: data, filename: filename}, true
}
