// backend/src/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/parsers"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/processors"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/services"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/utils"
)

const msgUnreadableFile = "Failed to read the uploaded file. Please upload a valid CSV or XLSX file."

// sendServiceError maps service errors to status codes. Pipeline errors carry
// messages meant for the uploader and are passed through unchanged.
func sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var mappingErr *processors.MappingError
	var validationErr *processors.ValidationError

	switch {
	case errors.Is(err, parsers.ErrUnsupportedFormat):
		utils.SendJSONError(w, parsers.ErrUnsupportedFormat.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrFormat):
		logger.WarnFromContext(r.Context(), "Upload could not be parsed", "error", err)
		utils.SendJSONError(w, msgUnreadableFile, http.StatusBadRequest)
	case errors.As(err, &mappingErr):
		utils.SendJSONError(w, mappingErr.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &validationErr):
		utils.SendJSONError(w, validationErr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrInvalidInput):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrReportNotFound):
		utils.SendJSONError(w, "Report not found", http.StatusNotFound)
	default:
		logger.ErrorFromContext(r.Context(), "Unexpected service error", "path", r.URL.Path, "error", err)
		utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
