package validation

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed client-declared MIME types.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"text/plain":               true, // CSVs are often plain text
	"text/tab-separated-values": true,
	"application/vnd.ms-excel": true, // .xls, and CSV on older Excel
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/octet-stream": true, // browsers without a registered type; magic bytes decide
	"text/xml":                 false,
	"application/zip":          false,
}

var (
	zipMagic  = []byte("PK\x03\x04")
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// ValidateClientContentType checks the Content-Type header provided by the client.
// An absent header is accepted.
func ValidateClientContentType(contentType string) error {
	if contentType == "" {
		return nil
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if allowed, exists := AllowedClientContentTypes[mediaType]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed", contentType)
	}
	return nil
}

// isBinaryContent reports null bytes, which text uploads never contain.
// Invalid UTF-8 is allowed since legacy exports are often Windows-1252.
func isBinaryContent(buf []byte) bool {
	return bytes.IndexByte(buf, 0) != -1
}

// ValidateFileContentByMagicBytes checks that the file content matches the
// format implied by its extension and returns the detected content type.
// The reader is rewound before returning.
func ValidateFileContentByMagicBytes(file io.ReadSeeker, filename string) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 1024)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// Reset the file read pointer so the parser can read the full file.
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}
	if n == 0 {
		return "", fmt.Errorf("file is empty")
	}
	head := buffer[:n]

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		if !bytes.HasPrefix(head, zipMagic) {
			logger.L.Warn("File rejected: .xlsx without ZIP signature", "filename", filename)
			return "", fmt.Errorf("file does not look like an .xlsx workbook")
		}
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case ".xls":
		if !bytes.HasPrefix(head, ole2Magic) {
			logger.L.Warn("File rejected: .xls without OLE2 signature", "filename", filename)
			return "", fmt.Errorf("file does not look like an .xls workbook")
		}
		return "application/vnd.ms-excel", nil
	}

	if isBinaryContent(head) {
		logger.L.Warn("File rejected: Binary content detected in text upload", "filename", filename)
		return "application/octet-stream", fmt.Errorf("file appears to be binary or executable, not text/CSV")
	}

	detectedContentType := http.DetectContentType(head)
	detectedContentType = strings.ToLower(strings.Split(detectedContentType, ";")[0])

	// Anything free of null bytes is text for our purposes; DetectContentType
	// reports octet-stream for non-UTF-8 text.
	allowedDetectedTypes := map[string]bool{
		"text/plain":               true,
		"text/csv":                 true,
		"application/octet-stream": true,
	}
	if !allowedDetectedTypes[detectedContentType] {
		logger.L.Warn("Disallowed detected file content type", "detectedContentType", detectedContentType)
		return detectedContentType, fmt.Errorf("detected file content type '%s' is not allowed", detectedContentType)
	}

	logger.L.Debug("File content type validated", "detectedContentType", detectedContentType)
	return "text/csv", nil
}
