// backend/src/parsers/parser.go
package parsers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/parsers/delimited"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/parsers/spreadsheet"
)

// ErrUnsupportedFormat is returned for uploads whose extension has no parser.
var ErrUnsupportedFormat = errors.New("Unsupported file format. Please upload CSV or XLSX")

// Parser turns an uploaded file into a RawTable.
type Parser interface {
	Parse(file io.Reader) (*models.RawTable, error)
}

// SupportedExtensions lists the accepted upload extensions.
var SupportedExtensions = []string{".csv", ".tsv", ".txt", ".xlsx", ".xls"}

// GetParser picks a parser from the upload's file extension.
func GetParser(filename string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv", ".txt":
		return delimited.NewParser(), nil
	case ".xlsx":
		return spreadsheet.NewXLSXParser(), nil
	case ".xls":
		return spreadsheet.NewXLSParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q is not one of %s", ErrUnsupportedFormat, filepath.Ext(filename), strings.Join(SupportedExtensions, ", "))
	}
}
