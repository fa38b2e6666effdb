// backend/src/parsers/delimited/parser.go
package delimited

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidate delimiters in tie-break order
var delimiters = []rune{',', ';', '\t', '|'}

// Parser reads comma, semicolon, tab or pipe separated exports.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the whole file, fixes up its encoding and splits it into a RawTable.
func (p *Parser) Parse(file io.Reader) (*models.RawTable, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("delimited parser: failed to read file: %w", err)
	}

	data, err = toUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("delimited parser: failed to decode file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("delimited parser: failed to read records: %w", err)
	}

	table, err := models.NewRawTable(records)
	if err != nil {
		return nil, fmt.Errorf("delimited parser: %w", err)
	}
	logger.L.Debug("Delimited file parsed", "delimiter", string(reader.Comma), "columns", len(table.Columns), "rows", len(table.Rows))
	return table, nil
}

// toUTF8 strips a UTF-8 BOM and transcodes non-UTF-8 input, which in
// practice is a Windows-1252 export from Excel.
func toUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// detectDelimiter counts candidate delimiters outside quotes on the first
// non-empty line and picks the most frequent one.
func detectDelimiter(data []byte) rune {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		best, bestCount := ',', 0
		for _, d := range delimiters {
			if n := countOutsideQuotes(line, d); n > bestCount {
				best, bestCount = d, n
			}
		}
		return best
	}
	return ','
}

func countOutsideQuotes(line string, d rune) int {
	count := 0
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == d && !inQuotes:
			count++
		}
	}
	return count
}
