package parsers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/parsers/delimited"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/parsers/spreadsheet"
)

func TestGetParser(t *testing.T) {
	t.Parallel()

	p, err := GetParser("ledger.CSV")
	require.NoError(t, err)
	require.IsType(t, &delimited.Parser{}, p)

	p, err = GetParser("book.xlsx")
	require.NoError(t, err)
	require.IsType(t, &spreadsheet.XLSXParser{}, p)

	p, err = GetParser("legacy.xls")
	require.NoError(t, err)
	require.IsType(t, &spreadsheet.XLSParser{}, p)

	_, err = GetParser("report.pdf")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.ErrorContains(t, err, `".pdf" is not one of .csv, .tsv, .txt, .xlsx, .xls`)
	_, err = GetParser("noext")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
