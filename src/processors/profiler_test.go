package processors

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfile_ColumnClassification(t *testing.T) {
	t.Parallel()
	table := newTable(t,
		[]string{"When", "Who", "Qty", "Price", "Empty"},
		[]string{"2024-01-01", "Acme", "1", "10.5", ""},
		[]string{"2024-01-02", "Globex", "2", "21", ""},
		[]string{"", "Initech", "3", "31.5", ""},
	)

	p := NewProfiler().Profile(table)
	info := p.ColumnInfo
	require.Equal(t, 5, info.TotalColumns)
	require.Equal(t, []string{"Qty", "Price", "Empty"}, info.NumericColumns)
	require.Equal(t, []string{"Who"}, info.TextColumns)
	require.Equal(t, []string{"When"}, info.DateColumns)
	require.Equal(t, 3, info.NumericCount)
	require.Equal(t, 1, info.TextCount)
	require.Equal(t, 1, info.DateCount)

	require.Equal(t, 1.0, p.Stats["Qty"].Min)
	require.Equal(t, 3.0, p.Stats["Qty"].Max)
	require.Equal(t, 2.0, p.Stats["Qty"].Mean)
	require.Zero(t, p.Stats["Empty"].Min)
	require.Zero(t, p.Stats["Empty"].Max)
	require.Zero(t, p.Stats["Empty"].Mean)
}

func TestProfile_Correlation(t *testing.T) {
	t.Parallel()
	table := newTable(t,
		[]string{"A", "B", "C", "Flat"},
		[]string{"1", "2", "3", "7"},
		[]string{"2", "4", "2", "7"},
		[]string{"3", "6", "1", "7"},
	)
	p := NewProfiler().Profile(table)
	require.Len(t, p.Correlation, 16)

	get := func(x, y string) float64 {
		for _, c := range p.Correlation {
			if c.X == x && c.Y == y {
				return c.Value
			}
		}
		t.Fatalf("missing correlation %s/%s", x, y)
		return 0
	}
	require.InDelta(t, 1.0, get("A", "A"), 1e-9)
	require.InDelta(t, 1.0, get("A", "B"), 1e-9)
	require.InDelta(t, -1.0, get("A", "C"), 1e-9)
	// zero variance is undefined and reported as 0
	require.Zero(t, get("A", "Flat"))
	require.Zero(t, get("Flat", "Flat"))
}

func TestProfile_SingleNumericColumnHasNoCorrelation(t *testing.T) {
	t.Parallel()
	table := newTable(t, []string{"Name", "Amount"}, []string{"x", "1"}, []string{"y", "2"})
	p := NewProfiler().Profile(table)
	require.Empty(t, p.Correlation)
}

func TestProfile_TextColumnWithMixedValuesStaysText(t *testing.T) {
	t.Parallel()
	table := newTable(t, []string{"Mixed"}, []string{"2024-01-01"}, []string{"hello"})
	p := NewProfiler().Profile(table)
	require.Equal(t, []string{"Mixed"}, p.ColumnInfo.TextColumns)
	require.Empty(t, p.ColumnInfo.DateColumns)
}

func TestProfile_SampleBoundedAndMissingAsEmpty(t *testing.T) {
	t.Parallel()
	rows := make([][]string, 0, 150)
	for i := 0; i < 150; i++ {
		v := strconv.Itoa(i)
		if i == 0 {
			v = ""
		}
		rows = append(rows, []string{"row", v})
	}
	table := newTable(t, []string{"Label", "Value"}, rows...)

	p := NewProfiler().Profile(table)
	require.Len(t, p.SampleData, 100)
	require.Equal(t, "", p.SampleData[0]["Value"])
	require.Equal(t, 1.0, p.SampleData[1]["Value"])
	require.Equal(t, "row", p.SampleData[1]["Label"])
}
