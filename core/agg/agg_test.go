package agg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckscope/ckscope/schema"
)

// classCSV mirrors the tool's real header shape: extra columns surround the
// tracked ones and lcom* must not be confused with lcom.
const classCSV = `file,class,type,cbo,fanin,fanout,wmc,dit,noc,rfc,lcom,lcom*,loc
src/Foo.java,com.example.Foo,class,1,0,1,5,1,0,7,0,0.5,120
src/Bar.java,com.example.Bar,class,2,1,1,9,2,0,11,4,0.7,340
src/Baz.java,com.example.Baz,class,3,0,2,4,1,1,6,1,0.1,88
src/Qux.java,com.example.Qux,class,4,2,0,12,3,0,15,9,0.9,512
src/Big.java,com.example.Big,class,100,50,50,80,6,2,90,300,1.0,9000
`

func parseString(t *testing.T, s string) *ParseResult {
	t.Helper()
	res, err := ParseClassRows(strings.NewReader(s))
	require.NoError(t, err)
	return res
}

func findRow(t *testing.T, rows []schema.MetricSummary, metric schema.Metric) schema.MetricSummary {
	t.Helper()
	for _, r := range rows {
		if r.Metric == metric {
			return r
		}
	}
	t.Fatalf("no summary row for %s", metric)
	return schema.MetricSummary{}
}

func TestParseClassRows(t *testing.T) {
	res := parseString(t, classCSV)
	require.Len(t, res.Rows, 5)

	first := res.Rows[0]
	assert.Equal(t, "com.example.Foo", first.Class)
	assert.Equal(t, "src/Foo.java", first.File)
	assert.Equal(t, 1.0, first.Cells[schema.MetricCBO])
	assert.Equal(t, 120.0, first.Cells[schema.MetricLOC])
	assert.Equal(t, 0.0, first.Cells[schema.MetricLCOM], "lcom, not lcom*")
	assert.Empty(t, res.Invalid)
}

func TestParseClassRowsCaseInsensitiveHeader(t *testing.T) {
	res := parseString(t, "File,Class,CBO,DIT\na.java,A,3,1\n")
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 3.0, res.Rows[0].Cells[schema.MetricCBO])
	assert.Equal(t, 1.0, res.Rows[0].Cells[schema.MetricDIT])
}

func TestParseClassRowsInvalidCells(t *testing.T) {
	csv := "class,cbo,dit\n" +
		"A,1,2\n" +
		"B,,3\n" + // empty cbo
		"C,abc,4\n" + // non-numeric cbo
		"D,NaN,Inf\n" + // NaN and infinity are not usable values
		"E,5\n" // short row, dit missing

	res := parseString(t, csv)
	require.Len(t, res.Rows, 5)
	assert.Equal(t, 3, res.Invalid[schema.MetricCBO])
	assert.Equal(t, 2, res.Invalid[schema.MetricDIT])

	rows := SummarizeRepo("x/y", res)
	cbo := findRow(t, rows, schema.MetricCBO)
	assert.Equal(t, 2, cbo.Classes)
	assert.Equal(t, 3, cbo.Invalid)
	dit := findRow(t, rows, schema.MetricDIT)
	assert.Equal(t, 3, dit.Classes)
	assert.Equal(t, 2, dit.Invalid)
}

func TestParseClassRowsEmptyInput(t *testing.T) {
	res := parseString(t, "")
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Invalid)
}

func TestSummarizeRepoExample(t *testing.T) {
	res := parseString(t, classCSV)
	rows := SummarizeRepo("apache/kafka", res)
	require.Len(t, rows, len(schema.AllMetrics))

	cbo := findRow(t, rows, schema.MetricCBO)
	assert.Equal(t, "apache/kafka", cbo.Repository)
	assert.True(t, cbo.Required)
	assert.Equal(t, 5, cbo.Classes)
	require.True(t, cbo.HasStats())
	assert.Equal(t, 22.0, *cbo.Mean)
	assert.Equal(t, 3.0, *cbo.Median)
	assert.Equal(t, 1.0, *cbo.Min)
	assert.Equal(t, 100.0, *cbo.Max)
	assert.Equal(t, 2.0, *cbo.Q1)
	assert.Equal(t, 4.0, *cbo.Q3)
	assert.InDelta(t, 43.6177, *cbo.StdDev, 0.001)
}

func TestSummarizeRepoFixedOrder(t *testing.T) {
	rows := SummarizeRepo("x/y", parseString(t, classCSV))
	require.Len(t, rows, 7)
	for i, metric := range schema.AllMetrics {
		assert.Equal(t, metric, rows[i].Metric)
	}
}

func TestSummarizeRepoEmptyFile(t *testing.T) {
	rows := SummarizeRepo("x/y", parseString(t, ""))
	require.Len(t, rows, 7)
	for _, row := range rows {
		assert.Zero(t, row.Classes)
		assert.Zero(t, row.Invalid)
		assert.False(t, row.HasStats())
		assert.Nil(t, row.Mean)
		assert.Nil(t, row.StdDev)
	}
}

func TestSummarizeRepoHeaderOnly(t *testing.T) {
	rows := SummarizeRepo("x/y", parseString(t, "file,class,cbo\n"))
	require.Len(t, rows, 7)
	assert.Zero(t, findRow(t, rows, schema.MetricCBO).Classes)
}

func TestSummarizeRepoMissingColumn(t *testing.T) {
	// No noc column at all: zero classes, zero invalid, null stats.
	rows := SummarizeRepo("x/y", parseString(t, "class,cbo\nA,1\nB,2\n"))
	noc := findRow(t, rows, schema.MetricNOC)
	assert.Zero(t, noc.Classes)
	assert.Zero(t, noc.Invalid)
	assert.False(t, noc.HasStats())

	cbo := findRow(t, rows, schema.MetricCBO)
	assert.Equal(t, 2, cbo.Classes)
}

func TestSummarizeRepoSingleClass(t *testing.T) {
	rows := SummarizeRepo("x/y", parseString(t, "class,cbo\nA,7\n"))
	cbo := findRow(t, rows, schema.MetricCBO)
	require.True(t, cbo.HasStats())
	assert.Equal(t, 7.0, *cbo.Mean)
	assert.Equal(t, 7.0, *cbo.Median)
	assert.Equal(t, 0.0, *cbo.StdDev, "one observation has no spread")
	assert.Equal(t, 7.0, *cbo.Q1)
	assert.Equal(t, 7.0, *cbo.Q3)
}

func TestSummarizeRepoDeterministic(t *testing.T) {
	first := SummarizeRepo("x/y", parseString(t, classCSV))
	second := SummarizeRepo("x/y", parseString(t, classCSV))
	assert.Equal(t, first, second)
}

func TestParseClassFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class.csv")
	require.NoError(t, os.WriteFile(path, []byte(classCSV), 0o600))

	res, err := ParseClassFile(path)
	require.NoError(t, err)
	assert.Len(t, res.Rows, 5)
}

func TestParseClassFileMissing(t *testing.T) {
	_, err := ParseClassFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open class metrics")
}
