// Package agg turns the tool's raw class-level CSV into per-metric
// descriptive statistics.
package agg

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ckscope/ckscope/schema"
)

// ClassRow is one parsed row of the class-level output. Cells holds only
// the tracked metric columns that parsed as finite numbers.
type ClassRow struct {
	Class string
	File  string
	Cells map[schema.Metric]float64
}

// ParseResult carries the parsed rows plus per-metric invalid-cell tallies.
// A cell is invalid when it is missing, empty, non-numeric, NaN or infinite.
type ParseResult struct {
	Rows    []ClassRow
	Invalid map[schema.Metric]int
}

// ParseClassFile reads and parses a class-level CSV from disk.
func ParseClassFile(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class metrics: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseClassRows(f)
}

// ParseClassRows parses class-level CSV content. The header drives column
// lookup case-insensitively; columns beyond the tracked metrics pass through
// untouched. An empty input yields zero rows, not an error.
func ParseClassRows(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &ParseResult{Invalid: make(map[schema.Metric]int)}

	header, err := reader.Read()
	if err == io.EOF {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := resolveColumns(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		result.Rows = append(result.Rows, parseRow(record, cols, result.Invalid))
	}
	return result, nil
}

// columnIndex maps the columns we care about to their header positions.
// A missing column stays at -1 (class/file) or absent (metrics).
type columnIndex struct {
	class   int
	file    int
	metrics map[schema.Metric]int
}

func resolveColumns(header []string) columnIndex {
	idx := columnIndex{class: -1, file: -1, metrics: make(map[schema.Metric]int)}
	for i, cell := range header {
		name := normalizeHeader(cell)
		switch name {
		case "class":
			idx.class = i
		case "file":
			idx.file = i
		default:
			m := schema.Metric(name)
			if _, tracked := schema.MetricLabels[m]; !tracked {
				continue
			}
			if _, seen := idx.metrics[m]; !seen {
				idx.metrics[m] = i
			}
		}
	}
	return idx
}

// normalizeHeader lowercases a header cell and strips whitespace and a
// leading BOM. The exact match keeps lcom and lcom* apart.
func normalizeHeader(cell string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\uFEFF")))
}

func parseRow(record []string, cols columnIndex, invalid map[schema.Metric]int) ClassRow {
	row := ClassRow{
		Class: cellAt(record, cols.class),
		File:  cellAt(record, cols.file),
		Cells: make(map[schema.Metric]float64, len(cols.metrics)),
	}
	for metric, i := range cols.metrics {
		v, err := strconv.ParseFloat(strings.TrimSpace(cellAt(record, i)), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			invalid[metric]++
			continue
		}
		row.Cells[metric] = v
	}
	return row
}

func cellAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// SummarizeRepo computes one summary row per tracked metric, always in the
// fixed metric order so repeated runs produce identical output.
func SummarizeRepo(repo string, res *ParseResult) []schema.MetricSummary {
	out := make([]schema.MetricSummary, 0, len(schema.AllMetrics))
	for _, metric := range schema.AllMetrics {
		values := collectValues(res.Rows, metric)
		out = append(out, summarizeMetric(repo, metric, values, res.Invalid[metric]))
	}
	return out
}

func collectValues(rows []ClassRow, metric schema.Metric) []float64 {
	var values []float64
	for _, row := range rows {
		if v, ok := row.Cells[metric]; ok {
			values = append(values, v)
		}
	}
	return values
}

func summarizeMetric(repo string, metric schema.Metric, values []float64, invalid int) schema.MetricSummary {
	if len(values) == 0 {
		return schema.EmptySummary(repo, metric, invalid)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	_, required := schema.RequiredMetrics[metric]
	return schema.MetricSummary{
		Repository: repo,
		Metric:     metric,
		Label:      schema.MetricLabels[metric],
		Required:   required,
		Classes:    len(values),
		Invalid:    invalid,
		Mean:       schema.Float64Ptr(Mean(values)),
		Median:     schema.Float64Ptr(Quantile(0.5, sorted)),
		StdDev:     schema.Float64Ptr(SampleStdDev(values)),
		Min:        schema.Float64Ptr(sorted[0]),
		Max:        schema.Float64Ptr(sorted[len(sorted)-1]),
		Q1:         schema.Float64Ptr(Quantile(0.25, sorted)),
		Q3:         schema.Float64Ptr(Quantile(0.75, sorted)),
	}
}
