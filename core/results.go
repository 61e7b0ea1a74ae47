package core

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ckscope/ckscope/schema"
)

// LoadSummaries reads the accumulated results CSV written by the batch and
// analyze commands. Statistics parse back into pointers, so rows persisted
// from an empty repository keep their null statistics. The file feeds the
// correlation analysis, so unparsable cells are errors rather than zeros.
func LoadSummaries(path string) ([]schema.MetricSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse results %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("results %s is empty", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, required := range schema.SummaryHeader {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("results %s is missing the %s column", path, required)
		}
	}

	summaries := make([]schema.MetricSummary, 0, len(rows)-1)
	for n, row := range rows[1:] {
		s, err := parseSummaryRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("results %s row %d: %w", path, n+2, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func parseSummaryRow(row []string, col map[string]int) (schema.MetricSummary, error) {
	var s schema.MetricSummary
	s.Repository = cell(row, col, "repository")
	s.Metric = schema.Metric(cell(row, col, "metric"))
	s.Label = cell(row, col, "label")
	s.Required, _ = strconv.ParseBool(cell(row, col, "required"))

	var err error
	if s.Classes, err = strconv.Atoi(cell(row, col, "classes_analyzed")); err != nil {
		return s, fmt.Errorf("invalid classes_analyzed: %w", err)
	}
	if s.Invalid, err = strconv.Atoi(cell(row, col, "invalid_values")); err != nil {
		return s, fmt.Errorf("invalid invalid_values: %w", err)
	}

	stats := []struct {
		name string
		dst  **float64
	}{
		{"mean", &s.Mean},
		{"median", &s.Median},
		{"std_dev", &s.StdDev},
		{"min", &s.Min},
		{"max", &s.Max},
		{"q1", &s.Q1},
		{"q3", &s.Q3},
	}
	for _, st := range stats {
		v, err := schema.ParseFloatPtr(cell(row, col, st.name))
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", st.name, err)
		}
		*st.dst = v
	}
	return s, nil
}
