package schema

// MetricSummary is one aggregation row: the descriptive statistics of a single
// metric across every class of a single repository. Statistics are pointers so
// an empty input produces null statistics instead of misleading zeros.
type MetricSummary struct {
	Repository string   `json:"repository"`
	Metric     Metric   `json:"metric"`
	Label      string   `json:"label"`
	Required   bool     `json:"required"`
	Classes    int      `json:"classes_analyzed"`
	Invalid    int      `json:"invalid_values"`
	Mean       *float64 `json:"mean"`
	Median     *float64 `json:"median"`
	StdDev     *float64 `json:"std_dev"`
	Min        *float64 `json:"min"`
	Max        *float64 `json:"max"`
	Q1         *float64 `json:"q1"`
	Q3         *float64 `json:"q3"`
}

// HasStats reports whether the summary carries computed statistics.
// A summary over zero valid cells has Classes == 0 and nil statistics.
func (s MetricSummary) HasStats() bool {
	return s.Classes > 0 && s.Mean != nil
}

// EmptySummary returns the summary row emitted when a metric has no valid
// cells: the count is zero and every statistic stays null.
func EmptySummary(repo string, metric Metric, invalid int) MetricSummary {
	_, required := RequiredMetrics[metric]
	return MetricSummary{
		Repository: repo,
		Metric:     metric,
		Label:      MetricLabels[metric],
		Required:   required,
		Invalid:    invalid,
	}
}

// RepoSummary groups the per-metric rows of one repository together with the
// values the correlation join needs without re-reading raw files.
type RepoSummary struct {
	Repository string          `json:"repository"`
	Rows       []MetricSummary `json:"rows"`
}

// MeanOf returns the mean of the given metric, or nil when the metric had no
// valid cells.
func (r RepoSummary) MeanOf(metric Metric) *float64 {
	for _, row := range r.Rows {
		if row.Metric == metric {
			return row.Mean
		}
	}
	return nil
}

// ClassesOf returns the valid-cell count of the given metric.
func (r RepoSummary) ClassesOf(metric Metric) int {
	for _, row := range r.Rows {
		if row.Metric == metric {
			return row.Classes
		}
	}
	return 0
}
