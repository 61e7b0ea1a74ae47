package schema

// CorrelationResult is the final output of the statistical analysis for one
// (process attribute, quality metric) pair. Immutable once computed.
type CorrelationResult struct {
	Question    ResearchQuestion  `json:"research_question"`
	Attr        ProcessAttr       `json:"process_attr"`
	Metric      Metric            `json:"quality_metric"`
	N           int               `json:"sample_size"`
	Pearson     float64           `json:"pearson_r"`
	PearsonP    float64           `json:"pearson_p"`
	Spearman    float64           `json:"spearman_rho"`
	SpearmanP   float64           `json:"spearman_p"`
	Primary     CorrelationMethod `json:"primary"`
	Strength    string            `json:"strength"`
	Direction   string            `json:"direction"`
	Significant bool              `json:"significant"`
}

// PrimaryR returns the coefficient selected by the normality assessment.
func (c CorrelationResult) PrimaryR() float64 {
	if c.Primary == SpearmanMethod {
		return c.Spearman
	}
	return c.Pearson
}

// PrimaryP returns the p-value matching PrimaryR.
func (c CorrelationResult) PrimaryP() float64 {
	if c.Primary == SpearmanMethod {
		return c.SpearmanP
	}
	return c.PearsonP
}

// QuartileBin is one row of the categorical summary: repositories binned by a
// process attribute quartile, with the per-bin mean of each quality metric.
type QuartileBin struct {
	Attr    ProcessAttr        `json:"process_attr"`
	Bin     string             `json:"bin"` // Q1..Q4
	Count   int                `json:"count"`
	AttrLow float64            `json:"attr_low"`
	AttrUp  float64            `json:"attr_up"`
	Means   map[Metric]float64 `json:"means"`
}

// StatsReport bundles everything the stats command produces: the correlation
// table, the quartile bins, and the bookkeeping counts the study reports.
type StatsReport struct {
	Repositories    int                 `json:"repositories"`
	ExcludedRepos   int                 `json:"excluded_repos"`   // fewer classes than the minimum
	OmittedPairs    int                 `json:"omitted_pairs"`    // fewer samples than the minimum
	OutliersRemoved int                 `json:"outliers_removed"` // total rows trimmed across pairs
	Correlations    []CorrelationResult `json:"correlations"`
	Quartiles       []QuartileBin       `json:"quartiles"`
	Descriptives    []AttrDescriptive   `json:"descriptives"`
}

// AttrDescriptive holds descriptive statistics of one joined column for the
// report's overview section.
type AttrDescriptive struct {
	Column string  `json:"column"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}
