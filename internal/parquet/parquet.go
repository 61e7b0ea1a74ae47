// Package parquet provides data structures and functions for exporting batch
// run data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/ckscope/ckscope/schema"
	"github.com/parquet-go/parquet-go"
)

// BatchRun represents a single batch analysis run with metadata.
// This struct maps to the ckscope_batch_runs database table.
type BatchRun struct {
	// RunID is the unique identifier for this batch run
	RunID int64 `parquet:"run_id,snappy"`

	// StartedAt is when the batch began (stored as TIMESTAMP with nanosecond precision)
	StartedAt time.Time `parquet:"started_at,snappy"`

	// FinishedAt is when the batch completed (nullable for runs still in flight)
	FinishedAt *time.Time `parquet:"finished_at,optional,snappy"`

	// CatalogPath is the catalog CSV the batch was sliced from
	CatalogPath string `parquet:"catalog_path,snappy"`

	// StartOffset is the zero-based catalog offset the batch started at
	StartOffset int32 `parquet:"start_offset,snappy"`

	// MaxRepos is the cap on repositories processed in this run
	MaxRepos int32 `parquet:"max_repos,snappy"`

	// Succeeded is the number of repositories fully analyzed
	Succeeded int32 `parquet:"succeeded,snappy"`

	// Failed is the number of repositories skipped after an error
	Failed int32 `parquet:"failed,snappy"`
}

// MetricSummaryRow represents one repository/metric aggregation row.
// This struct maps to the ckscope_metric_summaries database table.
type MetricSummaryRow struct {
	// RunID references the parent batch run
	RunID int64 `parquet:"run_id,snappy"`

	// Repository is the owner/name identifier from the catalog
	Repository string `parquet:"repository,snappy"`

	// Metric is the short metric key (cbo, dit, lcom, ...)
	Metric string `parquet:"metric,snappy"`

	// Label is the human-readable metric name
	Label string `parquet:"label,snappy"`

	// Required marks the metrics the study mandates
	Required bool `parquet:"required,snappy"`

	// ClassesAnalyzed is the number of classes with a valid cell
	ClassesAnalyzed int32 `parquet:"classes_analyzed,snappy"`

	// InvalidValues is the number of cells dropped during parsing
	InvalidValues int32 `parquet:"invalid_values,snappy"`

	// The statistics are nullable: a metric with no valid cells keeps them nil
	Mean   *float64 `parquet:"mean,optional,snappy"`
	Median *float64 `parquet:"median,optional,snappy"`
	StdDev *float64 `parquet:"std_dev,optional,snappy"`
	Min    *float64 `parquet:"min_value,optional,snappy"`
	Max    *float64 `parquet:"max_value,optional,snappy"`
	Q1     *float64 `parquet:"q1,optional,snappy"`
	Q3     *float64 `parquet:"q3,optional,snappy"`
}

// CatalogRow represents one repository of the fetched catalog.
// The column names match schema.CatalogHeader so the Parquet and CSV forms of
// the catalog stay interchangeable.
type CatalogRow struct {
	// FullName is the owner/name identifier
	FullName string `parquet:"full_name,snappy"`

	// HTMLURL is the repository web page
	HTMLURL string `parquet:"html_url,snappy"`

	// CloneURL is the HTTPS clone endpoint
	CloneURL string `parquet:"clone_url,snappy"`

	// Stars is the stargazer count at fetch time
	Stars int32 `parquet:"stargazers_count,snappy"`

	// Forks is the fork count at fetch time
	Forks int32 `parquet:"forks_count,snappy"`

	// CreatedAt is when the repository was created
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// UpdatedAt is when the repository was last updated
	UpdatedAt time.Time `parquet:"updated_at,snappy"`

	// SizeKB is the repository size in kilobytes
	SizeKB int32 `parquet:"size,snappy"`

	// Language is the dominant language reported by GitHub
	Language string `parquet:"language,snappy"`

	// OpenIssues is the open issue count at fetch time
	OpenIssues int32 `parquet:"open_issues_count,snappy"`

	// DefaultBranch is the branch a shallow clone checks out
	DefaultBranch string `parquet:"default_branch,snappy"`
}

// CorrelationRow represents one (process attribute, quality metric) pair of
// the statistical analysis. The column names match schema.CorrelationHeader.
type CorrelationRow struct {
	// ResearchQuestion is the fixed study question (RQ01..RQ04)
	ResearchQuestion string `parquet:"research_question,snappy"`

	// ProcessAttr is the repository-level attribute
	ProcessAttr string `parquet:"process_attr,snappy"`

	// QualityMetric is the per-repository mean correlated against the attribute
	QualityMetric string `parquet:"quality_metric,snappy"`

	// SampleSize is the number of repositories left after trimming
	SampleSize int32 `parquet:"sample_size,snappy"`

	// PearsonR and PearsonP hold the parametric coefficient and its p-value
	PearsonR float64 `parquet:"pearson_r,snappy"`
	PearsonP float64 `parquet:"pearson_p,snappy"`

	// SpearmanRho and SpearmanP hold the rank coefficient and its p-value
	SpearmanRho float64 `parquet:"spearman_rho,snappy"`
	SpearmanP   float64 `parquet:"spearman_p,snappy"`

	// Primary names the coefficient selected by the normality assessment
	Primary string `parquet:"primary,snappy"`

	// Strength is the label derived from the primary coefficient
	Strength string `parquet:"strength,snappy"`

	// Direction is positive or negative
	Direction string `parquet:"direction,snappy"`

	// Significant marks pairs with a primary p-value below 0.05
	Significant bool `parquet:"significant,snappy"`
}

// WriteBatchRunsParquet writes a slice of BatchRun structs to a Parquet file.
func WriteBatchRunsParquet(data []BatchRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the BatchRun struct tags
	writer := parquet.NewGenericWriter[BatchRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteMetricSummariesParquet writes a slice of MetricSummaryRow structs to a Parquet file.
func WriteMetricSummariesParquet(data []MetricSummaryRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the MetricSummaryRow struct tags
	writer := parquet.NewGenericWriter[MetricSummaryRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCatalogParquet writes a slice of CatalogRow structs to a Parquet file.
func WriteCatalogParquet(data []CatalogRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the CatalogRow struct tags
	writer := parquet.NewGenericWriter[CatalogRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCorrelationsParquet writes a slice of CorrelationRow structs to a Parquet file.
func WriteCorrelationsParquet(data []CorrelationRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the CorrelationRow struct tags
	writer := parquet.NewGenericWriter[CorrelationRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertBatchRunRecords converts schema.BatchRunRecord to BatchRun for Parquet export.
func ConvertBatchRunRecords(records []schema.BatchRunRecord) []BatchRun {
	result := make([]BatchRun, len(records))
	for i, record := range records {
		var finishedAt *time.Time
		if !record.FinishedAt.IsZero() {
			t := record.FinishedAt
			finishedAt = &t
		}
		result[i] = BatchRun{
			RunID:       record.ID,
			StartedAt:   record.StartedAt,
			FinishedAt:  finishedAt,
			CatalogPath: record.CatalogPath,
			StartOffset: int32(record.StartOffset),
			MaxRepos:    int32(record.MaxRepos),
			Succeeded:   int32(record.Succeeded),
			Failed:      int32(record.Failed),
		}
	}
	return result
}

// ConvertMetricSummaries converts schema.MetricSummary rows under one run to
// MetricSummaryRow for Parquet export.
func ConvertMetricSummaries(runID int64, rows []schema.MetricSummary) []MetricSummaryRow {
	result := make([]MetricSummaryRow, len(rows))
	for i, row := range rows {
		result[i] = MetricSummaryRow{
			RunID:           runID,
			Repository:      row.Repository,
			Metric:          string(row.Metric),
			Label:           row.Label,
			Required:        row.Required,
			ClassesAnalyzed: int32(row.Classes),
			InvalidValues:   int32(row.Invalid),
			Mean:            row.Mean,
			Median:          row.Median,
			StdDev:          row.StdDev,
			Min:             row.Min,
			Max:             row.Max,
			Q1:              row.Q1,
			Q3:              row.Q3,
		}
	}
	return result
}

// ConvertRepoRecords converts schema.RepoRecord to CatalogRow for Parquet export.
func ConvertRepoRecords(records []schema.RepoRecord) []CatalogRow {
	result := make([]CatalogRow, len(records))
	for i, record := range records {
		result[i] = CatalogRow{
			FullName:      record.FullName,
			HTMLURL:       record.HTMLURL,
			CloneURL:      record.CloneURL,
			Stars:         int32(record.Stars),
			Forks:         int32(record.Forks),
			CreatedAt:     record.CreatedAt,
			UpdatedAt:     record.UpdatedAt,
			SizeKB:        int32(record.SizeKB),
			Language:      record.Language,
			OpenIssues:    int32(record.OpenIssues),
			DefaultBranch: record.DefaultBranch,
		}
	}
	return result
}

// ConvertCorrelationResults converts schema.CorrelationResult to CorrelationRow for Parquet export.
func ConvertCorrelationResults(results []schema.CorrelationResult) []CorrelationRow {
	converted := make([]CorrelationRow, len(results))
	for i, res := range results {
		converted[i] = CorrelationRow{
			ResearchQuestion: string(res.Question),
			ProcessAttr:      string(res.Attr),
			QualityMetric:    string(res.Metric),
			SampleSize:       int32(res.N),
			PearsonR:         res.Pearson,
			PearsonP:         res.PearsonP,
			SpearmanRho:      res.Spearman,
			SpearmanP:        res.SpearmanP,
			Primary:          string(res.Primary),
			Strength:         res.Strength,
			Direction:        res.Direction,
			Significant:      res.Significant,
		}
	}
	return converted
}

// MockFetchBatchRuns generates sample BatchRun data for demonstration.
func MockFetchBatchRuns() []BatchRun {
	now := time.Now()
	startedAt1 := now.Add(-2 * time.Hour)
	finishedAt1 := now.Add(-1*time.Hour - 30*time.Minute)

	startedAt2 := now.Add(-24 * time.Hour)
	finishedAt2 := now.Add(-23 * time.Hour)

	startedAt3 := now.Add(-10 * time.Minute)
	// Note: the third run has no finish time to demonstrate nullable fields

	return []BatchRun{
		{
			RunID:       1,
			StartedAt:   startedAt1,
			FinishedAt:  &finishedAt1,
			CatalogPath: "output/repositories.csv",
			StartOffset: 0,
			MaxRepos:    50,
			Succeeded:   48,
			Failed:      2,
		},
		{
			RunID:       2,
			StartedAt:   startedAt2,
			FinishedAt:  &finishedAt2,
			CatalogPath: "output/repositories.csv",
			StartOffset: 50,
			MaxRepos:    50,
			Succeeded:   50,
			Failed:      0,
		},
		{
			RunID:       3,
			StartedAt:   startedAt3,
			FinishedAt:  nil, // Still running - nullable field
			CatalogPath: "output/repositories.csv",
			StartOffset: 100,
			MaxRepos:    50,
			Succeeded:   0,
			Failed:      0,
		},
	}
}

// MockFetchMetricSummaries generates sample MetricSummaryRow data for demonstration.
func MockFetchMetricSummaries() []MetricSummaryRow {
	mean := 22.0
	median := 3.0
	stdDev := 43.62
	minV := 1.0
	maxV := 100.0
	q1 := 2.0
	q3 := 4.0

	return []MetricSummaryRow{
		{
			RunID:           1,
			Repository:      "apache/kafka",
			Metric:          "cbo",
			Label:           "Coupling Between Objects",
			Required:        true,
			ClassesAnalyzed: 5,
			InvalidValues:   0,
			Mean:            &mean,
			Median:          &median,
			StdDev:          &stdDev,
			Min:             &minV,
			Max:             &maxV,
			Q1:              &q1,
			Q3:              &q3,
		},
		{
			RunID:           1,
			Repository:      "apache/kafka",
			Metric:          "dit",
			Label:           "Depth of Inheritance Tree",
			Required:        true,
			ClassesAnalyzed: 0,
			InvalidValues:   3,
			// All statistics nil - the metric had no valid cells
		},
	}
}
