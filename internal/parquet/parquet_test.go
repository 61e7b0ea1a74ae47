package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ckscope/ckscope/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(BatchRun))
	require.NotNil(t, sch)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"started_at",
		"finished_at",
		"catalog_path",
		"start_offset",
		"max_repos",
		"succeeded",
		"failed",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestMetricSummaryRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(MetricSummaryRow))
	require.NotNil(t, sch)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"repository",
		"metric",
		"label",
		"required",
		"classes_analyzed",
		"invalid_values",
		"mean",
		"median",
		"std_dev",
		"min_value",
		"max_value",
		"q1",
		"q3",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteBatchRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "batch_runs.parquet")

	// Get mock data
	data := MockFetchBatchRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteBatchRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[BatchRun](file)
	defer reader.Close()

	// Read all rows
	readData := make([]BatchRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].CatalogPath, readData[i].CatalogPath, "CatalogPath should match")
		assert.Equal(t, data[i].Succeeded, readData[i].Succeeded, "Succeeded should match")
		assert.Equal(t, data[i].Failed, readData[i].Failed, "Failed should match")

		// Check the nullable finish time
		if data[i].FinishedAt == nil {
			assert.Nil(t, readData[i].FinishedAt, "FinishedAt should be nil")
		} else {
			require.NotNil(t, readData[i].FinishedAt, "FinishedAt should not be nil")
			assert.WithinDuration(t, *data[i].FinishedAt, *readData[i].FinishedAt, time.Nanosecond, "FinishedAt should match within nanosecond precision")
		}
	}
}

func TestWriteMetricSummariesParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "metric_summaries.parquet")

	// Get mock data
	data := MockFetchMetricSummaries()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteMetricSummariesParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[MetricSummaryRow](file)
	defer reader.Close()

	// Read all rows
	readData := make([]MetricSummaryRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity, including that nil statistics stay nil
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].Repository, readData[i].Repository, "Repository should match")
		assert.Equal(t, data[i].Metric, readData[i].Metric, "Metric should match")
		assert.Equal(t, data[i].Required, readData[i].Required, "Required should match")
		assert.Equal(t, data[i].ClassesAnalyzed, readData[i].ClassesAnalyzed, "ClassesAnalyzed should match")
		assert.Equal(t, data[i].InvalidValues, readData[i].InvalidValues, "InvalidValues should match")

		if data[i].Mean == nil {
			assert.Nil(t, readData[i].Mean, "Mean should be nil")
		} else {
			require.NotNil(t, readData[i].Mean, "Mean should not be nil")
			assert.InDelta(t, *data[i].Mean, *readData[i].Mean, 0.001, "Mean should match")
		}

		if data[i].Q3 == nil {
			assert.Nil(t, readData[i].Q3, "Q3 should be nil")
		} else {
			require.NotNil(t, readData[i].Q3, "Q3 should not be nil")
			assert.InDelta(t, *data[i].Q3, *readData[i].Q3, 0.001, "Q3 should match")
		}
	}
}

func TestCatalogRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(CatalogRow))
	require.NotNil(t, sch)

	// The columns mirror schema.CatalogHeader
	for _, colName := range schema.CatalogHeader {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestCorrelationRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(CorrelationRow))
	require.NotNil(t, sch)

	// The columns mirror schema.CorrelationHeader
	for _, colName := range schema.CorrelationHeader {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteCatalogParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "catalog.parquet")

	created := time.Date(2015, 3, 1, 9, 0, 0, 0, time.UTC)
	data := []CatalogRow{
		{
			FullName:      "apache/kafka",
			HTMLURL:       "https://github.com/apache/kafka",
			CloneURL:      "https://github.com/apache/kafka.git",
			Stars:         28000,
			Forks:         13000,
			CreatedAt:     created,
			UpdatedAt:     created.AddDate(9, 0, 0),
			SizeKB:        512000,
			Language:      "Java",
			OpenIssues:    150,
			DefaultBranch: "trunk",
		},
	}

	err := WriteCatalogParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[CatalogRow](file)
	defer reader.Close()

	readData := make([]CatalogRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, 1, n, "Should read all records")

	assert.Equal(t, "apache/kafka", readData[0].FullName)
	assert.Equal(t, int32(28000), readData[0].Stars)
	assert.Equal(t, "trunk", readData[0].DefaultBranch)
	assert.WithinDuration(t, created, readData[0].CreatedAt, time.Nanosecond)
}

func TestConvertRepoRecords(t *testing.T) {
	created := time.Date(2012, 1, 15, 0, 0, 0, 0, time.UTC)
	records := []schema.RepoRecord{
		{
			FullName:      "spring-projects/spring-boot",
			HTMLURL:       "https://github.com/spring-projects/spring-boot",
			CloneURL:      "https://github.com/spring-projects/spring-boot.git",
			Stars:         75000,
			Forks:         40000,
			CreatedAt:     created,
			UpdatedAt:     created.AddDate(12, 0, 0),
			SizeKB:        250000,
			Language:      "Java",
			OpenIssues:    600,
			DefaultBranch: "main",
		},
	}

	converted := ConvertRepoRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, "spring-projects/spring-boot", converted[0].FullName)
	assert.Equal(t, int32(75000), converted[0].Stars)
	assert.Equal(t, int32(250000), converted[0].SizeKB)
	assert.True(t, converted[0].CreatedAt.Equal(created))
}

func TestConvertCorrelationResults(t *testing.T) {
	results := []schema.CorrelationResult{
		{
			Question:    schema.RQ01,
			Attr:        schema.AttrStars,
			Metric:      schema.MetricCBO,
			N:           950,
			Pearson:     -0.085,
			PearsonP:    0.007,
			Spearman:    -0.12,
			SpearmanP:   0.0002,
			Primary:     schema.SpearmanMethod,
			Strength:    "weak",
			Direction:   "negative",
			Significant: true,
		},
	}

	converted := ConvertCorrelationResults(results)
	require.Len(t, converted, 1)
	assert.Equal(t, "RQ01", converted[0].ResearchQuestion)
	assert.Equal(t, "stars", converted[0].ProcessAttr)
	assert.Equal(t, "cbo", converted[0].QualityMetric)
	assert.Equal(t, int32(950), converted[0].SampleSize)
	assert.InDelta(t, -0.12, converted[0].SpearmanRho, 1e-9)
	assert.Equal(t, "spearman", converted[0].Primary)
	assert.True(t, converted[0].Significant)
}

func TestConvertBatchRunRecords(t *testing.T) {
	finished := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []schema.BatchRunRecord{
		{
			ID:          7,
			StartedAt:   finished.Add(-time.Hour),
			FinishedAt:  finished,
			CatalogPath: "output/repositories.csv",
			StartOffset: 20,
			MaxRepos:    10,
			Succeeded:   9,
			Failed:      1,
		},
		{
			ID:        8,
			StartedAt: finished.Add(time.Hour),
			// Zero FinishedAt means the run is still in flight
		},
	}

	converted := ConvertBatchRunRecords(records)
	require.Len(t, converted, 2)

	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, int32(20), converted[0].StartOffset)
	require.NotNil(t, converted[0].FinishedAt)
	assert.True(t, converted[0].FinishedAt.Equal(finished))

	assert.Equal(t, int64(8), converted[1].RunID)
	assert.Nil(t, converted[1].FinishedAt)
}

func TestConvertMetricSummaries(t *testing.T) {
	rows := []schema.MetricSummary{
		{
			Repository: "apache/kafka",
			Metric:     schema.MetricCBO,
			Label:      "Coupling Between Objects",
			Required:   true,
			Classes:    5,
			Invalid:    1,
			Mean:       schema.Float64Ptr(22),
			Median:     schema.Float64Ptr(3),
		},
		schema.EmptySummary("apache/kafka", schema.MetricNOC, 0),
	}

	converted := ConvertMetricSummaries(42, rows)
	require.Len(t, converted, 2)

	assert.Equal(t, int64(42), converted[0].RunID)
	assert.Equal(t, "cbo", converted[0].Metric)
	assert.Equal(t, int32(5), converted[0].ClassesAnalyzed)
	require.NotNil(t, converted[0].Mean)
	assert.InDelta(t, 22.0, *converted[0].Mean, 1e-9)
	assert.Nil(t, converted[0].StdDev)

	assert.Equal(t, int64(42), converted[1].RunID)
	assert.Equal(t, "noc", converted[1].Metric)
	assert.False(t, converted[1].Required)
	assert.Nil(t, converted[1].Mean)
}
