package resultstore

import (
	"errors"
	"fmt"

	"github.com/ckscope/ckscope/internal/parquet"
)

// ExecuteResultsExport performs the actual export of batch data to Parquet files.
func ExecuteResultsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the results store
	store := Manager.GetResultStore()
	if store == nil {
		return errors.New("results store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no batch data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total batch runs: %d\n", status.TotalRuns)
	fmt.Printf("Total summary rows: %d\n", status.TableSizes[metricSummariesTable])

	// Retrieve all batch runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve batch runs: %w", err)
	}

	// Retrieve the summary rows run by run so each row keeps its run id
	var summaryRows []parquet.MetricSummaryRow
	for _, run := range runs {
		rows, err := store.GetSummariesForRun(run.ID)
		if err != nil {
			return fmt.Errorf("failed to retrieve summaries for run %d: %w", run.ID, err)
		}
		summaryRows = append(summaryRows, parquet.ConvertMetricSummaries(run.ID, rows)...)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertBatchRunRecords(runs)

	// Write batch runs to Parquet
	runsFile := outputFile + ".batch_runs.parquet"
	if err := parquet.WriteBatchRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write batch runs: %w", err)
	}
	fmt.Printf("Exported %d batch runs to: %s\n", len(parquetRuns), runsFile)

	// Write metric summaries to Parquet
	summariesFile := outputFile + ".metric_summaries.parquet"
	if err := parquet.WriteMetricSummariesParquet(summaryRows, summariesFile); err != nil {
		return fmt.Errorf("failed to write metric summaries: %w", err)
	}
	fmt.Printf("Exported %d summary rows to: %s\n", len(summaryRows), summariesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
