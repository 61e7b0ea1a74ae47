package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/parquet"
	"github.com/ckscope/ckscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// runTableTimeFormat keeps the runs table narrow; CSV keeps full RFC3339.
const runTableTimeFormat = "2006-01-02 15:04"

// WriteRunResults outputs the recorded batch runs, dispatching based on the output format configured.
func WriteRunResults(runs []schema.BatchRunRecord, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRunsJSONResults(runs, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRunsCSVResults(runs, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeRunsParquetResults(runs, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(runs, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeRunsJSONResults handles opening the file and calling the JSON writer.
func writeRunsJSONResults(runs []schema.BatchRunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, runs)
	}, "Wrote JSON")
}

// writeRunsCSVResults handles opening the file and calling the CSV writer.
func writeRunsCSVResults(runs []schema.BatchRunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, schema.RunsHeader, func(csvWriter *csv.Writer) error {
			return writeCSVRuns(csvWriter, runs)
		})
	}, "Wrote CSV")
}

// writeRunsParquetResults writes the batch runs to a Parquet file.
func writeRunsParquetResults(runs []schema.BatchRunRecord, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	converted := parquet.ConvertBatchRunRecords(runs)
	if err := parquet.WriteBatchRunsParquet(converted, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeRunsTable generates and writes the human-readable table.
func writeRunsTable(runs []schema.BatchRunRecord, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"ID", "Started", "Finished", "Catalog", "Offset", "Cap", "Succeeded", "Failed"}
	table.Header(headers)

	// 2. Configure alignment for the numeric columns
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, r := range runs {
		finished := "-"
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Format(runTableTimeFormat)
		}
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Format(runTableTimeFormat),
			finished,
			contract.TruncatePath(r.CatalogPath, getMaxTableRepoWidth(cfg)),
			strconv.Itoa(r.StartOffset),
			strconv.Itoa(r.MaxRepos),
			strconv.Itoa(r.Succeeded),
			strconv.Itoa(r.Failed),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d batch runs\n", len(runs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Listed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVRuns writes the batch runs in CSV format. Runs that never
// finished keep an empty finished_at cell.
func writeCSVRuns(w *csv.Writer, runs []schema.BatchRunRecord) error {
	for _, r := range runs {
		finished := ""
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Format(contract.DateTimeFormat)
		}
		rec := []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Format(contract.DateTimeFormat),
			finished,
			r.CatalogPath,
			strconv.Itoa(r.StartOffset),
			strconv.Itoa(r.MaxRepos),
			strconv.Itoa(r.Succeeded),
			strconv.Itoa(r.Failed),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
