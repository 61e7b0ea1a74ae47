package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/parquet"
	"github.com/ckscope/ckscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummaryResults outputs metric summary rows, dispatching based on the output format configured.
func WriteSummaryResults(rows []schema.MetricSummary, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	_, fmtStat := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSummaryJSONResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSVResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeSummaryParquetResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(rows, cfg, fmtStat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryJSONResults handles opening the file and calling the JSON writer.
func writeSummaryJSONResults(rows []schema.MetricSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, rows)
	}, "Wrote JSON")
}

// writeSummaryCSVResults handles opening the file and calling the CSV writer.
func writeSummaryCSVResults(rows []schema.MetricSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, schema.SummaryHeader, func(csvWriter *csv.Writer) error {
			return writeCSVSummaries(csvWriter, rows)
		})
	}, "Wrote CSV")
}

// AppendSummaryFile appends summary rows to the accumulated results CSV at
// path, creating it with a header first when it does not exist or is empty.
// The batch orchestrator calls this after every repository so an interrupted
// run keeps everything collected so far.
func AppendSummaryFile(rows []schema.MetricSummary, path string) error {
	needHeader := true
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		needHeader = false
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	csvWriter := csv.NewWriter(f)
	if needHeader {
		if err := csvWriter.Write(schema.SummaryHeader); err != nil {
			return err
		}
	}
	if err := writeCSVSummaries(csvWriter, rows); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// writeSummaryParquetResults writes the summary rows to a Parquet file.
func writeSummaryParquetResults(rows []schema.MetricSummary, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	// Rows written straight from an analysis have no batch run yet
	converted := parquet.ConvertMetricSummaries(0, rows)
	if err := parquet.WriteMetricSummariesParquet(converted, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(rows []schema.MetricSummary, cfg *contract.Config, fmtStat func(*float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Repository", "Metric", "Classes", "Invalid", "Mean", "Median", "Std Dev", "Min", "Max", "Q1", "Q3"}
	table.Header(headers)

	// 2. Configure alignment for the numeric columns
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	repos := make(map[string]struct{})
	var data [][]string
	for _, s := range rows {
		repos[s.Repository] = struct{}{}
		row := []string{
			contract.TruncatePath(s.Repository, getMaxTableRepoWidth(cfg)),
			string(s.Metric),
			strconv.Itoa(s.Classes),
			strconv.Itoa(s.Invalid),
			fmtStat(s.Mean),
			fmtStat(s.Median),
			fmtStat(s.StdDev),
			fmtStat(s.Min),
			fmtStat(s.Max),
			fmtStat(s.Q1),
			fmtStat(s.Q3),
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

	if _, err := fmt.Fprintf(writer, "Showing %d summary rows across %d repositories\n", len(rows), len(repos)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVSummaries writes the summary rows in CSV format.
// The column order matches schema.SummaryHeader, which is also the layout of
// the accumulated results file the batch orchestrator appends to. Statistics
// keep full precision so a written file can be re-read without loss.
func writeCSVSummaries(w *csv.Writer, rows []schema.MetricSummary) error {
	for _, s := range rows {
		rec := []string{
			s.Repository,                   // Repository identifier
			string(s.Metric),               // Metric key
			s.Label,                        // Human-readable name
			strconv.FormatBool(s.Required), // Mandated by the study
			strconv.Itoa(s.Classes),        // Valid class count
			strconv.Itoa(s.Invalid),        // Dropped cells
			schema.FormatFloatPtr(s.Mean),
			schema.FormatFloatPtr(s.Median),
			schema.FormatFloatPtr(s.StdDev),
			schema.FormatFloatPtr(s.Min),
			schema.FormatFloatPtr(s.Max),
			schema.FormatFloatPtr(s.Q1),
			schema.FormatFloatPtr(s.Q3),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
