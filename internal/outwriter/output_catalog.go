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

// WriteCatalogResults outputs the repository catalog, dispatching based on the output format configured.
func WriteCatalogResults(records []schema.RepoRecord, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCatalogJSONResults(records, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCatalogCSVResults(records, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeCatalogParquetResults(records, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogTable(records, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeCatalogJSONResults handles opening the file and calling the JSON writer.
func writeCatalogJSONResults(records []schema.RepoRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONCatalog(w, records)
	}, "Wrote JSON")
}

// WriteCatalogFile persists the catalog rows as CSV to path, regardless of
// the configured output mode. The batch orchestrator reads this file back,
// so it is written even when the display output goes elsewhere.
func WriteCatalogFile(records []schema.RepoRecord, path string) error {
	return writeWithFile(path, func(w io.Writer) error {
		return writeCSVWithHeader(w, schema.CatalogHeader, func(csvWriter *csv.Writer) error {
			return writeCSVCatalog(csvWriter, records)
		})
	}, "Saved catalog")
}

// writeCatalogCSVResults handles opening the file and calling the CSV writer.
func writeCatalogCSVResults(records []schema.RepoRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, schema.CatalogHeader, func(csvWriter *csv.Writer) error {
			return writeCSVCatalog(csvWriter, records)
		})
	}, "Wrote CSV")
}

// writeCatalogParquetResults writes the catalog to a Parquet file.
// Parquet is a binary columnar format, so it never goes to stdout.
func writeCatalogParquetResults(records []schema.RepoRecord, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	rows := parquet.ConvertRepoRecords(records)
	if err := parquet.WriteCatalogParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeCatalogTable generates and writes the human-readable table.
func writeCatalogTable(records []schema.RepoRecord, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Repository", "Stars", "Forks", "Size KB", "Age Yrs", "Language"}
	table.Header(headers)

	// 2. Configure alignment for the numeric columns
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	now := time.Now()
	var data [][]string
	for i, r := range records {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncatePath(r.FullName, getMaxTableRepoWidth(cfg)), // Repository
			strconv.Itoa(r.Stars),       // Stars
			strconv.Itoa(r.Forks),       // Forks
			strconv.Itoa(r.SizeKB),      // Size in KB
			fmtFloat(r.AgeYears(now)),   // Age in years
			r.Language,                  // Language
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

	// Compute summary stats
	totalStars := 0
	for _, r := range records {
		totalStars += r.Stars
	}
	if _, err := fmt.Fprintf(writer, "Showing %d repositories (total stars: %d)\n", len(records), totalStars); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Catalog fetch completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVCatalog writes the catalog rows in CSV format.
// The column order matches schema.CatalogHeader so the output doubles as a
// batch input file.
func writeCSVCatalog(w *csv.Writer, records []schema.RepoRecord) error {
	for _, r := range records {
		rec := []string{
			r.FullName,                            // Repository identifier
			r.HTMLURL,                             // Web URL
			r.CloneURL,                            // Clone URL
			strconv.Itoa(r.Stars),                 // Stars
			strconv.Itoa(r.Forks),                 // Forks
			r.CreatedAt.Format(time.RFC3339),      // Created timestamp
			r.UpdatedAt.Format(time.RFC3339),      // Updated timestamp
			strconv.Itoa(r.SizeKB),                // Size in KB
			r.Language,                            // Language
			strconv.Itoa(r.OpenIssues),            // Open issues
			r.DefaultBranch,                       // Default branch
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONCatalog writes the catalog rows in JSON format.
func writeJSONCatalog(w io.Writer, records []schema.RepoRecord) error {
	// 1. Prepare the data structure for JSON with rank added
	type JSONRepoRecord struct {
		Rank int `json:"rank"`
		schema.RepoRecord
	}

	output := make([]JSONRepoRecord, len(records))
	for i, r := range records {
		output[i] = JSONRepoRecord{
			Rank:       i + 1,
			RepoRecord: r,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
