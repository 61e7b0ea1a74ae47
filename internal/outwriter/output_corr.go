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

// WriteStatsResults outputs the statistical analysis, dispatching based on the output format configured.
func WriteStatsResults(report *schema.StatsReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeStatsJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeStatsCSVResults(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeStatsParquetResults(report, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTables(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeStatsJSONResults handles opening the file and calling the JSON writer.
// JSON keeps the whole report in one document so counts, correlations and
// quartile bins travel together.
func writeStatsJSONResults(report *schema.StatsReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON")
}

// writeStatsCSVResults handles opening the file and calling the CSV writer.
// CSV carries the correlation rows only, matching schema.CorrelationHeader.
func writeStatsCSVResults(report *schema.StatsReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, schema.CorrelationHeader, func(csvWriter *csv.Writer) error {
			return writeCSVCorrelations(csvWriter, report.Correlations)
		})
	}, "Wrote CSV")
}

// writeStatsParquetResults writes the correlation rows to a Parquet file.
func writeStatsParquetResults(report *schema.StatsReport, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	rows := parquet.ConvertCorrelationResults(report.Correlations)
	if err := parquet.WriteCorrelationsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeStatsTables generates and writes the human-readable tables.
func writeStatsTables(report *schema.StatsReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if err := writeCorrelationTable(report.Correlations, cfg, fmtFloat, writer); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}
	if err := writeQuartileTable(report.Quartiles, fmtFloat, writer); err != nil {
		return err
	}

	// Bookkeeping counts the study reports alongside the tables
	if _, err := fmt.Fprintf(writer, "Analyzed %d repositories (%d excluded, %d pairs omitted, %d outliers removed)\n",
		report.Repositories, report.ExcludedRepos, report.OmittedPairs, report.OutliersRemoved); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Statistical analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCorrelationTable renders one row per (process attribute, quality metric) pair.
func writeCorrelationTable(results []schema.CorrelationResult, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"RQ", "Attribute", "Metric", "N", "Pearson r", "p", "Spearman rho", "p", "Primary", "Strength", "Direction", "Sig"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, res := range results {
		strength := res.Strength
		if cfg.UseColors {
			strength = contract.GetColorStrength(res.PrimaryR())
		}
		sig := ""
		if res.Significant {
			sig = "*"
		}
		row := []string{
			string(res.Question),
			string(res.Attr),
			string(res.Metric),
			strconv.Itoa(res.N),
			fmtFloat(res.Pearson),
			fmtPValue(res.PearsonP),
			fmtFloat(res.Spearman),
			fmtPValue(res.SpearmanP),
			string(res.Primary),
			strength,
			res.Direction,
			sig,
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d correlation pairs (* = p < 0.05)\n", len(results)); err != nil {
		return err
	}
	return nil
}

// writeQuartileTable renders the per-quartile means of the quality metrics.
func writeQuartileTable(bins []schema.QuartileBin, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Attribute", "Bin", "Count", "Range"}
	for _, m := range schema.QualityMetrics {
		headers = append(headers, "Mean "+string(m))
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, bin := range bins {
		row := []string{
			string(bin.Attr),
			bin.Bin,
			strconv.Itoa(bin.Count),
			fmt.Sprintf("%s..%s", fmtFloat(bin.AttrLow), fmtFloat(bin.AttrUp)),
		}
		for _, m := range schema.QualityMetrics {
			row = append(row, fmtFloat(bin.Means[m]))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d quartile bins\n", len(bins)); err != nil {
		return err
	}
	return nil
}

// writeCSVCorrelations writes the correlation rows in CSV format.
// Coefficients keep full precision so downstream notebooks are not bound to
// the table's display precision.
func writeCSVCorrelations(w *csv.Writer, results []schema.CorrelationResult) error {
	for _, res := range results {
		rec := []string{
			string(res.Question),                           // Research question
			string(res.Attr),                               // Process attribute
			string(res.Metric),                             // Quality metric
			strconv.Itoa(res.N),                            // Sample size
			strconv.FormatFloat(res.Pearson, 'g', -1, 64),  // Pearson r
			strconv.FormatFloat(res.PearsonP, 'g', -1, 64), // Pearson p
			strconv.FormatFloat(res.Spearman, 'g', -1, 64), // Spearman rho
			strconv.FormatFloat(res.SpearmanP, 'g', -1, 64),
			string(res.Primary),               // Selected coefficient
			res.Strength,                      // Strength label
			res.Direction,                     // positive or negative
			strconv.FormatBool(res.Significant),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
