// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCatalog prints the repository catalog using the configured output format.
func (ow *OutWriter) WriteCatalog(records []schema.RepoRecord, cfg *contract.Config, duration time.Duration) error {
	return WriteCatalogResults(records, cfg, duration)
}

// WriteSummaries prints metric summary rows using the configured output format.
func (ow *OutWriter) WriteSummaries(rows []schema.MetricSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResults(rows, cfg, duration)
}

// WriteStats prints the correlation analysis using the configured output format.
func (ow *OutWriter) WriteStats(report *schema.StatsReport, cfg *contract.Config, duration time.Duration) error {
	return WriteStatsResults(report, cfg, duration)
}

// WriteReport renders the markdown study report to the configured report file.
func (ow *OutWriter) WriteReport(report *schema.StatsReport, cfg *contract.Config) error {
	return WriteMarkdownReport(report, cfg)
}

// getMaxTableRepoWidth calculates the maximum width for repository names in
// table output based on terminal width and table configuration.
func getMaxTableRepoWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed numeric columns with borders and padding
	baseWidth := 45

	// Calculate available space for the repository name
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 50 {
		// Maximum name width to prevent overly wide tables
		return 50
	}
	return available
}
