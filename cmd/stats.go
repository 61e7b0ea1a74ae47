package cmd

import (
	"github.com/ckscope/ckscope/core"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd runs the statistical analysis over collected results.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Correlate collected metrics with repository process attributes.",
	Long: `Join the accumulated results CSV with the catalog and answer the four
research questions: how popularity (stars), maturity (age), activity
(releases) and size (repository KB) relate to internal quality
(cbo, dit, lcom, wmc).

For every attribute-metric pair the analysis reports Pearson and Spearman
coefficients with p-values, picks the primary coefficient by normality of
the inputs, and labels strength and significance. Quartile summaries per
process attribute accompany the correlation table.

Release counts come from the hosting API at stats time, so a token helps
here exactly as it does for fetch. Repositories with fewer classes than
--min-classes are left out of the correlation.

This stage is pure recomputation: it never clones or collects, so it can
be re-run freely while a long batch is still filling the results CSV.

Examples:
  # Correlations plus the Markdown report
  ckscope stats

  # Console only, no report file
  ckscope stats --report ""

  # Stricter inclusion threshold
  ckscope stats --min-classes 10

  # CSV output for a spreadsheet
  ckscope stats --output csv --output-file correlations.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStatsAnalysis(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run statistical analysis", err)
		}
	},
}
