package cmd

import (
	"github.com/ckscope/ckscope/core"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/spf13/cobra"
)

// batchCmd runs the collection pipeline over the whole catalog.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every repository in the catalog and accumulate the results.",
	Long: `Work through the catalog CSV row by row: clone each repository, run the
CK metrics tool, aggregate the per-class output into summary rows and
append them to the results CSV.

A failing repository never stops the batch; its failure is recorded with
the stage that failed (clone, precheck, metrics, aggregate, persist) and
the run moves on. Progress is flushed after every repository, so an
interrupted batch can resume with --start-offset.

When a results store backend is configured the run itself is recorded
(started, finished, success and failure counts) alongside every summary
row, which is what 'ckscope runs' and 'ckscope status' report on.

Examples:
  # The whole catalog
  ckscope batch

  # Resume after an interruption at repository 412
  ckscope batch --start-offset 412

  # A 50-repository slice for a pilot run
  ckscope batch --start-offset 100 --max-repos 50

  # Be gentler with the hosting provider
  ckscope batch --delay 10s`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBatchAnalysis(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run batch analysis", err)
		}
	},
}
