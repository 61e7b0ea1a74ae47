package cmd

import (
	"github.com/ckscope/ckscope/core"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/spf13/cobra"
)

// runsCmd lists recorded batch runs.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List batch runs recorded in the results store.",
	Long: `Show every batch run the results store has recorded: when it started and
finished, which catalog it walked, the offset and cap it was given, and
how many repositories succeeded or failed.

Useful for checking what a long collection campaign has covered so far
and where to point --start-offset next.

Examples:
  # Table of all runs
  ckscope runs

  # Export run history for bookkeeping
  ckscope runs --output csv --output-file runs.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRunsList(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list batch runs", err)
		}
	},
}
