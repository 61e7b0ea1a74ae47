package cmd

import (
	"github.com/ckscope/ckscope/core"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd analyzes a single repository.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <owner/name | clone-url>",
	Short: "Clone one repository and summarize its CK metrics.",
	Long: `Shallow-clone a single repository, run the CK metrics tool over it and
print one summary row per metric (cbo, dit, lcom, wmc, loc, noc, rfc).

Each row carries the class count plus mean, median, standard deviation,
min, max and quartiles across every class the tool measured. When a
results store backend is configured the rows are also recorded there.

The repository can be named as owner/name or as a full clone URL. Clones
land in a scratch directory and are removed afterwards; the raw per-class
CSV is kept under --output-dir for later inspection.

Examples:
  # By owner/name
  ckscope analyze apache/kafka

  # By clone URL
  ckscope analyze https://github.com/google/guava.git

  # JSON output for scripting
  ckscope analyze apache/kafka --output json

  # Keep raw per-class CSVs somewhere specific
  ckscope analyze apache/kafka --output-dir /data/ck-results`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRepoAnalysis(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run repository analysis", err)
		}
	},
}
