package cmd

import (
	"github.com/ckscope/ckscope/core"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of the tracked metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display definitions of the tracked CK metrics and research questions",
	Long: `Show the formal definitions of the per-class metrics the pipeline
collects and the research questions their summaries answer.

Covers:
- What each metric measures (coupling, cohesion, inheritance, complexity, size)
- Which metrics the study requires and which are supplementary context
- The four research questions and the process attribute each one uses

No cloning or analysis is performed - this is purely informational.

Use this to:
- Explain the methodology to collaborators
- Document which metrics a published run collected
- Check metric spelling for scripts that filter results

Examples:
  # Show definitions
  ckscope metrics

  # Machine-readable copy for a paper appendix
  ckscope metrics --output json --output-file metrics.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetricsInfo(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot display metric definitions", err)
		}
	},
}
