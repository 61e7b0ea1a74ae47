package cmd

import (
	"github.com/ckscope/ckscope/core"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd verifies the collection environment.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the environment before a collection run (fails on missing tools)",
	Long: `Check every external dependency the pipeline needs and report each one.

Checked:
- git on PATH (clones)
- java on PATH (runs the CK JAR)
- the CK JAR exists and is readable
- the scratch directory is writable
- API token presence (warning only; unauthenticated runs are rate-limited)

Exits non-zero when a required check fails, so it can gate an unattended
collection campaign before any cloning starts.

Examples:
  # Default locations
  ckscope check

  # Explicit tool and scratch locations
  ckscope check --ck-jar /opt/ck/ck.jar --scratch-dir /mnt/scratch`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Per-check reporting is done in ExecuteEnvCheck
		if err := core.ExecuteEnvCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Environment check failed", err)
		}
	},
}
