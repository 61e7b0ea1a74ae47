package cmd

import (
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/resultstore"
	"github.com/spf13/cobra"
)

// statusCmd shows results store status.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display results store statistics and connection details",
	Long: `Show detailed information about the results store.

Displays:
- Backend type and connection status
- Total number of recorded batch runs
- Last and oldest run timestamps
- Table sizes

Use this to verify the store is connected before a long batch, and to
check how much a collection campaign has accumulated.

Examples:
  # Check store status
  ckscope status

  # Check a MySQL store
  CKSCOPE_STORE_BACKEND=mysql CKSCOPE_STORE_DB_CONNECT="..." ckscope status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := resultstore.Manager.GetResultStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		resultstore.PrintStoreStatus(status)
	},
}
