package cmd

import (
	"github.com/ckscope/ckscope/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the ckscope MCP server",
	Long:  `Launch an MCP server that allows AI agents to fetch catalogs, analyze repositories and compute correlations via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Progress prints are suppressed when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
