// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the ckscope MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"CK Metrics Pipeline Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: fetch_catalog ---
	s.AddTool(mcp.NewTool("fetch_catalog",
		mcp.WithDescription("Fetch the most-starred repositories for a language and save them as the catalog CSV."),
		mcp.WithString("language", mcp.Description("Search language. Defaults to the configured language (Java).")),
		mcp.WithNumber("pages", mcp.Description("Number of search pages to walk.")),
		mcp.WithNumber("per_page", mcp.Description("Repositories per page (max 100).")),
	), h.handleFetchCatalog)

	// --- 2. Tool: analyze_repository ---
	s.AddTool(mcp.NewTool("analyze_repository",
		mcp.WithDescription("Clone one repository, run the CK metrics tool over it and return per-metric summary statistics."),
		mcp.WithString("repository", mcp.Description("Repository as owner/name or a full clone URL."), mcp.Required()),
	), h.handleAnalyzeRepository)

	// --- 3. Tool: compute_stats ---
	s.AddTool(mcp.NewTool("compute_stats",
		mcp.WithDescription("Join the accumulated results against the catalog and recompute descriptive statistics and correlations."),
		mcp.WithNumber("min_classes", mcp.Description("Minimum analyzed classes for a repository to enter the analysis.")),
	), h.handleComputeStats)

	// --- 4. Tool: store_status ---
	s.AddTool(mcp.NewTool("store_status",
		mcp.WithDescription("Report the results store backend, connectivity and row counts."),
	), h.handleStoreStatus)

	return s
}

// StartMCPServer starts the ckscope MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
