package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ckscope/ckscope/core"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleFetchCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetString("language", ""); l != "" {
		cfg.Language = l
	}
	if p := request.GetInt("pages", 0); p > 0 {
		cfg.Pages = p
	}
	if pp := request.GetInt("per_page", 0); pp > 0 {
		cfg.PerPage = pp
	}

	// Re-validate specifically for the pagination window
	if err := contract.RevalidateFetchWindow(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid fetch parameters: %v", err)), nil
	}

	records, err := core.GetCatalogResults(core.WithQuiet(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("catalog fetch failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.RepoArg = request.GetString("repository", "")

	rows, err := core.GetRepoAnalysisResults(core.WithQuiet(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleComputeStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if m := request.GetInt("min_classes", 0); m > 0 {
		cfg.MinClasses = m
	}

	report, err := core.GetStatsResults(core.WithQuiet(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleStoreStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil || h.mgr.GetResultStore() == nil {
		return mcp.NewToolResultError("results store not configured"), nil
	}

	status, err := h.mgr.GetResultStore().GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
