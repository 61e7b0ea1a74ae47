package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ckscope/ckscope/core/agg"
	"github.com/ckscope/ckscope/core/ckrun"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/outwriter"
	"github.com/ckscope/ckscope/schema"
)

// ExecuteRepoAnalysis clones one repository, runs the metrics tool over it
// and prints the aggregated per-metric summary. When a results store is
// configured the rows are persisted as a single-repository run; persistence
// failures warn instead of discarding a finished analysis.
func ExecuteRepoAnalysis(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	rows, err := GetRepoAnalysisResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteSummaryResults(rows, cfg, time.Since(start))
}

// GetRepoAnalysisResults wires the real git and tool clients and runs one
// repository through the pipeline. The MCP server calls this directly.
func GetRepoAnalysisResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.MetricSummary, error) {
	analyzer := ckrun.NewAnalyzer(cfg, contract.NewLocalGitClient(), contract.NewJavaCKRunner())
	return runRepoAnalysis(ctx, cfg, analyzer, resultStore(mgr))
}

// runRepoAnalysis is the analysis sequence, separated from client wiring so
// tests can drive it with mocked git and tool clients.
func runRepoAnalysis(ctx context.Context, cfg *contract.Config, analyzer *ckrun.Analyzer, store contract.ResultStore) ([]schema.MetricSummary, error) {
	fullName, cloneURL, err := resolveRepoArg(cfg.RepoArg)
	if err != nil {
		return nil, err
	}

	progressf(ctx, "🔎 Repo: %s\n", fullName)
	progressf(ctx, "☕ Tool: %s\n", cfg.CKJarPath)

	arts, err := analyzer.AnalyzeRepo(ctx, fullName, cloneURL)
	if err != nil {
		return nil, err
	}

	parsed, err := agg.ParseClassFile(arts.ClassCSV)
	if err != nil {
		return nil, err
	}
	rows := agg.SummarizeRepo(fullName, parsed)

	if store != nil {
		if err := persistSingleRun(store, cfg, rows); err != nil {
			contract.LogWarn("Results not persisted", err)
		}
	}
	return rows, nil
}

// persistSingleRun records a one-repository run so ad-hoc analyses show up
// in the runs listing alongside batches.
func persistSingleRun(store contract.ResultStore, cfg *contract.Config, rows []schema.MetricSummary) error {
	runID, err := store.BeginBatchRun(time.Now(), cfg.CatalogFile, 0, 1)
	if err != nil {
		return err
	}
	if err := store.InsertSummaries(runID, rows); err != nil {
		return err
	}
	return store.EndBatchRun(runID, time.Now(), 1, 0)
}

// resolveRepoArg accepts either an owner/name identifier or a full clone URL
// and returns both forms.
func resolveRepoArg(arg string) (fullName, cloneURL string, err error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", "", errors.New("repository argument cannot be empty")
	}

	if strings.Contains(arg, "://") {
		parsed, err := url.Parse(arg)
		if err != nil {
			return "", "", fmt.Errorf("invalid clone URL %s: %w", arg, err)
		}
		trimmed := strings.TrimSuffix(strings.Trim(parsed.Path, "/"), ".git")
		if _, _, ok := schema.SplitFullName(trimmed); !ok {
			return "", "", fmt.Errorf("cannot derive owner/name from %s", arg)
		}
		return trimmed, arg, nil
	}

	if _, _, ok := schema.SplitFullName(arg); !ok {
		return "", "", fmt.Errorf("expected owner/name or a clone URL, received %s", arg)
	}
	return arg, fmt.Sprintf("https://github.com/%s.git", arg), nil
}
