package core

import (
	"context"
	"fmt"
	"time"

	"github.com/ckscope/ckscope/core/corr"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/ghapi"
	"github.com/ckscope/ckscope/internal/outwriter"
	"github.com/ckscope/ckscope/schema"
)

// ExecuteStatsAnalysis recomputes the study's correlations from the
// accumulated results CSV joined against the catalog. Collection never runs
// here, so the analysis can be rerun cheaply with different thresholds.
func ExecuteStatsAnalysis(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()

	report, err := GetStatsResults(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.ReportFile != "" {
		if err := outwriter.WriteMarkdownReport(report, cfg); err != nil {
			return err
		}
	}
	return outwriter.WriteStatsResults(report, cfg, time.Since(start))
}

// GetStatsResults joins the accumulated results against the catalog and
// recomputes the report. The MCP server calls this directly.
func GetStatsResults(ctx context.Context, cfg *contract.Config) (*schema.StatsReport, error) {
	catalog, err := LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	summaries, err := LoadSummaries(cfg.ResultsFile)
	if err != nil {
		return nil, err
	}

	progressf(ctx, "🔎 Joining %d summary rows against %d catalog repositories\n", len(summaries), len(catalog))

	if orphans := countJoinOrphans(catalog, summaries); orphans > 0 {
		contract.LogWarn("Catalog join", fmt.Errorf("ignoring %d summary rows with no matching catalog repository", orphans))
	}

	releases := fetchReleaseCounts(ctx, ghapi.NewClient(cfg.Token), catalog, summaries)

	opts := corr.DefaultOptions()
	opts.MinClasses = cfg.MinClasses
	return corr.Analyze(catalog, summaries, releases, opts), nil
}

// countJoinOrphans reports how many summary rows reference a repository the
// catalog does not contain. Those rows never reach the correlation input.
func countJoinOrphans(catalog []schema.RepoRecord, summaries []schema.MetricSummary) int {
	known := make(map[string]struct{}, len(catalog))
	for _, repo := range catalog {
		known[repo.FullName] = struct{}{}
	}

	orphans := 0
	for _, s := range summaries {
		if _, ok := known[s.Repository]; !ok {
			orphans++
		}
	}
	return orphans
}

// fetchReleaseCounts supplies the activity attribute for every repository in
// the joined set. A failed lookup degrades that repository to zero releases
// with a warning; the analysis still runs.
func fetchReleaseCounts(ctx context.Context, client *ghapi.Client, catalog []schema.RepoRecord, summaries []schema.MetricSummary) map[string]int {
	analyzed := make(map[string]struct{}, len(summaries))
	for _, s := range summaries {
		analyzed[s.Repository] = struct{}{}
	}

	var joined []string
	for _, repo := range catalog {
		if _, ok := analyzed[repo.FullName]; ok {
			joined = append(joined, repo.FullName)
		}
	}

	progressf(ctx, "📦 Fetching release counts for %d repositories\n", len(joined))

	releases := make(map[string]int, len(joined))
	for _, fullName := range joined {
		count, err := client.ReleaseCount(ctx, fullName)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Release count for %s defaults to 0", fullName), err)
			count = 0
		}
		releases[fullName] = count
	}
	return releases
}
