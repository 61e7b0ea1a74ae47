package core

import (
	"context"
	"fmt"
	"time"

	"github.com/ckscope/ckscope/core/agg"
	"github.com/ckscope/ckscope/core/ckrun"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/outwriter"
	"github.com/ckscope/ckscope/schema"
)

// ExecuteBatchAnalysis runs the analyzer over a slice of the catalog,
// appending summary rows to the accumulated results CSV after every
// repository. A failing repository is recorded with its stage and the loop
// moves on; only a missing or unreadable catalog aborts the batch.
func ExecuteBatchAnalysis(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	analyzer := ckrun.NewAnalyzer(cfg, contract.NewLocalGitClient(), contract.NewJavaCKRunner())
	outcome, err := runBatch(ctx, cfg, analyzer, resultStore(mgr))
	if err != nil {
		return err
	}
	printBatchOutcome(*outcome, time.Since(start))
	return nil
}

// runBatch is the orchestration loop, separated from client wiring so tests
// can drive it with mocked git and tool clients.
func runBatch(ctx context.Context, cfg *contract.Config, analyzer *ckrun.Analyzer, store contract.ResultStore) (*schema.BatchOutcome, error) {
	start := time.Now()

	catalog, err := LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	selected := sliceCatalog(catalog, cfg.StartOffset, cfg.MaxRepos)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no repositories selected (catalog has %d, offset %d)", len(catalog), cfg.StartOffset)
	}

	progressf(ctx, "🔎 Catalog: %s (%d of %d repositories, offset %d)\n",
		cfg.CatalogFile, len(selected), len(catalog), cfg.StartOffset)

	var runID int64
	if store != nil {
		runID, err = store.BeginBatchRun(start, cfg.CatalogFile, cfg.StartOffset, cfg.MaxRepos)
		if err != nil {
			contract.LogWarn("Results store disabled for this run", err)
			store = nil
		}
	}

	var outcome schema.BatchOutcome

	for i, repo := range selected {
		progressf(ctx, "[%d/%d] 🔎 %s\n", i+1, len(selected), repo.FullName)

		if failure := processRepo(ctx, cfg, analyzer, store, runID, repo); failure != nil {
			outcome.Failed++
			outcome.Failures = append(outcome.Failures, *failure)
			contract.LogWarn(fmt.Sprintf("Skipping %s at stage %s", failure.Repository, failure.Stage), nil)
		} else {
			outcome.Succeeded++
		}

		if i < len(selected)-1 {
			if err := sleepCtx(ctx, cfg.Delay); err != nil {
				contract.LogWarn(fmt.Sprintf("Interrupted after %d repositories", i+1), err)
				break
			}
		}
	}

	if store != nil {
		if err := store.EndBatchRun(runID, time.Now(), outcome.Succeeded, outcome.Failed); err != nil {
			contract.LogWarn("Run record not finalized", err)
		}
	}

	return &outcome, nil
}

// processRepo runs one repository through analysis, aggregation and
// persistence. It returns nil on success, or the failure to record.
func processRepo(ctx context.Context, cfg *contract.Config, analyzer *ckrun.Analyzer, store contract.ResultStore, runID int64, repo schema.RepoRecord) *schema.BatchFailure {
	arts, err := analyzer.AnalyzeRepo(ctx, repo.FullName, repo.CloneURL)
	if err != nil {
		return &schema.BatchFailure{Repository: repo.FullName, Stage: ckrun.FailureStage(err), Reason: err.Error()}
	}

	parsed, err := agg.ParseClassFile(arts.ClassCSV)
	if err != nil {
		return &schema.BatchFailure{Repository: repo.FullName, Stage: schema.StageAggregate, Reason: err.Error()}
	}
	rows := agg.SummarizeRepo(repo.FullName, parsed)

	if err := outwriter.AppendSummaryFile(rows, cfg.ResultsFile); err != nil {
		return &schema.BatchFailure{Repository: repo.FullName, Stage: schema.StagePersist, Reason: err.Error()}
	}

	// The CSV above is the canonical output; a store insert failure keeps
	// the repository counted as succeeded.
	if store != nil {
		if err := store.InsertSummaries(runID, rows); err != nil {
			contract.LogWarn(fmt.Sprintf("Store insert failed for %s", repo.FullName), err)
		}
	}

	progressf(ctx, "  ✅ %d classes, %d summary rows\n", len(parsed.Rows), len(rows))
	return nil
}

// sliceCatalog applies the start offset and the cap. A cap of zero means
// everything from the offset on.
func sliceCatalog(catalog []schema.RepoRecord, offset, capRepos int) []schema.RepoRecord {
	if offset >= len(catalog) {
		return nil
	}
	selected := catalog[offset:]
	if capRepos > 0 && capRepos < len(selected) {
		selected = selected[:capRepos]
	}
	return selected
}

// printBatchOutcome prints the final tally and the per-failure reasons.
func printBatchOutcome(outcome schema.BatchOutcome, duration time.Duration) {
	fmt.Printf("\nBatch completed in %v\n", duration)
	fmt.Printf("✅ Succeeded: %d\n", outcome.Succeeded)
	fmt.Printf("❌ Failed: %d\n", outcome.Failed)
	for _, f := range outcome.Failures {
		fmt.Printf("  - %s [%s] %s\n", f.Repository, f.Stage, f.Reason)
	}
}
