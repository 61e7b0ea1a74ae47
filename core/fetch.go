package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/ghapi"
	"github.com/ckscope/ckscope/internal/outwriter"
	"github.com/ckscope/ckscope/schema"
)

// ExecuteCatalogFetch collects the repository catalog from the hosting API
// and persists it as CSV. The catalog file is written even when only part
// of the requested pages arrived.
func ExecuteCatalogFetch(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()

	records, err := GetCatalogResults(ctx, cfg)
	if err != nil {
		return err
	}

	return outwriter.WriteCatalogResults(records, cfg, time.Since(start))
}

// GetCatalogResults fetches the catalog and saves it as CSV, returning the
// records. The MCP server calls this directly.
func GetCatalogResults(ctx context.Context, cfg *contract.Config) ([]schema.RepoRecord, error) {
	records, err := runCatalogFetch(ctx, cfg, ghapi.NewClient(cfg.Token))
	if err != nil {
		return nil, err
	}

	// Persist the catalog regardless of the display mode; the batch command
	// reads it back from disk.
	if err := outwriter.WriteCatalogFile(records, cfg.CatalogFile); err != nil {
		return nil, err
	}
	return records, nil
}

// runCatalogFetch walks the search pages and returns the deduplicated
// records. A page that keeps failing after retries ends the walk with a
// warning and the pages fetched so far are kept, so a flaky network yields
// a shorter catalog instead of none. Malformed pages are skipped.
func runCatalogFetch(ctx context.Context, cfg *contract.Config, client *ghapi.Client) ([]schema.RepoRecord, error) {
	progressf(ctx, "🔎 Language: %s (%d pages × %d per page)\n", cfg.Language, cfg.Pages, cfg.PerPage)

	var records []schema.RepoRecord
	for page := 1; page <= cfg.Pages; page++ {
		pageRecords, err := client.SearchPage(ctx, cfg.Language, cfg.PerPage, page)
		if errors.Is(err, ghapi.ErrMalformedPage) {
			contract.LogWarn(fmt.Sprintf("Skipping page %d", page), err)
			continue
		}
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Stopping at page %d, keeping %d repositories", page, len(records)), err)
			break
		}
		records = append(records, pageRecords...)
		if len(pageRecords) < cfg.PerPage {
			// The search ran out of results before the requested pages.
			break
		}
		if page < cfg.Pages {
			if err := sleepCtx(ctx, cfg.Delay); err != nil {
				contract.LogWarn(fmt.Sprintf("Interrupted, keeping %d repositories", len(records)), err)
				break
			}
		}
	}

	records = ghapi.DedupRecords(records)
	if len(records) == 0 {
		return nil, errors.New("no repositories fetched")
	}
	return records, nil
}
