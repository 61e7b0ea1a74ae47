package core

import (
	"context"
	"errors"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/outwriter"
)

// ExecuteRunsList prints the batch runs recorded in the results store,
// newest first.
func ExecuteRunsList(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	store := resultStore(mgr)
	if store == nil {
		return errors.New("results store not configured (set --store-backend)")
	}

	runs, err := store.GetAllRuns()
	if err != nil {
		return err
	}
	return outwriter.WriteRunResults(runs, cfg, time.Since(start))
}
