// Package core has core logic for catalog fetching, repository analysis,
// batch orchestration and statistical reporting.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
)

// ExecutorFunc defines the function signature for executing different pipeline stages.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// Context keys for execution options
type contextKey string

const quietKey contextKey = "quiet"

// WithQuiet returns a context that silences progress output. The MCP server
// uses it because stdout carries the protocol stream.
func WithQuiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey, true)
}

// isQuiet returns whether progress output is silenced in the context
func isQuiet(ctx context.Context) bool {
	quiet, ok := ctx.Value(quietKey).(bool)
	return ok && quiet
}

// progressf prints progress output unless the context silences it.
func progressf(ctx context.Context, format string, args ...any) {
	if isQuiet(ctx) {
		return
	}
	fmt.Printf(format, args...)
}

// resultStore returns the configured results store, or nil when persistence
// is disabled or the manager was never initialized.
func resultStore(mgr contract.StoreManager) contract.ResultStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetResultStore()
}

// sleepCtx waits for the given duration unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
