package core

import (
	"context"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/outwriter"
)

// ExecuteMetricsInfo displays the formal definitions of the tracked metrics
// and the research questions. This is a static display that does not require
// any collection.
func ExecuteMetricsInfo(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.WriteMetricDefinitions(cfg)
}
