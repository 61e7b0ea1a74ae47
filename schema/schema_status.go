package schema

import "time"

// StoreStatus represents the status of the results store.
type StoreStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalRuns      int              `json:"total_runs"`
	TotalSummaries int              `json:"total_summaries"`
	LastRunID      int64            `json:"last_run_id"`
	LastRunTime    time.Time        `json:"last_run_time"`
	OldestRunTime  time.Time        `json:"oldest_run_time"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// BatchRunRecord represents a row from the batch_runs table.
type BatchRunRecord struct {
	ID          int64     `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	CatalogPath string    `json:"catalog_path"`
	StartOffset int       `json:"start_offset"`
	MaxRepos    int       `json:"max_repos"`
	Succeeded   int       `json:"succeeded"`
	Failed      int       `json:"failed"`
}

// Stages a batch failure is attributed to.
const (
	StageClone     = "clone"
	StagePrecheck  = "precheck"
	StageMetrics   = "metrics"
	StageAggregate = "aggregate"
	StagePersist   = "persist"
)

// BatchFailure records one repository the orchestrator skipped, with the
// stage that failed and the reason. Failures never abort the batch.
type BatchFailure struct {
	Repository string `json:"repository"`
	Stage      string `json:"stage"` // clone, precheck, metrics, aggregate, persist
	Reason     string `json:"reason"`
}

// BatchOutcome is the orchestrator's final tally.
type BatchOutcome struct {
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Failures  []BatchFailure `json:"failures,omitempty"`
}
