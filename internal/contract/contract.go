// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/ckscope/ckscope/schema"
)

// GitClient defines the necessary Git operations for repository acquisition.
// This allows the analyzer to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command in dir and returns the standard output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)

	// CloneShallow clones the default branch of url into dest with depth 1.
	// The destination directory must not exist yet.
	CloneShallow(ctx context.Context, url string, dest string) error

	// Version returns the git version string, used by preflight checks.
	Version(ctx context.Context) (string, error)
}

// CKRunner defines the invocation of the external CK metrics tool.
// This allows the analyzer to be tested without a JVM or the tool jar.
type CKRunner interface {
	// Run invokes the tool against srcDir, requesting output under outDir.
	// workDir becomes the tool's working directory; it matters because some
	// tool builds write their CSVs there instead of outDir.
	Run(ctx context.Context, jarPath, srcDir, outDir, workDir string) error

	// Version returns the java runtime banner, used by preflight checks.
	Version(ctx context.Context) (string, error)
}

// ResultStore defines the interface for persisting batch runs and summary rows.
type ResultStore interface {
	// BeginBatchRun creates a new batch run row and returns its unique ID.
	BeginBatchRun(startedAt time.Time, catalogPath string, startOffset, maxRepos int) (int64, error)

	// EndBatchRun updates the batch run with completion data.
	EndBatchRun(runID int64, finishedAt time.Time, succeeded, failed int) error

	// InsertSummaries appends one repository's summary rows under the run.
	InsertSummaries(runID int64, rows []schema.MetricSummary) error

	// GetAllRuns returns every recorded batch run, newest first.
	GetAllRuns() ([]schema.BatchRunRecord, error)

	// GetSummariesForRun returns the summary rows recorded under a run.
	GetSummariesForRun(runID int64) ([]schema.MetricSummary, error)

	// GetStatus returns status information about the results store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing the results store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetResultStore() ResultStore
}
