package contract

import (
	"context"
	"time"

	"github.com/ckscope/ckscope/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, dir}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// CloneShallow implements the GitClient interface.
func (m *MockGitClient) CloneShallow(ctx context.Context, url string, dest string) error {
	ret := m.Called(ctx, url, dest)
	return ret.Error(0)
}

// Version implements the GitClient interface.
func (m *MockGitClient) Version(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	version, _ := ret.Get(0).(string)
	return version, ret.Error(1)
}

// MockCKRunner is a testify mock for the CKRunner type.
type MockCKRunner struct {
	mock.Mock
}

var _ CKRunner = &MockCKRunner{} // Compile-time check

// Run implements the CKRunner interface.
func (m *MockCKRunner) Run(ctx context.Context, jarPath, srcDir, outDir, workDir string) error {
	ret := m.Called(ctx, jarPath, srcDir, outDir, workDir)
	return ret.Error(0)
}

// Version implements the CKRunner interface.
func (m *MockCKRunner) Version(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	version, _ := ret.Get(0).(string)
	return version, ret.Error(1)
}

// MockStoreManager is a testify mock for the StoreManager type.
type MockStoreManager struct {
	mock.Mock
}

var _ StoreManager = &MockStoreManager{} // Compile-time check

// GetResultStore implements the StoreManager interface.
func (m *MockStoreManager) GetResultStore() ResultStore {
	ret := m.Called()
	store, _ := ret.Get(0).(ResultStore)
	return store
}

// MockResultStore is a testify mock for the ResultStore type.
type MockResultStore struct {
	mock.Mock
}

var _ ResultStore = &MockResultStore{} // Compile-time check

// BeginBatchRun implements the ResultStore interface.
func (m *MockResultStore) BeginBatchRun(startedAt time.Time, catalogPath string, startOffset, maxRepos int) (int64, error) {
	ret := m.Called(startedAt, catalogPath, startOffset, maxRepos)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// EndBatchRun implements the ResultStore interface.
func (m *MockResultStore) EndBatchRun(runID int64, finishedAt time.Time, succeeded, failed int) error {
	ret := m.Called(runID, finishedAt, succeeded, failed)
	return ret.Error(0)
}

// InsertSummaries implements the ResultStore interface.
func (m *MockResultStore) InsertSummaries(runID int64, rows []schema.MetricSummary) error {
	ret := m.Called(runID, rows)
	return ret.Error(0)
}

// GetAllRuns implements the ResultStore interface.
func (m *MockResultStore) GetAllRuns() ([]schema.BatchRunRecord, error) {
	ret := m.Called()
	runs, _ := ret.Get(0).([]schema.BatchRunRecord)
	return runs, ret.Error(1)
}

// GetSummariesForRun implements the ResultStore interface.
func (m *MockResultStore) GetSummariesForRun(runID int64) ([]schema.MetricSummary, error) {
	ret := m.Called(runID)
	rows, _ := ret.Get(0).([]schema.MetricSummary)
	return rows, ret.Error(1)
}

// GetStatus implements the ResultStore interface.
func (m *MockResultStore) GetStatus() (schema.StoreStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.StoreStatus)
	return status, ret.Error(1)
}

// Close implements the ResultStore interface.
func (m *MockResultStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
