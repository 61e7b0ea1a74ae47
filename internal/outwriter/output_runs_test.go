package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRuns() []schema.BatchRunRecord {
	started := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	return []schema.BatchRunRecord{
		{
			ID:          1,
			StartedAt:   started,
			FinishedAt:  started.Add(10 * time.Minute),
			CatalogPath: "catalog.csv",
			StartOffset: 0,
			MaxRepos:    50,
			Succeeded:   48,
			Failed:      2,
		},
		{
			ID:          2,
			StartedAt:   started.Add(time.Hour),
			CatalogPath: "catalog.csv",
			StartOffset: 50,
			MaxRepos:    50,
		},
	}
}

func TestWriteRunsTable(t *testing.T) {
	cfg := &contract.Config{
		Output:       schema.TextOut,
		Width:        120,
		StoreBackend: schema.SQLiteBackend,
	}

	var buf bytes.Buffer
	err := writeRunsTable(sampleRuns(), cfg, 2*time.Second, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "catalog.csv")
	assert.Contains(t, output, "2026-02-10 08:00")
	assert.Contains(t, output, "48")

	// A run that never finished shows a dash
	assert.Contains(t, output, "-")

	assert.Contains(t, output, "Showing 2 batch runs")
	assert.Contains(t, output, "Listed in 2s. Store backend: sqlite")
}

func TestWriteCSVRuns(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVRuns(w, sampleRuns())
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "2026-02-10T08:00:00Z")
	assert.Contains(t, lines[0], "2026-02-10T08:10:00Z")

	// An unfinished run keeps an empty finished_at cell
	assert.Contains(t, lines[1], ",,catalog.csv")
}

func TestWriteRunResultsCSVFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "runs.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: outFile,
	}

	err := WriteRunResults(sampleRuns(), cfg, time.Second)
	require.NoError(t, err)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(schema.RunsHeader, ","), lines[0])
}

func TestWriteRunResultsJSONFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "runs.json")
	cfg := &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: outFile,
	}

	err := WriteRunResults(sampleRuns(), cfg, time.Second)
	require.NoError(t, err)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.Len(t, decoded, 2)
	assert.EqualValues(t, 1, decoded[0]["id"])
	assert.Contains(t, decoded[0], "started_at")
	assert.Contains(t, decoded[0], "catalog_path")
}

func TestWriteRunResultsParquetRequiresFile(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut}

	err := WriteRunResults(sampleRuns(), cfg, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires --output-file")
}
