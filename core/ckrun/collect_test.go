package ckrun

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("class,cbo\nFoo,3\n"), 0o600))
	return path
}

func TestCollectArtifactsInOutputDir(t *testing.T) {
	outDir := t.TempDir()
	workDir := t.TempDir()
	writeCSV(t, outDir, "class.csv")
	writeCSV(t, outDir, "method.csv")
	writeCSV(t, outDir, "field.csv")

	arts, err := CollectArtifacts(context.Background(), outDir, []string{workDir}, 0)
	require.NoError(t, err)

	assert.Equal(t, outDir, arts.Dir)
	assert.Equal(t, filepath.Join(outDir, "class.csv"), arts.ClassCSV)
	assert.Equal(t, filepath.Join(outDir, "method.csv"), arts.MethodCSV)
	assert.Equal(t, filepath.Join(outDir, "field.csv"), arts.FieldCSV)
	assert.FileExists(t, arts.ClassCSV)
}

func TestCollectArtifactsFromWorkDir(t *testing.T) {
	outDir := t.TempDir()
	workDir := t.TempDir()
	writeCSV(t, workDir, "ck_outputclass.csv")
	writeCSV(t, workDir, "ck_outputmethod.csv")

	arts, err := CollectArtifacts(context.Background(), outDir, []string{workDir}, 0)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "class.csv"), arts.ClassCSV)
	assert.Equal(t, filepath.Join(outDir, "method.csv"), arts.MethodCSV)
	assert.Empty(t, arts.FieldCSV, "field output was never written")

	assert.FileExists(t, arts.ClassCSV)
	assert.NoFileExists(t, filepath.Join(workDir, "ck_outputclass.csv"), "relocation moves, not copies")
	assert.NoFileExists(t, filepath.Join(workDir, "ck_outputmethod.csv"))
}

func TestCollectArtifactsBareNamesInWorkDir(t *testing.T) {
	outDir := t.TempDir()
	workDir := t.TempDir()
	writeCSV(t, workDir, "class.csv")

	arts, err := CollectArtifacts(context.Background(), outDir, []string{workDir}, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "class.csv"), arts.ClassCSV)
	assert.NoFileExists(t, filepath.Join(workDir, "class.csv"))
}

func TestCollectArtifactsPrefixedInOutputDir(t *testing.T) {
	outDir := t.TempDir()
	writeCSV(t, outDir, "ck_outputclass.csv")

	arts, err := CollectArtifacts(context.Background(), outDir, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "class.csv"), arts.ClassCSV)
	assert.NoFileExists(t, filepath.Join(outDir, "ck_outputclass.csv"))
}

func TestCollectArtifactsOutputDirWinsOverWorkDir(t *testing.T) {
	outDir := t.TempDir()
	workDir := t.TempDir()
	intended := writeCSV(t, outDir, "class.csv")
	stray := writeCSV(t, workDir, "class.csv")

	arts, err := CollectArtifacts(context.Background(), outDir, []string{workDir}, 0)
	require.NoError(t, err)
	assert.Equal(t, intended, arts.ClassCSV)
	assert.FileExists(t, stray, "lower-priority candidate is left alone")
}

func TestCollectArtifactsClassRequired(t *testing.T) {
	outDir := t.TempDir()
	writeCSV(t, outDir, "method.csv")
	writeCSV(t, outDir, "field.csv")

	_, err := CollectArtifacts(context.Background(), outDir, nil, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoToolOutput)
}

func TestCollectArtifactsNothingFound(t *testing.T) {
	_, err := CollectArtifacts(context.Background(), t.TempDir(), []string{t.TempDir()}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoToolOutput)
}

func TestCollectArtifactsAppearsLate(t *testing.T) {
	outDir := t.TempDir()

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(outDir, "class.csv"), []byte("class,cbo\n"), 0o600)
	}()

	arts, err := CollectArtifacts(context.Background(), outDir, nil, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "class.csv"), arts.ClassCSV)
}

func TestCollectArtifactsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CollectArtifacts(ctx, t.TempDir(), nil, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := writeCSV(t, dir, "src.csv")
	dst := filepath.Join(dir, "dst.csv")

	require.NoError(t, moveFile(src, dst))
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)

	body, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Foo,3")
}
