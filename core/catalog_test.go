package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckscope/ckscope/internal/outwriter"
	"github.com/ckscope/ckscope/schema"
)

func testCatalog() []schema.RepoRecord {
	return []schema.RepoRecord{
		{
			FullName:      "apache/kafka",
			HTMLURL:       "https://github.com/apache/kafka",
			CloneURL:      "https://github.com/apache/kafka.git",
			Stars:         28000,
			Forks:         13000,
			CreatedAt:     time.Date(2011, 8, 15, 0, 0, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
			SizeKB:        512000,
			Language:      "Java",
			OpenIssues:    150,
			DefaultBranch: "trunk",
		},
		{
			FullName:      "google/guava",
			HTMLURL:       "https://github.com/google/guava",
			CloneURL:      "https://github.com/google/guava.git",
			Stars:         50000,
			Forks:         11000,
			CreatedAt:     time.Date(2014, 5, 29, 0, 0, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC),
			SizeKB:        98000,
			Language:      "Java",
			OpenIssues:    600,
			DefaultBranch: "master",
		},
	}
}

func TestLoadCatalogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, outwriter.WriteCatalogFile(testCatalog(), path))

	records, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, testCatalog(), records)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorContains(t, err, "failed to open catalog")
}

func TestLoadCatalogEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := LoadCatalog(path)
	assert.ErrorContains(t, err, "is empty")
}

func TestLoadCatalogMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("full_name,stargazers_count\napache/kafka,28000\n"), 0o600))

	_, err := LoadCatalog(path)
	assert.ErrorContains(t, err, "missing the clone_url column")
}

func TestLoadCatalogReorderedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := "clone_url,full_name,stargazers_count\nhttps://github.com/apache/kafka.git,apache/kafka,28000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	records, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "apache/kafka", records[0].FullName)
	assert.Equal(t, "https://github.com/apache/kafka.git", records[0].CloneURL)
	assert.Equal(t, 28000, records[0].Stars)
	assert.True(t, records[0].CreatedAt.IsZero())
}

func TestSliceCatalog(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name   string
		offset int
		cap    int
		want   []string
	}{
		{"all", 0, 0, []string{"apache/kafka", "google/guava"}},
		{"offset", 1, 0, []string{"google/guava"}},
		{"cap", 0, 1, []string{"apache/kafka"}},
		{"offset and cap", 1, 1, []string{"google/guava"}},
		{"cap beyond end", 0, 10, []string{"apache/kafka", "google/guava"}},
		{"offset beyond end", 5, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, r := range sliceCatalog(catalog, tt.offset, tt.cap) {
				got = append(got, r.FullName)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
