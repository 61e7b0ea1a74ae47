package ghapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckscope/ckscope/schema"
)

const searchPayload = `{
  "total_count": 2,
  "incomplete_results": false,
  "items": [
    {
      "full_name": "apache/kafka",
      "html_url": "https://example.com/apache/kafka",
      "clone_url": "https://example.com/apache/kafka.git",
      "stargazers_count": 30000,
      "forks_count": 14000,
      "created_at": "2011-08-15T18:06:16Z",
      "updated_at": "2024-01-02T03:04:05Z",
      "size": 250000,
      "language": "Java",
      "open_issues_count": 120,
      "default_branch": "trunk"
    },
    {
      "full_name": "spring-projects/spring-boot",
      "stargazers_count": 70000,
      "created_at": "2012-10-19T15:02:57Z"
    }
  ]
}`

func TestSearchPage(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		require.Equal(t, "/search/repositories", r.URL.Path)
		_, _ = w.Write([]byte(searchPayload))
	}))

	records, err := client.SearchPage(context.Background(), "Java", 100, 3)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "q=language%3AJava&sort=stars&order=desc&per_page=100&page=3", gotQuery)

	kafka := records[0]
	assert.Equal(t, "apache/kafka", kafka.FullName)
	assert.Equal(t, "https://example.com/apache/kafka.git", kafka.CloneURL)
	assert.Equal(t, 30000, kafka.Stars)
	assert.Equal(t, 14000, kafka.Forks)
	assert.Equal(t, 250000, kafka.SizeKB)
	assert.Equal(t, "Java", kafka.Language)
	assert.Equal(t, "trunk", kafka.DefaultBranch)
	assert.Equal(t, time.Date(2011, 8, 15, 18, 6, 16, 0, time.UTC), kafka.CreatedAt)

	// Sparse items keep zero values instead of failing the decode.
	boot := records[1]
	assert.Equal(t, "spring-projects/spring-boot", boot.FullName)
	assert.Equal(t, 70000, boot.Stars)
	assert.Empty(t, boot.CloneURL)
}

func TestSearchPageWrapsPageNumber(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.SearchPage(context.Background(), "Java", 100, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search page 7")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestDedupRecords(t *testing.T) {
	records := []schema.RepoRecord{
		{FullName: "apache/kafka", Stars: 30000},
		{FullName: "elastic/elasticsearch", Stars: 25000},
		{FullName: "apache/kafka", Stars: 29999}, // repeated across a page boundary
		{FullName: "google/guava", Stars: 20000},
	}

	out := DedupRecords(records)
	require.Len(t, out, 3)
	assert.Equal(t, "apache/kafka", out[0].FullName)
	assert.Equal(t, 30000, out[0].Stars, "first occurrence wins")
	assert.Equal(t, "elastic/elasticsearch", out[1].FullName)
	assert.Equal(t, "google/guava", out[2].FullName)
}

func TestDedupRecordsEmpty(t *testing.T) {
	assert.Empty(t, DedupRecords(nil))
	assert.Empty(t, DedupRecords([]schema.RepoRecord{}))
}
