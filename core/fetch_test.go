package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/ghapi"
)

// fakeSearch serves canned search pages keyed by page number and records
// which pages were requested. Pages without an entry return a 500.
func fakeSearch(t *testing.T, pages map[string]string) (*ghapi.Client, *[]string) {
	t.Helper()
	requested := &[]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		*requested = append(*requested, page)
		body, ok := pages[page]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := ghapi.NewClient("")
	client.BaseURL = srv.URL
	client.MaxRetries = 0
	client.RetryWait = time.Millisecond
	return client, requested
}

// searchBody builds a search response holding one item per name.
func searchBody(t *testing.T, names ...string) string {
	t.Helper()
	items := make([]map[string]any, len(names))
	for i, name := range names {
		items[i] = map[string]any{
			"full_name":        name,
			"clone_url":        "https://example.com/" + name + ".git",
			"stargazers_count": 100 - i,
		}
	}
	body, err := json.Marshal(map[string]any{"items": items})
	require.NoError(t, err)
	return string(body)
}

func fetchConfig(pages, perPage int) *contract.Config {
	return &contract.Config{Language: "Java", Pages: pages, PerPage: perPage}
}

func TestRunCatalogFetchAllPages(t *testing.T) {
	client, _ := fakeSearch(t, map[string]string{
		"1": searchBody(t, "octo/alpha", "octo/beta"),
		"2": searchBody(t, "octo/gamma", "octo/delta"),
	})

	records, err := runCatalogFetch(context.Background(), fetchConfig(2, 2), client)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "octo/alpha", records[0].FullName)
	assert.Equal(t, "octo/delta", records[3].FullName)
	assert.Equal(t, "https://example.com/octo/alpha.git", records[0].CloneURL)
}

func TestRunCatalogFetchKeepsPartialOnServerError(t *testing.T) {
	client, _ := fakeSearch(t, map[string]string{
		"1": searchBody(t, "octo/alpha", "octo/beta"),
		// page 2 answers 500 until the client gives up
	})

	records, err := runCatalogFetch(context.Background(), fetchConfig(3, 2), client)
	require.NoError(t, err, "a failing page ends the walk but keeps earlier pages")
	require.Len(t, records, 2)
	assert.Equal(t, "octo/alpha", records[0].FullName)
	assert.Equal(t, "octo/beta", records[1].FullName)
}

func TestRunCatalogFetchSkipsMalformedPage(t *testing.T) {
	client, requested := fakeSearch(t, map[string]string{
		"1": searchBody(t, "octo/alpha", "octo/beta"),
		"2": `{nope`,
		"3": searchBody(t, "octo/gamma"),
	})

	records, err := runCatalogFetch(context.Background(), fetchConfig(3, 2), client)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "octo/gamma", records[2].FullName)
	assert.Equal(t, []string{"1", "2", "3"}, *requested, "the malformed page is skipped, not fatal")
}

func TestRunCatalogFetchDedups(t *testing.T) {
	client, _ := fakeSearch(t, map[string]string{
		"1": searchBody(t, "octo/alpha", "octo/beta"),
		"2": searchBody(t, "octo/beta", "octo/gamma"),
	})

	records, err := runCatalogFetch(context.Background(), fetchConfig(2, 2), client)
	require.NoError(t, err)
	require.Len(t, records, 3, "a repository shifting across a page boundary appears once")
	assert.Equal(t, "octo/alpha", records[0].FullName)
	assert.Equal(t, "octo/beta", records[1].FullName)
	assert.Equal(t, "octo/gamma", records[2].FullName)
}

func TestRunCatalogFetchShortPageEndsWalk(t *testing.T) {
	client, requested := fakeSearch(t, map[string]string{
		"1": searchBody(t, "octo/alpha"),
	})

	records, err := runCatalogFetch(context.Background(), fetchConfig(5, 2), client)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, []string{"1"}, *requested, "a short page means the results ran out")
}

func TestRunCatalogFetchNoResults(t *testing.T) {
	client, _ := fakeSearch(t, map[string]string{
		"1": `{"items": []}`,
	})

	_, err := runCatalogFetch(context.Background(), fetchConfig(1, 2), client)
	assert.ErrorContains(t, err, "no repositories fetched")
}
