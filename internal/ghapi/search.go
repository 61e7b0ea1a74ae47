package ghapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ckscope/ckscope/schema"
)

// searchResponse is the slice of the search payload we care about.
type searchResponse struct {
	TotalCount        int                 `json:"total_count"`
	IncompleteResults bool                `json:"incomplete_results"`
	Items             []schema.RepoRecord `json:"items"`
}

// SearchPage fetches one page of the repository search, most-starred first.
// Pages are 1-based. The returned slice may be shorter than perPage on the
// last page of the result window.
func (c *Client) SearchPage(ctx context.Context, language string, perPage, page int) ([]schema.RepoRecord, error) {
	endpoint := fmt.Sprintf("%s/search/repositories?q=%s&sort=stars&order=desc&per_page=%d&page=%d",
		c.BaseURL, url.QueryEscape("language:"+language), perPage, page)

	var resp searchResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}
	return resp.Items, nil
}

// DedupRecords drops repeated repositories, keeping the first occurrence so
// the stars-descending order of the search survives. The search API is known
// to repeat items across page boundaries when the index shifts mid-query.
func DedupRecords(records []schema.RepoRecord) []schema.RepoRecord {
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, r := range records {
		if _, ok := seen[r.FullName]; ok {
			continue
		}
		seen[r.FullName] = struct{}{}
		out = append(out, r)
	}
	return out
}
