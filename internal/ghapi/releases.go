package ghapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ckscope/ckscope/schema"
)

// releasesPerPage is the API maximum for the releases listing.
const releasesPerPage = 100

// maxReleasePages bounds the pagination walk. 20 pages covers 2000 releases,
// far beyond any repository in the catalog's star range.
const maxReleasePages = 20

// releaseEntry only needs to exist; we count entries, not fields.
type releaseEntry struct {
	ID int64 `json:"id"`
}

// ReleaseCount walks the releases listing of a repository and returns how
// many entries it has. The walk stops at the first short page.
func (c *Client) ReleaseCount(ctx context.Context, fullName string) (int, error) {
	total := 0
	for page := 1; page <= maxReleasePages; page++ {
		endpoint := fmt.Sprintf("%s/repos/%s/releases?per_page=%d&page=%d",
			c.BaseURL, escapeFullName(fullName), releasesPerPage, page)

		var entries []releaseEntry
		if err := c.getJSON(ctx, endpoint, &entries); err != nil {
			return total, fmt.Errorf("releases of %s: %w", fullName, err)
		}
		total += len(entries)
		if len(entries) < releasesPerPage {
			break
		}
	}
	return total, nil
}

// escapeFullName escapes the owner and name segments while keeping the
// slash between them.
func escapeFullName(fullName string) string {
	owner, name, ok := schema.SplitFullName(fullName)
	if !ok {
		return url.PathEscape(fullName)
	}
	return url.PathEscape(owner) + "/" + url.PathEscape(name)
}
