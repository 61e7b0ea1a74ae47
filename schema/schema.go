// Package schema has configs, models and shared constants for all parts of ckscope.
package schema

import "time"

// RepoRecord represents one repository row in the catalog, as returned by the
// hosting API search endpoint. Records are immutable once fetched; the batch
// orchestrator and the statistical analysis only ever read them.
type RepoRecord struct {
	FullName      string    `json:"full_name"`
	HTMLURL       string    `json:"html_url"`
	CloneURL      string    `json:"clone_url"`
	Stars         int       `json:"stargazers_count"`
	Forks         int       `json:"forks_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	SizeKB        int       `json:"size"`
	Language      string    `json:"language"`
	OpenIssues    int       `json:"open_issues_count"`
	DefaultBranch string    `json:"default_branch"`
}

// AgeYears returns the repository age in fractional years at the given
// reference time. The 365.25 divisor keeps leap years from skewing maturity
// comparisons across repositories created in different decades.
func (r RepoRecord) AgeYears(now time.Time) float64 {
	if r.CreatedAt.IsZero() || now.Before(r.CreatedAt) {
		return 0
	}
	days := now.Sub(r.CreatedAt).Hours() / 24
	return days / 365.25
}
