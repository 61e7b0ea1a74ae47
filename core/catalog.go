package core

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/schema"
)

// LoadCatalog reads a catalog CSV produced by the fetch command. Columns are
// resolved by header name so hand-trimmed files still load, but full_name
// and clone_url must be present.
func LoadCatalog(path string) ([]schema.RepoRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, required := range []string{"full_name", "clone_url"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog %s is missing the %s column", path, required)
		}
	}

	records := make([]schema.RepoRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, schema.RepoRecord{
			FullName:      cell(row, col, "full_name"),
			HTMLURL:       cell(row, col, "html_url"),
			CloneURL:      cell(row, col, "clone_url"),
			Stars:         intCell(row, col, "stargazers_count"),
			Forks:         intCell(row, col, "forks_count"),
			CreatedAt:     timeCell(row, col, "created_at"),
			UpdatedAt:     timeCell(row, col, "updated_at"),
			SizeKB:        intCell(row, col, "size"),
			Language:      cell(row, col, "language"),
			OpenIssues:    intCell(row, col, "open_issues_count"),
			DefaultBranch: cell(row, col, "default_branch"),
		})
	}
	return records, nil
}

// cell returns the named column of the row, or "" when absent.
func cell(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func intCell(row []string, col map[string]int, name string) int {
	v, _ := strconv.Atoi(cell(row, col, name))
	return v
}

func timeCell(row []string, col map[string]int, name string) time.Time {
	t, _ := time.Parse(contract.DateTimeFormat, cell(row, col, name))
	return t
}
