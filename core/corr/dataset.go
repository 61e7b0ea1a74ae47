package corr

import (
	"sort"
	"time"

	"github.com/ckscope/ckscope/core/agg"
	"github.com/ckscope/ckscope/schema"
)

// joinedRow is one repository's numeric view after the pivot and join:
// process attributes from the catalog plus the per-repository mean of each
// quality metric. means is sparse; a metric with no valid cells is absent.
type joinedRow struct {
	repo  string
	attrs map[schema.ProcessAttr]float64
	means map[schema.Metric]float64
}

// buildDataset pivots summary rows per repository, joins them against the
// catalog attributes and applies the minimum-classes exclusion. Summaries
// without a catalog entry are dropped; the join is inner.
func buildDataset(catalog []schema.RepoRecord, summaries []schema.MetricSummary, releases map[string]int, minClasses int, now time.Time) (rows []joinedRow, excluded int) {
	records := make(map[string]schema.RepoRecord, len(catalog))
	for _, r := range catalog {
		records[r.FullName] = r
	}

	grouped := groupByRepo(summaries)
	repos := make([]string, 0, len(grouped))
	for repo := range grouped {
		repos = append(repos, repo)
	}
	sort.Strings(repos)

	for _, repo := range repos {
		record, ok := records[repo]
		if !ok {
			continue
		}
		group := grouped[repo]
		if classCount(group) < minClasses {
			excluded++
			continue
		}
		rows = append(rows, joinedRow{
			repo: repo,
			attrs: map[schema.ProcessAttr]float64{
				schema.AttrStars:    float64(record.Stars),
				schema.AttrAgeYears: record.AgeYears(now),
				schema.AttrReleases: float64(releases[repo]),
				schema.AttrSizeKB:   float64(record.SizeKB),
			},
			means: qualityMeans(group),
		})
	}
	return rows, excluded
}

func groupByRepo(summaries []schema.MetricSummary) map[string][]schema.MetricSummary {
	grouped := make(map[string][]schema.MetricSummary)
	for _, s := range summaries {
		grouped[s.Repository] = append(grouped[s.Repository], s)
	}
	return grouped
}

// classCount estimates how many classes a repository contributed: the
// largest valid-cell count across its metrics. Metrics differ only by their
// invalid cells, so the maximum tracks the raw row count.
func classCount(group []schema.MetricSummary) int {
	maxClasses := 0
	for _, s := range group {
		if s.Classes > maxClasses {
			maxClasses = s.Classes
		}
	}
	return maxClasses
}

func qualityMeans(group []schema.MetricSummary) map[schema.Metric]float64 {
	means := make(map[schema.Metric]float64, len(schema.QualityMetrics))
	for _, metric := range schema.QualityMetrics {
		for _, s := range group {
			if s.Metric == metric && s.Mean != nil {
				means[metric] = *s.Mean
				break
			}
		}
	}
	return means
}

// pairValues extracts the complete observations of one (attribute, metric)
// pair: rows missing the metric mean are dropped from both vectors.
func pairValues(rows []joinedRow, attr schema.ProcessAttr, metric schema.Metric) (x, y []float64) {
	for _, row := range rows {
		m, ok := row.means[metric]
		if !ok {
			continue
		}
		x = append(x, row.attrs[attr])
		y = append(y, m)
	}
	return x, y
}

// trimOutliers drops paired observations outside the 1.5×IQR fences of
// either variable. Fences come from the untrimmed pair.
func trimOutliers(x, y []float64) (tx, ty []float64, removed int) {
	loX, hiX := iqrFences(x)
	loY, hiY := iqrFences(y)
	for i := range x {
		if x[i] < loX || x[i] > hiX || y[i] < loY || y[i] > hiY {
			removed++
			continue
		}
		tx = append(tx, x[i])
		ty = append(ty, y[i])
	}
	return tx, ty, removed
}

func iqrFences(values []float64) (lo, hi float64) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q1 := agg.Quantile(0.25, sorted)
	q3 := agg.Quantile(0.75, sorted)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}
