package corr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckscope/ckscope/schema"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// repoSummaries builds the seven summary rows of one repository from a map
// of metric means. Metrics absent from the map get an empty row.
func repoSummaries(repo string, classes int, means map[schema.Metric]float64) []schema.MetricSummary {
	var rows []schema.MetricSummary
	for _, m := range schema.AllMetrics {
		v, ok := means[m]
		if !ok {
			rows = append(rows, schema.EmptySummary(repo, m, 0))
			continue
		}
		rows = append(rows, schema.MetricSummary{
			Repository: repo,
			Metric:     m,
			Label:      schema.MetricLabels[m],
			Classes:    classes,
			Mean:       schema.Float64Ptr(v),
		})
	}
	return rows
}

// studyFixture builds eight well-behaved repositories plus one that is too
// small to participate: cbo tracks stars perfectly, lcom tracks them
// inversely, dit never varies and wmc bounces around.
func studyFixture() (catalog []schema.RepoRecord, summaries []schema.MetricSummary, releases map[string]int) {
	wmc := []float64{5, 3, 8, 1, 9, 2, 7, 4}
	releases = make(map[string]int)

	for i := 1; i <= 8; i++ {
		repo := schema.RepoRecord{
			FullName:  repoName(i),
			Stars:     1000 * i,
			SizeKB:    100 * i,
			CreatedAt: testNow.AddDate(-i, 0, 0),
		}
		catalog = append(catalog, repo)
		releases[repo.FullName] = 10 * i
		summaries = append(summaries, repoSummaries(repo.FullName, 10, map[schema.Metric]float64{
			schema.MetricCBO:  float64(i),
			schema.MetricDIT:  2.0,
			schema.MetricLCOM: 100 - 10*float64(i),
			schema.MetricWMC:  wmc[i-1],
		})...)
	}

	// Too few classes: excluded from the correlation input.
	catalog = append(catalog, schema.RepoRecord{FullName: "tiny/repo", Stars: 50, CreatedAt: testNow.AddDate(-1, 0, 0)})
	summaries = append(summaries, repoSummaries("tiny/repo", 2, map[schema.Metric]float64{
		schema.MetricCBO: 1,
	})...)

	return catalog, summaries, releases
}

func repoName(i int) string {
	return string(rune('a'+i-1)) + "/repo"
}

func findResult(t *testing.T, results []schema.CorrelationResult, rq schema.ResearchQuestion, metric schema.Metric) schema.CorrelationResult {
	t.Helper()
	for _, r := range results {
		if r.Question == rq && r.Metric == metric {
			return r
		}
	}
	t.Fatalf("no result for %s/%s", rq, metric)
	return schema.CorrelationResult{}
}

func TestAnalyze(t *testing.T) {
	catalog, summaries, releases := studyFixture()
	report := Analyze(catalog, summaries, releases, Options{Now: testNow})

	assert.Equal(t, 8, report.Repositories)
	assert.Equal(t, 1, report.ExcludedRepos)
	assert.Equal(t, 4, report.OmittedPairs, "the constant dit mean is omitted for every attribute")
	assert.Zero(t, report.OutliersRemoved)
	assert.Len(t, report.Correlations, 12, "16 pairs minus 4 omissions")

	cbo := findResult(t, report.Correlations, schema.RQ01, schema.MetricCBO)
	assert.Equal(t, schema.AttrStars, cbo.Attr)
	assert.Equal(t, 8, cbo.N)
	assert.InDelta(t, 1.0, cbo.Pearson, 1e-9)
	assert.Equal(t, schema.PearsonMethod, cbo.Primary, "two clean ramps pass the normality check")
	assert.Equal(t, "strong", cbo.Strength)
	assert.Equal(t, "positive", cbo.Direction)
	assert.True(t, cbo.Significant)

	lcom := findResult(t, report.Correlations, schema.RQ01, schema.MetricLCOM)
	assert.InDelta(t, -1.0, lcom.Pearson, 1e-9)
	assert.Equal(t, "negative", lcom.Direction)
	assert.Equal(t, "strong", lcom.Strength)

	// Every research question produced rows for the varying metrics.
	for _, rq := range schema.AllResearchQuestions {
		findResult(t, report.Correlations, rq, schema.MetricCBO)
		findResult(t, report.Correlations, rq, schema.MetricWMC)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	catalog, summaries, releases := studyFixture()
	first := Analyze(catalog, summaries, releases, Options{Now: testNow})
	second := Analyze(catalog, summaries, releases, Options{Now: testNow})
	assert.Equal(t, first, second)
}

func TestAnalyzeQuartiles(t *testing.T) {
	catalog, summaries, releases := studyFixture()
	report := Analyze(catalog, summaries, releases, Options{Now: testNow})

	require.Len(t, report.Quartiles, 16, "4 attributes x 4 bins")

	perAttr := make(map[schema.ProcessAttr]int)
	for _, bin := range report.Quartiles {
		perAttr[bin.Attr] += bin.Count
	}
	for attr, total := range perAttr {
		assert.Equal(t, 8, total, "every repository lands in exactly one %s bin", attr)
	}

	// Stars ramp from 1000 to 8000 splits evenly, two repositories per bin.
	for _, bin := range report.Quartiles {
		if bin.Attr == schema.AttrStars {
			assert.Equal(t, 2, bin.Count, "bin %s", bin.Bin)
		}
	}
}

func TestAnalyzeDescriptives(t *testing.T) {
	catalog, summaries, releases := studyFixture()
	report := Analyze(catalog, summaries, releases, Options{Now: testNow})

	require.Len(t, report.Descriptives, 8, "4 attributes + 4 quality metrics")
	assert.Equal(t, "stars", report.Descriptives[0].Column)
	assert.Equal(t, 8, report.Descriptives[0].N)
	assert.InDelta(t, 4500.0, report.Descriptives[0].Mean, 1e-9)

	last := report.Descriptives[len(report.Descriptives)-1]
	assert.Equal(t, "wmc_mean", last.Column)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	report := Analyze(nil, nil, nil, Options{Now: testNow})
	assert.Zero(t, report.Repositories)
	assert.Equal(t, 16, report.OmittedPairs, "every pair lacks samples")
	assert.Empty(t, report.Correlations)
	assert.Empty(t, report.Quartiles)
}

func TestBuildDatasetDropsOrphans(t *testing.T) {
	catalog := []schema.RepoRecord{{FullName: "a/repo", Stars: 10, CreatedAt: testNow.AddDate(-2, 0, 0)}}
	summaries := repoSummaries("a/repo", 5, map[schema.Metric]float64{schema.MetricCBO: 3})
	summaries = append(summaries, repoSummaries("ghost/repo", 5, map[schema.Metric]float64{schema.MetricCBO: 9})...)

	rows, excluded := buildDataset(catalog, summaries, nil, 3, testNow)
	require.Len(t, rows, 1, "summaries outside the catalog do not join")
	assert.Zero(t, excluded)
	assert.Equal(t, "a/repo", rows[0].repo)
	assert.Equal(t, 10.0, rows[0].attrs[schema.AttrStars])
	assert.InDelta(t, 2.0, rows[0].attrs[schema.AttrAgeYears], 0.01)
	assert.Equal(t, 3.0, rows[0].means[schema.MetricCBO])
}

func TestBuildDatasetMinClasses(t *testing.T) {
	catalog := []schema.RepoRecord{
		{FullName: "big/repo", CreatedAt: testNow.AddDate(-1, 0, 0)},
		{FullName: "small/repo", CreatedAt: testNow.AddDate(-1, 0, 0)},
	}
	summaries := repoSummaries("big/repo", 3, map[schema.Metric]float64{schema.MetricCBO: 1})
	summaries = append(summaries, repoSummaries("small/repo", 2, map[schema.Metric]float64{schema.MetricCBO: 1})...)

	rows, excluded := buildDataset(catalog, summaries, nil, 3, testNow)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, excluded)
	assert.Equal(t, "big/repo", rows[0].repo)
}

func TestQuartileBinEdges(t *testing.T) {
	var rows []joinedRow
	for i := 1; i <= 8; i++ {
		rows = append(rows, joinedRow{
			repo:  repoName(i),
			attrs: map[schema.ProcessAttr]float64{schema.AttrStars: float64(i)},
			means: map[schema.Metric]float64{schema.MetricCBO: float64(10 * i)},
		})
	}

	bins := binByAttr(rows, schema.AttrStars)
	require.Len(t, bins, 4)

	q1 := bins[0]
	assert.Equal(t, "Q1", q1.Bin)
	assert.Equal(t, 2, q1.Count)
	assert.Equal(t, 1.0, q1.AttrLow)
	assert.Equal(t, 2.75, q1.AttrUp)
	assert.InDelta(t, 15.0, q1.Means[schema.MetricCBO], 1e-9, "repos 1 and 2 average to 15")

	q4 := bins[3]
	assert.Equal(t, "Q4", q4.Bin)
	assert.Equal(t, 2, q4.Count)
	assert.Equal(t, 8.0, q4.AttrUp)
	assert.InDelta(t, 75.0, q4.Means[schema.MetricCBO], 1e-9)
}
