// Package corr answers the study's research questions: it joins the
// accumulated per-repository summaries with catalog process attributes and
// computes correlation coefficients, normality assessments and quartile
// comparisons.
package corr

import (
	"fmt"
	"sort"
	"time"

	"github.com/ckscope/ckscope/core/agg"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/schema"
)

// minPairSamples is the smallest sample a correlation is computed over.
const minPairSamples = 3

// Options tune the analysis. The zero value is normalized to the defaults.
type Options struct {
	MinClasses int       // exclude repositories with fewer analyzed classes
	Alpha      float64   // significance level shared by all tests
	Now        time.Time // reference time for repository age; zero means now
}

// DefaultOptions returns the thresholds the study uses.
func DefaultOptions() Options {
	return Options{MinClasses: 3, Alpha: 0.05}
}

func (o Options) normalized() Options {
	if o.MinClasses <= 0 {
		o.MinClasses = 3
	}
	if o.Alpha <= 0 {
		o.Alpha = 0.05
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Analyze runs the full statistical analysis over a catalog and its
// accumulated summary rows. releases maps repository identifiers to their
// release counts; absent entries count as zero.
func Analyze(catalog []schema.RepoRecord, summaries []schema.MetricSummary, releases map[string]int, opts Options) *schema.StatsReport {
	opts = opts.normalized()

	rows, excluded := buildDataset(catalog, summaries, releases, opts.MinClasses, opts.Now)
	report := &schema.StatsReport{
		Repositories:  len(rows),
		ExcludedRepos: excluded,
	}

	for _, rq := range schema.AllResearchQuestions {
		attr := schema.ResearchQuestionAttrs[rq]
		for _, metric := range schema.QualityMetrics {
			x, y := pairValues(rows, attr, metric)
			x, y, removed := trimOutliers(x, y)
			report.OutliersRemoved += removed

			if len(x) < minPairSamples {
				report.OmittedPairs++
				continue
			}
			if isConstant(x) || isConstant(y) {
				// Correlation is undefined when one side never varies.
				report.OmittedPairs++
				continue
			}
			report.Correlations = append(report.Correlations, correlate(rq, attr, metric, x, y, opts.Alpha))
		}
	}

	report.Quartiles = quartileSummary(rows)
	report.Descriptives = descriptives(rows)
	return report
}

// correlate computes both coefficients for one pair and picks the primary
// one: Pearson when both variables look normal under Jarque-Bera, Spearman
// otherwise.
func correlate(rq schema.ResearchQuestion, attr schema.ProcessAttr, metric schema.Metric, x, y []float64, alpha float64) schema.CorrelationResult {
	n := len(x)
	r := Pearson(x, y)
	rho := Spearman(x, y)

	result := schema.CorrelationResult{
		Question:  rq,
		Attr:      attr,
		Metric:    metric,
		N:         n,
		Pearson:   r,
		PearsonP:  CorrelationPValue(r, n),
		Spearman:  rho,
		SpearmanP: CorrelationPValue(rho, n),
		Primary:   schema.SpearmanMethod,
	}
	if JarqueBeraP(x) > alpha && JarqueBeraP(y) > alpha {
		result.Primary = schema.PearsonMethod
	}

	primary := result.PrimaryR()
	result.Strength = contract.GetPlainStrength(primary)
	result.Direction = direction(primary)
	result.Significant = result.PrimaryP() < alpha
	return result
}

func direction(r float64) string {
	switch {
	case r > 0:
		return "positive"
	case r < 0:
		return "negative"
	default:
		return "none"
	}
}

// descriptives summarizes every joined column for the report's overview:
// the four process attributes, then the quality metric means.
func descriptives(rows []joinedRow) []schema.AttrDescriptive {
	var out []schema.AttrDescriptive
	for _, rq := range schema.AllResearchQuestions {
		attr := schema.ResearchQuestionAttrs[rq]
		var values []float64
		for _, row := range rows {
			values = append(values, row.attrs[attr])
		}
		out = append(out, describeColumn(string(attr), values))
	}
	for _, metric := range schema.QualityMetrics {
		var values []float64
		for _, row := range rows {
			if m, ok := row.means[metric]; ok {
				values = append(values, m)
			}
		}
		out = append(out, describeColumn(fmt.Sprintf("%s_mean", metric), values))
	}
	return out
}

func describeColumn(name string, values []float64) schema.AttrDescriptive {
	if len(values) == 0 {
		return schema.AttrDescriptive{Column: name}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return schema.AttrDescriptive{
		Column: name,
		N:      len(values),
		Mean:   agg.Mean(values),
		Median: agg.Quantile(0.5, sorted),
		StdDev: agg.SampleStdDev(values),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}
