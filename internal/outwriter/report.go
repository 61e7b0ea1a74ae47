package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/schema"
)

// rqText carries the fixed question and hypothesis wording for one research
// question. The directions follow the study design: popularity and activity
// are expected to help quality, maturity and size to hurt it.
type rqText struct {
	Question   string
	Hypothesis string
}

var rqTexts = map[schema.ResearchQuestion]rqText{
	schema.RQ01: {
		Question:   "What is the relationship between a repository's popularity and its quality attributes?",
		Hypothesis: "Popular repositories attract more contributors and review, so we expect better quality: lower coupling (CBO) and lack of cohesion (LCOM).",
	},
	schema.RQ02: {
		Question:   "What is the relationship between a repository's maturity and its quality attributes?",
		Hypothesis: "Older repositories accumulate technical debt, so we expect quality to degrade with age.",
	},
	schema.RQ03: {
		Question:   "What is the relationship between a repository's activity and its quality attributes?",
		Hypothesis: "Actively released repositories refactor continuously, so we expect better quality with more releases.",
	},
	schema.RQ04: {
		Question:   "What is the relationship between a repository's size and its quality attributes?",
		Hypothesis: "Larger codebases are harder to keep cohesive, so we expect quality to degrade with size.",
	},
}

// WriteMarkdownReport renders the full study report as a markdown document to
// the configured report file.
func WriteMarkdownReport(report *schema.StatsReport, cfg *contract.Config) error {
	return writeWithFile(cfg.ReportFile, func(w io.Writer) error {
		return writeMarkdown(report, cfg, time.Now(), w)
	}, "Wrote report")
}

// writeMarkdown builds the whole document in memory and writes it once.
// Builder writes never fail, which keeps the section helpers free of error
// plumbing.
func writeMarkdown(report *schema.StatsReport, cfg *contract.Config, now time.Time, w io.Writer) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	var b strings.Builder
	b.WriteString("# Java Repository Quality Analysis Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", now.Format("2006-01-02"))

	writeIntroductionSection(&b, report)
	writeHypothesesSection(&b)
	writeMethodologySection(&b, cfg)
	writeResultsSection(&b, report, fmtFloat)
	writeDiscussionSection(&b, report, fmtFloat)
	writeConclusionsSection(&b, report)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeIntroductionSection(b *strings.Builder, report *schema.StatsReport) {
	b.WriteString("## 1. Introduction\n\n")
	fmt.Fprintf(b,
		"This report examines the relationship between process attributes and internal quality attributes across %d of the most starred Java repositories on GitHub. "+
			"Quality is measured per class with the CK suite of object-oriented metrics and aggregated per repository. "+
			"Process attributes cover popularity, maturity, activity and size.\n\n",
		report.Repositories)
}

func writeHypothesesSection(b *strings.Builder) {
	b.WriteString("## 2. Hypotheses\n\n")
	for _, rq := range schema.AllResearchQuestions {
		attr := schema.ResearchQuestionAttrs[rq]
		fmt.Fprintf(b, "### %s: %s\n\n", rq, schema.ProcessAttrLabels[attr])
		fmt.Fprintf(b, "**Question:** %s\n\n", rqTexts[rq].Question)
		fmt.Fprintf(b, "**Hypothesis:** %s\n\n", rqTexts[rq].Hypothesis)
	}
}

func writeMethodologySection(b *strings.Builder, cfg *contract.Config) {
	b.WriteString("## 3. Methodology\n\n")
	b.WriteString("### 3.1 Data Collection\n\n")
	b.WriteString("- Catalog: top Java repositories on GitHub, ordered by stars\n")
	b.WriteString("- Process attributes: stars (popularity), age in years (maturity), release count (activity), size in KB (size)\n")
	b.WriteString("- Quality metrics: per-class CK metrics (CBO, DIT, LCOM, WMC) aggregated to per-repository means\n\n")
	b.WriteString("### 3.2 Statistical Methods\n\n")
	b.WriteString("- Pearson and Spearman coefficients computed for every attribute and metric pair\n")
	b.WriteString("- A Jarque-Bera normality check on both columns selects the primary coefficient\n")
	b.WriteString("- Values outside 1.5 x IQR of either column are trimmed before computing coefficients\n")
	fmt.Fprintf(b, "- Repositories with fewer than %d analyzed classes are excluded, as are pairs with fewer than 3 samples\n", cfg.MinClasses)
	b.WriteString("- Significance level: p < 0.05\n\n")
}

func writeResultsSection(b *strings.Builder, report *schema.StatsReport, fmtFloat func(float64) string) {
	b.WriteString("## 4. Results\n\n")
	fmt.Fprintf(b,
		"The analysis covered %d repositories. %d repositories were excluded for having too few classes, %d pairs were omitted for insufficient samples, and %d outlier rows were trimmed.\n\n",
		report.Repositories, report.ExcludedRepos, report.OmittedPairs, report.OutliersRemoved)

	b.WriteString("### 4.1 Descriptive Statistics\n\n")
	b.WriteString("| Column | N | Mean | Median | Std Dev | Min | Max |\n")
	b.WriteString("|--------|--:|-----:|-------:|--------:|----:|----:|\n")
	for _, d := range report.Descriptives {
		fmt.Fprintf(b, "| %s | %d | %s | %s | %s | %s | %s |\n",
			d.Column, d.N, fmtFloat(d.Mean), fmtFloat(d.Median), fmtFloat(d.StdDev), fmtFloat(d.Min), fmtFloat(d.Max))
	}
	b.WriteString("\n")

	b.WriteString("### 4.2 Correlation Analysis\n\n")
	for _, rq := range schema.AllResearchQuestions {
		attr := schema.ResearchQuestionAttrs[rq]
		fmt.Fprintf(b, "#### %s: %s (%s)\n\n", rq, schema.ProcessAttrLabels[attr], attr)
		found := false
		for _, res := range report.Correlations {
			if res.Question != rq {
				continue
			}
			found = true
			sig := "not significant"
			if res.Significant {
				sig = "significant"
			}
			fmt.Fprintf(b, "- **%s**: Pearson r = %s (p = %s); Spearman rho = %s (p = %s); N = %d; primary %s: %s %s (%s)\n",
				res.Metric,
				fmtFloat(res.Pearson), fmtPValue(res.PearsonP),
				fmtFloat(res.Spearman), fmtPValue(res.SpearmanP),
				res.N, res.Primary, res.Strength, res.Direction, sig)
		}
		if !found {
			b.WriteString("- No pairs met the minimum sample size\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("### 4.3 Quartile Analysis\n\n")
	b.WriteString("Repositories binned by process attribute quartile, with the per-bin mean of each quality metric.\n\n")
	order, grouped := groupQuartiles(report.Quartiles)
	for _, attr := range order {
		fmt.Fprintf(b, "#### %s\n\n", attr)
		b.WriteString("| Bin | Count | Range |")
		for _, m := range schema.QualityMetrics {
			fmt.Fprintf(b, " Mean %s |", m)
		}
		b.WriteString("\n")
		b.WriteString("|-----|------:|-------|")
		for range schema.QualityMetrics {
			b.WriteString("--------:|")
		}
		b.WriteString("\n")
		for _, bin := range grouped[attr] {
			fmt.Fprintf(b, "| %s | %d | %s..%s |", bin.Bin, bin.Count, fmtFloat(bin.AttrLow), fmtFloat(bin.AttrUp))
			for _, m := range schema.QualityMetrics {
				fmt.Fprintf(b, " %s |", fmtFloat(bin.Means[m]))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

func writeDiscussionSection(b *strings.Builder, report *schema.StatsReport, fmtFloat func(float64) string) {
	b.WriteString("## 5. Discussion\n\n")
	b.WriteString("### 5.1 Key Findings\n\n")
	any := false
	for _, res := range report.Correlations {
		if !res.Significant {
			continue
		}
		any = true
		fmt.Fprintf(b, "- %s and %s: %s %s correlation (%s r = %s, p = %s)\n",
			res.Attr, res.Metric, res.Strength, res.Direction,
			res.Primary, fmtFloat(res.PrimaryR()), fmtPValue(res.PrimaryP()))
	}
	if !any {
		b.WriteString("No statistically significant correlations were found at p < 0.05.\n")
	}
	b.WriteString("\n")

	b.WriteString("### 5.2 Limitations\n\n")
	b.WriteString("- The analysis is snapshot-based: a single clone per repository, with no commit history\n")
	b.WriteString("- CK analyzes source statically and includes tests and generated code in its class counts\n")
	b.WriteString("- Release count is a coarse proxy for development activity\n")
	b.WriteString("- Correlation does not imply causation\n\n")
}

func writeConclusionsSection(b *strings.Builder, report *schema.StatsReport) {
	b.WriteString("## 6. Conclusions\n\n")
	for _, rq := range schema.AllResearchQuestions {
		total, significant := 0, 0
		for _, res := range report.Correlations {
			if res.Question != rq {
				continue
			}
			total++
			if res.Significant {
				significant++
			}
		}
		attr := schema.ResearchQuestionAttrs[rq]
		fmt.Fprintf(b, "- %s (%s): %d of %d metric pairs showed a significant correlation\n",
			rq, schema.ProcessAttrLabels[attr], significant, total)
	}
	b.WriteString("\n")
	b.WriteString(conclusionRemark(report.Correlations))
	b.WriteString("\n")
}

// conclusionRemark summarizes how strongly the data speaks, based on the
// strongest significant correlation found.
func conclusionRemark(results []schema.CorrelationResult) string {
	best := ""
	for _, res := range results {
		if !res.Significant {
			continue
		}
		switch res.Strength {
		case contract.StrongValue:
			best = contract.StrongValue
		case contract.ModerateValue:
			if best != contract.StrongValue {
				best = contract.ModerateValue
			}
		default:
			if best == "" {
				best = contract.WeakValue
			}
		}
	}
	switch best {
	case contract.StrongValue:
		return "At least one strong correlation was observed, so the corresponding hypothesis deserves a closer, possibly causal, investigation.\n"
	case contract.ModerateValue:
		return "The strongest observed correlations are moderate, which lends partial support to the hypotheses without establishing practical relevance.\n"
	case contract.WeakValue:
		return "All significant correlations are weak, which suggests process attributes alone explain little of the variance in internal quality.\n"
	default:
		return "No significant correlations were observed, so none of the hypotheses finds support in this sample.\n"
	}
}

// groupQuartiles splits the flat bin list per process attribute, preserving
// the order attributes first appear in.
func groupQuartiles(bins []schema.QuartileBin) ([]schema.ProcessAttr, map[schema.ProcessAttr][]schema.QuartileBin) {
	var order []schema.ProcessAttr
	grouped := make(map[schema.ProcessAttr][]schema.QuartileBin)
	for _, bin := range bins {
		if _, ok := grouped[bin.Attr]; !ok {
			order = append(order, bin.Attr)
		}
		grouped[bin.Attr] = append(grouped[bin.Attr], bin)
	}
	return order, grouped
}
