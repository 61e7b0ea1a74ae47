package corr

import (
	"sort"

	"github.com/ckscope/ckscope/core/agg"
	"github.com/ckscope/ckscope/schema"
)

var binNames = []string{"Q1", "Q2", "Q3", "Q4"}

// quartileSummary bins repositories by each process attribute's quartiles
// and reports the per-bin mean of every quality metric. Attributes follow
// research-question order so the output is stable.
func quartileSummary(rows []joinedRow) []schema.QuartileBin {
	var bins []schema.QuartileBin
	for _, rq := range schema.AllResearchQuestions {
		attr := schema.ResearchQuestionAttrs[rq]
		bins = append(bins, binByAttr(rows, attr)...)
	}
	return bins
}

func binByAttr(rows []joinedRow, attr schema.ProcessAttr) []schema.QuartileBin {
	if len(rows) == 0 {
		return nil
	}

	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.attrs[attr])
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	// Bin k covers (edges[k], edges[k+1]]; the first bin is closed below.
	edges := []float64{
		sorted[0],
		agg.Quantile(0.25, sorted),
		agg.Quantile(0.5, sorted),
		agg.Quantile(0.75, sorted),
		sorted[len(sorted)-1],
	}

	out := make([]schema.QuartileBin, 0, len(binNames))
	for k, name := range binNames {
		low, up := edges[k], edges[k+1]
		var members []joinedRow
		for i, row := range rows {
			if inBin(values[i], low, up, k == 0) {
				members = append(members, row)
			}
		}
		out = append(out, schema.QuartileBin{
			Attr:    attr,
			Bin:     name,
			Count:   len(members),
			AttrLow: low,
			AttrUp:  up,
			Means:   binMeans(members),
		})
	}
	return out
}

func inBin(v, low, up float64, first bool) bool {
	if first {
		return v >= low && v <= up
	}
	return v > low && v <= up
}

func binMeans(members []joinedRow) map[schema.Metric]float64 {
	means := make(map[schema.Metric]float64)
	for _, metric := range schema.QualityMetrics {
		var values []float64
		for _, row := range members {
			if m, ok := row.means[metric]; ok {
				values = append(values, m)
			}
		}
		if len(values) > 0 {
			means[metric] = agg.Mean(values)
		}
	}
	return means
}
