package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/schema"
)

// metricAspectEmoji returns the display prefix for a metric aspect.
func metricAspectEmoji(aspect string) string {
	switch aspect {
	case "coupling":
		return "🔗"
	case "cohesion":
		return "🧲"
	case "inheritance":
		return "🌳"
	case "complexity":
		return "🧩"
	default:
		return "📏"
	}
}

// WriteMetricDefinitions displays the formal definitions of the tracked
// metrics and the research questions they answer. This is a static display
// that does not require any collection.
func WriteMetricDefinitions(cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "label", "aspect", "definition", "study"}, func(csvWriter *csv.Writer) error {
				return writeCSVMetricDefinitions(csvWriter, renderModel)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricDefinitionsText(w, renderModel)
		}, "Wrote text")
	}
}

// writeMetricDefinitionsText displays the definitions in human-readable text format.
func writeMetricDefinitionsText(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	if _, err := fmt.Fprintf(w, "☕ %s\n", renderModel.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len(renderModel.Title)+3)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", renderModel.Description); err != nil {
		return err
	}

	for _, m := range renderModel.Metrics {
		prefix := metricAspectEmoji(m.Aspect)
		if _, err := fmt.Fprintf(w, "%s %s (%s)\n", prefix, strings.ToUpper(string(m.Name)), m.Label); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Aspect: %s\n", m.Aspect); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   %s\n", m.Definition); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Study: %s\n\n", m.Study); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "❓ Research Questions\n"); err != nil {
		return err
	}
	for _, q := range renderModel.Questions {
		if _, err := fmt.Fprintf(w, "   %s (%s, via %s): %s\n", q.ID, q.Dimension, q.Attr, q.Question); err != nil {
			return err
		}
	}

	return nil
}

// writeCSVMetricDefinitions writes one row per metric definition.
func writeCSVMetricDefinitions(w *csv.Writer, renderModel *schema.MetricsRenderModel) error {
	for _, m := range renderModel.Metrics {
		rec := []string{
			string(m.Name),
			m.Label,
			m.Aspect,
			m.Definition,
			m.Study,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// buildMetricsRenderModel constructs the static render model.
func buildMetricsRenderModel() *schema.MetricsRenderModel {
	metrics := []schema.MetricDefinition{
		{
			Name:       schema.MetricCBO,
			Label:      schema.MetricLabels[schema.MetricCBO],
			Aspect:     "coupling",
			Definition: "Number of other classes the class depends on through fields, method calls, return types, parameters and thrown exceptions.",
			Study:      "Required; feeds every correlation as a quality metric.",
		},
		{
			Name:       schema.MetricDIT,
			Label:      schema.MetricLabels[schema.MetricDIT],
			Aspect:     "inheritance",
			Definition: "Number of ancestors between the class and the root of the inheritance hierarchy.",
			Study:      "Required; feeds every correlation as a quality metric.",
		},
		{
			Name:       schema.MetricLCOM,
			Label:      schema.MetricLabels[schema.MetricLCOM],
			Aspect:     "cohesion",
			Definition: "Degree to which the methods of the class use disjoint sets of its fields; higher values mean less cohesion.",
			Study:      "Required; feeds every correlation as a quality metric.",
		},
		{
			Name:       schema.MetricWMC,
			Label:      schema.MetricLabels[schema.MetricWMC],
			Aspect:     "complexity",
			Definition: "Sum of the cyclomatic complexities of the methods of the class.",
			Study:      "Correlated as a supplementary quality metric.",
		},
		{
			Name:       schema.MetricLOC,
			Label:      schema.MetricLabels[schema.MetricLOC],
			Aspect:     "size",
			Definition: "Physical lines of code in the class body.",
			Study:      "Collected per class for descriptive context only.",
		},
		{
			Name:       schema.MetricNOC,
			Label:      schema.MetricLabels[schema.MetricNOC],
			Aspect:     "inheritance",
			Definition: "Number of classes that directly inherit from the class.",
			Study:      "Collected per class for descriptive context only.",
		},
		{
			Name:       schema.MetricRFC,
			Label:      schema.MetricLabels[schema.MetricRFC],
			Aspect:     "coupling",
			Definition: "Number of distinct methods and constructors that can execute in response to a message received by the class.",
			Study:      "Collected per class for descriptive context only.",
		},
	}

	questions := []schema.QuestionDefinition{
		{
			ID:        schema.RQ01,
			Dimension: schema.ProcessAttrLabels[schema.AttrStars],
			Attr:      schema.AttrStars,
			Question:  "What is the relationship between repository popularity and its quality characteristics?",
		},
		{
			ID:        schema.RQ02,
			Dimension: schema.ProcessAttrLabels[schema.AttrAgeYears],
			Attr:      schema.AttrAgeYears,
			Question:  "What is the relationship between repository maturity and its quality characteristics?",
		},
		{
			ID:        schema.RQ03,
			Dimension: schema.ProcessAttrLabels[schema.AttrReleases],
			Attr:      schema.AttrReleases,
			Question:  "What is the relationship between repository activity and its quality characteristics?",
		},
		{
			ID:        schema.RQ04,
			Dimension: schema.ProcessAttrLabels[schema.AttrSizeKB],
			Attr:      schema.AttrSizeKB,
			Question:  "What is the relationship between repository size and its quality characteristics?",
		},
	}

	return &schema.MetricsRenderModel{
		Title:       "CK Quality Metrics",
		Description: "Per-class metrics computed by the CK tool and summarized per repository.",
		Metrics:     metrics,
		Questions:   questions,
	}
}
