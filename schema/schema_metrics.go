package schema

// MetricDefinition is the formal definition of one tracked metric for the
// metrics command. Static content, no collection involved.
type MetricDefinition struct {
	Name       Metric `json:"name"`
	Label      string `json:"label"`
	Aspect     string `json:"aspect"`
	Definition string `json:"definition"`
	Study      string `json:"study"`
}

// QuestionDefinition is the formal statement of one research question.
type QuestionDefinition struct {
	ID        ResearchQuestion `json:"id"`
	Dimension string           `json:"dimension"`
	Attr      ProcessAttr      `json:"process_attr"`
	Question  string           `json:"question"`
}

// MetricsRenderModel is the complete render model for the metrics command.
type MetricsRenderModel struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Metrics     []MetricDefinition   `json:"metrics"`
	Questions   []QuestionDefinition `json:"research_questions"`
}
