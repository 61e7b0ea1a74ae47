package schema

// Custom string types for type safety.
type (
	// Metric represents one of the tracked object-oriented quality metrics.
	Metric string

	// ProcessAttr represents a repository-level process attribute.
	ProcessAttr string

	// ResearchQuestion identifies one of the four fixed study questions.
	ResearchQuestion string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the results store.
	DatabaseBackend string

	// CorrelationMethod represents the coefficient reported as primary.
	CorrelationMethod string
)

// All quality metrics tracked per class.
const (
	MetricCBO  Metric = "cbo"  // Coupling Between Objects
	MetricDIT  Metric = "dit"  // Depth of Inheritance Tree
	MetricLCOM Metric = "lcom" // Lack of Cohesion of Methods
	MetricWMC  Metric = "wmc"  // Weighted Methods per Class
	MetricLOC  Metric = "loc"  // Lines of Code
	MetricNOC  Metric = "noc"  // Number of Children
	MetricRFC  Metric = "rfc"  // Response for a Class
)

// All process attributes correlated against quality metrics.
const (
	AttrStars    ProcessAttr = "stars"
	AttrAgeYears ProcessAttr = "age_years"
	AttrReleases ProcessAttr = "releases"
	AttrSizeKB   ProcessAttr = "size_kb"
)

// The four fixed research questions of the study.
const (
	RQ01 ResearchQuestion = "RQ01" // popularity
	RQ02 ResearchQuestion = "RQ02" // maturity
	RQ03 ResearchQuestion = "RQ03" // activity
	RQ04 ResearchQuestion = "RQ04" // size
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All correlation methods reported.
const (
	PearsonMethod  CorrelationMethod = "pearson"
	SpearmanMethod CorrelationMethod = "spearman"
)

// AllMetrics lists the tracked metrics in the fixed order used for summary
// rows, so repeated aggregations of the same input are byte-identical.
var AllMetrics = []Metric{MetricCBO, MetricDIT, MetricLCOM, MetricWMC, MetricLOC, MetricNOC, MetricRFC}

// RequiredMetrics are the metrics the study mandates for every repository.
// The rest of AllMetrics is collected as supplementary context.
var RequiredMetrics = map[Metric]struct{}{
	MetricCBO:  {},
	MetricDIT:  {},
	MetricLCOM: {},
}

// QualityMetrics lists the metrics whose per-repository means feed the
// correlation analysis.
var QualityMetrics = []Metric{MetricCBO, MetricDIT, MetricLCOM, MetricWMC}

// MetricLabels maps each metric to its human-readable name.
var MetricLabels = map[Metric]string{
	MetricCBO:  "Coupling Between Objects",
	MetricDIT:  "Depth of Inheritance Tree",
	MetricLCOM: "Lack of Cohesion of Methods",
	MetricWMC:  "Weighted Methods per Class",
	MetricLOC:  "Lines of Code",
	MetricNOC:  "Number of Children",
	MetricRFC:  "Response for a Class",
}

// AllResearchQuestions lists the research questions in report order.
var AllResearchQuestions = []ResearchQuestion{RQ01, RQ02, RQ03, RQ04}

// ResearchQuestionAttrs maps each research question to its process attribute.
var ResearchQuestionAttrs = map[ResearchQuestion]ProcessAttr{
	RQ01: AttrStars,
	RQ02: AttrAgeYears,
	RQ03: AttrReleases,
	RQ04: AttrSizeKB,
}

// ProcessAttrLabels maps each process attribute to its study dimension.
var ProcessAttrLabels = map[ProcessAttr]string{
	AttrStars:    "Popularity",
	AttrAgeYears: "Maturity",
	AttrReleases: "Activity",
	AttrSizeKB:   "Size",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid results store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
