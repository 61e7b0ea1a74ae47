package schema

// CatalogHeader lists the catalog CSV columns in write order. The column
// names mirror the hosting API field names so a catalog file can be joined
// back against raw API responses without renaming.
var CatalogHeader = []string{
	"full_name",
	"html_url",
	"clone_url",
	"stargazers_count",
	"forks_count",
	"created_at",
	"updated_at",
	"size",
	"language",
	"open_issues_count",
	"default_branch",
}

// SummaryHeader lists the accumulated results CSV columns in write order.
var SummaryHeader = []string{
	"repository",
	"metric",
	"label",
	"required",
	"classes_analyzed",
	"invalid_values",
	"mean",
	"median",
	"std_dev",
	"min",
	"max",
	"q1",
	"q3",
}

// RunsHeader lists the batch-run listing CSV columns in write order.
var RunsHeader = []string{
	"id",
	"started_at",
	"finished_at",
	"catalog_path",
	"start_offset",
	"max_repos",
	"succeeded",
	"failed",
}

// CorrelationHeader lists the correlation CSV columns in write order.
var CorrelationHeader = []string{
	"research_question",
	"process_attr",
	"quality_metric",
	"sample_size",
	"pearson_r",
	"pearson_p",
	"spearman_rho",
	"spearman_p",
	"primary",
	"strength",
	"direction",
	"significant",
}
