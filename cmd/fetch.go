package cmd

import (
	"github.com/ckscope/ckscope/core"
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/spf13/cobra"
)

// fetchCmd builds the repository catalog.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Build a catalog of the most-starred repositories for a language.",
	Long: `Walk the hosted search API page by page and write a catalog CSV of the
most-starred repositories for the chosen language.

The catalog is the input for every later stage: batch analysis clones the
repositories it lists, and the statistical analysis joins results back
against its process attributes (stars, forks, age, size, open issues).

Search results are capped by the API at 1000 entries, so pages x per-page
must stay inside that window. Pages are fetched oldest-first with a fixed
delay between requests; an interrupted walk keeps the pages already fetched.

Examples:
  # Top 1000 Java repositories (default)
  ckscope fetch

  # A smaller catalog for a quick experiment
  ckscope fetch --pages 2 --per-page 50

  # Another language, custom catalog location
  ckscope fetch --language Kotlin --catalog kotlin-catalog.csv

  # Authenticated requests for a larger rate limit
  CKSCOPE_TOKEN=ghp_xxx ckscope fetch`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalogFetch(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run catalog fetch", err)
		}
	},
}
