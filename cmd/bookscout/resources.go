// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkline/bookscout/internal/discover"
	"github.com/mkline/bookscout/internal/openlibrary"
	"github.com/mkline/bookscout/internal/resources"
	"github.com/mkline/bookscout/pkg/types"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources <category>",
	Short: "Find academic material with a multi-attempt query plan",
	Long: `Resources searches the catalog for a class of academic material (textbook,
past-papers, study-guide, ...) using an ordered plan of candidate queries:
subject-taxonomy queries first, free-text keyword queries as fallback. The
first attempt that returns enough documents wins; when none does, the last
attempt's results are shown as-is.

Run "bookscout categories" for the category list.`,
	Args: cobra.ExactArgs(1),
	RunE: runResources,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the academic resource categories",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range resources.Categories() {
			fmt.Println(c)
		}
	},
}

func init() {
	resourcesCmd.Flags().String("subject", "", "narrow the search to a subject (e.g. \"organic chemistry\")")
	resourcesCmd.Flags().Int("limit", 0, "documents requested per attempt (default 20)")
	resourcesCmd.Flags().Int("min-results", 0, "result count at which an attempt is accepted (default 6)")
	resourcesCmd.Flags().Int("max-attempts", 0, "cap on attempts tried (default: full plan)")
	resourcesCmd.Flags().String("lang", "", "catalog language filter (e.g. eng)")
	resourcesCmd.Flags().Bool("fulltext-only", false, "count only documents with a readable full text")
	resourcesCmd.Flags().Bool("json", false, "output results as JSON")
	resourcesCmd.Flags().Bool("verbose", false, "print each attempt's outcome to stderr")

	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(categoriesCmd)
}

// retrieveOptions layers explicit flags over the configured search
// settings. A flag left at its zero default defers to the config file,
// which in turn defers to the built-in thresholds.
func retrieveOptions(cmd *cobra.Command, cfg types.SearchConfig) resources.Options {
	opts := resources.Options{
		ResultLimit: cfg.ResultLimit,
		MinResults:  cfg.MinResults,
		MaxAttempts: cfg.MaxAttempts,
		Language:    cfg.Language,
	}
	if v, _ := cmd.Flags().GetInt("limit"); v > 0 {
		opts.ResultLimit = v
	}
	if v, _ := cmd.Flags().GetInt("min-results"); v > 0 {
		opts.MinResults = v
	}
	if v, _ := cmd.Flags().GetInt("max-attempts"); v > 0 {
		opts.MaxAttempts = v
	}
	if v, _ := cmd.Flags().GetString("lang"); v != "" {
		opts.Language = v
	}
	return opts
}

func runResources(cmd *cobra.Command, args []string) error {
	cat, err := resources.ParseCategory(args[0])
	if err != nil {
		return err
	}

	subject, _ := cmd.Flags().GetString("subject")
	fulltextOnly, _ := cmd.Flags().GetBool("fulltext-only")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := searchConfig()
	opts := retrieveOptions(cmd, cfg)
	if fulltextOnly {
		opts.Filter = func(d openlibrary.Doc) bool { return d.Fulltext() }
	}

	var diag io.Writer
	if verbose {
		diag = os.Stderr
	}

	outcome, err := resources.Retrieve(cmd.Context(), newClient(cfg), cat, subject, opts, diag)
	if err != nil {
		return err
	}

	books := make([]types.Book, 0, len(outcome.Docs))
	for _, d := range outcome.Docs {
		books = append(books, discover.ToBook(d))
	}

	if jsonOutput {
		return discover.FormatJSON(books, os.Stdout)
	}
	discover.FormatTable(books, os.Stdout)
	if outcome.Description == resources.FallbackDescription {
		fmt.Fprintf(os.Stderr, "No attempt met the threshold after %d tries; showing the last attempt's results.\n", outcome.AttemptIndex)
	} else {
		fmt.Fprintf(os.Stderr, "Accepted attempt %d (%s).\n", outcome.AttemptIndex, outcome.Description)
	}
	return nil
}
