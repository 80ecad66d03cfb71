// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkline/bookscout/internal/discover"
	"github.com/mkline/bookscout/internal/library"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the catalog by title, author, or topic",
	Long: `Search runs a free-text query against the catalog and refines the results
client-side: filter by publication year, subject, or full-text availability,
and re-sort away from the catalog's relevance order.

In academic mode (see "bookscout mode") results default to full-text-only
and newest-first; pass the flags explicitly to override.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results to request (default 20)")
	searchCmd.Flags().String("lang", "", "catalog language filter (e.g. eng)")
	searchCmd.Flags().Int("year-from", 0, "keep books first published in or after this year")
	searchCmd.Flags().Int("year-to", 0, "keep books first published in or before this year")
	searchCmd.Flags().Bool("fulltext-only", false, "keep only books with a readable full text")
	searchCmd.Flags().String("subject", "", "keep books whose subjects contain this text")
	searchCmd.Flags().String("sort", "", "result order: relevance, newest, oldest, or title")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	lang, _ := cmd.Flags().GetString("lang")
	yearFrom, _ := cmd.Flags().GetInt("year-from")
	yearTo, _ := cmd.Flags().GetInt("year-to")
	fulltextOnly, _ := cmd.Flags().GetBool("fulltext-only")
	subject, _ := cmd.Flags().GetString("subject")
	sortFlag, _ := cmd.Flags().GetString("sort")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := searchConfig()
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if lang == "" {
		lang = cfg.Language
	}

	mode, err := currentMode(cmd)
	if err != nil {
		return err
	}
	// Academic mode shifts the defaults; explicit flags always win.
	if mode == library.ModeAcademic {
		if !cmd.Flags().Changed("fulltext-only") {
			fulltextOnly = true
		}
		if !cmd.Flags().Changed("sort") {
			sortFlag = string(discover.SortNewest)
		}
	}

	sortBy, err := discover.ParseSortBy(sortFlag)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	// Plain search is a one-shot request; let the client smooth over
	// transient rate limiting.
	client.MaxRetries = 3

	books, err := discover.Search(cmd.Context(), client, discover.Query{
		Text:     strings.Join(args, " "),
		Language: lang,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	books = discover.Filter(books, discover.FilterOptions{
		YearFrom:     yearFrom,
		YearTo:       yearTo,
		FulltextOnly: fulltextOnly,
		Subject:      subject,
	})
	discover.Sort(books, sortBy)

	if jsonOutput {
		return discover.FormatJSON(books, os.Stdout)
	}
	discover.FormatTable(books, os.Stdout)
	return nil
}

// currentMode reads the persisted mode preference, defaulting to casual.
func currentMode(cmd *cobra.Command) (library.Mode, error) {
	store, err := openStore()
	if err != nil {
		return "", err
	}
	defer store.Close()

	v, err := store.Pref(cmd.Context(), library.PrefMode, string(library.ModeCasual))
	if err != nil {
		return "", err
	}
	mode, err := library.ParseMode(v)
	if err != nil {
		// A corrupted pref should not brick search.
		fmt.Fprintf(os.Stderr, "warning: ignoring invalid stored mode %q\n", v)
		return library.ModeCasual, nil
	}
	return mode, nil
}
