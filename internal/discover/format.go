// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mkline/bookscout/pkg/types"
)

// FormatTable writes books as a human-readable table to w.
func FormatTable(books []types.Book, w io.Writer) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-24s  %-4s  %-8s  %s\n",
		"Rank", "Title", "Authors", "Year", "Fulltext", "Key")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, b := range books {
		title := truncate(b.Title, 50)
		year := ""
		if b.YearKnown {
			year = fmt.Sprintf("%d", b.Year)
		}
		fulltext := "?"
		if b.FulltextKnown {
			fulltext = "no"
			if b.Fulltext {
				fulltext = "yes"
			}
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-24s  %-4s  %-8s  %s\n",
			i+1, title, formatAuthors(b.Authors), year, fulltext, b.Key)
	}

	fmt.Fprintf(w, "\n%d results\n", len(books))
}

// FormatJSON writes books as indented JSON to w.
func FormatJSON(books []types.Book, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(books)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 24)
	default:
		return truncate(authors[0], 17) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
