// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover runs plain full-text catalog searches and refines the
// results client-side: filtering by year, subject, and full-text
// availability, and re-sorting away from the catalog's relevance order.
package discover

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mkline/bookscout/internal/openlibrary"
	"github.com/mkline/bookscout/pkg/types"
)

// Query holds a plain search request.
type Query struct {
	Text     string
	Language string
	Limit    int
}

// Search runs the query and maps the raw documents into display models.
func Search(ctx context.Context, client *openlibrary.Client, q Query) ([]types.Book, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, fmt.Errorf("query is empty: provide a title, author, or topic")
	}

	docs, _, err := client.Search(ctx, openlibrary.Params{
		Query:    q.Text,
		Limit:    q.Limit,
		Language: q.Language,
	})
	if err != nil {
		return nil, err
	}

	books := make([]types.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, ToBook(d))
	}
	return books, nil
}

// ToBook converts a raw catalog document into the display model. Absent
// scalar fields become unknown, not zero.
func ToBook(d openlibrary.Doc) types.Book {
	b := types.Book{
		Key:         d.Key,
		Title:       d.Title,
		Authors:     d.AuthorNames,
		Subjects:    d.Subjects,
		Publishers:  d.Publishers,
		EditionKeys: d.EditionKeys,
	}
	if d.FirstPublishYear != nil {
		b.Year = *d.FirstPublishYear
		b.YearKnown = true
	}
	if d.CoverID != nil {
		b.CoverURL = openlibrary.CoverURL(*d.CoverID, openlibrary.CoverMedium)
	}
	if len(d.ISBNs) > 0 {
		b.ISBN = d.ISBNs[0]
	}
	if d.HasFulltext != nil {
		b.Fulltext = *d.HasFulltext
		b.FulltextKnown = true
	}
	return b
}

// FilterOptions narrows a result set client-side. Zero values disable the
// corresponding filter.
type FilterOptions struct {
	// YearFrom/YearTo bound the first publication year, inclusive. Books
	// with an unknown year are dropped when either bound is set.
	YearFrom int
	YearTo   int

	// FulltextOnly keeps only books the catalog can show in full.
	FulltextOnly bool

	// Subject keeps books whose subject list contains this string,
	// case-insensitively. Applied strictly: a filter that matches
	// nothing yields an empty list, it is never silently dropped.
	Subject string
}

// Filter returns the books that pass every enabled filter, in input order.
func Filter(books []types.Book, opts FilterOptions) []types.Book {
	var out []types.Book
	for _, b := range books {
		if (opts.YearFrom > 0 || opts.YearTo > 0) && !b.YearKnown {
			continue
		}
		if opts.YearFrom > 0 && b.Year < opts.YearFrom {
			continue
		}
		if opts.YearTo > 0 && b.Year > opts.YearTo {
			continue
		}
		if opts.FulltextOnly && !(b.FulltextKnown && b.Fulltext) {
			continue
		}
		if opts.Subject != "" && !matchesSubject(b, opts.Subject) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesSubject(b types.Book, subject string) bool {
	needle := strings.ToLower(subject)
	for _, s := range b.Subjects {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// SortBy selects a result ordering.
type SortBy string

const (
	// SortRelevance keeps the catalog's order.
	SortRelevance SortBy = "relevance"
	SortNewest    SortBy = "newest"
	SortOldest    SortBy = "oldest"
	SortTitle     SortBy = "title"
)

// ParseSortBy validates a user-supplied sort key.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case SortRelevance, SortNewest, SortOldest, SortTitle, "":
		if s == "" {
			return SortRelevance, nil
		}
		return SortBy(s), nil
	}
	return "", fmt.Errorf("unsupported sort %q: use relevance, newest, oldest, or title", s)
}

// Sort orders books in place. Books with an unknown year sort after books
// with a known one under the year orderings.
func Sort(books []types.Book, by SortBy) {
	switch by {
	case SortNewest:
		sort.SliceStable(books, func(i, j int) bool {
			if books[i].YearKnown != books[j].YearKnown {
				return books[i].YearKnown
			}
			return books[i].Year > books[j].Year
		})
	case SortOldest:
		sort.SliceStable(books, func(i, j int) bool {
			if books[i].YearKnown != books[j].YearKnown {
				return books[i].YearKnown
			}
			return books[i].Year < books[j].Year
		})
	case SortTitle:
		sort.SliceStable(books, func(i, j int) bool {
			return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
		})
	}
}
