// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bookscout CLI.
package types

import "time"

// Book is the display model the rest of the application works with. It is
// built from a raw catalog document; fields the catalog did not supply stay
// at their zero value, except Year and Fulltext which keep an explicit
// Known flag because zero is a meaningful value for neither.
type Book struct {
	// Key is the catalog's canonical work key (e.g. "/works/OL45883W").
	Key string `json:"key" yaml:"key"`

	// Title is the work title as returned by the catalog.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in catalog order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the first publication year; valid only when YearKnown is true.
	Year      int  `json:"year,omitempty" yaml:"year,omitempty"`
	YearKnown bool `json:"year_known" yaml:"year_known"`

	// CoverURL points at a medium-size cover image, or is empty when the
	// catalog reported no cover.
	CoverURL string `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`

	// Subjects lists the catalog's subject tags for the work.
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`

	// ISBN is the first ISBN the catalog reported, if any.
	ISBN string `json:"isbn,omitempty" yaml:"isbn,omitempty"`

	// Publishers lists publisher names, if known.
	Publishers []string `json:"publishers,omitempty" yaml:"publishers,omitempty"`

	// EditionKeys lists the catalog's edition keys for the work.
	EditionKeys []string `json:"edition_keys,omitempty" yaml:"edition_keys,omitempty"`

	// Fulltext reports whether the catalog holds a readable full text;
	// valid only when FulltextKnown is true.
	Fulltext      bool `json:"fulltext" yaml:"fulltext"`
	FulltextKnown bool `json:"fulltext_known" yaml:"fulltext_known"`
}

// SavedBook is a Book pinned into a reading list, with list bookkeeping.
type SavedBook struct {
	Book    `yaml:",inline"`
	AddedAt time.Time `json:"added_at" yaml:"added_at"`
}
