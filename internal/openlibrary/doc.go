// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

// searchResponse is the top-level shape of a search.json response.
type searchResponse struct {
	NumFound int   `json:"numFound"`
	Start    int   `json:"start"`
	Docs     []Doc `json:"docs"`
}

// Doc is one raw document from the catalog. Every field is optional on the
// wire; scalars where zero is a plausible real value (year, cover ID, the
// fulltext flag) are pointers so that absent stays distinguishable from
// zero. Decode defensively and never assume presence.
type Doc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name"`
	FirstPublishYear *int     `json:"first_publish_year"`
	CoverID          *int64   `json:"cover_i"`
	Subjects         []string `json:"subject"`
	ISBNs            []string `json:"isbn"`
	Publishers       []string `json:"publisher"`
	EditionKeys      []string `json:"edition_key"`
	EditionCount     *int     `json:"edition_count"`
	HasFulltext      *bool    `json:"has_fulltext"`
	Languages        []string `json:"language"`
}

// Fulltext reports whether the catalog says a readable full text exists.
// An absent flag counts as no.
func (d Doc) Fulltext() bool {
	return d.HasFulltext != nil && *d.HasFulltext
}
