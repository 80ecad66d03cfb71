// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resources

import (
	"fmt"
	"strings"

	"github.com/mkline/bookscout/internal/openlibrary"
)

// AttemptKind discriminates the two query strategies.
type AttemptKind string

const (
	// SubjectFilter queries the catalog's subject taxonomy. Higher
	// precision, tried first.
	SubjectFilter AttemptKind = "subject-filter"

	// KeywordSearch is a free-text query over the whole record. Lower
	// precision, used as fallback when subject tagging does not match.
	KeywordSearch AttemptKind = "keyword-search"
)

// Attempt is one candidate query. Attempts are generated by BuildPlan,
// never mutated, and consumed in generation order.
type Attempt struct {
	// Kind selects how the attempt maps onto a catalog request.
	Kind AttemptKind

	// Subjects holds the subject constraints for a subject-filter attempt;
	// a matching document must carry all of them.
	Subjects []string

	// Query is the free-text query for a keyword-search attempt.
	Query string

	// Description names the strategy for diagnostics.
	Description string
}

// params translates the attempt into one catalog request.
func (a Attempt) params(limit int, language string) openlibrary.Params {
	p := openlibrary.Params{Limit: limit, Language: language}
	switch a.Kind {
	case SubjectFilter:
		p.Subjects = a.Subjects
	case KeywordSearch:
		p.Query = a.Query
	}
	return p
}

// BuildPlan produces the ordered attempt list for a category and an
// optional free-text subject. It is a pure function of its inputs and the
// profile table: no I/O, deterministic output.
//
// Ordering: for each configured slug, a slug+subject attempt (when a
// subject was given) then a slug-alone attempt; after all slugs, an OR'd
// keyword attempt combined with the subject (when given) then the keyword
// attempt alone. Slug+subject leads because it is the most specific
// signal; keywords trail because free text is the least precise.
//
// The subject is trimmed and otherwise used verbatim; it is not checked
// against any vocabulary. An unconfigured category yields
// ErrUnknownCategory.
func BuildPlan(cat Category, subject string) ([]Attempt, error) {
	prof, ok := profiles[cat]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	subject = strings.TrimSpace(subject)

	var plan []Attempt
	for _, slug := range prof.Slugs {
		if subject != "" {
			plan = append(plan, Attempt{
				Kind:        SubjectFilter,
				Subjects:    []string{slug, subject},
				Description: fmt.Sprintf("subject %q + %q", slug, subject),
			})
		}
		plan = append(plan, Attempt{
			Kind:        SubjectFilter,
			Subjects:    []string{slug},
			Description: fmt.Sprintf("subject %q", slug),
		})
	}

	phrase := keywordPhrase(prof.Keywords)
	if subject != "" {
		plan = append(plan, Attempt{
			Kind:        KeywordSearch,
			Query:       phrase + " " + subject,
			Description: fmt.Sprintf("keywords + %q", subject),
		})
	}
	plan = append(plan, Attempt{
		Kind:        KeywordSearch,
		Query:       phrase,
		Description: "keywords",
	})

	return plan, nil
}

// keywordPhrase builds one OR'd free-text phrase from the category's
// keywords, quoting multi-word terms so the catalog treats them as phrases.
func keywordPhrase(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		if strings.ContainsRune(kw, ' ') {
			quoted[i] = `"` + kw + `"`
		} else {
			quoted[i] = kw
		}
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return "(" + strings.Join(quoted, " OR ") + ")"
}
