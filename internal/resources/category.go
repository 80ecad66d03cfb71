// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resources finds academic material in the catalog. It plans an
// ordered list of candidate queries for a resource category and runs them
// sequentially until one returns enough documents.
package resources

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category identifies a class of academic material. The set is fixed at
// compile time; there is no runtime registration.
type Category string

const (
	StudyGuide   Category = "study-guide"
	Textbook     Category = "textbook"
	LectureNotes Category = "lecture-notes"
	PastPapers   Category = "past-papers"
	ProblemSets  Category = "problem-sets"
	Reference    Category = "reference"
	OpenTextbook Category = "open-textbook"
	CaseStudy    Category = "case-study"
)

// ErrUnknownCategory is returned when a category has no configured profile.
var ErrUnknownCategory = errors.New("unknown resource category")

// Profile holds the static search vocabulary for one category: subject
// slugs the catalog commonly files such material under, and free-text
// keywords for when subject tagging is absent. Both sets are non-empty
// for every configured category.
type Profile struct {
	Slugs    []string
	Keywords []string
}

// profiles maps each category to its vocabulary. Slug order matters: more
// specific slugs come first because the planner tries them in table order.
var profiles = map[Category]Profile{
	StudyGuide: {
		Slugs:    []string{"study guides", "examinations, questions, etc", "study aids"},
		Keywords: []string{"study guide", "exam preparation", "review notes"},
	},
	Textbook: {
		Slugs:    []string{"textbooks", "problems, exercises, etc"},
		Keywords: []string{"textbook", "introduction to", "principles of"},
	},
	LectureNotes: {
		Slugs:    []string{"lecture notes", "outlines, syllabi, etc"},
		Keywords: []string{"lecture notes", "course notes", "lectures on"},
	},
	PastPapers: {
		Slugs:    []string{"examinations, questions, etc", "entrance examinations"},
		Keywords: []string{"past papers", "practice questions", "examination papers"},
	},
	ProblemSets: {
		Slugs:    []string{"problems, exercises, etc", "mathematics problems"},
		Keywords: []string{"problem set", "practice problems", "exercises and solutions"},
	},
	Reference: {
		Slugs:    []string{"handbooks, manuals, etc", "encyclopedias", "dictionaries"},
		Keywords: []string{"handbook", "reference manual", "encyclopedia"},
	},
	OpenTextbook: {
		Slugs:    []string{"open educational resources", "textbooks"},
		Keywords: []string{"open textbook", "open educational resources"},
	},
	CaseStudy: {
		Slugs:    []string{"case studies"},
		Keywords: []string{"case study", "case studies in"},
	},
}

// Categories returns all configured categories in stable (sorted) order.
func Categories() []Category {
	cats := make([]Category, 0, len(profiles))
	for c := range profiles {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// ParseCategory converts a user-supplied string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := profiles[c]; !ok {
		return "", fmt.Errorf("%w: %q (valid: %v)", ErrUnknownCategory, s, Categories())
	}
	return c, nil
}
