// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resources

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mkline/bookscout/internal/openlibrary"
)

// attemptDelay is the base pause between attempts; the actual pause scales
// with the attempt index to stay gentle on the catalog. Tests override
// this to avoid real sleeps.
var attemptDelay = 300 * time.Millisecond

const (
	defaultResultLimit = 20
	defaultMinResults  = 6
)

// FallbackDescription tags an outcome where no attempt met the threshold.
const FallbackDescription = "fallback"

// Options configures one retrieval. The zero value gets defaults.
type Options struct {
	// ResultLimit is the number of documents requested per attempt
	// (default 20).
	ResultLimit int

	// MinResults is the filtered document count at which an attempt is
	// accepted and the remaining attempts are skipped (default 6).
	MinResults int

	// MaxAttempts caps how many planned attempts are tried. Zero or a
	// value beyond the plan length means the full plan.
	MaxAttempts int

	// Language is an optional catalog language filter.
	Language string

	// Filter, when set, discards documents client-side before they count
	// toward MinResults.
	Filter func(openlibrary.Doc) bool
}

// Outcome is the result of one retrieval.
type Outcome struct {
	// Docs are the documents of the accepted attempt, or of the last
	// attempt tried when none was accepted. May be empty.
	Docs []openlibrary.Doc

	// AttemptIndex is the 1-based index of the attempt that produced
	// Docs; on fallback it equals the number of attempts tried.
	AttemptIndex int

	// Description names the strategy that produced Docs, or
	// FallbackDescription when no attempt met the threshold.
	Description string

	// RequestURL is the accepted attempt's request URL. Empty on
	// fallback and when no attempt ran.
	RequestURL string
}

// Retrieve plans the attempt list for cat and subject and executes it
// sequentially against the catalog, stopping at the first attempt whose
// filtered result count reaches Options.MinResults. When no attempt
// qualifies it returns the last attempt's (possibly empty) results as a
// fallback outcome rather than an error: for a discovery tool, finding
// nothing usable is an expected end state.
//
// Per-attempt catalog failures are absorbed as zero results and noted on
// diag; the same attempt is never retried. The only error conditions are
// an unknown category and context cancellation. A cancelled retrieval
// returns ctx's error and a zero Outcome; it never evaluates the
// threshold against partial data.
//
// Callers that tie retrievals to a logical search slot (one search box,
// one view) must cancel the previous retrieval's context before starting
// the next so that at most one is in flight per slot.
func Retrieve(ctx context.Context, client *openlibrary.Client, cat Category, subject string, opts Options, diag io.Writer) (Outcome, error) {
	plan, err := BuildPlan(cat, subject)
	if err != nil {
		return Outcome{}, err
	}
	if opts.MaxAttempts > 0 && opts.MaxAttempts < len(plan) {
		plan = plan[:opts.MaxAttempts]
	}

	limit := opts.ResultLimit
	if limit <= 0 {
		limit = defaultResultLimit
	}
	minResults := opts.MinResults
	if minResults <= 0 {
		minResults = defaultMinResults
	}
	if diag == nil {
		diag = io.Discard
	}

	var last []openlibrary.Doc
	for i, att := range plan {
		docs, reqURL, err := client.Search(ctx, att.params(limit, opts.Language))
		if ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}
		if err != nil {
			// Absorbed: a failed attempt counts as zero results and
			// the next planned attempt is tried instead.
			fmt.Fprintf(diag, "warning: attempt %d (%s) failed: %v\n", i+1, att.Description, err)
			docs = nil
		}

		if opts.Filter != nil {
			docs = filterDocs(docs, opts.Filter)
		}
		last = docs

		if len(docs) >= minResults {
			return Outcome{
				Docs:         docs,
				AttemptIndex: i + 1,
				Description:  att.Description,
				RequestURL:   reqURL,
			}, nil
		}

		if i < len(plan)-1 {
			select {
			case <-ctx.Done():
				return Outcome{}, ctx.Err()
			case <-time.After(time.Duration(i+1) * attemptDelay):
			}
		}
	}

	return Outcome{
		Docs:         last,
		AttemptIndex: len(plan),
		Description:  FallbackDescription,
	}, nil
}

func filterDocs(docs []openlibrary.Doc, keep func(openlibrary.Doc) bool) []openlibrary.Doc {
	var out []openlibrary.Doc
	for _, d := range docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
