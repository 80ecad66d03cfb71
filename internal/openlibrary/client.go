// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openlibrary is a thin client for the Open Library search API.
// It exposes the raw document shape the catalog returns; mapping into the
// application's display model is the caller's job.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/mkline/bookscout/internal/httputil"
)

// searchBase is the Open Library search endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchBase = "https://openlibrary.org/search.json"

// coverBase serves cover images by cover ID.
var coverBase = "https://covers.openlibrary.org/b/id"

// fields is the field list requested from the catalog. Asking for a fixed
// set keeps responses small and the decode surface stable.
const fields = "key,title,author_name,first_publish_year,cover_i,subject,isbn,publisher,edition_key,edition_count,has_fulltext,language"

// Client queries the Open Library search API.
type Client struct {
	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client

	// UserAgent identifies this tool, with contact information, per the
	// catalog's politeness policy.
	UserAgent string

	// Limiter bounds the client-side request rate. Nil disables limiting.
	Limiter *rate.Limiter

	// MaxRetries enables 429 retry with backoff when positive. The
	// resource retriever leaves this at zero: a failed attempt there is
	// absorbed and the next planned attempt is tried instead.
	MaxRetries int

	// BaseURL overrides the search endpoint. Tests point it at an
	// httptest server; empty means the real catalog.
	BaseURL string
}

// New returns a Client with the given HTTP client and User-Agent, rate
// limited to rps requests per second (0 disables limiting).
func New(hc *http.Client, userAgent string, rps float64) *Client {
	c := &Client{HTTPClient: hc, UserAgent: userAgent}
	if rps > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return c
}

// Params describes one search request.
type Params struct {
	// Query is the free-text query (the catalog's q parameter).
	Query string

	// Subjects are subject constraints, sent as repeated subject
	// parameters. A document must match all of them.
	Subjects []string

	// Limit is the maximum number of documents to return.
	Limit int

	// Language is an optional language filter (e.g. "eng").
	Language string
}

// IsEmpty reports whether the params contain no searchable terms.
func (p Params) IsEmpty() bool {
	return strings.TrimSpace(p.Query) == "" && len(p.Subjects) == 0
}

// Search issues one search request and returns the decoded documents along
// with the request URL (useful for diagnostics). A non-2xx status or a
// transport failure is returned as an error; the caller decides whether
// that is fatal.
func (c *Client) Search(ctx context.Context, p Params) ([]Doc, string, error) {
	if p.IsEmpty() {
		return nil, "", fmt.Errorf("empty search: provide a query or subject constraints")
	}

	base := c.BaseURL
	if base == "" {
		base = searchBase
	}
	reqURL := buildURL(base, p)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, "", err
		}
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, reqURL, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, reqURL, fmt.Errorf("catalog returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, reqURL, fmt.Errorf("parsing catalog response: %w", err)
	}

	return sr.Docs, reqURL, nil
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.MaxRetries > 0 {
		return httputil.DoWithRetry(ctx, c.HTTPClient, req, c.MaxRetries)
	}
	return c.HTTPClient.Do(req.Clone(ctx))
}

// buildURL constructs the search URL for p.
func buildURL(base string, p Params) string {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	params := url.Values{}
	if q := strings.TrimSpace(p.Query); q != "" {
		params.Set("q", q)
	}
	for _, s := range p.Subjects {
		if s = strings.TrimSpace(s); s != "" {
			params.Add("subject", s)
		}
	}
	if p.Language != "" {
		params.Set("lang", p.Language)
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", fields)

	return base + "?" + params.Encode()
}

// CoverSize selects a cover image size.
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

// CoverURL returns the cover image URL for a cover ID.
func CoverURL(id int64, size CoverSize) string {
	return fmt.Sprintf("%s/%d-%s.jpg", coverBase, id, size)
}
