// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkline/bookscout/internal/httputil"
)

func init() {
	// Keep the 429 retry path fast under test.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

// --- buildURL ---

func TestBuildURLRepeatedSubjects(t *testing.T) {
	raw := buildURL("https://example.org/search.json", Params{
		Subjects: []string{"study guides", "chemistry"},
		Limit:    5,
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	// Each subject constraint is its own repeated parameter, in order.
	assert.Equal(t, []string{"study guides", "chemistry"}, q["subject"])
	assert.Equal(t, "5", q.Get("limit"))
	assert.Empty(t, q.Get("q"))
}

func TestBuildURLDefaults(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		wantLimit string
	}{
		{"zero limit gets default", Params{Query: "golang"}, "20"},
		{"negative limit gets default", Params{Query: "golang", Limit: -3}, "20"},
		{"oversized limit is capped", Params{Query: "golang", Limit: 500}, "100"},
		{"in-range limit kept", Params{Query: "golang", Limit: 42}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(buildURL("https://example.org/s", tt.params))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, u.Query().Get("limit"))
		})
	}
}

func TestBuildURLLanguageAndFields(t *testing.T) {
	u, err := url.Parse(buildURL("https://example.org/s", Params{Query: "dune", Language: "eng"}))
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "dune", q.Get("q"))
	assert.Equal(t, "eng", q.Get("lang"))
	assert.Contains(t, q.Get("fields"), "has_fulltext")
}

func TestBuildURLSkipsBlankSubjects(t *testing.T) {
	u, err := url.Parse(buildURL("https://example.org/s", Params{Subjects: []string{" textbooks ", "  "}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"textbooks"}, u.Query()["subject"])
}

// --- Search ---

const sampleResponse = `{
	"numFound": 2,
	"start": 0,
	"docs": [
		{
			"key": "/works/OL45883W",
			"title": "A Study in Scarlet",
			"author_name": ["Arthur Conan Doyle"],
			"first_publish_year": 1887,
			"cover_i": 12345,
			"subject": ["Detective and mystery stories", "Fiction"],
			"isbn": ["9780140439083"],
			"publisher": ["Penguin"],
			"edition_key": ["OL123M"],
			"edition_count": 3,
			"has_fulltext": true,
			"language": ["eng"]
		},
		{
			"key": "/works/OL99999W",
			"title": "Sparse Record"
		}
	]
}`

func TestSearchDecodesDefensively(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test/0.1", r.Header.Get("User-Agent"))
		w.Write([]byte(sampleResponse))
	}))
	defer ts.Close()

	client := &Client{HTTPClient: ts.Client(), UserAgent: "test/0.1", BaseURL: ts.URL}
	docs, reqURL, err := client.Search(context.Background(), Params{Query: "scarlet"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.True(t, strings.HasPrefix(reqURL, ts.URL))

	full := docs[0]
	require.NotNil(t, full.FirstPublishYear)
	assert.Equal(t, 1887, *full.FirstPublishYear)
	require.NotNil(t, full.CoverID)
	assert.Equal(t, int64(12345), *full.CoverID)
	require.NotNil(t, full.HasFulltext)
	assert.True(t, *full.HasFulltext)
	assert.Equal(t, []string{"Arthur Conan Doyle"}, full.AuthorNames)

	// Absent scalars stay unknown, not zero.
	sparse := docs[1]
	assert.Nil(t, sparse.FirstPublishYear)
	assert.Nil(t, sparse.CoverID)
	assert.Nil(t, sparse.HasFulltext)
	assert.Nil(t, sparse.EditionCount)
	assert.Empty(t, sparse.AuthorNames)
}

func TestSearchNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := &Client{HTTPClient: ts.Client(), UserAgent: "test/0.1", BaseURL: ts.URL}
	_, reqURL, err := client.Search(context.Background(), Params{Query: "anything"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	// The request URL still comes back for diagnostics.
	assert.NotEmpty(t, reqURL)
}

func TestSearchEmptyParams(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer ts.Close()

	client := &Client{HTTPClient: ts.Client(), UserAgent: "test/0.1", BaseURL: ts.URL}
	_, _, err := client.Search(context.Background(), Params{Query: "   "})
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestSearchRetriesWhenEnabled(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"numFound":0,"start":0,"docs":[]}`))
	}))
	defer ts.Close()

	client := &Client{HTTPClient: ts.Client(), UserAgent: "test/0.1", BaseURL: ts.URL, MaxRetries: 2}
	docs, _, err := client.Search(context.Background(), Params{Query: "anything"})
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Equal(t, 2, calls)
}

// --- helpers ---

func TestCoverURL(t *testing.T) {
	assert.Equal(t, "https://covers.openlibrary.org/b/id/12345-M.jpg", CoverURL(12345, CoverMedium))
	assert.Equal(t, "https://covers.openlibrary.org/b/id/7-L.jpg", CoverURL(7, CoverLarge))
}

func TestDocFulltext(t *testing.T) {
	yes, no := true, false
	assert.True(t, Doc{HasFulltext: &yes}.Fulltext())
	assert.False(t, Doc{HasFulltext: &no}.Fulltext())
	assert.False(t, Doc{}.Fulltext())
}

func TestParamsIsEmpty(t *testing.T) {
	assert.True(t, Params{}.IsEmpty())
	assert.True(t, Params{Query: "  "}.IsEmpty())
	assert.False(t, Params{Query: "dune"}.IsEmpty())
	assert.False(t, Params{Subjects: []string{"fiction"}}.IsEmpty())
}
