package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that talk to the catalog.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with catalog requests
	// (e.g. "bookscout/0.1 (mailto:someone@example.org)"). Open Library
	// asks clients to identify themselves with contact information.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for plain search and the resource retriever.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// ResultLimit is the number of documents requested per query (default 20).
	ResultLimit int `json:"result_limit" yaml:"result_limit"`

	// MinResults is the document count at which a resource-search attempt
	// is accepted and no further attempts are tried (default 6).
	MinResults int `json:"min_results" yaml:"min_results"`

	// MaxAttempts caps how many planned attempts the retriever tries.
	// Zero means the full plan.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// Language is an optional catalog language filter (e.g. "eng").
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// RequestsPerSecond bounds the client-side request rate against the
	// catalog (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// LibraryConfig holds settings for the reading-list store.
type LibraryConfig struct {
	// DataDir is the directory holding the bookscout database
	// (default "~/.local/share/bookscout", overridable).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config groups all stage configurations.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Library LibraryConfig `json:"library" yaml:"library"`
}
