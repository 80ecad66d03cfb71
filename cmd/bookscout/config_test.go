// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkline/bookscout/internal/secrets"
	"github.com/mkline/bookscout/pkg/types"
)

func TestSearchConfigFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("search.result_limit", 40)
	viper.Set("search.min_results", 10)
	viper.Set("search.max_attempts", 2)
	viper.Set("search.language", "fre")
	viper.Set("search.timeout", "10s")
	viper.Set("search.user_agent", "custom/1.0")
	viper.Set("search.requests_per_second", 5.0)

	cfg := searchConfig()
	assert.Equal(t, 40, cfg.ResultLimit)
	assert.Equal(t, 10, cfg.MinResults)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, "fre", cfg.Language)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "custom/1.0", cfg.UserAgent)
	assert.Equal(t, 5.0, cfg.RequestsPerSecond)
}

func TestSearchConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	old := loadedSecrets
	loadedSecrets = nil
	t.Cleanup(func() { loadedSecrets = old })

	cfg := searchConfig()
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Equal(t, "bookscout/"+version, cfg.UserAgent)
	// Zero thresholds defer to the retriever's built-in defaults.
	assert.Zero(t, cfg.ResultLimit)
	assert.Zero(t, cfg.MinResults)
}

func TestSearchConfigContactEmail(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	old := loadedSecrets
	loadedSecrets = map[string]string{secrets.ContactEmail: "reader@example.com"}
	t.Cleanup(func() { loadedSecrets = old })

	cfg := searchConfig()
	assert.Equal(t, fmt.Sprintf("bookscout/%s (mailto:reader@example.com)", version), cfg.UserAgent)
}

func TestRetrieveOptionsConfigThenFlags(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("search.min_results", 10)
	viper.Set("search.result_limit", 30)

	cfg := searchConfig()
	opts := retrieveOptions(resourcesCmd, cfg)
	assert.Equal(t, 10, opts.MinResults)
	assert.Equal(t, 30, opts.ResultLimit)
	assert.Zero(t, opts.MaxAttempts)
	assert.Empty(t, opts.Language)

	// An explicit flag beats the config file.
	require.NoError(t, resourcesCmd.Flags().Set("min-results", "3"))
	t.Cleanup(func() { _ = resourcesCmd.Flags().Set("min-results", "0") })

	opts = retrieveOptions(resourcesCmd, cfg)
	assert.Equal(t, 3, opts.MinResults)
	assert.Equal(t, 30, opts.ResultLimit)
}

func TestNewClientUsesSearchConfig(t *testing.T) {
	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "ua/1",
		},
		RequestsPerSecond: 2,
	}

	c := newClient(cfg)
	assert.Equal(t, "ua/1", c.UserAgent)
	assert.Equal(t, 5*time.Second, c.HTTPClient.Timeout)
	assert.NotNil(t, c.Limiter)
}

func TestLoadConfigGroupsSections(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	viper.Set("library.data_dir", dir)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Library.DataDir)
	assert.Equal(t, defaultTimeout, cfg.Search.Timeout)
}
