// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bookscout CLI.
//
// bookscout searches the Open Library catalog for books and academic
// material, keeps reading lists in a local database, and remembers
// whether you are browsing casually or researching.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkline/bookscout/internal/openlibrary"
	"github.com/mkline/bookscout/internal/secrets"
	"github.com/mkline/bookscout/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultTimeout = 30 * time.Second

// loadedSecrets holds per-user settings loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the bookscout CLI.
var rootCmd = &cobra.Command{
	Use:   "bookscout",
	Short: "Book and academic-resource discovery over the Open Library catalog",
	Long: `bookscout queries the Open Library search API. Plain search finds books by
title, author, or topic; the resources command runs a multi-attempt query
plan for academic material (textbooks, past papers, study guides) that
falls back from precise subject-taxonomy queries to free-text keywords.

Reading lists and the casual/academic mode preference live in a local
SQLite database; nothing leaves your machine except catalog queries.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional and only feeds environment-based config.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bookscout.yaml or ~/.config/bookscout/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the bookscout database (default: ~/.local/share/bookscout)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bookscout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bookscout"))
		}
	}

	viper.SetEnvPrefix("BOOKSCOUT")
	viper.AutomaticEnv()

	viper.SetDefault("search.timeout", defaultTimeout)
	viper.SetDefault("search.requests_per_second", 2.0)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// searchConfig resolves the search configuration from viper and loaded
// secrets. Flags layer on top of this at each command.
func searchConfig() types.SearchConfig {
	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: viper.GetString("search.user_agent"),
		},
		ResultLimit:       viper.GetInt("search.result_limit"),
		MinResults:        viper.GetInt("search.min_results"),
		MaxAttempts:       viper.GetInt("search.max_attempts"),
		Language:          viper.GetString("search.language"),
		RequestsPerSecond: viper.GetFloat64("search.requests_per_second"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fmt.Sprintf("bookscout/%s", version)
		if contact := secrets.Get(loadedSecrets, secrets.ContactEmail, viper.GetString("search.contact_email")); contact != "" {
			cfg.UserAgent = fmt.Sprintf("bookscout/%s (mailto:%s)", version, contact)
		}
	}
	return cfg
}

// loadConfig resolves the full configuration.
func loadConfig() (types.Config, error) {
	lib, err := libraryConfig()
	if err != nil {
		return types.Config{}, err
	}
	return types.Config{Search: searchConfig(), Library: lib}, nil
}

// newClient builds the catalog client from the search configuration.
func newClient(cfg types.SearchConfig) *openlibrary.Client {
	hc := &http.Client{Timeout: cfg.Timeout}
	return openlibrary.New(hc, cfg.UserAgent, cfg.RequestsPerSecond)
}

// libraryConfig resolves the data directory: flag, then config, then the
// per-user default.
func libraryConfig() (types.LibraryConfig, error) {
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("library.data_dir")
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return types.LibraryConfig{}, fmt.Errorf("resolving home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share", "bookscout")
	}
	return types.LibraryConfig{DataDir: dataDir}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
