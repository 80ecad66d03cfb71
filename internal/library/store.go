// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists reading lists and user preferences in a local
// SQLite database. It is the application's only mutable state; every
// mutation goes through an explicit Store method and is durable the
// moment the method returns.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mkline/bookscout/pkg/types"
)

const dbFile = "bookscout.db"

// ErrListNotFound is returned when a list name resolves to nothing.
var ErrListNotFound = errors.New("list not found")

// Store manages the bookscout SQLite database.
type Store struct {
	db *sql.DB
}

// List is one saved reading list.
type List struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// BookCount is filled by Lists for display.
	BookCount int `json:"book_count" yaml:"book_count"`
}

// NewStore opens or creates the database at dataDir/bookscout.db, creating
// the schema if it does not exist.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS lists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS list_books (
			list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
			book_key TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			year INTEGER,
			cover_url TEXT,
			isbn TEXT,
			fulltext INTEGER,
			added_at TEXT NOT NULL,
			PRIMARY KEY (list_id, book_key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_list_books_list ON list_books(list_id)`,
		`CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CreateList creates a new, empty list and returns it.
func (s *Store) CreateList(ctx context.Context, name string) (List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return List{}, fmt.Errorf("list name is empty")
	}

	l := List{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lists (id, name, created_at) VALUES (?, ?, ?)`,
		l.ID, l.Name, l.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return List{}, fmt.Errorf("creating list %q: %w", name, err)
	}
	return l, nil
}

// Lists returns all lists with their book counts, newest first.
func (s *Store) Lists(ctx context.Context) ([]List, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.name, l.created_at, COUNT(b.book_key)
		FROM lists l
		LEFT JOIN list_books b ON b.list_id = l.id
		GROUP BY l.id
		ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying lists: %w", err)
	}
	defer rows.Close()

	var lists []List
	for rows.Next() {
		var l List
		var created string
		if err := rows.Scan(&l.ID, &l.Name, &created, &l.BookCount); err != nil {
			return nil, fmt.Errorf("scanning list row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			l.CreatedAt = t
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// FindList resolves a list by name.
func (s *Store) FindList(ctx context.Context, name string) (List, error) {
	var l List
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM lists WHERE name = ?`, strings.TrimSpace(name)).
		Scan(&l.ID, &l.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return List{}, fmt.Errorf("%w: %q", ErrListNotFound, name)
	}
	if err != nil {
		return List{}, fmt.Errorf("querying list %q: %w", name, err)
	}
	if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
		l.CreatedAt = t
	}
	return l, nil
}

// DeleteList removes a list and its books.
func (s *Store) DeleteList(ctx context.Context, listID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, listID)
	if err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrListNotFound
	}
	return nil
}

// AddBook saves a book into a list. Adding a book that is already present
// updates its stored fields instead of failing.
func (s *Store) AddBook(ctx context.Context, listID string, b types.Book) error {
	var year sql.NullInt64
	if b.YearKnown {
		year = sql.NullInt64{Int64: int64(b.Year), Valid: true}
	}
	var fulltext sql.NullInt64
	if b.FulltextKnown {
		fulltext = sql.NullInt64{Valid: true}
		if b.Fulltext {
			fulltext.Int64 = 1
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO list_books (list_id, book_key, title, authors, year, cover_url, isbn, fulltext, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(list_id, book_key) DO UPDATE SET
			title = excluded.title,
			authors = excluded.authors,
			year = excluded.year,
			cover_url = excluded.cover_url,
			isbn = excluded.isbn,
			fulltext = excluded.fulltext`,
		listID, b.Key, b.Title, strings.Join(b.Authors, "; "), year,
		b.CoverURL, b.ISBN, fulltext, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("adding book %q: %w", b.Key, err)
	}
	return nil
}

// RemoveBook removes one book from a list.
func (s *Store) RemoveBook(ctx context.Context, listID, bookKey string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM list_books WHERE list_id = ? AND book_key = ?`, listID, bookKey)
	if err != nil {
		return fmt.Errorf("removing book %q: %w", bookKey, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("book %q is not in the list", bookKey)
	}
	return nil
}

// ClearList removes every book from a list but keeps the list itself.
func (s *Store) ClearList(ctx context.Context, listID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM list_books WHERE list_id = ?`, listID); err != nil {
		return fmt.Errorf("clearing list: %w", err)
	}
	return nil
}

// Books returns a list's books in the order they were added.
func (s *Store) Books(ctx context.Context, listID string) ([]types.SavedBook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_key, title, authors, year, cover_url, isbn, fulltext, added_at
		FROM list_books WHERE list_id = ? ORDER BY added_at, book_key`, listID)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []types.SavedBook
	for rows.Next() {
		var sb types.SavedBook
		var authors, added string
		var year, fulltext sql.NullInt64
		if err := rows.Scan(&sb.Key, &sb.Title, &authors, &year, &sb.CoverURL, &sb.ISBN, &fulltext, &added); err != nil {
			return nil, fmt.Errorf("scanning book row: %w", err)
		}
		if authors != "" {
			sb.Authors = strings.Split(authors, "; ")
		}
		if year.Valid {
			sb.Year = int(year.Int64)
			sb.YearKnown = true
		}
		if fulltext.Valid {
			sb.Fulltext = fulltext.Int64 != 0
			sb.FulltextKnown = true
		}
		if t, parseErr := time.Parse(time.RFC3339, added); parseErr == nil {
			sb.AddedAt = t
		}
		books = append(books, sb)
	}
	return books, rows.Err()
}

// Pref returns a stored preference, or fallback when unset.
func (s *Store) Pref(ctx context.Context, key, fallback string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading pref %q: %w", key, err)
	}
	return v, nil
}

// SetPref stores a preference, replacing any previous value.
func (s *Store) SetPref(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing pref %q: %w", key, err)
	}
	return nil
}
