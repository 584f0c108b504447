// Package index persists harvested page-info records in SQLite and answers
// title lookups for link validation and search.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/hoyowiki/internal/model"
)

// ErrNotFound indicates the index has no entry for the requested page.
var ErrNotFound = errors.New("page not found in index")

// Store is a SQLite-backed page index.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (and initializes) the index database at path.
// Use ":memory:" for an in-memory index.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize index schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		title TEXT PRIMARY KEY,
		canonical_title TEXT NOT NULL,
		pageid INTEGER NOT NULL,
		categories TEXT NOT NULL,
		alias_of TEXT NOT NULL,
		main_category TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pages_canonical ON pages(canonical_title);
	CREATE INDEX IF NOT EXISTS idx_pages_pageid ON pages(pageid);
	CREATE INDEX IF NOT EXISTS idx_pages_category ON pages(main_category);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Canonical normalizes a title for matching: NFKC-normalized, lowercased,
// with surrounding whitespace removed. "kiana" finds "Kiana".
func Canonical(title string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(title)))
}

// ReplaceCategory atomically replaces every index entry of one main category
// with the freshly harvested records.
func (s *Store) ReplaceCategory(ctx context.Context, category string, infos []model.PageInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin index refresh: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pages WHERE main_category = ?", category); err != nil {
		return fmt.Errorf("clear category %q: %w", category, err)
	}

	now := time.Now().Unix()
	for _, info := range infos {
		categories, err := json.Marshal(info.Categories)
		if err != nil {
			return fmt.Errorf("marshal categories for %q: %w", info.Title, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO pages
				(title, canonical_title, pageid, categories, alias_of, main_category, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			info.Title, Canonical(info.Title), info.PageID, string(categories),
			info.AliasOf, info.MainCategory(), now,
		)
		if err != nil {
			return fmt.Errorf("insert page %q: %w", info.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index refresh: %w", err)
	}
	return nil
}

// ByTitle looks a page up by canonical title match.
func (s *Store) ByTitle(ctx context.Context, title string) (model.PageInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT title, pageid, categories, alias_of FROM pages WHERE canonical_title = ?",
		Canonical(title),
	)
	return scanPage(row)
}

// ByTitles resolves the subset of titles that exist in the index, preserving
// no particular order. Unknown titles are simply absent from the result.
func (s *Store) ByTitles(ctx context.Context, titles []string) ([]model.PageInfo, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(titles)), ",")
	args := make([]any, len(titles))
	for i, title := range titles {
		args[i] = Canonical(title)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT title, pageid, categories, alias_of FROM pages WHERE canonical_title IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

// ByID returns the primary entry (title equals alias) for a page ID, falling
// back to any alias entry when no primary exists.
func (s *Store) ByID(ctx context.Context, pageID int64) (model.PageInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT title, pageid, categories, alias_of FROM pages
		WHERE pageid = ? ORDER BY (title = alias_of) DESC LIMIT 1`,
		pageID,
	)
	return scanPage(row)
}

// Search returns up to limit pages whose canonical title contains the query,
// prefix matches first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]model.PageInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	canonical := Canonical(query)
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, pageid, categories, alias_of FROM pages
		WHERE canonical_title LIKE '%' || ? || '%'
		ORDER BY (canonical_title LIKE ? || '%') DESC, title
		LIMIT ?`,
		canonical, canonical, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search pages: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

// Count returns the number of indexed entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&n); err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (model.PageInfo, error) {
	var info model.PageInfo
	var categories string
	err := row.Scan(&info.Title, &info.PageID, &categories, &info.AliasOf)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PageInfo{}, ErrNotFound
	}
	if err != nil {
		return model.PageInfo{}, fmt.Errorf("scan page row: %w", err)
	}
	if err := json.Unmarshal([]byte(categories), &info.Categories); err != nil {
		return model.PageInfo{}, fmt.Errorf("unmarshal categories: %w", err)
	}
	return info, nil
}

func scanPages(rows *sql.Rows) ([]model.PageInfo, error) {
	var infos []model.PageInfo
	for rows.Next() {
		info, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate page rows: %w", err)
	}
	return infos, nil
}
