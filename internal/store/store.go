// Package store archives raw scraped passages between the scrape and
// build stages, so sites can be scraped over several sessions before a
// dataset is built.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/j-ranasinghe/Web-Scraping-News-Articles/pkg/scraper"
)

// ListOpts controls passage listing.
type ListOpts struct {
	Site  scraper.Site
	Limit int
}

// Store is the persistence interface for the passage archive.
type Store interface {
	InsertExtraction(ctx context.Context, ex *scraper.Extraction) error
	InsertExtractions(ctx context.Context, exs []scraper.Extraction) error
	ListExtractions(ctx context.Context, opts ListOpts) ([]scraper.Extraction, error)
	CountBySite(ctx context.Context) (map[scraper.Site]int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const insertPassage = `
	INSERT INTO articles (id, site, category, url, title, context, scraped_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(site, url, context) DO NOTHING
`

// InsertExtraction archives one passage. Re-scraping the same passage
// (same site, url and text) is a no-op, so overlapping page ranges
// between runs do not duplicate rows.
func (s *SQLiteStore) InsertExtraction(ctx context.Context, ex *scraper.Extraction) error {
	_, err := s.db.ExecContext(ctx, insertPassage,
		ex.ID, ex.Site, ex.CategoryHint, ex.URL, ex.Title, ex.Body, ex.ScrapedAt)
	if err != nil {
		return fmt.Errorf("insert passage %s: %w", ex.ID, err)
	}
	return nil
}

// InsertExtractions archives a batch in one transaction: either the
// whole site's haul lands in the archive or none of it does.
func (s *SQLiteStore) InsertExtractions(ctx context.Context, exs []scraper.Extraction) error {
	if len(exs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive batch: %w", err)
	}

	for i := range exs {
		ex := &exs[i]
		if _, err := tx.ExecContext(ctx, insertPassage,
			ex.ID, ex.Site, ex.CategoryHint, ex.URL, ex.Title, ex.Body, ex.ScrapedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert passage %s: %w", ex.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive batch: %w", err)
	}
	return nil
}

// ListExtractions returns archived passages ordered by scrape time then
// id, so build runs see a stable order.
func (s *SQLiteStore) ListExtractions(ctx context.Context, opts ListOpts) ([]scraper.Extraction, error) {
	query := "SELECT * FROM articles WHERE 1=1"
	var args []any

	if opts.Site != "" {
		query += " AND site = ?"
		args = append(args, opts.Site)
	}

	query += " ORDER BY scraped_at, id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	var exs []scraper.Extraction
	if err := s.db.SelectContext(ctx, &exs, query, args...); err != nil {
		return nil, fmt.Errorf("list passages: %w", err)
	}
	return exs, nil
}

func (s *SQLiteStore) CountBySite(ctx context.Context) (map[scraper.Site]int, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT site, COUNT(*) AS cnt FROM articles GROUP BY site")
	if err != nil {
		return nil, fmt.Errorf("count passages by site: %w", err)
	}
	defer rows.Close()

	counts := make(map[scraper.Site]int)
	for rows.Next() {
		var site string
		var cnt int
		if err := rows.Scan(&site, &cnt); err != nil {
			return nil, err
		}
		counts[scraper.Site(site)] = cnt
	}
	return counts, rows.Err()
}

func (s *SQLiteStore) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT category, COUNT(*) AS cnt FROM articles GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("count passages by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var cnt int
		if err := rows.Scan(&category, &cnt); err != nil {
			return nil, err
		}
		counts[category] = cnt
	}
	return counts, rows.Err()
}
