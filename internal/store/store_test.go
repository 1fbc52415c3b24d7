package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/j-ranasinghe/Web-Scraping-News-Articles/pkg/scraper"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func passage(site scraper.Site, url, body string) scraper.Extraction {
	return scraper.Extraction{
		ID:           scraper.NewExtractionID(),
		Site:         site,
		CategoryHint: "Local news",
		URL:          url,
		Title:        "මාතෘකාව",
		Body:         body,
		ScrapedAt:    time.Now().UTC(),
	}
}

func TestInsertAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := passage(scraper.SiteHiru, "https://www.hirunews.lk/1", "පළමු පාඨය")
	b := passage(scraper.SiteAdaderana, "https://adaderana.lk/1", "දෙවන පාඨය")
	require.NoError(t, s.InsertExtractions(ctx, []scraper.Extraction{a, b}))

	all, err := s.ListExtractions(ctx, ListOpts{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	hiru, err := s.ListExtractions(ctx, ListOpts{Site: scraper.SiteHiru})
	require.NoError(t, err)
	require.Len(t, hiru, 1)
	require.Equal(t, a.ID, hiru[0].ID)
	require.Equal(t, "පළමු පාඨය", hiru[0].Body)
}

func TestRescrapeDoesNotDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := passage(scraper.SiteHiru, "https://www.hirunews.lk/1", "එකම පාඨය")
	require.NoError(t, s.InsertExtraction(ctx, &a))

	// Same passage, rescraped with a fresh ID.
	dup := a
	dup.ID = scraper.NewExtractionID()
	require.NoError(t, s.InsertExtraction(ctx, &dup))

	all, err := s.ListExtractions(ctx, ListOpts{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, a.ID, all[0].ID)
}

func TestBatchInsertIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := passage(scraper.SiteHiru, "https://www.hirunews.lk/1", "පළමු පාඨය")
	// Same primary key as a but a distinct passage, so the insert fails
	// rather than hitting the dedup no-op.
	b := passage(scraper.SiteHiru, "https://www.hirunews.lk/2", "දෙවන පාඨය")
	b.ID = a.ID

	require.Error(t, s.InsertExtractions(ctx, []scraper.Extraction{a, b}))

	// The failed batch leaves nothing behind.
	all, err := s.ListExtractions(ctx, ListOpts{})
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertExtractions(ctx, []scraper.Extraction{
		passage(scraper.SiteHiru, "https://www.hirunews.lk/1", "පාඨය එක"),
		passage(scraper.SiteHiru, "https://www.hirunews.lk/2", "පාඨය දෙක"),
		passage(scraper.SiteDivaina, "https://divaina.lk/1", "පාඨය තුන"),
	}))

	bySite, err := s.CountBySite(ctx)
	require.NoError(t, err)
	require.Equal(t, map[scraper.Site]int{
		scraper.SiteHiru:    2,
		scraper.SiteDivaina: 1,
	}, bySite)

	byCategory, err := s.CountByCategory(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"Local news": 3}, byCategory)
}
