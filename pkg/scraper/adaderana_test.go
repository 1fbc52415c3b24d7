package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestAdaderanaScrapeResolvesRelativeLinks(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/sinhala-hot-news.php", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("pageno"))
		fmt.Fprint(w, `<html><body>
			<div class="news-story"><a href="/news.php?nid=99">පුවත</a></div>
		</body></html>`)
	})
	mux.HandleFunc("/news.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<h1 class="news-heading">ක්‍රීඩා පුවත</h1>
			<p style="text-align:justify">පළමු ඡේදය &amp; තවත්</p>
			<p style="text-align:justify"><img src="x.jpg"/></p>
			<p style="text-align:justify">දෙවන ඡේදය</p>
			<p>අදාළ නොවන ඡේදය</p>
		</body></html>`)
	})

	a := NewAdaderana(testFetcher(), nil, []Section{
		{Category: "Sports news", URL: ts.URL + "/sinhala-hot-news.php?", FirstPage: 1, LastPage: 1},
	}, zerolog.Nop())

	exs, err := a.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, exs, 1)

	ex := exs[0]
	require.Equal(t, SiteAdaderana, ex.Site)
	require.Equal(t, ts.URL+"/news.php?nid=99", ex.URL)
	require.Equal(t, "ක්‍රීඩා පුවත", ex.Title)

	// Paragraphs joined by newline, image captions skipped, entities
	// unescaped.
	require.Equal(t, "පළමු ඡේදය & තවත්\nදෙවන ඡේදය", ex.Body)
}

func TestAdaderanaEmptyListingIsNonFatal(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/sinhala-hot-news.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>පුවත් නැත</p></body></html>`)
	})

	a := NewAdaderana(testFetcher(), nil, []Section{
		{Category: "Local news", URL: ts.URL + "/sinhala-hot-news.php?", FirstPage: 1, LastPage: 1},
	}, zerolog.Nop())

	exs, err := a.Scrape(context.Background())
	require.NoError(t, err)
	require.Empty(t, exs)
}
