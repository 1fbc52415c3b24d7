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

func TestLankadeepaScrape(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/latest_news/101/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div class="media-body"><h3><a href="/news/456">පුවත</a></h3></div>
			<div class="media-body"><span><a href="/sidebar">අදාළ නොවේ</a></span></div>
		</body></html>`)
	})
	mux.HandleFunc("/news/456", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<h1 class="art-main-title">ප්‍රවෘත්ති මාතෘකාව</h1>
			<div class="article-content">
				<p>පළමු ඡේදය</p>
				<p><img src="x.jpg"/></p>
				<p>දෙවන ඡේදය</p>
			</div>
		</body></html>`)
	})

	l := NewLankadeepa(testFetcher(), nil, []Section{
		{Category: "All-news", URL: ts.URL + "/latest_news/101", FirstPage: 1, LastPage: 1},
	}, zerolog.Nop())

	exs, err := l.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, exs, 1)

	ex := exs[0]
	require.Equal(t, SiteLankadeepa, ex.Site)
	require.Equal(t, "All-news", ex.CategoryHint)
	require.Equal(t, ts.URL+"/news/456", ex.URL)
	require.Equal(t, "ප්‍රවෘත්ති මාතෘකාව", ex.Title)
	require.Equal(t, "පළමු ඡේදය\nදෙවන ඡේදය", ex.Body)
}

func TestLankadeepaSkipsArticleWithoutTitle(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/latest_news/101/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
			<div class="media-body"><h3><a href="%s/news/ok">එක</a></h3></div>
			<div class="media-body"><h3><a href="%s/news/notitle">දෙක</a></h3></div>
		</body></html>`, ts.URL, ts.URL)
	})
	mux.HandleFunc("/news/ok", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<h1 class="art-main-title">මාතෘකාව</h1><div class="article-content"><p>පාඨය</p></div>`)
	})
	mux.HandleFunc("/news/notitle", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<div class="article-content"><p>මාතෘකාව නැති පාඨය</p></div>`)
	})

	l := NewLankadeepa(testFetcher(), nil, []Section{
		{Category: "All-news", URL: ts.URL + "/latest_news/101", FirstPage: 1, LastPage: 1},
	}, zerolog.Nop())

	exs, err := l.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, exs, 1)
	require.Equal(t, "මාතෘකාව", exs[0].Title)
}

func TestLankadeepaEmptyListingIsNonFatal(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	l := NewLankadeepa(testFetcher(), nil, []Section{
		{Category: "All-news", URL: ts.URL + "/latest_news/101", FirstPage: 1, LastPage: 2},
	}, zerolog.Nop())

	exs, err := l.Scrape(context.Background())
	require.NoError(t, err)
	require.Empty(t, exs)
}
