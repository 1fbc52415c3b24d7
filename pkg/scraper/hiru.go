package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Hiru scrapes articles from hirunews.lk. Listing pages are paginated
// with a pageID query parameter; every category section is walked
// independently.
type Hiru struct {
	fetch    *Fetcher
	feeds    *FeedLister
	sections []Section
	log      zerolog.Logger
}

// NewHiru creates the Hiru News adapter.
func NewHiru(fetch *Fetcher, feeds *FeedLister, sections []Section, log zerolog.Logger) *Hiru {
	return &Hiru{
		fetch:    fetch,
		feeds:    feeds,
		sections: sections,
		log:      log.With().Str("site", string(SiteHiru)).Logger(),
	}
}

func (h *Hiru) Site() Site { return SiteHiru }

func (h *Hiru) Scrape(ctx context.Context) ([]Extraction, error) {
	var out []Extraction

	for _, sec := range h.sections {
		urls, err := h.articleURLs(ctx, sec)
		if err != nil {
			h.log.Error().Err(err).Str("category", sec.Category).Msg("listing failed")
			continue
		}

		for _, articleURL := range urls {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			ex, err := h.scrapeArticle(ctx, articleURL, sec.Category)
			if err != nil {
				h.log.Warn().Err(err).Str("url", articleURL).Msg("article skipped")
				continue
			}
			out = append(out, ex)
		}
		h.log.Info().Str("category", sec.Category).Int("urls", len(urls)).Msg("section done")
	}

	return out, nil
}

func (h *Hiru) articleURLs(ctx context.Context, sec Section) ([]string, error) {
	if sec.FeedURL != "" {
		return h.feeds.ArticleURLs(ctx, sec.FeedURL)
	}

	var urls []string
	for page := sec.FirstPage; page <= sec.LastPage; page++ {
		pageURL := fmt.Sprintf("%spageID=%d", sec.URL, page)
		doc, err := h.fetch.Document(ctx, pageURL)
		if err != nil {
			h.log.Warn().Err(err).Int("page", page).Msg("listing page skipped")
			continue
		}

		doc.Find(`div.row[style='margin-bottom:10px'] a[href^='http']`).Each(func(_ int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok {
				urls = append(urls, href)
			}
		})
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no article links in %s", sec.URL)
	}
	return urls, nil
}

func (h *Hiru) scrapeArticle(ctx context.Context, articleURL, category string) (Extraction, error) {
	doc, err := h.fetch.Document(ctx, articleURL)
	if err != nil {
		return Extraction{}, err
	}

	title := strings.TrimSpace(doc.Find("h1.main-tittle").First().Text())
	if title == "" {
		return Extraction{}, fmt.Errorf("no title in %s", articleURL)
	}

	body := strings.TrimSpace(doc.Find("div#article-phara").First().Text())
	if body == "" {
		return Extraction{}, fmt.Errorf("no article body in %s", articleURL)
	}

	return Extraction{
		ID:           NewExtractionID(),
		Site:         SiteHiru,
		CategoryHint: category,
		URL:          articleURL,
		Title:        title,
		Body:         body,
		ScrapedAt:    time.Now().UTC(),
	}, nil
}
