package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Lankadeepa scrapes articles from lankadeepa.lk. Listing pages paginate
// by offset appended to the section path.
type Lankadeepa struct {
	fetch    *Fetcher
	feeds    *FeedLister
	sections []Section
	log      zerolog.Logger
}

// NewLankadeepa creates the Ada Lankadeepa adapter.
func NewLankadeepa(fetch *Fetcher, feeds *FeedLister, sections []Section, log zerolog.Logger) *Lankadeepa {
	return &Lankadeepa{
		fetch:    fetch,
		feeds:    feeds,
		sections: sections,
		log:      log.With().Str("site", string(SiteLankadeepa)).Logger(),
	}
}

func (l *Lankadeepa) Site() Site { return SiteLankadeepa }

func (l *Lankadeepa) Scrape(ctx context.Context) ([]Extraction, error) {
	var out []Extraction

	for _, sec := range l.sections {
		urls, err := l.articleURLs(ctx, sec)
		if err != nil {
			l.log.Error().Err(err).Str("category", sec.Category).Msg("listing failed")
			continue
		}

		for _, articleURL := range urls {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			ex, err := l.scrapeArticle(ctx, articleURL, sec.Category)
			if err != nil {
				l.log.Warn().Err(err).Str("url", articleURL).Msg("article skipped")
				continue
			}
			out = append(out, ex)
		}
		l.log.Info().Str("category", sec.Category).Int("urls", len(urls)).Msg("section done")
	}

	return out, nil
}

func (l *Lankadeepa) articleURLs(ctx context.Context, sec Section) ([]string, error) {
	if sec.FeedURL != "" {
		return l.feeds.ArticleURLs(ctx, sec.FeedURL)
	}

	base, err := url.Parse(sec.URL)
	if err != nil {
		return nil, fmt.Errorf("parse listing url %s: %w", sec.URL, err)
	}

	var urls []string
	for page := sec.FirstPage; page <= sec.LastPage; page++ {
		pageURL := fmt.Sprintf("%s/%d", strings.TrimRight(sec.URL, "/"), page)
		doc, err := l.fetch.Document(ctx, pageURL)
		if err != nil {
			l.log.Warn().Err(err).Int("page", page).Msg("listing page skipped")
			continue
		}

		doc.Find("div.media-body h3 a").Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok || href == "" {
				return
			}
			ref, err := url.Parse(href)
			if err != nil {
				return
			}
			urls = append(urls, base.ResolveReference(ref).String())
		})
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no article links in %s", sec.URL)
	}
	return urls, nil
}

func (l *Lankadeepa) scrapeArticle(ctx context.Context, articleURL, category string) (Extraction, error) {
	doc, err := l.fetch.Document(ctx, articleURL)
	if err != nil {
		return Extraction{}, err
	}

	title := strings.TrimSpace(doc.Find("h1.art-main-title").First().Text())
	if title == "" {
		return Extraction{}, fmt.Errorf("no title in %s", articleURL)
	}

	var paras []string
	doc.Find("div.article-content p").Each(func(_ int, s *goquery.Selection) {
		if s.Find("img").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			paras = append(paras, text)
		}
	})
	if len(paras) == 0 {
		return Extraction{}, fmt.Errorf("no article body in %s", articleURL)
	}

	return Extraction{
		ID:           NewExtractionID(),
		Site:         SiteLankadeepa,
		CategoryHint: category,
		URL:          articleURL,
		Title:        title,
		Body:         strings.Join(paras, "\n"),
		ScrapedAt:    time.Now().UTC(),
	}, nil
}
