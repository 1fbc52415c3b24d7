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

// Divaina scrapes articles from divaina.lk, a WordPress site: listing
// pages paginate under /page/N and articles use entry-title/entry-content
// markup.
type Divaina struct {
	fetch    *Fetcher
	feeds    *FeedLister
	sections []Section
	log      zerolog.Logger
}

// NewDivaina creates the Divaina adapter.
func NewDivaina(fetch *Fetcher, feeds *FeedLister, sections []Section, log zerolog.Logger) *Divaina {
	return &Divaina{
		fetch:    fetch,
		feeds:    feeds,
		sections: sections,
		log:      log.With().Str("site", string(SiteDivaina)).Logger(),
	}
}

func (d *Divaina) Site() Site { return SiteDivaina }

func (d *Divaina) Scrape(ctx context.Context) ([]Extraction, error) {
	var out []Extraction

	for _, sec := range d.sections {
		urls, err := d.articleURLs(ctx, sec)
		if err != nil {
			d.log.Error().Err(err).Str("category", sec.Category).Msg("listing failed")
			continue
		}

		for _, articleURL := range urls {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			ex, err := d.scrapeArticle(ctx, articleURL, sec.Category)
			if err != nil {
				d.log.Warn().Err(err).Str("url", articleURL).Msg("article skipped")
				continue
			}
			out = append(out, ex)
		}
		d.log.Info().Str("category", sec.Category).Int("urls", len(urls)).Msg("section done")
	}

	return out, nil
}

func (d *Divaina) articleURLs(ctx context.Context, sec Section) ([]string, error) {
	if sec.FeedURL != "" {
		return d.feeds.ArticleURLs(ctx, sec.FeedURL)
	}

	base, err := url.Parse(sec.URL)
	if err != nil {
		return nil, fmt.Errorf("parse listing url %s: %w", sec.URL, err)
	}

	var urls []string
	for page := sec.FirstPage; page <= sec.LastPage; page++ {
		pageURL := fmt.Sprintf("%s/page/%d/", strings.TrimRight(sec.URL, "/"), page)
		doc, err := d.fetch.Document(ctx, pageURL)
		if err != nil {
			d.log.Warn().Err(err).Int("page", page).Msg("listing page skipped")
			continue
		}

		doc.Find("article h2.entry-title a").Each(func(_ int, s *goquery.Selection) {
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

func (d *Divaina) scrapeArticle(ctx context.Context, articleURL, category string) (Extraction, error) {
	doc, err := d.fetch.Document(ctx, articleURL)
	if err != nil {
		return Extraction{}, err
	}

	title := strings.TrimSpace(doc.Find("h1.entry-title").First().Text())
	if title == "" {
		return Extraction{}, fmt.Errorf("no title in %s", articleURL)
	}

	var paras []string
	doc.Find("div.entry-content p").Each(func(_ int, s *goquery.Selection) {
		if s.Find("img").Length() > 0 || s.Find("script").Length() > 0 {
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
		Site:         SiteDivaina,
		CategoryHint: category,
		URL:          articleURL,
		Title:        title,
		Body:         strings.Join(paras, "\n"),
		ScrapedAt:    time.Now().UTC(),
	}, nil
}
