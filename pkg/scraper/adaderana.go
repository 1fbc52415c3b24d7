package scraper

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Adaderana scrapes articles from adaderana.lk. Listing pages use a
// pageno query parameter and link to articles with relative hrefs, so
// links are resolved against the listing host.
type Adaderana struct {
	fetch    *Fetcher
	feeds    *FeedLister
	sections []Section
	log      zerolog.Logger
}

// NewAdaderana creates the Adaderana adapter.
func NewAdaderana(fetch *Fetcher, feeds *FeedLister, sections []Section, log zerolog.Logger) *Adaderana {
	return &Adaderana{
		fetch:    fetch,
		feeds:    feeds,
		sections: sections,
		log:      log.With().Str("site", string(SiteAdaderana)).Logger(),
	}
}

func (a *Adaderana) Site() Site { return SiteAdaderana }

func (a *Adaderana) Scrape(ctx context.Context) ([]Extraction, error) {
	var out []Extraction

	for _, sec := range a.sections {
		urls, err := a.articleURLs(ctx, sec)
		if err != nil {
			a.log.Error().Err(err).Str("category", sec.Category).Msg("listing failed")
			continue
		}

		for _, articleURL := range urls {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			ex, err := a.scrapeArticle(ctx, articleURL, sec.Category)
			if err != nil {
				a.log.Warn().Err(err).Str("url", articleURL).Msg("article skipped")
				continue
			}
			out = append(out, ex)
		}
		a.log.Info().Str("category", sec.Category).Int("urls", len(urls)).Msg("section done")
	}

	return out, nil
}

func (a *Adaderana) articleURLs(ctx context.Context, sec Section) ([]string, error) {
	if sec.FeedURL != "" {
		return a.feeds.ArticleURLs(ctx, sec.FeedURL)
	}

	base, err := url.Parse(sec.URL)
	if err != nil {
		return nil, fmt.Errorf("parse listing url %s: %w", sec.URL, err)
	}

	var urls []string
	for page := sec.FirstPage; page <= sec.LastPage; page++ {
		pageURL := fmt.Sprintf("%spageno=%d", sec.URL, page)
		doc, err := a.fetch.Document(ctx, pageURL)
		if err != nil {
			a.log.Warn().Err(err).Int("page", page).Msg("listing page skipped")
			continue
		}

		doc.Find("div.news-story a").Each(func(_ int, s *goquery.Selection) {
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

func (a *Adaderana) scrapeArticle(ctx context.Context, articleURL, category string) (Extraction, error) {
	doc, err := a.fetch.Document(ctx, articleURL)
	if err != nil {
		return Extraction{}, err
	}

	title := strings.TrimSpace(doc.Find("h1.news-heading").First().Text())
	if title == "" {
		return Extraction{}, fmt.Errorf("no title in %s", articleURL)
	}

	// Body paragraphs carry an inline justify style; image captions live
	// in paragraphs of their own and are dropped.
	var paras []string
	doc.Find(`p[style='text-align:justify']`).Each(func(_ int, s *goquery.Selection) {
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
		Site:         SiteAdaderana,
		CategoryHint: category,
		URL:          articleURL,
		Title:        title,
		Body:         html.UnescapeString(strings.Join(paras, "\n")),
		ScrapedAt:    time.Now().UTC(),
	}, nil
}
