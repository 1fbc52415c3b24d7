package scraper

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const defaultWikipediaBaseURL = "https://si.wikipedia.org"

// Titles containing anything but Sinhala script and spaces are skipped.
var sinhalaTitle = regexp.MustCompile(`^[\x{0D80}-\x{0DFF}\s]+$`)

// Wikipedia scrapes Sinhala Wikipedia. Unlike the news adapters it does
// not walk listing pages: article titles come from the all-titles dump
// (gzipped, one title per line), and each article yields up to
// paragraphsPerArticle extractions sharing the same URL and title.
type Wikipedia struct {
	fetch         *Fetcher
	titlesPath    string
	baseURL       string
	maxArticles   int
	maxParagraphs int
	log           zerolog.Logger
}

// WikipediaOptions configures the Wikipedia adapter.
type WikipediaOptions struct {
	TitlesPath    string
	BaseURL       string
	MaxArticles   int
	MaxParagraphs int
}

// NewWikipedia creates the Sinhala Wikipedia adapter.
func NewWikipedia(fetch *Fetcher, opts WikipediaOptions, log zerolog.Logger) *Wikipedia {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultWikipediaBaseURL
	}
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = 100
	}
	if opts.MaxParagraphs <= 0 {
		opts.MaxParagraphs = 10
	}
	return &Wikipedia{
		fetch:         fetch,
		titlesPath:    opts.TitlesPath,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		maxArticles:   opts.MaxArticles,
		maxParagraphs: opts.MaxParagraphs,
		log:           log.With().Str("site", string(SiteWikipedia)).Logger(),
	}
}

func (w *Wikipedia) Site() Site { return SiteWikipedia }

func (w *Wikipedia) Scrape(ctx context.Context) ([]Extraction, error) {
	titles, err := w.readTitles()
	if err != nil {
		return nil, err
	}

	var out []Extraction
	scraped := 0

	for _, title := range titles {
		if scraped >= w.maxArticles {
			break
		}
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		if !sinhalaTitle.MatchString(title) {
			continue
		}

		exs, err := w.scrapeArticle(ctx, title)
		if err != nil {
			w.log.Warn().Err(err).Str("title", title).Msg("article skipped")
			continue
		}
		out = append(out, exs...)
		scraped++
	}

	w.log.Info().Int("articles", scraped).Int("passages", len(out)).Msg("done")
	return out, nil
}

// readTitles reads the gzipped all-titles dump, one title per line.
func (w *Wikipedia) readTitles() ([]string, error) {
	f, err := os.Open(w.titlesPath)
	if err != nil {
		return nil, fmt.Errorf("open titles %s: %w", w.titlesPath, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gunzip titles %s: %w", w.titlesPath, err)
	}
	defer gz.Close()

	var titles []string
	sc := bufio.NewScanner(gz)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			titles = append(titles, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read titles %s: %w", w.titlesPath, err)
	}
	if len(titles) <= 1 {
		return nil, fmt.Errorf("no titles in %s", w.titlesPath)
	}

	// First line of the dump is a header.
	return titles[1:], nil
}

func (w *Wikipedia) scrapeArticle(ctx context.Context, title string) ([]Extraction, error) {
	articleURL := fmt.Sprintf("%s/wiki/%s", w.baseURL, strings.ReplaceAll(title, " ", "_"))

	doc, err := w.fetch.Document(ctx, articleURL)
	if err != nil {
		return nil, err
	}

	heading := strings.TrimSpace(doc.Find("h1#firstHeading").First().Text())
	if heading == "" {
		return nil, fmt.Errorf("no heading in %s", articleURL)
	}

	var paras []string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paras = append(paras, text)
		}
		return len(paras) < w.maxParagraphs
	})
	if len(paras) == 0 {
		return nil, fmt.Errorf("no paragraphs in %s", articleURL)
	}

	now := time.Now().UTC()
	out := make([]Extraction, 0, len(paras))
	for _, para := range paras {
		out = append(out, Extraction{
			ID:           NewExtractionID(),
			Site:         SiteWikipedia,
			CategoryHint: "Wikipedia",
			URL:          articleURL,
			Title:        heading,
			Body:         para,
			ScrapedAt:    now,
		})
	}
	return out, nil
}
