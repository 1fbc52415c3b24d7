package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/temoto/robotstxt"
)

const defaultUserAgent = "sincollect/1.0 (+https://github.com/j-ranasinghe/Web-Scraping-News-Articles)"

// Fetcher is the shared HTTP+DOM layer used by all site adapters.
type Fetcher struct {
	client    *http.Client
	userAgent string
	delay     time.Duration
	robots    *robotsCache
}

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	Timeout       time.Duration
	UserAgent     string
	Delay         time.Duration
	RespectRobots bool
}

// NewFetcher creates a fetcher with the given options.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	f := &Fetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		delay:     opts.Delay,
	}
	if opts.RespectRobots {
		f.robots = newRobotsCache(f.client)
	}
	return f
}

// Document fetches a URL and parses the response body into a DOM.
func (f *Fetcher) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if f.robots != nil && !f.robots.allowed(ctx, pageURL, f.userAgent) {
		return nil, fmt.Errorf("fetch %s: disallowed by robots.txt", pageURL)
	}

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// robotsCache fetches and caches robots.txt per host.
type robotsCache struct {
	mu     sync.Mutex
	robots map[string]*robotstxt.RobotsData
	client *http.Client
}

func newRobotsCache(client *http.Client) *robotsCache {
	return &robotsCache{
		robots: make(map[string]*robotstxt.RobotsData),
		client: client,
	}
}

// allowed reports whether userAgent may fetch pageURL. Missing or broken
// robots.txt allows everything.
func (rc *robotsCache) allowed(ctx context.Context, pageURL, userAgent string) bool {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	base := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)

	rc.mu.Lock()
	data, cached := rc.robots[base]
	rc.mu.Unlock()

	if !cached {
		data = rc.fetch(ctx, base)
		rc.mu.Lock()
		rc.robots[base] = data
		rc.mu.Unlock()
	}

	if data == nil {
		return true
	}
	return data.TestAgent(parsed.Path, userAgent)
}

func (rc *robotsCache) fetch(ctx context.Context, base string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/robots.txt", nil)
	if err != nil {
		return nil
	}

	resp, err := rc.client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		if resp != nil {
			resp.Body.Close()
		}
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil
	}
	return data
}
