package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedLister discovers article URLs from RSS/Atom feeds, for sites that
// publish one per category. It replaces walking paginated listing pages.
type FeedLister struct {
	client    *http.Client
	parser    *gofeed.Parser
	userAgent string
}

// NewFeedLister creates a feed-based article discoverer.
func NewFeedLister(userAgent string) *FeedLister {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &FeedLister{
		client:    &http.Client{Timeout: 30 * time.Second},
		parser:    gofeed.NewParser(),
		userAgent: userAgent,
	}
}

// ArticleURLs fetches a feed and returns the linked article URLs.
func (l *FeedLister) ArticleURLs(ctx context.Context, feedURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request %s: %w", feedURL, err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s status %d", feedURL, resp.StatusCode)
	}

	feed, err := l.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	var urls []string
	for _, entry := range feed.Items {
		link := entry.Link
		if link == "" && len(entry.Links) > 0 {
			link = entry.Links[0]
		}
		if link == "" {
			continue
		}
		urls = append(urls, link)
	}
	return urls, nil
}
