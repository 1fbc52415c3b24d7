package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Site identifies which website a passage was scraped from.
type Site string

const (
	SiteHiru       Site = "Hiru news"
	SiteAdaderana  Site = "Adaderana"
	SiteLankadeepa Site = "Lankadeepa"
	SiteDivaina    Site = "Divaina"
	SiteWikipedia  Site = "Wikipedia"
)

// Extraction is one raw passage pulled from a page, before cleaning and
// normalization.
type Extraction struct {
	ID           string    `json:"id" db:"id"`
	Site         Site      `json:"site" db:"site"`
	CategoryHint string    `json:"category" db:"category"`
	URL          string    `json:"url" db:"url"`
	Title        string    `json:"title" db:"title"`
	Body         string    `json:"context" db:"context"`
	ScrapedAt    time.Time `json:"scraped_at" db:"scraped_at"`
}

// Scraper is the interface every site adapter must implement.
type Scraper interface {
	Site() Site
	Scrape(ctx context.Context) ([]Extraction, error)
}

// Section is one category listing of a news site: either a paginated
// listing URL with a page range, or an RSS feed to discover article URLs.
type Section struct {
	Category  string
	URL       string
	FeedURL   string
	FirstPage int
	LastPage  int
}

// AllSites returns all known sites.
func AllSites() []Site {
	return []Site{
		SiteHiru,
		SiteAdaderana,
		SiteLankadeepa,
		SiteDivaina,
		SiteWikipedia,
	}
}

// NewExtractionID returns a 24-character hex identifier for an archived
// passage.
func NewExtractionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}
