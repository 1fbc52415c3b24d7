// Package dataset turns raw scraped passages into the labeled, ordered
// records that make up the published dataset files.
package dataset

import (
	"github.com/j-ranasinghe/Web-Scraping-News-Articles/pkg/scraper"
)

// Category labels a passage. The set is closed: anything a scraper
// produces must canonicalize into one of these or the passage is dropped.
type Category string

const (
	CategoryAll           Category = "All-news"
	CategoryLocal         Category = "Local news"
	CategoryWikipedia     Category = "Wikipedia"
	CategoryInternational Category = "International news"
	CategorySports        Category = "Sports news"
	CategoryBusiness      Category = "Business news"
	CategoryEntertainment Category = "Entertainment News"
)

// AllCategories returns the closed category set.
func AllCategories() []Category {
	return []Category{
		CategoryAll,
		CategoryLocal,
		CategoryWikipedia,
		CategoryInternational,
		CategorySports,
		CategoryBusiness,
		CategoryEntertainment,
	}
}

// categoryAliases maps the raw labels the scrapers historically emitted
// to canonical categories.
var categoryAliases = map[string]Category{
	"All news":               CategoryAll,
	"local news":             CategoryLocal,
	"Local-news":             CategoryLocal,
	"international news":     CategoryInternational,
	"International_news":     CategoryInternational,
	"International-news":     CategoryInternational,
	"sports/all news":        CategorySports,
	"Sports_news":            CategorySports,
	"Sports-news":            CategorySports,
	"business/all news":      CategoryBusiness,
	"Business_news":          CategoryBusiness,
	"Business-news":          CategoryBusiness,
	"entertainment/all news": CategoryEntertainment,
	"Entertainment-news":     CategoryEntertainment,
	"Wiki":                   CategoryWikipedia,
}

// CanonicalCategory resolves a raw category hint into the closed set.
func CanonicalCategory(hint string) (Category, bool) {
	for _, c := range AllCategories() {
		if string(c) == hint {
			return c, true
		}
	}
	if c, ok := categoryAliases[hint]; ok {
		return c, true
	}
	return "", false
}

// ValidSite reports whether site belongs to the closed site set.
func ValidSite(site scraper.Site) bool {
	for _, s := range scraper.AllSites() {
		if s == site {
			return true
		}
	}
	return false
}

// Record is one finalized dataset entry. ID and Index are assigned by
// the Aggregator once the full collection is known; a Record is never
// modified afterwards.
type Record struct {
	Category      Category     `json:"category"`
	Site          scraper.Site `json:"site"`
	URL           string       `json:"url"`
	Title         string       `json:"title"`
	Context       string       `json:"context"`
	ID            int          `json:"id"`
	ContextLength int          `json:"context_length"`
	WordCount     int          `json:"word_count"`
	Index         int          `json:"index"`
}
