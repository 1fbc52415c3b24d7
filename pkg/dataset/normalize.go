package dataset

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/j-ranasinghe/Web-Scraping-News-Articles/pkg/scraper"
)

// Validation errors. A failed normalization means the passage is dropped,
// never that the run aborts.
var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyContext    = errors.New("empty context")
	ErrUnknownCategory = errors.New("category outside the closed set")
	ErrUnknownSite     = errors.New("site outside the closed set")
	ErrInvalidURL      = errors.New("url is not absolute")
)

// Normalize converts a raw extraction into a Record without ID/Index.
// It is pure: the same extraction always yields the same record.
//
// context_length counts runes and word_count counts whitespace-separated
// tokens (strings.Fields); the same two rules apply to every site so
// counts stay comparable across the dataset.
func Normalize(ex scraper.Extraction) (Record, error) {
	title := strings.TrimSpace(ex.Title)
	if title == "" {
		return Record{}, ErrEmptyTitle
	}

	context := strings.TrimSpace(ex.Body)
	if context == "" {
		return Record{}, ErrEmptyContext
	}

	if !ValidSite(ex.Site) {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownSite, ex.Site)
	}

	category, ok := CanonicalCategory(ex.CategoryHint)
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownCategory, ex.CategoryHint)
	}

	parsed, err := url.Parse(ex.URL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidURL, ex.URL)
	}

	return Record{
		Category:      category,
		Site:          ex.Site,
		URL:           ex.URL,
		Title:         title,
		Context:       context,
		ContextLength: utf8.RuneCountInString(context),
		WordCount:     len(strings.Fields(context)),
	}, nil
}
