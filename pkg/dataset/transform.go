package dataset

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/j-ranasinghe/Web-Scraping-News-Articles/pkg/scraper"
)

var (
	latinLetters = regexp.MustCompile(`[A-Za-z]`)
	mathSequence = regexp.MustCompile(`\d\s*[-+*/^=]\s*\d`)
)

// Characters that mark scraping artifacts (markup fragments, embedded
// JSON) when they appear inside a Sinhala passage.
const artifactChars = `[]{}"'/\`

// Transformer applies the cleaning rules that sit between the raw
// passage archive and normalization. Rules run in a fixed order,
// boilerplate trimming first, and each dropping rule logs how many
// passages it removed.
type Transformer struct {
	minWords        int
	maxWords        int
	wikiMinPassages int
	log             zerolog.Logger
}

// TransformerOptions configures the cleaning stage.
type TransformerOptions struct {
	MinWords        int
	MaxWords        int
	WikiMinPassages int
}

// NewTransformer creates a Transformer.
func NewTransformer(opts TransformerOptions, log zerolog.Logger) *Transformer {
	if opts.MinWords <= 0 {
		opts.MinWords = 25
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = 250
	}
	if opts.WikiMinPassages <= 0 {
		opts.WikiMinPassages = 5
	}
	return &Transformer{
		minWords:        opts.MinWords,
		maxWords:        opts.MaxWords,
		wikiMinPassages: opts.WikiMinPassages,
		log:             log.With().Str("component", "transform").Logger(),
	}
}

// Apply runs all cleaning rules and returns the surviving passages.
func (t *Transformer) Apply(exs []scraper.Extraction) []scraper.Extraction {
	exs = t.trimSiteLines(exs)
	exs = t.dropLatin(exs)
	exs = t.dropArtifacts(exs)
	exs = t.dropMathSequences(exs)
	exs = t.dropSparseWikiTitles(exs)
	exs = t.flatten(exs)
	exs = t.dedupe(exs)
	exs = t.dropEmpty(exs)
	exs = t.keepWordRange(exs)
	return exs
}

// dropLatin removes passages containing Latin letters; the dataset is
// Sinhala-only.
func (t *Transformer) dropLatin(exs []scraper.Extraction) []scraper.Extraction {
	return t.filter(exs, "latin_letters", func(ex scraper.Extraction) bool {
		return !latinLetters.MatchString(ex.Body)
	})
}

func (t *Transformer) dropArtifacts(exs []scraper.Extraction) []scraper.Extraction {
	return t.filter(exs, "markup_artifacts", func(ex scraper.Extraction) bool {
		return !strings.ContainsAny(ex.Body, artifactChars)
	})
}

func (t *Transformer) dropMathSequences(exs []scraper.Extraction) []scraper.Extraction {
	return t.filter(exs, "math_sequences", func(ex scraper.Extraction) bool {
		return !mathSequence.MatchString(ex.Body)
	})
}

// dropSparseWikiTitles removes Wikipedia passages whose article yielded
// fewer than wikiMinPassages paragraphs; such stubs carry too little
// context to be useful.
func (t *Transformer) dropSparseWikiTitles(exs []scraper.Extraction) []scraper.Extraction {
	counts := make(map[string]int)
	for _, ex := range exs {
		if ex.Site == scraper.SiteWikipedia {
			counts[ex.Title]++
		}
	}
	return t.filter(exs, "sparse_wiki_titles", func(ex scraper.Extraction) bool {
		if ex.Site != scraper.SiteWikipedia {
			return true
		}
		return counts[ex.Title] >= t.wikiMinPassages
	})
}

// trimSiteLines strips site-specific boilerplate lines: Lankadeepa
// articles open with a dateline, Adaderana articles carry a three-line
// header and a "popular news" footer.
func (t *Transformer) trimSiteLines(exs []scraper.Extraction) []scraper.Extraction {
	for i := range exs {
		switch exs[i].Site {
		case scraper.SiteLankadeepa:
			exs[i].Body = dropLeadingLines(exs[i].Body, 1)
		case scraper.SiteAdaderana:
			body := dropLeadingLines(exs[i].Body, 3)
			if idx := strings.Index(body, "popular"); idx != -1 {
				body = body[:idx]
			}
			exs[i].Body = strings.TrimRight(body, " \t\n")
		}
	}
	return exs
}

func dropLeadingLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return ""
	}
	return strings.Join(lines[n:], "\n")
}

// flatten collapses passages to single paragraphs and strips stray
// control characters from titles.
func (t *Transformer) flatten(exs []scraper.Extraction) []scraper.Extraction {
	for i := range exs {
		exs[i].Body = strings.TrimSpace(strings.ReplaceAll(exs[i].Body, "\n", " "))
		title := strings.ReplaceAll(exs[i].Title, "\t", "")
		title = strings.ReplaceAll(title, "\r", "")
		exs[i].Title = strings.TrimSpace(title)
	}
	return exs
}

// dedupe keeps the first occurrence per title for news sites (Wikipedia
// legitimately repeats titles across paragraphs) and the first
// occurrence per context for everything.
func (t *Transformer) dedupe(exs []scraper.Extraction) []scraper.Extraction {
	seenTitle := make(map[string]bool)
	seenContext := make(map[string]bool)

	return t.filter(exs, "duplicates", func(ex scraper.Extraction) bool {
		if ex.Site != scraper.SiteWikipedia {
			if seenTitle[ex.Title] {
				return false
			}
			seenTitle[ex.Title] = true
		}
		if seenContext[ex.Body] {
			return false
		}
		seenContext[ex.Body] = true
		return true
	})
}

func (t *Transformer) dropEmpty(exs []scraper.Extraction) []scraper.Extraction {
	return t.filter(exs, "empty", func(ex scraper.Extraction) bool {
		return strings.TrimSpace(ex.Body) != "" && strings.TrimSpace(ex.Title) != ""
	})
}

func (t *Transformer) keepWordRange(exs []scraper.Extraction) []scraper.Extraction {
	return t.filter(exs, "word_range", func(ex scraper.Extraction) bool {
		n := len(strings.Fields(ex.Body))
		return n >= t.minWords && n <= t.maxWords
	})
}

func (t *Transformer) filter(exs []scraper.Extraction, rule string, keep func(scraper.Extraction) bool) []scraper.Extraction {
	out := exs[:0]
	for _, ex := range exs {
		if keep(ex) {
			out = append(out, ex)
		}
	}
	if dropped := len(exs) - len(out); dropped > 0 {
		t.log.Info().Str("rule", rule).Int("dropped", dropped).Int("kept", len(out)).Msg("cleaning rule applied")
	}
	return out
}
