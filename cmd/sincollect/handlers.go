package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/j-ranasinghe/Web-Scraping-News-Articles/internal/config"
	"github.com/j-ranasinghe/Web-Scraping-News-Articles/internal/logger"
	"github.com/j-ranasinghe/Web-Scraping-News-Articles/internal/store"
	"github.com/j-ranasinghe/Web-Scraping-News-Articles/pkg/dataset"
	"github.com/j-ranasinghe/Web-Scraping-News-Articles/pkg/scraper"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildScrapers(cfg *config.Config, log zerolog.Logger) []scraper.Scraper {
	fetch := scraper.NewFetcher(scraper.FetcherOptions{
		Timeout:       cfg.HTTP.ParseTimeout(),
		UserAgent:     cfg.HTTP.UserAgent,
		Delay:         cfg.HTTP.ParseDelay(),
		RespectRobots: cfg.HTTP.RespectRobots,
	})
	feeds := scraper.NewFeedLister(cfg.HTTP.UserAgent)

	var scrapers []scraper.Scraper

	if cfg.Sites.Hiru.Enabled {
		scrapers = append(scrapers, scraper.NewHiru(fetch, feeds, sections(cfg.Sites.Hiru.Sections), log))
	}
	if cfg.Sites.Adaderana.Enabled {
		scrapers = append(scrapers, scraper.NewAdaderana(fetch, feeds, sections(cfg.Sites.Adaderana.Sections), log))
	}
	if cfg.Sites.Lankadeepa.Enabled {
		scrapers = append(scrapers, scraper.NewLankadeepa(fetch, feeds, sections(cfg.Sites.Lankadeepa.Sections), log))
	}
	if cfg.Sites.Divaina.Enabled {
		scrapers = append(scrapers, scraper.NewDivaina(fetch, feeds, sections(cfg.Sites.Divaina.Sections), log))
	}
	if cfg.Sites.Wikipedia.Enabled {
		scrapers = append(scrapers, scraper.NewWikipedia(fetch, scraper.WikipediaOptions{
			TitlesPath:    cfg.Sites.Wikipedia.TitlesFile,
			BaseURL:       cfg.Sites.Wikipedia.BaseURL,
			MaxArticles:   cfg.Sites.Wikipedia.MaxArticles,
			MaxParagraphs: cfg.Sites.Wikipedia.MaxParagraphs,
		}, log))
	}

	return scrapers
}

func sections(cs []config.SectionConfig) []scraper.Section {
	out := make([]scraper.Section, len(cs))
	for i, c := range cs {
		out[i] = scraper.Section{
			Category:  c.Category,
			URL:       c.URL,
			FeedURL:   c.FeedURL,
			FirstPage: c.FirstPage,
			LastPage:  c.LastPage,
		}
	}
	return out
}

func runScrape(filterSites []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level)

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	allScrapers := buildScrapers(cfg, log)

	// Filter to requested sites only.
	var scrapers []scraper.Scraper
	if len(filterSites) > 0 {
		wanted := make(map[string]bool)
		for _, s := range filterSites {
			wanted[strings.ToLower(strings.TrimSpace(s))] = true
		}
		for _, s := range allScrapers {
			if wanted[shortName(s.Site())] {
				scrapers = append(scrapers, s)
			}
		}
		if len(scrapers) == 0 {
			return fmt.Errorf("no matching sites for: %s", strings.Join(filterSites, ", "))
		}
	} else {
		scrapers = allScrapers
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	total := 0
	for _, s := range scrapers {
		log.Info().Str("site", string(s.Site())).Msg("scraping")
		exs, err := s.Scrape(ctx)
		if err != nil {
			log.Error().Err(err).Str("site", string(s.Site())).Msg("scrape failed")
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		if err := db.InsertExtractions(ctx, exs); err != nil {
			log.Error().Err(err).Str("site", string(s.Site())).Msg("archive failed")
			continue
		}

		log.Info().Str("site", string(s.Site())).Int("passages", len(exs)).Msg("archived")
		total += len(exs)
	}

	log.Info().Int("total", total).Int("sites", len(scrapers)).Msg("scrape complete")
	return nil
}

func runBuild() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level)

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	exs, err := db.ListExtractions(context.Background(), store.ListOpts{})
	if err != nil {
		return fmt.Errorf("list passages: %w", err)
	}
	log.Info().Int("passages", len(exs)).Msg("loaded archive")

	records := buildRecords(cfg, log, exs)
	if err := dataset.WriteDataset(records, cfg.Dataset.Output); err != nil {
		return err
	}

	log.Info().Int("records", len(records)).Str("path", cfg.Dataset.Output).Msg("dataset written")
	return nil
}

// buildRecords runs the cleaning rules, normalizes survivors, and
// finalizes ordering and identity.
func buildRecords(cfg *config.Config, log zerolog.Logger, exs []scraper.Extraction) []dataset.Record {
	transformer := dataset.NewTransformer(dataset.TransformerOptions{
		MinWords:        cfg.Dataset.MinWords,
		MaxWords:        cfg.Dataset.MaxWords,
		WikiMinPassages: cfg.Dataset.WikiMinPassages,
	}, log)
	exs = transformer.Apply(exs)

	agg := dataset.NewAggregator()
	invalid := 0
	for _, ex := range exs {
		rec, err := dataset.Normalize(ex)
		if err != nil {
			log.Debug().Err(err).Str("url", ex.URL).Msg("passage dropped")
			invalid++
			continue
		}
		agg.Add(rec)
	}
	if invalid > 0 {
		log.Info().Int("dropped", invalid).Msg("invalid passages dropped")
	}

	return agg.Finalize()
}

func runAll(output string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if output != "" {
		cfg.Dataset.Output = output
	}
	log := logger.New(cfg.Log.Level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var exs []scraper.Extraction
	for _, s := range buildScrapers(cfg, log) {
		log.Info().Str("site", string(s.Site())).Msg("scraping")
		got, err := s.Scrape(ctx)
		if err != nil {
			log.Error().Err(err).Str("site", string(s.Site())).Msg("scrape failed")
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		exs = append(exs, got...)
	}

	records := buildRecords(cfg, log, exs)
	if err := dataset.WriteDataset(records, cfg.Dataset.Output); err != nil {
		return err
	}

	log.Info().Int("records", len(records)).Str("path", cfg.Dataset.Output).Msg("dataset written")
	return nil
}

func runSplit(chunks bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level)

	records, err := dataset.ReadDataset(cfg.Dataset.Output)
	if err != nil {
		return err
	}

	splits, err := dataset.Split(records, dataset.SplitOptions{
		TestFraction: cfg.Split.TestFraction,
		DevFraction:  cfg.Split.DevFraction,
		Seed:         cfg.Split.Seed,
	})
	if err != nil {
		return err
	}

	if err := dataset.WriteSplits(splits, cfg.Split.Dir); err != nil {
		return err
	}

	if chunks {
		for setType, part := range map[string][]dataset.Record{
			"train": splits.Train,
			"dev":   splits.Dev,
			"test":  splits.Test,
		} {
			if err := dataset.WriteChunks(part, cfg.Split.Dir, setType, cfg.Split.ChunkSize); err != nil {
				return err
			}
		}
	}

	log.Info().
		Int("train", len(splits.Train)).
		Int("dev", len(splits.Dev)).
		Int("test", len(splits.Test)).
		Str("dir", cfg.Split.Dir).
		Msg("splits written")
	return nil
}

func runStats() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	bySite, err := db.CountBySite(ctx)
	if err != nil {
		return err
	}
	byCategory, err := db.CountByCategory(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SITE\tPASSAGES")
	total := 0
	for _, site := range scraper.AllSites() {
		if n, ok := bySite[site]; ok {
			fmt.Fprintf(w, "%s\t%d\n", site, n)
			total += n
		}
	}
	fmt.Fprintf(w, "total\t%d\n", total)

	fmt.Fprintln(w, "\nCATEGORY\tPASSAGES")
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%d\n", c, byCategory[c])
	}
	return w.Flush()
}

func shortName(site scraper.Site) string {
	switch site {
	case scraper.SiteHiru:
		return "hiru"
	case scraper.SiteAdaderana:
		return "adaderana"
	case scraper.SiteLankadeepa:
		return "lankadeepa"
	case scraper.SiteDivaina:
		return "divaina"
	case scraper.SiteWikipedia:
		return "wiki"
	}
	return strings.ToLower(string(site))
}
