package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Sites    SitesConfig    `yaml:"sites"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Split    SplitConfig    `yaml:"split"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig configures the SQLite passage archive.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// HTTPConfig configures the shared fetcher.
type HTTPConfig struct {
	Timeout       string `yaml:"timeout"`
	Delay         string `yaml:"delay"`
	UserAgent     string `yaml:"user_agent"`
	RespectRobots bool   `yaml:"respect_robots"`
}

// ParseTimeout returns the request timeout as time.Duration.
func (h HTTPConfig) ParseTimeout() time.Duration {
	d, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ParseDelay returns the politeness delay between requests.
func (h HTTPConfig) ParseDelay() time.Duration {
	d, err := time.ParseDuration(h.Delay)
	if err != nil {
		return 0
	}
	return d
}

// SitesConfig holds configuration for all site adapters.
type SitesConfig struct {
	Hiru       NewsSiteConfig  `yaml:"hiru"`
	Adaderana  NewsSiteConfig  `yaml:"adaderana"`
	Lankadeepa NewsSiteConfig  `yaml:"lankadeepa"`
	Divaina    NewsSiteConfig  `yaml:"divaina"`
	Wikipedia  WikipediaConfig `yaml:"wikipedia"`
}

// NewsSiteConfig configures one news site adapter.
type NewsSiteConfig struct {
	Enabled  bool            `yaml:"enabled"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is one category listing of a news site: either a
// paginated listing URL with a page range, or an RSS feed URL.
type SectionConfig struct {
	Category  string `yaml:"category"`
	URL       string `yaml:"url"`
	FeedURL   string `yaml:"feed_url"`
	FirstPage int    `yaml:"first_page"`
	LastPage  int    `yaml:"last_page"`
}

// WikipediaConfig configures the Sinhala Wikipedia adapter.
type WikipediaConfig struct {
	Enabled       bool   `yaml:"enabled"`
	TitlesFile    string `yaml:"titles_file"`
	BaseURL       string `yaml:"base_url"`
	MaxArticles   int    `yaml:"max_articles"`
	MaxParagraphs int    `yaml:"max_paragraphs"`
}

// DatasetConfig configures the build stage.
type DatasetConfig struct {
	Output          string `yaml:"output"`
	MinWords        int    `yaml:"min_words"`
	MaxWords        int    `yaml:"max_words"`
	WikiMinPassages int    `yaml:"wiki_min_passages"`
}

// SplitConfig configures the train/dev/test split.
type SplitConfig struct {
	Dir          string  `yaml:"dir"`
	TestFraction float64 `yaml:"test_fraction"`
	DevFraction  float64 `yaml:"dev_fraction"`
	Seed         int64   `yaml:"seed"`
	ChunkSize    int     `yaml:"chunk_size"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: "info"},
		Database: DatabaseConfig{Path: "./sincollect.db"},
		HTTP: HTTPConfig{
			Timeout:       "30s",
			Delay:         "2s",
			RespectRobots: true,
		},
		Sites: SitesConfig{
			Hiru: NewsSiteConfig{
				Enabled: true,
				Sections: []SectionConfig{
					{Category: "Local news", URL: "https://www.hirunews.lk/local-news.php?", FirstPage: 1, LastPage: 89},
					{Category: "Sports news", URL: "https://www.hirunews.lk/sports-news.php?", FirstPage: 1, LastPage: 89},
					{Category: "Business news", URL: "https://www.hirunews.lk/business-news.php?", FirstPage: 1, LastPage: 89},
					{Category: "International news", URL: "https://www.hirunews.lk/international-news.php?", FirstPage: 1, LastPage: 89},
					{Category: "Entertainment News", URL: "https://www.hirunews.lk/entertainment-news.php?", FirstPage: 1, LastPage: 89},
				},
			},
			Adaderana: NewsSiteConfig{
				Enabled: true,
				Sections: []SectionConfig{
					{Category: "Local news", URL: "https://sinhala.adaderana.lk/sinhala-hot-news.php?", FirstPage: 1, LastPage: 314},
					{Category: "Sports news", URL: "https://sinhala.adaderana.lk/sports-news.php?", FirstPage: 1, LastPage: 314},
					{Category: "International news", URL: "https://sinhala.adaderana.lk/international-news.php?", FirstPage: 1, LastPage: 314},
				},
			},
			Lankadeepa: NewsSiteConfig{
				Enabled: true,
				Sections: []SectionConfig{
					{Category: "All-news", URL: "https://www.lankadeepa.lk/latest_news/101", FirstPage: 1, LastPage: 50},
				},
			},
			Divaina: NewsSiteConfig{
				Enabled: true,
				Sections: []SectionConfig{
					{Category: "All-news", URL: "https://divaina.lk/category/news", FirstPage: 1, LastPage: 50},
				},
			},
			Wikipedia: WikipediaConfig{
				Enabled:       true,
				TitlesFile:    "./data/siwiki-latest-all-titles-in-ns0.gz",
				MaxArticles:   500,
				MaxParagraphs: 10,
			},
		},
		Dataset: DatasetConfig{
			Output:          "./data/dataset.json",
			MinWords:        25,
			MaxWords:        250,
			WikiMinPassages: 5,
		},
		Split: SplitConfig{
			Dir:          "./data/splits",
			TestFraction: 0.1,
			DevFraction:  0.1,
			Seed:         42,
			ChunkSize:    500,
		},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SINCOLLECT_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("SINCOLLECT_DATASET_PATH"); v != "" {
		cfg.Dataset.Output = v
	}
	if v := os.Getenv("SINCOLLECT_USER_AGENT"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if v := os.Getenv("SINCOLLECT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
