package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "FINNEWS_SCANNER_CONFIG"
	databaseDSNEnv  = "DATABASE_DSN"
	segmenterURLEnv = "SEGMENTER_URL"
	segmenterKeyEnv = "SEGMENTER_API_KEY"
	telegramToken   = "TELEGRAM_BOT_TOKEN"
	telegramChatID  = "TELEGRAM_CHAT_ID"

	defaultMaxWorkers    = 3
	defaultSourceTimeout = 60
	defaultFetchTimeout  = 10
	defaultMaxArticles   = 20
	defaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database      DatabaseConfig     `yaml:"database"`
	Crawler       CrawlerConfig      `yaml:"crawler"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Segmenter     SegmenterConfig    `yaml:"segmenter"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
	Sources       []SourceConfig     `yaml:"sources"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// CrawlerConfig bounds the orchestrator and per-call network budgets.
type CrawlerConfig struct {
	MaxWorkers           int    `yaml:"maxWorkers"`
	SourceTimeoutSeconds int    `yaml:"sourceTimeoutSeconds"`
	FetchTimeoutSeconds  int    `yaml:"fetchTimeoutSeconds"`
	MaxArticles          int    `yaml:"maxArticles"`
	UserAgent            string `yaml:"userAgent"`
}

// SourceTimeout is the hard per-source crawl budget.
func (c CrawlerConfig) SourceTimeout() time.Duration {
	return time.Duration(c.SourceTimeoutSeconds) * time.Second
}

// FetchTimeout bounds a single page fetch.
func (c CrawlerConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// SchedulerConfig defines recurring crawl runs; zero interval means one-shot.
type SchedulerConfig struct {
	IntervalMinutes int `yaml:"intervalMinutes"`
}

// Interval converts the configured minutes to a duration.
func (s SchedulerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// SegmenterConfig points at the external word-segmentation service.
type SegmenterConfig struct {
	ServiceURL string `yaml:"serviceUrl"`
	APIKey     string `yaml:"apiKey"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig describes a single news source and its listing selectors.
type SourceConfig struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	BaseURL           string   `yaml:"baseUrl"`
	ListingURLs       []string `yaml:"listingUrls"`
	FeedURLs          []string `yaml:"feedUrls"`
	ArticleSelector   string   `yaml:"articleSelector"`
	TitleSelector     string   `yaml:"titleSelector"`
	ContentSelector   string   `yaml:"contentSelector"`
	WaitSelector      string   `yaml:"waitSelector"`
	RequiresRendering bool     `yaml:"requiresRendering"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. An empty source catalog after merging is a hard error.
func Load() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyCrawlerDefaults()

	if len(cfg.Sources) == 0 {
		return Config{}, fmt.Errorf("config: source catalog is empty")
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(segmenterURLEnv); v != "" {
		c.Segmenter.ServiceURL = v
	}
	if v := os.Getenv(segmenterKeyEnv); v != "" {
		c.Segmenter.APIKey = v
	}
	if v := os.Getenv(telegramToken); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatID); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) applyCrawlerDefaults() {
	if c.Crawler.MaxWorkers <= 0 {
		c.Crawler.MaxWorkers = defaultMaxWorkers
	}
	if c.Crawler.SourceTimeoutSeconds <= 0 {
		c.Crawler.SourceTimeoutSeconds = defaultSourceTimeout
	}
	if c.Crawler.FetchTimeoutSeconds <= 0 {
		c.Crawler.FetchTimeoutSeconds = defaultFetchTimeout
	}
	if c.Crawler.MaxArticles <= 0 {
		c.Crawler.MaxArticles = defaultMaxArticles
	}
	if c.Crawler.UserAgent == "" {
		c.Crawler.UserAgent = defaultUserAgent
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Crawler.MaxWorkers > 0 {
		base.Crawler.MaxWorkers = override.Crawler.MaxWorkers
	}
	if override.Crawler.SourceTimeoutSeconds > 0 {
		base.Crawler.SourceTimeoutSeconds = override.Crawler.SourceTimeoutSeconds
	}
	if override.Crawler.FetchTimeoutSeconds > 0 {
		base.Crawler.FetchTimeoutSeconds = override.Crawler.FetchTimeoutSeconds
	}
	if override.Crawler.MaxArticles > 0 {
		base.Crawler.MaxArticles = override.Crawler.MaxArticles
	}
	if override.Crawler.UserAgent != "" {
		base.Crawler.UserAgent = override.Crawler.UserAgent
	}

	if override.Scheduler.IntervalMinutes > 0 {
		base.Scheduler = override.Scheduler
	}

	if override.Segmenter.ServiceURL != "" {
		base.Segmenter.ServiceURL = override.Segmenter.ServiceURL
	}
	if override.Segmenter.APIKey != "" {
		base.Segmenter.APIKey = override.Segmenter.APIKey
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{DSN: ""},
		Crawler: CrawlerConfig{
			MaxWorkers:           defaultMaxWorkers,
			SourceTimeoutSeconds: defaultSourceTimeout,
			FetchTimeoutSeconds:  defaultFetchTimeout,
			MaxArticles:          defaultMaxArticles,
			UserAgent:            defaultUserAgent,
		},
		Logging: LoggingConfig{Level: "info"},
		Sources: defaultSources(),
	}
}

// defaultSources is the built-in catalog of Vietnamese financial news sites.
func defaultSources() []SourceConfig {
	return []SourceConfig{
		{
			ID:              "cafef",
			Name:            "CafeF",
			BaseURL:         "https://cafef.vn",
			ListingURLs:     []string{"https://cafef.vn/timeline.chn", "https://cafef.vn/chung-khoan.chn"},
			ArticleSelector: ".tlitem, .item-news",
			TitleSelector:   ".tltitle a, .title a",
			ContentSelector: ".tlsummary, .sapo",
		},
		{
			ID:                "vneconomy",
			Name:              "VnEconomy",
			BaseURL:           "https://vneconomy.vn",
			ListingURLs:       []string{"https://vneconomy.vn/chung-khoan.htm", "https://vneconomy.vn/doanh-nghiep.htm"},
			ArticleSelector:   ".story, .item-news",
			TitleSelector:     ".story__title a",
			ContentSelector:   ".story__summary",
			WaitSelector:      "body",
			RequiresRendering: true,
		},
		{
			ID:                "vietstock",
			Name:              "VietStock",
			BaseURL:           "https://vietstock.vn",
			ListingURLs:       []string{"https://vietstock.vn/tin-tuc-doanh-nghiep.htm"},
			ArticleSelector:   ".news-item",
			TitleSelector:     ".news-title a",
			ContentSelector:   ".news-summary",
			WaitSelector:      "body",
			RequiresRendering: true,
		},
		{
			ID:              "vnexpress",
			Name:            "VNExpress",
			BaseURL:         "https://vnexpress.net",
			ListingURLs:     []string{"https://vnexpress.net/kinh-doanh/chung-khoan"},
			FeedURLs:        []string{"https://vnexpress.net/rss/kinh-doanh.rss"},
			ArticleSelector: "article.item-news",
			TitleSelector:   "h3.title-news a",
			ContentSelector: "p.description",
		},
		{
			ID:              "thanhnien",
			Name:            "Thanh Niên",
			BaseURL:         "https://thanhnien.vn",
			ListingURLs:     []string{"https://thanhnien.vn/tai-chinh-kinh-doanh/chung-khoan.htm"},
			ArticleSelector: "div.story",
			TitleSelector:   "h3.story-title a",
			ContentSelector: "p.summary",
		},
		{
			ID:              "tuoitre",
			Name:            "Tuổi Trẻ",
			BaseURL:         "https://tuoitre.vn",
			ListingURLs:     []string{"https://tuoitre.vn/kinh-doanh/chung-khoan.htm"},
			FeedURLs:        []string{"https://tuoitre.vn/rss/kinh-doanh.rss"},
			ArticleSelector: "div.story",
			TitleSelector:   "h3.title-news a",
			ContentSelector: "p.sapo",
		},
		{
			ID:              "dantri",
			Name:            "Dân Trí",
			BaseURL:         "https://dantri.com.vn",
			ListingURLs:     []string{"https://dantri.com.vn/kinh-doanh/chung-khoan.htm"},
			ArticleSelector: ".article",
			TitleSelector:   ".article-title a",
			ContentSelector: ".article-sapo",
		},
		{
			ID:              "ndh",
			Name:            "NDH",
			BaseURL:         "https://ndh.vn",
			ListingURLs:     []string{"https://ndh.vn/chung-khoan", "https://ndh.vn/doanh-nghiep"},
			ArticleSelector: ".story",
			TitleSelector:   ".story__title a",
			ContentSelector: ".story__summary",
		},
	}
}
