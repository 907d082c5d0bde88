package config

import (
	"time"

	"golang-news-globe/pkg/config"
)

// AI selects the generative provider: "gemini" or "openai".
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string  `mapstructure:"api_key"`
	Model               string  `mapstructure:"model"`
	Temperature         float32 `mapstructure:"temperature"`
	MaxRequestPerMinute int     `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int     `mapstructure:"max_token_per_minute"`
}

// OpenAI holds the configuration for an OpenAI-compatible chat API.
type OpenAI struct {
	APIKey              string  `mapstructure:"api_key"`
	BaseURL             string  `mapstructure:"base_url"`
	Model               string  `mapstructure:"model"`
	Temperature         float32 `mapstructure:"temperature"`
	MaxRequestPerMinute int     `mapstructure:"max_request_per_minute"`
}

// Classifier holds the configuration for the hosted real/fake text detector.
type Classifier struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxInputLen int           `mapstructure:"max_input_len"`
}

// GNews holds the configuration for the primary headline API.
type GNews struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Lang     string        `mapstructure:"lang"`
	Country  string        `mapstructure:"country"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Fallback string        `mapstructure:"fallback"`
}

// NewsAPI holds the configuration for the alternate aggregation API.
type NewsAPI struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Country string        `mapstructure:"country"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RegionGroup is one Google News search covering a set of regions.
type RegionGroup struct {
	Query   string   `mapstructure:"query"`
	Regions []string `mapstructure:"regions"`
}

// Regional holds the configuration for the regional digest adapter.
type Regional struct {
	Enabled        bool                `mapstructure:"enabled"`
	BaseURL        string              `mapstructure:"base_url"`
	Locale         string              `mapstructure:"locale"`
	BatchSize      int                 `mapstructure:"batch_size"`
	BatchDelay     time.Duration       `mapstructure:"batch_delay"`
	CacheTTL       time.Duration       `mapstructure:"cache_ttl"`
	Groups         []RegionGroup       `mapstructure:"groups"`
	Keywords       map[string][]string `mapstructure:"keywords"`
	IncludeInFetch bool                `mapstructure:"include_in_fetch"`
	RequestsPerSec float64             `mapstructure:"requests_per_second"`
	RequestTimeout time.Duration       `mapstructure:"request_timeout"`
}

// Enrich holds the configuration for full-text extraction.
type Enrich struct {
	Enabled        bool          `mapstructure:"enabled"`
	MinContentLen  int           `mapstructure:"min_content_len"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// News holds pipeline tuning.
type News struct {
	MaxArticles       int           `mapstructure:"max_articles"`
	BatchSize         int           `mapstructure:"batch_size"`
	BatchConcurrency  int           `mapstructure:"batch_concurrency"`
	FreshnessWindow   time.Duration `mapstructure:"freshness_window"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RetryMaxAttempts  int           `mapstructure:"retry_max_attempts"`
	RetryBaseDelay    time.Duration `mapstructure:"retry_base_delay"`
	RetentionPeriod   time.Duration `mapstructure:"retention_period"`
	DefaultCategory   string        `mapstructure:"default_category"`
	InvalidateOnWrite bool          `mapstructure:"invalidate_on_write"`
}

// Config holds the full configuration for the news API service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	CORS       config.CORS     `mapstructure:"cors"`
	AI         AI              `mapstructure:"ai"`
	Gemini     Gemini          `mapstructure:"gemini"`
	OpenAI     OpenAI          `mapstructure:"openai"`
	Classifier Classifier      `mapstructure:"classifier"`
	GNews      GNews           `mapstructure:"gnews"`
	NewsAPI    NewsAPI         `mapstructure:"newsapi"`
	Regional   Regional        `mapstructure:"regional"`
	Enrich     Enrich          `mapstructure:"enrich"`
	News       News            `mapstructure:"news"`
}

// Load loads the news configuration from the given path and fills unset tuning values.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values with the pipeline's defaults.
func (c *Config) ApplyDefaults() {
	if c.AI.Provider == "" {
		c.AI.Provider = "gemini"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.3
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.Temperature == 0 {
		c.OpenAI.Temperature = 0.3
	}
	if c.Classifier.BaseURL == "" {
		c.Classifier.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if c.Classifier.Model == "" {
		c.Classifier.Model = "roberta-base-openai-detector"
	}
	if c.Classifier.Timeout == 0 {
		c.Classifier.Timeout = 15 * time.Second
	}
	if c.Classifier.MaxInputLen == 0 {
		c.Classifier.MaxInputLen = 512
	}
	if c.GNews.BaseURL == "" {
		c.GNews.BaseURL = "https://gnews.io/api/v4"
	}
	if c.GNews.Lang == "" {
		c.GNews.Lang = "en"
	}
	if c.GNews.Timeout == 0 {
		c.GNews.Timeout = 15 * time.Second
	}
	if c.NewsAPI.BaseURL == "" {
		c.NewsAPI.BaseURL = "https://newsapi.org"
	}
	if c.NewsAPI.Timeout == 0 {
		c.NewsAPI.Timeout = 15 * time.Second
	}
	if c.Regional.BaseURL == "" {
		c.Regional.BaseURL = "https://news.google.com/rss/search"
	}
	if c.Regional.Locale == "" {
		c.Regional.Locale = "hl=en-IN&gl=IN&ceid=IN:en"
	}
	if c.Regional.BatchSize == 0 {
		c.Regional.BatchSize = 5
	}
	if c.Regional.BatchDelay == 0 {
		c.Regional.BatchDelay = 200 * time.Millisecond
	}
	if c.Regional.CacheTTL == 0 {
		c.Regional.CacheTTL = 24 * time.Hour
	}
	if c.Regional.RequestTimeout == 0 {
		c.Regional.RequestTimeout = 10 * time.Second
	}
	if c.Enrich.MinContentLen == 0 {
		c.Enrich.MinContentLen = 400
	}
	if c.Enrich.MaxConcurrency == 0 {
		c.Enrich.MaxConcurrency = 4
	}
	if c.Enrich.Timeout == 0 {
		c.Enrich.Timeout = 8 * time.Second
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 25
	}
	if c.News.BatchSize == 0 {
		c.News.BatchSize = 25
	}
	if c.News.BatchConcurrency == 0 {
		c.News.BatchConcurrency = 2
	}
	if c.News.FreshnessWindow == 0 {
		c.News.FreshnessWindow = 12 * time.Hour
	}
	if c.News.RequestTimeout == 0 {
		c.News.RequestTimeout = 50 * time.Second
	}
	if c.News.RetryMaxAttempts == 0 {
		c.News.RetryMaxAttempts = 3
	}
	if c.News.RetryBaseDelay == 0 {
		c.News.RetryBaseDelay = 2 * time.Second
	}
	if c.News.RetentionPeriod == 0 {
		c.News.RetentionPeriod = 7 * 24 * time.Hour
	}
	if c.News.DefaultCategory == "" {
		c.News.DefaultCategory = "Technology"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
}
