package config

import (
	newsconfig "golang-news-globe/internal/news/config"
	"golang-news-globe/pkg/config"
)

// Refresher holds the schedule and the scopes kept warm.
type Refresher struct {
	Schedule      string   `mapstructure:"schedule"`
	PruneSchedule string   `mapstructure:"prune_schedule"`
	Scopes        []string `mapstructure:"scopes"`
	TopHeadlines  int      `mapstructure:"top_headlines"`
	RunOnStart    bool     `mapstructure:"run_on_start"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the refresher service. It shares every news
// pipeline section with the API service.
type Config struct {
	newsconfig.Config `mapstructure:",squash"`
	Refresher         Refresher `mapstructure:"refresher"`
	Telegram          Telegram  `mapstructure:"telegram"`
}

// Load loads the refresher configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	c.Config.ApplyDefaults()
	if c.Refresher.Schedule == "" {
		c.Refresher.Schedule = "0 * * * *"
	}
	if c.Refresher.PruneSchedule == "" {
		c.Refresher.PruneSchedule = "30 3 * * *"
	}
	if len(c.Refresher.Scopes) == 0 {
		c.Refresher.Scopes = []string{"all"}
	}
	if c.Refresher.TopHeadlines <= 0 {
		c.Refresher.TopHeadlines = 3
	}
}
